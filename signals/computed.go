package signals

// ReadonlySignal is a read-only view: either a derived value or the
// restricted face of a WriteableSignal.
type ReadonlySignal[T any] struct {
	getter func() T
}

func (s *ReadonlySignal[T]) isSignalAware() {}

func (s *ReadonlySignal[T]) Value() T {
	return s.getter()
}

// Computed wraps getter as a derived value. Nothing is cached: every Value
// call runs getter again, and any signal it reads is tracked against the
// effect that is running at the time.
func Computed[T any](getter func() T) *ReadonlySignal[T] {
	c := &ReadonlySignal[T]{
		getter: getter,
	}
	return c
}
