package signals

type WriteableSignal[T any] struct {
	baseDependency
	rs    *ReactiveSystem
	value T
}

func (s *WriteableSignal[T]) isSignalAware() {}

// Value returns the current value and subscribes the running effect, if any.
func (s *WriteableSignal[T]) Value() T {
	s.rs.track(&s.baseDependency)
	return s.value
}

// Peek returns the current value without subscribing anything.
func (s *WriteableSignal[T]) Peek() T {
	return s.value
}

// SetValue stores v and synchronously re-runs every subscribed effect.
// Equal values are not skipped.
func (s *WriteableSignal[T]) SetValue(v T) {
	s.value = v
	s.notify(s.rs)
}

func (s *WriteableSignal[T]) Update(fn func(oldValue T) T) {
	s.SetValue(fn(s.Value()))
}

// AsReadonly returns a view that can read, and be tracked through, but not
// write the signal.
func (s *WriteableSignal[T]) AsReadonly() *ReadonlySignal[T] {
	return &ReadonlySignal[T]{getter: s.Value}
}

func (s *WriteableSignal[T]) SubscriberCount() int {
	return len(s.subs)
}

func Signal[T any](rs *ReactiveSystem, initialValue T) *WriteableSignal[T] {
	s := &WriteableSignal[T]{
		rs:    rs,
		value: initialValue,
	}
	return s
}
