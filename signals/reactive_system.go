package signals

import (
	"log/slog"
)

type OnErrorFunc func(from SignalAware, err error)

// ReactiveSystem owns the tracking stack shared by every signal, computed and
// effect created against it. It is not safe for concurrent use; give each
// goroutine its own system.
type ReactiveSystem struct {
	activeSub  *EffectRunner
	onError    OnErrorFunc
	pauseStack []*EffectRunner
}

type SignalAware interface {
	isSignalAware()
}

func CreateReactiveSystem(onError OnErrorFunc) *ReactiveSystem {
	if onError == nil {
		onError = LogErrors(slog.Default())
	}
	rs := &ReactiveSystem{onError: onError}

	return rs
}

// LogErrors returns an OnErrorFunc that writes every effect error to logger.
func LogErrors(logger *slog.Logger) OnErrorFunc {
	return func(from SignalAware, err error) {
		attrs := []any{slog.Any("error", err)}
		if e, ok := from.(*EffectRunner); ok {
			attrs = append(attrs, slog.Int("runs", e.runs))
		}
		logger.Error("effect failed", attrs...)
	}
}

func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.activeSub)
	rs.activeSub = nil
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	rs.activeSub = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

// Untrack runs fn without registering any dependency for the active effect.
func Untrack[T any](rs *ReactiveSystem, fn func() T) T {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	return fn()
}

func (rs *ReactiveSystem) reportError(from SignalAware, err error) {
	if rs.onError != nil {
		rs.onError(from, err)
	}
}
