package signals

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

type EffectRunner struct {
	rs *ReactiveSystem
	fn ErrFn

	// deps are the signals read during the current or last run.
	deps    mapset.Set[*baseDependency]
	active  bool
	running bool
	runs    int
}

func (e *EffectRunner) isSignalAware() {}

// Effect runs fn once right away and again each time a signal it read during
// its latest run is written. Errors returned by fn go to the system's
// OnErrorFunc and do not stop the effect.
func Effect(rs *ReactiveSystem, fn ErrFn) *EffectRunner {
	e := &EffectRunner{
		rs:     rs,
		fn:     fn,
		deps:   mapset.NewThreadUnsafeSet[*baseDependency](),
		active: true,
	}
	rs.runEffect(e)
	return e
}

// Destroy stops the effect and drops all of its subscriptions. Calling it
// more than once is a no-op.
func (e *EffectRunner) Destroy() {
	if !e.active {
		return
	}
	e.active = false
	for _, d := range e.deps.ToSlice() {
		d.unsubscribe(e)
	}
	e.deps.Clear()
}

func (e *EffectRunner) Active() bool {
	return e.active
}

// Runs reports how many times the body has been executed.
func (e *EffectRunner) Runs() int {
	return e.runs
}

// runEffect executes the body with e as the tracking target, then drops the
// subscriptions to signals that were read last run but not this one.
func (rs *ReactiveSystem) runEffect(e *EffectRunner) {
	if e.running {
		rs.reportError(e, fmt.Errorf("effect notified during its own run (run %d): %w", e.runs, ErrCyclicUpdate))
		return
	}

	prevDeps := e.deps
	e.deps = mapset.NewThreadUnsafeSet[*baseDependency]()

	prevSub := rs.activeSub
	rs.activeSub = e
	e.running = true
	e.runs++

	defer func() {
		e.running = false
		rs.activeSub = prevSub
		for _, d := range prevDeps.ToSlice() {
			if !e.deps.Contains(d) {
				d.unsubscribe(e)
			}
		}
	}()

	if err := e.fn(); err != nil {
		rs.reportError(e, err)
	}
}
