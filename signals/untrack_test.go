package signals_test

import (
	"testing"

	"github.com/delaneyj/cellparty/signals"
	"github.com/stretchr/testify/assert"
)

// should pause tracking
func TestShouldPauseTracking(t *testing.T) {
	rs := newSystem(t)

	src := signals.Signal(rs, 0)
	runs := 0
	signals.Effect(rs, func() error {
		runs++
		rs.PauseTracking()
		src.Value()
		rs.ResumeTracking()
		return nil
	})
	assert.Equal(t, 0, src.SubscriberCount())

	src.SetValue(1)
	assert.Equal(t, 1, runs)
}

func TestUntrack(t *testing.T) {
	rs := newSystem(t)

	tracked := signals.Signal(rs, 1)
	untracked := signals.Signal(rs, 10)
	sums := []int{}
	signals.Effect(rs, func() error {
		sum := tracked.Value() + signals.Untrack(rs, untracked.Value)
		sums = append(sums, sum)
		return nil
	})

	untracked.SetValue(20)
	tracked.SetValue(2)
	assert.Equal(t, []int{11, 22}, sums)
}

func TestPeekDoesNotTrack(t *testing.T) {
	rs := newSystem(t)

	src := signals.Signal(rs, "x")
	signals.Effect(rs, func() error {
		src.Peek()
		return nil
	})
	assert.Equal(t, 0, src.SubscriberCount())
}

// an effect created while tracking is paused must not resume tracking for the
// outer effect when it returns
func TestEffectInsidePausedTracking(t *testing.T) {
	rs := newSystem(t)

	a := signals.Signal(rs, 0)
	b := signals.Signal(rs, 0)
	outerRuns := 0
	signals.Effect(rs, func() error {
		outerRuns++
		rs.PauseTracking()
		defer rs.ResumeTracking()
		if outerRuns == 1 {
			signals.Effect(rs, func() error {
				a.Value()
				return nil
			})
		}
		b.Value()
		return nil
	})

	b.SetValue(1)
	assert.Equal(t, 1, outerRuns)
	assert.Equal(t, 1, a.SubscriberCount())
}
