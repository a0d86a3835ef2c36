package signals_test

import (
	"testing"

	"github.com/delaneyj/cellparty/signals"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSignalProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1818)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("read returns the last write", prop.ForAll(
		func(initial int, writes []int) bool {
			rs := signals.CreateReactiveSystem(nil)
			s := signals.Signal(rs, initial)
			for _, w := range writes {
				s.SetValue(w)
				if s.Value() != w {
					return false
				}
			}
			return true
		},
		gen.Int(),
		gen.SliceOf(gen.Int()),
	))

	properties.Property("an effect runs once per write", prop.ForAll(
		func(writes []int) bool {
			rs := signals.CreateReactiveSystem(nil)
			s := signals.Signal(rs, 0)
			runs := 0
			signals.Effect(rs, func() error {
				s.Value()
				runs++
				return nil
			})
			for _, w := range writes {
				s.SetValue(w)
			}
			return runs == len(writes)+1
		},
		gen.SliceOf(gen.Int()),
	))

	properties.Property("update equals set of read", prop.ForAll(
		func(initial, delta int) bool {
			rs := signals.CreateReactiveSystem(nil)
			a := signals.Signal(rs, initial)
			b := signals.Signal(rs, initial)
			a.Update(func(v int) int { return v + delta })
			b.SetValue(b.Value() + delta)
			return a.Value() == b.Value()
		},
		gen.IntRange(-1_000_000, 1_000_000),
		gen.IntRange(-1_000_000, 1_000_000),
	))

	properties.Property("destroyed effects never run again", prop.ForAll(
		func(before, after []int) bool {
			rs := signals.CreateReactiveSystem(nil)
			s := signals.Signal(rs, 0)
			runs := 0
			e := signals.Effect(rs, func() error {
				s.Value()
				runs++
				return nil
			})
			for _, w := range before {
				s.SetValue(w)
			}
			e.Destroy()
			for _, w := range after {
				s.SetValue(w)
			}
			return runs == len(before)+1 && s.SubscriberCount() == 0
		},
		gen.SliceOf(gen.Int()),
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}
