package signals

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

type ErrFn func() error

// Reader is anything whose value can be read, tracked or not.
type Reader[T any] interface {
	Value() T
}

// baseDependency is the subscriber bookkeeping shared by every cell.
// subs keeps subscription order, subSet answers membership.
type baseDependency struct {
	subs   []*EffectRunner
	subSet mapset.Set[*EffectRunner]
}

func (d *baseDependency) subscribe(e *EffectRunner) {
	if d.subSet == nil {
		d.subSet = mapset.NewThreadUnsafeSet[*EffectRunner]()
	}
	if d.subSet.Add(e) {
		d.subs = append(d.subs, e)
	}
}

func (d *baseDependency) unsubscribe(e *EffectRunner) {
	if d.subSet == nil || !d.subSet.Contains(e) {
		return
	}
	d.subSet.Remove(e)
	if i := slices.Index(d.subs, e); i >= 0 {
		d.subs = slices.Delete(d.subs, i, i+1)
	}
}

func (d *baseDependency) isSubscribed(e *EffectRunner) bool {
	return d.subSet != nil && d.subSet.Contains(e)
}

// notify runs every subscribed effect once, in subscription order. The
// subscriber list is copied first so effects that subscribe, unsubscribe or
// get created while notifying do not change who runs for this write.
func (d *baseDependency) notify(rs *ReactiveSystem) {
	if len(d.subs) == 0 {
		return
	}
	subs := slices.Clone(d.subs)
	for _, e := range subs {
		if !e.active || !d.isSubscribed(e) {
			continue
		}
		rs.runEffect(e)
	}
}

func (rs *ReactiveSystem) track(d *baseDependency) {
	sub := rs.activeSub
	if sub == nil || !sub.active {
		return
	}
	if sub.deps.Add(d) {
		d.subscribe(sub)
	}
}
