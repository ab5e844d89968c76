package solver

import (
	"fmt"

	"github.com/gammazero/deque"

	"github.com/jgale/minesweeper-agent/bitset"
)

/*
We store one pair of bomb-count bounds per tile set, keyed by the
set's bitmask. A clue becomes an equality (min == max); everything
else is derived. Tightening a bound requeues the mask so rules can
re-fire against it, a plain worklist fixpoint.
*/

type bounds struct {
	min, max int
}

type constraintStore struct {
	bounds map[bitset.Mask]bounds
	queue  deque.Deque[bitset.Mask]
	steps  int
	budget int
}

func newConstraintStore(budget int) *constraintStore {
	return &constraintStore{
		bounds: make(map[bitset.Mask]bounds),
		budget: budget,
	}
}

// add tightens the stored bounds on mask m with [min, max]. Bounds
// outside [0, |m|] are clamped rather than rejected, so rules may call
// this with raw arithmetic results.
func (st *constraintStore) add(m bitset.Mask, min, max int) error {
	size := m.Count()
	if min < 0 {
		min = 0
	}
	if max > size {
		max = size
	}
	if m.IsEmpty() {
		if min > 0 {
			return fmt.Errorf("%w: empty set requires %d bombs", ErrInconsistent, min)
		}
		return nil
	}

	b, ok := st.bounds[m]
	if !ok {
		b = bounds{min: 0, max: size}
	}
	changed := false
	if min > b.min {
		b.min = min
		changed = true
	}
	if max < b.max {
		b.max = max
		changed = true
	}
	if b.max < b.min {
		return fmt.Errorf("%w: %v requires at least %d and at most %d bombs",
			ErrInconsistent, m, b.min, b.max)
	}
	if changed || !ok {
		st.bounds[m] = b
		st.queue.PushBack(m)
	}
	return nil
}

// deduce runs the tightening rules to fixpoint (or until the step
// budget runs out, which leaves a sound partial result).
func (st *constraintStore) deduce() error {
	for st.queue.Len() > 0 {
		m := st.queue.PopFront()

		// snapshot the keys: relate() inserts new masks, which will be
		// queued and visited on their own turn
		others := make([]bitset.Mask, 0, len(st.bounds))
		for o := range st.bounds {
			if o != m && o.Overlaps(m) {
				others = append(others, o)
			}
		}
		for _, o := range others {
			st.steps++
			if st.steps > st.budget {
				Log.WithField("steps", st.steps).
					Warn("constraint deduction stopped early")
				return nil
			}
			if err := st.relate(m, o); err != nil {
				return err
			}
		}
	}
	return nil
}

// relate applies the deduction rules to one overlapping pair.
func (st *constraintStore) relate(a, b bitset.Mask) error {
	inter := a.And(b)
	switch inter {
	case a: // a ⊆ b
		return st.deriveSubset(b, a)
	case b: // b ⊆ a
		return st.deriveSubset(a, b)
	}

	// partial overlap: bound the intersection from both sides, then
	// treat it as a subset of each
	ba := st.bounds[a]
	bb := st.bounds[b]
	min := ba.min - a.AndNot(b).Count()
	if alt := bb.min - b.AndNot(a).Count(); alt > min {
		min = alt
	}
	max := ba.max
	if bb.max < max {
		max = bb.max
	}
	if err := st.add(inter, min, max); err != nil {
		return err
	}
	if err := st.deriveSubset(a, inter); err != nil {
		return err
	}
	return st.deriveSubset(b, inter)
}

// deriveSubset applies the subset and difference rules for s ⊆ t:
// bombs in s can be at most bombs in t, and the bombs in t \ s are the
// bombs in t minus those in s.
func (st *constraintStore) deriveSubset(t, s bitset.Mask) error {
	bt := st.bounds[t]
	bs := st.bounds[s]
	if err := st.add(s, bt.min-t.AndNot(s).Count(), bt.max); err != nil {
		return err
	}
	return st.add(t.AndNot(s), bt.min-bs.max, bt.max-bs.min)
}

// certainties returns the union of all-safe masks (at most zero
// bombs) and all-mined masks (at least as many bombs as tiles).
func (st *constraintStore) certainties() (safe, mined bitset.Mask) {
	for m, b := range st.bounds {
		if m.IsEmpty() {
			continue
		}
		if b.max == 0 {
			safe = safe.Or(m)
		}
		if b.min == m.Count() {
			mined = mined.Or(m)
		}
	}
	return safe, mined
}
