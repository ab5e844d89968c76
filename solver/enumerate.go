package solver

import (
	"context"

	"github.com/jgale/minesweeper-agent/bitset"
)

// assignList holds the surviving bomb placements over one decided
// region of the boundary. Every bomb mask is a subset of mask.
type assignList struct {
	mask  bitset.Mask
	bombs []bitset.Mask
}

// satisfies checks one candidate against one constraint. With every
// constraint tile decided the count must match exactly; otherwise the
// placed bombs must neither overshoot the count nor leave it
// unreachable by the still-undecided tiles.
func satisfies(bombs, decided bitset.Mask, c clueConstraint) bool {
	placed := c.mask.And(bombs).Count()
	undecided := c.mask.AndNot(decided)
	if undecided.IsEmpty() {
		return placed == c.count
	}
	if placed > c.count {
		return false
	}
	return placed+undecided.Count() >= c.count
}

// enumerateSection generates every locally valid bomb placement for
// one section, testing candidates against each constraint that
// touches the section.
func enumerateSection(
	ctx context.Context,
	sec section,
	clues []clueConstraint,
	maxList int,
) (assignList, error) {
	out := assignList{mask: sec.mask}

	var relevant []clueConstraint
	for _, c := range clues {
		if c.mask.Overlaps(sec.mask) {
			relevant = append(relevant, c)
		}
	}

	for v := uint64(0); v < 1<<sec.width; v++ {
		if v&0xFFF == 0 && ctx.Err() != nil {
			return out, ctx.Err()
		}
		bombs := bitset.Place(v, sec.off, sec.width)
		ok := true
		for _, c := range relevant {
			if !satisfies(bombs, sec.mask, c) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if len(out.bombs) >= maxList {
			return out, ErrBudget
		}
		out.bombs = append(out.bombs, bombs)
	}
	return out, nil
}
