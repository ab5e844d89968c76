package solver

import (
	"fmt"

	"github.com/jgale/minesweeper-agent/bitset"
	"github.com/jgale/minesweeper-agent/board"
)

// clueConstraint is one clue translated into boundary bit space: the
// mask of its covered unflagged neighbors and the exact number of
// bombs still hidden among them.
type clueConstraint struct {
	mask  bitset.Mask
	count int
}

// pass is the working state of one solving pass: a renumbering of the
// boundary tiles into bit positions plus the clue constraints in that
// bit space. It is built fresh from the snapshot every turn.
type pass struct {
	snap     *board.Snapshot
	boundary []int       // bit i holds tile boundary[i]
	bits     map[int]int // tile index -> bit
	clues    []clueConstraint
}

// newPass renumbers the given boundary tiles (in the given order) and
// translates every clue into that bit space.
func newPass(snap *board.Snapshot, ordered []int) (*pass, error) {
	if len(ordered) > bitset.Capacity {
		return nil, fmt.Errorf("%w: %d boundary tiles", ErrTooLarge, len(ordered))
	}
	p := &pass{
		snap:     snap,
		boundary: ordered,
		bits:     make(map[int]int, len(ordered)),
	}
	for bit, tile := range ordered {
		p.bits[tile] = bit
	}

	flagged := make(map[int]bool, len(snap.Flagged))
	for _, i := range snap.Flagged {
		flagged[i] = true
	}
	covered := snap.CoveredSet()

	for _, c := range snap.Clues {
		count := c.Value
		var mask bitset.Mask
		for _, n := range c.Neighbors {
			if flagged[n] {
				count--
			} else if covered[n] {
				mask = mask.With(p.bits[n])
			}
		}
		if mask.IsEmpty() {
			if count != 0 {
				return nil, fmt.Errorf(
					"%w: clue at tile %d wants %d bombs with no covered neighbors",
					ErrInconsistent, c.Index, count)
			}
			continue
		}
		if count < 0 || count > mask.Count() {
			return nil, fmt.Errorf(
				"%w: clue at tile %d wants %d bombs among %d covered neighbors",
				ErrInconsistent, c.Index, count, mask.Count())
		}
		p.clues = append(p.clues, clueConstraint{mask: mask, count: count})
	}
	return p, nil
}

// tiles maps a bit mask back to board tile indices, ascending.
func (p *pass) tiles(m bitset.Mask) []int {
	out := make([]int, 0, m.Count())
	for _, bit := range m.Indices() {
		out = append(out, p.boundary[bit])
	}
	return out
}
