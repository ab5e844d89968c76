package solver

import (
	"github.com/jgale/minesweeper-agent/bitset"
	"github.com/jgale/minesweeper-agent/board"
)

// section is one contiguous run of boundary bit positions.
type section struct {
	off, width int
	mask       bitset.Mask
}

/*
The boundary is reordered so that tiles sharing constraints end up in
the same or adjacent sections: pick the two tiles furthest apart on
the board, send every tile to the nearer of the two poles, recurse on
each half until a half fits the target width. Only performance depends
on this ordering, never correctness.
*/

// partitionBoundary splits the boundary into ordered groups of at most
// target tiles. The concatenation of the groups is the bit ordering.
func partitionBoundary(snap *board.Snapshot, tiles []int, target int) [][]int {
	if len(tiles) <= target {
		return [][]int{tiles}
	}

	// furthest pair; scanning in list order keeps the choice
	// deterministic, and ordering the poles by index makes the tie
	// rule below independent of that order
	var p, q int
	best := -1
	for i := 0; i < len(tiles); i++ {
		for j := i + 1; j < len(tiles); j++ {
			if d := snap.SquaredDistance(tiles[i], tiles[j]); d > best {
				best = d
				p, q = tiles[i], tiles[j]
			}
		}
	}
	if q < p {
		p, q = q, p
	}

	near := []int{p}
	far := []int{q}
	for _, t := range tiles {
		if t == p || t == q {
			continue
		}
		dp := snap.SquaredDistance(t, p)
		dq := snap.SquaredDistance(t, q)
		// ties go to the lower-indexed pole
		if dp <= dq {
			near = append(near, t)
		} else {
			far = append(far, t)
		}
	}

	out := partitionBoundary(snap, near, target)
	return append(out, partitionBoundary(snap, far, target)...)
}

// sectionize assigns consecutive bit ranges to the partition groups.
func sectionize(groups [][]int) (ordered []int, sections []section) {
	off := 0
	for _, g := range groups {
		sections = append(sections, section{
			off:   off,
			width: len(g),
			mask:  bitset.Place(^uint64(0), off, len(g)),
		})
		ordered = append(ordered, g...)
		off += len(g)
	}
	return ordered, sections
}
