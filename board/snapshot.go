// Package board defines the snapshot contract between a game of
// minesweeper and the solving agent. A snapshot is a read-only view of
// one turn: the revealed clues, the covered and flagged tiles and the
// total mine count. The agent never mutates it.
package board

import (
	"fmt"
	"sort"
)

// Clue is a revealed numbered tile: its index, displayed value and the
// indices of all adjacent tiles.
type Clue struct {
	Index     int
	Value     int
	Neighbors []int
}

// Snapshot captures everything the agent may know about the board on
// one turn. Covered holds covered unflagged tiles only; Mines is the
// total mine count of the board, flagged ones included.
type Snapshot struct {
	Width, Height int
	Mines         int
	Clues         []Clue
	Covered       []int
	Flagged       []int
}

// Size returns the total tile count.
func (s *Snapshot) Size() int {
	return s.Width * s.Height
}

// MinesLeft returns the number of mines not accounted for by flags.
func (s *Snapshot) MinesLeft() int {
	return s.Mines - len(s.Flagged)
}

// Untouched reports whether no tile has been revealed or flagged yet.
func (s *Snapshot) Untouched() bool {
	return len(s.Clues) == 0 && len(s.Flagged) == 0
}

// Coords converts a tile index to column and row.
func (s *Snapshot) Coords(i int) (x, y int) {
	return i % s.Width, i / s.Width
}

// Index converts column and row to a tile index.
func (s *Snapshot) Index(x, y int) int {
	return y*s.Width + x
}

// Neighbors returns the indices of all tiles adjacent to i.
func (s *Snapshot) Neighbors(i int) []int {
	x, y := s.Coords(i)
	out := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx >= 0 && nx < s.Width && ny >= 0 && ny < s.Height {
				out = append(out, s.Index(nx, ny))
			}
		}
	}
	return out
}

// SquaredDistance returns the squared board distance between two tile
// indices.
func (s *Snapshot) SquaredDistance(a, b int) int {
	ax, ay := s.Coords(a)
	bx, by := s.Coords(b)
	dx, dy := ax-bx, ay-by
	return dx*dx + dy*dy
}

// CoveredSet returns Covered as a membership map.
func (s *Snapshot) CoveredSet() map[int]bool {
	set := make(map[int]bool, len(s.Covered))
	for _, i := range s.Covered {
		set[i] = true
	}
	return set
}

// Boundary returns the covered unflagged tiles adjacent to at least
// one clue, in ascending index order.
func (s *Snapshot) Boundary() []int {
	covered := s.CoveredSet()
	seen := make(map[int]bool)
	var out []int
	for _, c := range s.Clues {
		for _, n := range c.Neighbors {
			if covered[n] && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Ints(out)
	return out
}

// Validate checks the snapshot for internal consistency. It does not
// prove the clues are satisfiable, only that the shape of the data is
// sane; contradictions between clues are the solver's to find.
func (s *Snapshot) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("bad dimensions %dx%d", s.Width, s.Height)
	}
	size := s.Size()
	kind := make(map[int]string, size)
	mark := func(i int, what string) error {
		if i < 0 || i >= size {
			return fmt.Errorf("%s tile %d out of range (%d tiles)", what, i, size)
		}
		if prev, ok := kind[i]; ok {
			return fmt.Errorf("tile %d is both %s and %s", i, prev, what)
		}
		kind[i] = what
		return nil
	}
	for _, i := range s.Covered {
		if err := mark(i, "covered"); err != nil {
			return err
		}
	}
	for _, i := range s.Flagged {
		if err := mark(i, "flagged"); err != nil {
			return err
		}
	}
	for _, c := range s.Clues {
		if err := mark(c.Index, "revealed"); err != nil {
			return err
		}
		if c.Value < 0 || c.Value > len(c.Neighbors) {
			return fmt.Errorf("clue %d at tile %d exceeds its %d neighbors",
				c.Value, c.Index, len(c.Neighbors))
		}
	}
	if s.Mines < len(s.Flagged) || s.MinesLeft() > len(s.Covered) {
		return fmt.Errorf("mine count %d impossible with %d flagged and %d covered",
			s.Mines, len(s.Flagged), len(s.Covered))
	}
	return nil
}
