// Package solver decides minesweeper turns. Given a board snapshot it
// first derives every provably safe and provably mined tile from the
// clue constraints; when nothing is certain it enumerates all bomb
// placements consistent with the clues, section by section, and
// recommends the tile least likely to hide a mine.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jgale/minesweeper-agent/bitset"
	"github.com/jgale/minesweeper-agent/board"
)

type MoveType int

const (
	MoveOpen MoveType = iota
	MoveFlag
)

func (t MoveType) String() string {
	if t == MoveFlag {
		return "flag"
	}
	return "open"
}

// Move is one action the agent wants taken on the board.
type Move struct {
	Index       int
	Type        MoveType
	Guess       bool    // false when the move is provably correct
	Probability float64 // estimated mine probability for guesses
}

// Deduction is the deterministic result of one pass: tiles that are
// provably safe and tiles that provably hide mines. Both may be empty.
type Deduction struct {
	Safe, Mined []int
}

type Solver struct {
	snap *board.Snapshot
	cfg  Config
}

// New builds a solver for one snapshot. The zero Config is fine.
func New(snap *board.Snapshot, cfg Config) *Solver {
	return &Solver{snap: snap, cfg: cfg.withDefaults()}
}

// Deduce runs the constraint fixpoint and reports every certain tile.
func (s *Solver) Deduce() (Deduction, error) {
	p, err := newPass(s.snap, s.snap.Boundary())
	if err != nil {
		return Deduction{}, err
	}

	st := newConstraintStore(s.cfg.DeduceSteps)
	for _, c := range p.clues {
		if err := st.add(c.mask, c.count, c.count); err != nil {
			return Deduction{}, err
		}
	}
	// once every covered tile sits on the boundary the remaining mine
	// count itself becomes a constraint
	if len(p.boundary) == len(s.snap.Covered) && len(p.boundary) > 0 {
		full := bitset.FirstN(len(p.boundary))
		left := s.snap.MinesLeft()
		if err := st.add(full, left, left); err != nil {
			return Deduction{}, err
		}
	}
	if err := st.deduce(); err != nil {
		return Deduction{}, err
	}

	safe, mined := st.certainties()
	d := Deduction{Safe: p.tiles(safe), Mined: p.tiles(mined)}
	sort.Ints(d.Safe)
	sort.Ints(d.Mined)
	return d, nil
}

// Recommend picks the covered tile with the lowest mine probability.
// Only meaningful when Deduce came back empty; the deterministic facts
// are not revisited here.
func (s *Solver) Recommend(ctx context.Context) (Guess, error) {
	snap := s.snap
	if len(snap.Covered) == 0 {
		return Guess{}, fmt.Errorf("no covered tiles to guess at")
	}
	boundary := snap.Boundary()
	minesLeft := snap.MinesLeft()

	if len(boundary) == 0 {
		// no clue touches any covered tile: uniform odds everywhere
		return s.uniformGuess(), nil
	}

	groups := partitionBoundary(snap, boundary, s.cfg.SectionWidth)
	ordered, sections := sectionize(groups)
	p, err := newPass(snap, ordered)
	if err != nil {
		return Guess{}, err
	}

	lists := make([]assignList, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, sec := range sections {
		g.Go(func() error {
			list, err := enumerateSection(gctx, sec, p.clues, s.cfg.MaxAssignments)
			lists[i] = list
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Guess{}, err
	}

	final, err := combine(ctx, lists, p.clues, s.cfg)
	if err != nil {
		return Guess{}, err
	}

	nonBoundary := len(snap.Covered) - len(boundary)
	t := tallyPlacements(final, len(ordered))
	dist, err := distribute(t, minesLeft, nonBoundary)
	if err != nil {
		return Guess{}, err
	}
	best := p.bestGuess(dist)

	Log.WithFields(logrus.Fields{
		"boundary":         len(boundary),
		"sections":         len(sections),
		"placements":       len(final.bombs),
		"boundaryProb":     best.Probability,
		"nonBoundaryProb":  dist.nonBoundary,
		"nonBoundaryTiles": nonBoundary,
	}).Debug("probabilistic pass")

	if nonBoundary > 0 && dist.nonBoundary <= best.Probability {
		return Guess{
			Index:       s.nonBoundaryPick(boundary),
			Probability: dist.nonBoundary,
			Boundary:    false,
		}, nil
	}
	return best, nil
}

// Moves runs one full turn: trivial endgame shortcuts, then the
// deterministic pass, then a single probabilistic guess if nothing
// was certain.
func (s *Solver) Moves(ctx context.Context) ([]Move, error) {
	snap := s.snap
	if len(snap.Covered) == 0 {
		return nil, nil
	}
	minesLeft := snap.MinesLeft()

	if snap.Untouched() {
		// opening move, nothing to reason about
		g := s.uniformGuess()
		return []Move{{Index: g.Index, Type: MoveOpen, Guess: true, Probability: g.Probability}}, nil
	}
	if minesLeft == 0 {
		return coveredMoves(snap, MoveOpen), nil
	}
	if minesLeft == len(snap.Covered) {
		return coveredMoves(snap, MoveFlag), nil
	}

	d, err := s.Deduce()
	if err != nil {
		return nil, err
	}
	if len(d.Safe) > 0 || len(d.Mined) > 0 {
		moves := make([]Move, 0, len(d.Safe)+len(d.Mined))
		for _, i := range d.Safe {
			moves = append(moves, Move{Index: i, Type: MoveOpen})
		}
		for _, i := range d.Mined {
			moves = append(moves, Move{Index: i, Type: MoveFlag})
		}
		return moves, nil
	}

	g, err := s.Recommend(ctx)
	if errors.Is(err, ErrBudget) || errors.Is(err, context.DeadlineExceeded) {
		Log.WithError(err).Warn("probabilistic pass abandoned, guessing uniformly")
		g = s.uniformGuess()
	} else if err != nil {
		return nil, err
	}
	return []Move{{Index: g.Index, Type: MoveOpen, Guess: true, Probability: g.Probability}}, nil
}

func coveredMoves(snap *board.Snapshot, t MoveType) []Move {
	tiles := append([]int(nil), snap.Covered...)
	sort.Ints(tiles)
	moves := make([]Move, 0, len(tiles))
	for _, i := range tiles {
		moves = append(moves, Move{Index: i, Type: t})
	}
	return moves
}

// uniformGuess is the no-information fallback: every covered tile is
// treated as equally likely to be mined. Tiles off the boundary are
// preferred, since a boundary tile abandoned mid-search may carry far
// worse odds than the uniform estimate suggests.
func (s *Solver) uniformGuess() Guess {
	snap := s.snap
	prob := float64(snap.MinesLeft()) / float64(len(snap.Covered))
	if snap.Untouched() {
		return Guess{
			Index:       snap.Index(snap.Width/2, snap.Height/2),
			Probability: prob,
		}
	}
	boundary := snap.Boundary()
	if len(boundary) < len(snap.Covered) {
		return Guess{Index: s.nonBoundaryPick(boundary), Probability: prob}
	}

	// every covered tile sits on the boundary; take the lowest index
	index := snap.Covered[0]
	for _, i := range snap.Covered {
		if i < index {
			index = i
		}
	}
	return Guess{Index: index, Probability: prob, Boundary: true}
}

// nonBoundaryPick chooses the representative non-boundary tile:
// uncovering it should grow the boundary as little as possible, so
// prefer tiles with the fewest covered neighbors outside the current
// boundary, lowest index on ties.
func (s *Solver) nonBoundaryPick(boundary []int) int {
	snap := s.snap
	inBoundary := make(map[int]bool, len(boundary))
	for _, i := range boundary {
		inBoundary[i] = true
	}
	covered := snap.CoveredSet()

	best, bestGrowth := -1, -1
	for _, tile := range snap.Covered {
		if inBoundary[tile] {
			continue
		}
		growth := 0
		for _, n := range snap.Neighbors(tile) {
			if covered[n] && !inBoundary[n] {
				growth++
			}
		}
		if best == -1 || growth < bestGrowth ||
			(growth == bestGrowth && tile < best) {
			best, bestGrowth = tile, growth
		}
	}
	return best
}
