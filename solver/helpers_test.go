package solver

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/jgale/minesweeper-agent/bitset"
	"github.com/jgale/minesweeper-agent/board"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	Log.SetLevel(logrus.ErrorLevel)
	os.Exit(m.Run())
}

func mustParse(t *testing.T, text string, mines int) *board.Snapshot {
	t.Helper()
	snap, err := board.Parse(text, mines)
	require.NoError(t, err)
	return snap
}

func bits(is ...int) bitset.Mask {
	var m bitset.Mask
	for _, i := range is {
		m = m.With(i)
	}
	return m
}

// tileKey names a bomb placement by the board tiles it mines, so
// placements from passes with different bit orderings compare equal.
func tileKey(p *pass, bombs bitset.Mask) string {
	return fmt.Sprint(p.tiles(bombs))
}

// bruteForce enumerates every subset of the boundary and keeps the
// ones where each clue is matched exactly. With window set, subsets
// whose bomb count no completion of the full board can realize are
// dropped as well.
func bruteForce(t *testing.T, snap *board.Snapshot, window bool) (*pass, []bitset.Mask) {
	t.Helper()
	boundary := snap.Boundary()
	require.LessOrEqual(t, len(boundary), 20, "brute force fixture too wide")

	p, err := newPass(snap, boundary)
	require.NoError(t, err)

	minesLeft := snap.MinesLeft()
	nonBoundary := len(snap.Covered) - len(boundary)

	var out []bitset.Mask
	for v := uint64(0); v < 1<<len(boundary); v++ {
		bombs := bitset.Place(v, 0, len(boundary))
		ok := true
		for _, c := range p.clues {
			if c.mask.And(bombs).Count() != c.count {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if window {
			b := bombs.Count()
			if b > minesLeft || minesLeft-b > nonBoundary {
				continue
			}
		}
		out = append(out, bombs)
	}
	return p, out
}

// runPipeline mirrors the probabilistic pass in Recommend up to the
// merged placement list, with a configurable section width.
func runPipeline(t *testing.T, snap *board.Snapshot, cfg Config) (*pass, assignList) {
	t.Helper()
	cfg = cfg.withDefaults()
	boundary := snap.Boundary()
	require.NotEmpty(t, boundary)

	groups := partitionBoundary(snap, boundary, cfg.SectionWidth)
	ordered, sections := sectionize(groups)
	p, err := newPass(snap, ordered)
	require.NoError(t, err)

	ctx := context.Background()
	lists := make([]assignList, len(sections))
	for i, sec := range sections {
		lists[i], err = enumerateSection(ctx, sec, p.clues, cfg.MaxAssignments)
		require.NoError(t, err)
	}
	final, err := combine(ctx, lists, p.clues, cfg)
	require.NoError(t, err)
	return p, final
}

// randomSnapshot lays out mines on a small board, reveals a random
// subset of the free tiles and snapshots the result. Derived from a
// real layout, so the clue system is always satisfiable.
func randomSnapshot(r *rand.Rand, width, height, mines int) *board.Snapshot {
	size := width * height
	perm := r.Perm(size)
	mined := make(map[int]bool, mines)
	for _, i := range perm[:mines] {
		mined[i] = true
	}

	snap := &board.Snapshot{Width: width, Height: height, Mines: mines}
	for i := range size {
		if mined[i] || r.IntN(2) == 0 {
			snap.Covered = append(snap.Covered, i)
			continue
		}
		value := 0
		neighbors := snap.Neighbors(i)
		for _, n := range neighbors {
			if mined[n] {
				value++
			}
		}
		snap.Clues = append(snap.Clues, board.Clue{
			Index:     i,
			Value:     value,
			Neighbors: neighbors,
		})
	}
	return snap
}
