package solver

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgale/minesweeper-agent/bitset"
	"github.com/jgale/minesweeper-agent/board"
)

func TestPartitionCoversBoundary(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(3, 5))

	for round := range 20 {
		snap := randomSnapshot(r, 8, 8, 10)
		boundary := snap.Boundary()
		if len(boundary) == 0 {
			continue
		}

		target := 1 + r.IntN(6)
		groups := partitionBoundary(snap, boundary, target)

		var flat []int
		for _, g := range groups {
			require.NotEmpty(t, g, "round %d", round)
			assert.LessOrEqual(t, len(g), target, "round %d", round)
			flat = append(flat, g...)
		}
		sort.Ints(flat)
		assert.Equal(t, boundary, flat, "round %d", round)
	}
}

func TestPartitionDeterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 2))
	snap := randomSnapshot(r, 9, 9, 12)
	boundary := snap.Boundary()
	require.NotEmpty(t, boundary)

	first := partitionBoundary(snap, boundary, 4)
	second := partitionBoundary(snap, boundary, 4)
	assert.Equal(t, first, second)
}

func TestPartitionTiesGoToLowerPole(t *testing.T) {
	// the list order puts the higher pole first, so the furthest-pair
	// scan finds (8, 4); the equidistant tile 6 must still land with
	// the lower-indexed pole 4
	snap := &board.Snapshot{Width: 9, Height: 1}
	groups := partitionBoundary(snap, []int{8, 4, 5, 6, 7}, 3)
	assert.Equal(t, [][]int{{4, 5, 6}, {8, 7}}, groups)
}

func TestPartitionKeepsSmallInputWhole(t *testing.T) {
	snap := mustParse(t, "- 1 -", 1)
	groups := partitionBoundary(snap, snap.Boundary(), 12)
	assert.Equal(t, [][]int{{0, 2}}, groups)
}

func TestSectionize(t *testing.T) {
	ordered, sections := sectionize([][]int{{4, 7}, {2}, {9, 3, 5}})

	assert.Equal(t, []int{4, 7, 2, 9, 3, 5}, ordered)
	require.Len(t, sections, 3)
	assert.Equal(t, section{off: 0, width: 2, mask: bits(0, 1)}, sections[0])
	assert.Equal(t, section{off: 2, width: 1, mask: bits(2)}, sections[1])
	assert.Equal(t, section{off: 3, width: 3, mask: bits(3, 4, 5)}, sections[2])

	// the sections tile the boundary bits exactly
	var union bitset.Mask
	total := 0
	for _, s := range sections {
		assert.False(t, union.Overlaps(s.mask))
		union = union.Or(s.mask)
		total += s.width
	}
	assert.Equal(t, bitset.FirstN(len(ordered)), union)
	assert.Equal(t, len(ordered), total)
}
