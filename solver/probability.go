package solver

import "fmt"

// Guess is the probabilistic recommendation for one turn.
type Guess struct {
	// Index is the tile to uncover.
	Index int
	// Probability is the estimated chance that tile hides a mine.
	Probability float64
	// Boundary reports whether the tile came from the constrained
	// boundary rather than a uniform non-boundary pick.
	Boundary bool
}

/*
Weights: a boundary placement with b bombs leaves M-b mines spread
over the N non-boundary tiles, so its likelihood is proportional to
C(N, M-b). All weights get divided by C(N, minOmitted), where
minOmitted is the smallest M-b over surviving placements; what is
left is a short ratio of falling factorials whose magnitude stays
manageable.
*/
func caseWeight(omitted, nonBoundary, minOmitted int) float64 {
	if omitted > nonBoundary {
		return 0
	}
	out := 1.0
	num := nonBoundary - omitted + 1
	den := minOmitted + 1
	for num <= nonBoundary-minOmitted && den <= omitted {
		out /= float64(den)
		out *= float64(num)
		num++
		den++
	}
	return out
}

// tally buckets the final placements by bomb count: total number of
// placements with b bombs, and per boundary bit how many of those
// place a bomb there.
type tally struct {
	total  []int
	perBit [][]int
}

func tallyPlacements(final assignList, boundarySize int) tally {
	t := tally{
		total:  make([]int, boundarySize+1),
		perBit: make([][]int, boundarySize),
	}
	for i := range t.perBit {
		t.perBit[i] = make([]int, boundarySize+1)
	}
	for _, bombs := range final.bombs {
		b := bombs.Count()
		t.total[b]++
		for _, bit := range bombs.Indices() {
			t.perBit[bit][b]++
		}
	}
	return t
}

// distribution holds the mine probability of every boundary bit plus
// the uniform probability of any single non-boundary tile.
type distribution struct {
	probs       []float64
	nonBoundary float64
}

// distribute weights the tally and produces per-tile probabilities.
// minesLeft is M, nonBoundary the count of covered tiles outside the
// boundary.
func distribute(t tally, minesLeft, nonBoundary int) (distribution, error) {
	// drop bomb counts no full board can realize
	minB := minesLeft - nonBoundary
	if minB < 0 {
		minB = 0
	}
	scenarios := 0
	maxB := -1
	for b := range t.total {
		if b < minB || b > minesLeft {
			t.total[b] = 0
			continue
		}
		if t.total[b] > 0 {
			scenarios += t.total[b]
			maxB = b
		}
	}
	if scenarios == 0 {
		return distribution{}, fmt.Errorf("%w: no placement honors the mine count", ErrNoSolution)
	}

	minOmitted := minesLeft - maxB
	weights := make([]float64, len(t.total))
	totalWeight := 0.0
	for b, count := range t.total {
		if count == 0 {
			continue
		}
		weights[b] = caseWeight(minesLeft-b, nonBoundary, minOmitted)
		totalWeight += weights[b] * float64(count)
	}

	d := distribution{probs: make([]float64, len(t.perBit))}
	for bit := range t.perBit {
		unsafe := 0.0
		for b, count := range t.perBit[bit] {
			if b < minB || b > minesLeft {
				continue
			}
			unsafe += weights[b] * float64(count)
		}
		d.probs[bit] = unsafe / totalWeight
	}

	// weighted expectation of the bombs left off the boundary, spread
	// uniformly over the non-boundary tiles
	if nonBoundary > 0 {
		unsafe := 0.0
		for b, count := range t.total {
			if count == 0 {
				continue
			}
			unsafe += weights[b] * float64(count) *
				float64(minesLeft-b) / float64(nonBoundary)
		}
		d.nonBoundary = unsafe / totalWeight
	}
	return d, nil
}

// bestGuess returns the boundary tile with the lowest mine
// probability; ties break toward the lowest tile index.
func (p *pass) bestGuess(d distribution) Guess {
	best := Guess{Index: -1, Probability: 2, Boundary: true}
	for bit, tile := range p.boundary {
		prob := d.probs[bit]
		if prob < best.Probability ||
			(prob == best.Probability && tile < best.Index) {
			best = Guess{Index: tile, Probability: prob, Boundary: true}
		}
	}
	return best
}
