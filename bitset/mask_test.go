package bitset

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naiveCount(m Mask) (count int) {
	for i := range Capacity {
		if m.Has(i) {
			count++
		}
	}
	return
}

func randomMask(r *rand.Rand, n int) Mask {
	var m Mask
	for range n {
		m = m.With(r.IntN(Capacity))
	}
	return m
}

func TestSingle(t *testing.T) {
	for _, i := range []int{0, 1, 63, 64, 65, 127} {
		m := Single(i)
		assert.True(t, m.Has(i))
		assert.Equal(t, 1, m.Count())
	}
}

func TestFirstN(t *testing.T) {
	for _, n := range []int{0, 1, 8, 63, 64, 65, 100, 128} {
		m := FirstN(n)
		require.Equal(t, n, m.Count(), "FirstN(%d)", n)
		for i := range Capacity {
			assert.Equal(t, i < n, m.Has(i), "FirstN(%d).Has(%d)", n, i)
		}
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name            string
		pattern         uint64
		off, width      int
		want            []int
	}{
		{"low word", 0b1011, 0, 4, []int{0, 1, 3}},
		{"offset", 0b101, 10, 3, []int{10, 12}},
		{"straddling", 0b1111, 62, 4, []int{62, 63, 64, 65}},
		{"high word", 0b11, 120, 2, []int{120, 121}},
		{"clipped to width", 0b111, 0, 2, []int{0, 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Place(test.pattern, test.off, test.width).Indices())
		})
	}
}

func TestSetAlgebra(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		a, b := randomMask(r, 20), randomMask(r, 20)

		union := a.Or(b)
		inter := a.And(b)
		diff := a.AndNot(b)

		for i := range Capacity {
			assert.Equal(t, a.Has(i) || b.Has(i), union.Has(i))
			assert.Equal(t, a.Has(i) && b.Has(i), inter.Has(i))
			assert.Equal(t, a.Has(i) && !b.Has(i), diff.Has(i))
		}

		require.Equal(t, naiveCount(union), union.Count())
		assert.Equal(t, !inter.IsEmpty(), a.Overlaps(b))
		assert.True(t, a.ContainsAll(inter))
		assert.True(t, union.ContainsAll(a))
		assert.Equal(t, a, a.And(union))
	}
}

func TestWithWithout(t *testing.T) {
	var m Mask
	m = m.With(5).With(70).With(5)
	assert.Equal(t, []int{5, 70}, m.Indices())
	m = m.Without(5)
	assert.Equal(t, []int{70}, m.Indices())
	m = m.Without(70).Without(3)
	assert.True(t, m.IsEmpty())
}

func TestString(t *testing.T) {
	assert.Equal(t, "{}", Mask{}.String())
	assert.Equal(t, "{2 64}", Single(2).With(64).String())
}
