// Package bitset implements the fixed-width tile set used throughout
// the solver. A Mask holds up to 128 tile indices as bit positions,
// which keeps set algebra on boundary tiles down to a couple of word
// operations.
package bitset

import (
	"fmt"
	"math/bits"
	"strings"
)

// Capacity is the largest tile index (exclusive) a Mask can hold.
const Capacity = 128

// Mask is a set of tile indices in [0, Capacity). The zero value is
// the empty set. Mask is comparable and may be used as a map key.
type Mask struct {
	lo, hi uint64
}

// Single returns a mask containing only index i.
func Single(i int) Mask {
	if i < 64 {
		return Mask{lo: 1 << i}
	}
	return Mask{hi: 1 << (i - 64)}
}

// FirstN returns a mask containing indices 0..n-1.
func FirstN(n int) Mask {
	if n <= 0 {
		return Mask{}
	}
	if n >= Capacity {
		return Mask{lo: ^uint64(0), hi: ^uint64(0)}
	}
	if n <= 64 {
		// n == 64 shifts out completely, which Go defines as 0;
		// ^0 is what we want there
		if n == 64 {
			return Mask{lo: ^uint64(0)}
		}
		return Mask{lo: 1<<n - 1}
	}
	return Mask{lo: ^uint64(0), hi: 1<<(n-64) - 1}
}

// Place positions the low `width` bits of pattern at bit offset off.
// Callers must keep off+width within Capacity.
func Place(pattern uint64, off, width int) Mask {
	if width < 64 {
		pattern &= 1<<width - 1
	}
	var m Mask
	switch {
	case off >= 64:
		m.hi = pattern << (off - 64)
	case off+width <= 64:
		m.lo = pattern << off
	default:
		m.lo = pattern << off
		m.hi = pattern >> (64 - off)
	}
	return m
}

// Has reports whether index i is in the set.
func (m Mask) Has(i int) bool {
	if i < 64 {
		return m.lo&(1<<i) != 0
	}
	return m.hi&(1<<(i-64)) != 0
}

// With returns m with index i added.
func (m Mask) With(i int) Mask {
	if i < 64 {
		m.lo |= 1 << i
	} else {
		m.hi |= 1 << (i - 64)
	}
	return m
}

// Without returns m with index i removed.
func (m Mask) Without(i int) Mask {
	if i < 64 {
		m.lo &^= 1 << i
	} else {
		m.hi &^= 1 << (i - 64)
	}
	return m
}

// Or returns the union of m and o.
func (m Mask) Or(o Mask) Mask {
	return Mask{lo: m.lo | o.lo, hi: m.hi | o.hi}
}

// And returns the intersection of m and o.
func (m Mask) And(o Mask) Mask {
	return Mask{lo: m.lo & o.lo, hi: m.hi & o.hi}
}

// AndNot returns the difference m \ o.
func (m Mask) AndNot(o Mask) Mask {
	return Mask{lo: m.lo &^ o.lo, hi: m.hi &^ o.hi}
}

// Count returns the number of indices in the set.
func (m Mask) Count() int {
	return bits.OnesCount64(m.lo) + bits.OnesCount64(m.hi)
}

// IsEmpty reports whether the set has no indices.
func (m Mask) IsEmpty() bool {
	return m.lo == 0 && m.hi == 0
}

// Overlaps reports whether m and o share at least one index.
func (m Mask) Overlaps(o Mask) bool {
	return m.lo&o.lo != 0 || m.hi&o.hi != 0
}

// ContainsAll reports whether o is a subset of m.
func (m Mask) ContainsAll(o Mask) bool {
	return o.lo&^m.lo == 0 && o.hi&^m.hi == 0
}

// Indices returns the set indices in ascending order.
func (m Mask) Indices() []int {
	out := make([]int, 0, m.Count())
	for w, base := m.lo, 0; ; w, base = m.hi, 64 {
		for w != 0 {
			i := bits.TrailingZeros64(w)
			out = append(out, base+i)
			w &= w - 1
		}
		if base == 64 {
			break
		}
	}
	return out
}

func (m Mask) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, idx := range m.Indices() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", idx)
	}
	b.WriteByte('}')
	return b.String()
}
