package solver

import "runtime"

// Config tunes the probabilistic search. The zero value of any field
// falls back to its default.
type Config struct {
	// SectionWidth is the target number of boundary tiles per section
	// during enumeration. Wider sections prune harder per section but
	// cost 2^width candidates up front.
	SectionWidth int

	// MaxAssignments caps how many surviving assignments any section
	// or merged list may hold before the search gives up with
	// ErrBudget.
	MaxAssignments int

	// Workers bounds concurrent section enumerations and merges.
	Workers int

	// DeduceSteps caps constraint pairs examined by the deterministic
	// fixpoint. Hitting the cap stops deduction early; everything
	// derived up to that point is still sound.
	DeduceSteps int
}

func (c Config) withDefaults() Config {
	if c.SectionWidth <= 0 {
		c.SectionWidth = 12
	}
	if c.SectionWidth > 32 {
		// 2^width candidates are enumerated per section; anything
		// wider is never worth it
		c.SectionWidth = 32
	}
	if c.MaxAssignments <= 0 {
		c.MaxAssignments = 1 << 18
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.DeduceSteps <= 0 {
		c.DeduceSteps = 1 << 20
	}
	return c
}
