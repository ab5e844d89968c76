package solver

import "errors"

var (
	// ErrInconsistent means the clue constraints contradict each other.
	// A well-formed snapshot never produces this; it signals a bug in
	// whatever built the snapshot.
	ErrInconsistent = errors.New("inconsistent constraints")

	// ErrNoSolution means no bomb placement satisfies every clue. Like
	// ErrInconsistent this cannot happen for a truthful snapshot.
	ErrNoSolution = errors.New("no valid bomb placement")

	// ErrBudget means enumeration was abandoned before completing.
	// Recoverable: the caller should fall back to a uniform guess.
	ErrBudget = errors.New("search budget exceeded")

	// ErrTooLarge means the boundary does not fit the 128-bit masks.
	ErrTooLarge = errors.New("boundary exceeds bit capacity")
)
