package solver

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mergeLists combines every placement from a with every placement
// from b, keeping combinations that survive the constraints spanning
// both regions. Constraints wholly inside one side were already
// checked there and are skipped.
func mergeLists(
	ctx context.Context,
	a, b assignList,
	clues []clueConstraint,
	maxList int,
) (assignList, error) {
	out := assignList{mask: a.mask.Or(b.mask)}

	var spanning []clueConstraint
	for _, c := range clues {
		if c.mask.Overlaps(a.mask) && c.mask.Overlaps(b.mask) {
			spanning = append(spanning, c)
		}
	}

	for _, x := range a.bombs {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		for _, y := range b.bombs {
			combined := x.Or(y)
			ok := true
			for _, c := range spanning {
				if !satisfies(combined, out.mask, c) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			if len(out.bombs) >= maxList {
				return out, ErrBudget
			}
			out.bombs = append(out.bombs, combined)
		}
	}
	return out, nil
}

// combine reduces the per-section lists pairwise, mergesort-style,
// until a single list of full-boundary placements remains. Merges on
// the same level are independent and run concurrently.
func combine(
	ctx context.Context,
	lists []assignList,
	clues []clueConstraint,
	cfg Config,
) (assignList, error) {
	for len(lists) > 1 {
		next := make([]assignList, (len(lists)+1)/2)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for i := 0; i+1 < len(lists); i += 2 {
			a, b, slot := lists[i], lists[i+1], i/2
			g.Go(func() error {
				merged, err := mergeLists(gctx, a, b, clues, cfg.MaxAssignments)
				next[slot] = merged
				return err
			})
		}
		if len(lists)%2 == 1 {
			next[len(next)-1] = lists[len(lists)-1]
		}
		if err := g.Wait(); err != nil {
			return assignList{}, err
		}
		lists = next
	}
	return lists[0], nil
}
