package frequency

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/teatak/wordlike/dictionary"
)

// cancelCheckEvery is how many entries a worker aggregates between
// context checks.
const cancelCheckEvery = 4096

// BuildParallel is Build split across workers goroutines. Each worker
// aggregates a contiguous shard of entries into its own table and the
// shards are summed per gram, so the result equals Build(entries, n).
func BuildParallel(ctx context.Context, entries []dictionary.Entry, n, workers int) (*Table, error) {
	if workers <= 1 || len(entries) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Build(entries, n), nil
	}
	workers = min(workers, len(entries))

	shard := (len(entries) + workers - 1) / workers
	parts := make([]*Table, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range workers {
		lo := i * shard
		hi := min(lo+shard, len(entries))
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			part := newTable(n)
			for j, e := range entries[lo:hi] {
				if j%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				part.add(e)
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := newTable(n)
	for _, part := range parts {
		if part != nil {
			t.merge(part)
		}
	}
	return t, nil
}
