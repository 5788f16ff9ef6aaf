package producer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunBatch fans a list of documents over a bounded worker pool, invoking the
// primary and secondary producers for each. Results keep the input order.
// The only error returned is context cancellation; per-provider failures stay
// on the individual extractions.
func RunBatch(ctx context.Context, primary, secondary Producer, documents []string, cfg Config) ([]Pair, error) {
	pairs := make([]Pair, len(documents))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.PoolSize())

	for i, doc := range documents {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pairs[i] = RunPair(ctx, primary, secondary, doc, cfg.Timeout())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}
