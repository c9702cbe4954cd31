package earth

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/earthframes/timescale"
	"github.com/echoflaresat/earthframes/vectors"
)

var defaultWorkers = runtime.GOMAXPROCS(0)

// Sample is a position tagged with the UT1 instant it belongs to.
type Sample struct {
	Position vectors.Vec3
	At       timescale.Instant
}

// ECIToECEFBatch converts every sample, spreading the work over at most
// the configured number of goroutines. The first error cancels the rest.
func (c *Converter) ECIToECEFBatch(ctx context.Context, samples []Sample) ([]vectors.Vec3, error) {
	return c.batch(ctx, samples, c.ECIToECEF)
}

// ECEFToECIBatch is the inverse of ECIToECEFBatch.
func (c *Converter) ECEFToECIBatch(ctx context.Context, samples []Sample) ([]vectors.Vec3, error) {
	return c.batch(ctx, samples, c.ECEFToECI)
}

func (c *Converter) batch(ctx context.Context, samples []Sample, convert func(vectors.Vec3, timescale.Instant) (vectors.Vec3, error)) ([]vectors.Vec3, error) {
	out := make([]vectors.Vec3, len(samples))

	g, ctx := errgroup.WithContext(ctx)
	if c.workers > 0 {
		g.SetLimit(c.workers)
	}
	for i, s := range samples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := convert(s.Position, s.At)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
