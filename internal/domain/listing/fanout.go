package listing

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FanOut loads a list and its option sets concurrently. Either failing fails
// the whole screen; there is no partial result.
func FanOut[L, E any](ctx context.Context, list func(context.Context) (L, error), enums func(context.Context) (E, error)) (L, E, error) {
	var (
		rows    L
		options E
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = list(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		options, err = enums(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		var zl L
		var ze E
		return zl, ze, err
	}
	return rows, options, nil
}
