package background

import (
	"context"
	"fmt"
)

// Loader acquires a renderer. Loading may be slow and is always run off the
// caller's goroutine by Effect.Mount.
type Loader interface {
	Load(ctx context.Context, width, height int) (Renderer, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context, width, height int) (Renderer, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, width, height int) (Renderer, error) {
	return f(ctx, width, height)
}

// RasterLoader loads the software gg renderer
type RasterLoader struct{}

// Load creates a RasterRenderer unless ctx is already done
func (RasterLoader) Load(ctx context.Context, width, height int) (Renderer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := NewRasterRenderer(width, height)
	if err != nil {
		return nil, fmt.Errorf("raster renderer: %w", err)
	}
	return r, nil
}
