package scene

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one config in a batch.
type BatchResult struct {
	Path   string
	Result *Result
	Err    error
}

// Batch renders every config file with at most jobs renders in flight
// (NumCPU when jobs <= 0). A failing config does not stop the others;
// results keep the order of paths and the first error is returned.
func Batch(ctx context.Context, paths []string, jobs int, logger *slog.Logger) ([]BatchResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]BatchResult, len(paths))
	var g errgroup.Group
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			results[i] = renderOne(ctx, path, logger.With(slog.String("config", path)))
			if err := results[i].Err; err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func renderOne(ctx context.Context, path string, logger *slog.Logger) BatchResult {
	cfg, err := Load(path)
	if err != nil {
		return BatchResult{Path: path, Err: err}
	}
	res, err := Render(ctx, cfg, logger)
	if err != nil {
		logger.Error("render failed", slog.Any("err", err))
		return BatchResult{Path: path, Err: err}
	}
	// Batches can be large; drop the pixels once they are on disk.
	res.Framebuffer = nil
	return BatchResult{Path: path, Result: res}
}
