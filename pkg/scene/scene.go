package scene

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taigrr/swraster/pkg/imagefile"
	"github.com/taigrr/swraster/pkg/models"
	"github.com/taigrr/swraster/pkg/render"
)

// Result describes a finished render.
type Result struct {
	Mesh     string
	Output   string
	Format   imagefile.Format
	Vertices int
	Faces    int
	Stats    render.Stats

	LoadTime   time.Duration
	RasterTime time.Duration
	WriteTime  time.Duration

	// Framebuffer is the rendered image, kept for previews.
	Framebuffer *render.Framebuffer
}

// Total returns the time spent in all three stages.
func (r *Result) Total() time.Duration {
	return r.LoadTime + r.RasterTime + r.WriteTime
}

// LogValue implements slog.LogValuer.
func (r *Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("output", r.Output),
		slog.Int("faces", r.Faces),
		slog.Int("drawn", r.Stats.FacesDrawn),
		slog.Int("culled", r.Stats.FacesCulled),
		slog.Int("degenerate", r.Stats.Degenerate),
		slog.Int("pixels", r.Stats.PixelsWritten),
		slog.Duration("load", r.LoadTime),
		slog.Duration("raster", r.RasterTime),
		slog.Duration("write", r.WriteTime),
	)
}

// Render validates cfg, loads the mesh, rasterizes it and writes the
// output file. The context is checked between stages only.
func Render(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Mesh: cfg.Mesh, Output: cfg.Output, Format: format}

	start := time.Now()
	mesh, err := models.Load(cfg.Mesh)
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}
	res.LoadTime = time.Since(start)
	res.Vertices, res.Faces = mesh.VertexCount(), mesh.FaceCount()
	logger.Info("mesh loaded",
		slog.String("path", cfg.Mesh),
		slog.Int("vertices", res.Vertices),
		slog.Int("faces", res.Faces),
		slog.Duration("took", res.LoadTime),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	r, err := Draw(cfg, mesh, logger)
	if err != nil {
		return nil, err
	}
	res.RasterTime = time.Since(start)
	res.Stats = r.Stats
	res.Framebuffer = r.Framebuffer()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	if err := imagefile.WriteFile(cfg.Output, res.Framebuffer, format); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	res.WriteTime = time.Since(start)

	logger.Info("render written", slog.Any("result", res), slog.Duration("total", res.Total()))
	return res, nil
}

// Draw rasterizes mesh with the settings in cfg and returns the renderer
// holding the image. cfg must be valid.
func Draw(cfg Config, mesh render.MeshSource, logger *slog.Logger) (*render.Renderer, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	opts.Logger = logger

	r := render.New(cfg.Window.Width, cfg.Window.Height, opts)
	r.SetViewport(cfg.ViewportRect())
	r.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2])
	r.SetColor(cfg.DrawColor[0], cfg.DrawColor[1], cfg.DrawColor[2])

	if cfg.Wireframe {
		r.DrawWireframe(mesh, cfg.TranslateVec(), cfg.ScaleVec())
		return r, nil
	}
	if err := r.DrawShaded(mesh, cfg.TranslateVec(), cfg.ScaleVec(), cfg.Intensity); err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	return r, nil
}
