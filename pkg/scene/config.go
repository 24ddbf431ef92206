// Package scene turns a render configuration into an image file: it loads
// the mesh, drives the rasterizer and writes the result.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/swraster/pkg/imagefile"
	"github.com/taigrr/swraster/pkg/math3d"
	"github.com/taigrr/swraster/pkg/render"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Window is the framebuffer size in pixels.
type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Rect is a viewport rectangle. A zero Width and Height means the whole
// window.
type Rect struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Config describes one render.
type Config struct {
	Mesh   string `toml:"mesh"`
	Output string `toml:"output"`
	// Format overrides the output extension: bmp, png, webp or tga.
	Format string `toml:"format"`

	Window   Window `toml:"window"`
	Viewport Rect   `toml:"viewport"`

	Translate [3]float64 `toml:"translate"`
	Scale     [3]float64 `toml:"scale"`
	Intensity float64    `toml:"intensity"`

	Fill          string `toml:"fill"`
	Wireframe     bool   `toml:"wireframe"`
	TriangleColor string `toml:"triangle_color"`
	Seed          uint64 `toml:"seed"`
	DepthTest     bool   `toml:"depth_test"`

	// Colors in [0, 1].
	ClearColor [3]float64 `toml:"clear_color"`
	DrawColor  [3]float64 `toml:"draw_color"`
}

// Default returns the settings of a plain 1080p render.
func Default() Config {
	return Config{
		Output:        "render.bmp",
		Window:        Window{Width: 1920, Height: 1080},
		Scale:         [3]float64{1, 1, 1},
		Intensity:     1,
		Fill:          render.FillScanline.String(),
		TriangleColor: render.TriangleRandom.String(),
		DrawColor:     [3]float64{1, 1, 1},
	}
}

// Load reads a TOML config file on top of Default. Relative mesh and output
// paths are resolved against the directory of the file.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if cfg.Mesh != "" && !filepath.IsAbs(cfg.Mesh) {
		cfg.Mesh = filepath.Join(dir, cfg.Mesh)
	}
	if !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(dir, cfg.Output)
	}
	return cfg, nil
}

// Parse decodes TOML on top of Default. Unknown keys are an error.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var problems []string
	bad := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Mesh == "" {
		bad("mesh is required")
	}
	if c.Output == "" {
		bad("output is required")
	}
	if _, err := c.OutputFormat(); err != nil {
		bad("%v", err)
	}

	w, h := c.Window.Width, c.Window.Height
	if w <= 0 || h <= 0 {
		bad("window must be positive, got %dx%d", w, h)
	} else {
		v := c.ViewportRect()
		switch {
		case v.X < 0 || v.Y < 0:
			bad("viewport offset must not be negative, got %d,%d", v.X, v.Y)
		case v.Width <= 0 || v.Height <= 0:
			bad("viewport must be positive, got %dx%d", v.Width, v.Height)
		case v.X+v.Width > w || v.Y+v.Height > h:
			bad("viewport %dx%d+%d+%d exceeds window %dx%d", v.Width, v.Height, v.X, v.Y, w, h)
		}
	}

	fill, err := render.ParseFillMode(c.Fill)
	if err != nil {
		bad("%v", err)
	}
	if _, err := render.ParseTriangleColor(c.TriangleColor); err != nil {
		bad("%v", err)
	}
	if c.DepthTest && fill != render.FillBarycentric {
		bad("depth_test needs fill = %q", render.FillBarycentric)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// OutputFormat returns Format if set, else the format implied by the
// output extension, else BMP.
func (c Config) OutputFormat() (imagefile.Format, error) {
	if c.Format != "" {
		return imagefile.ParseFormat(c.Format)
	}
	if filepath.Ext(c.Output) == "" {
		return imagefile.BMP, nil
	}
	return imagefile.FormatFromPath(c.Output)
}

// ViewportRect returns the viewport with the whole-window default applied.
func (c Config) ViewportRect() render.Viewport {
	v := c.Viewport
	if v.Width == 0 && v.Height == 0 {
		return render.Viewport{X: v.X, Y: v.Y, Width: c.Window.Width - v.X, Height: c.Window.Height - v.Y}
	}
	return render.Viewport{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height}
}

// RenderOptions converts the rasterizer settings. Call Validate first.
func (c Config) RenderOptions() (render.Options, error) {
	fill, err := render.ParseFillMode(c.Fill)
	if err != nil {
		return render.Options{}, err
	}
	tc, err := render.ParseTriangleColor(c.TriangleColor)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Fill:          fill,
		TriangleColor: tc,
		DepthTest:     c.DepthTest,
		Seed:          c.Seed,
	}, nil
}

// TranslateVec returns Translate as a vector.
func (c Config) TranslateVec() math3d.Vec3 {
	return math3d.V3(c.Translate[0], c.Translate[1], c.Translate[2])
}

// ScaleVec returns Scale as a vector.
func (c Config) ScaleVec() math3d.Vec3 {
	return math3d.V3(c.Scale[0], c.Scale[1], c.Scale[2])
}
