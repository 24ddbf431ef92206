package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/swraster/pkg/scene"
)

// renderFlags mirror scene.Config. Only flags set on the command line
// override the config file.
type renderFlags struct {
	config string

	output        string
	format        string
	width         int
	height        int
	viewport      []int
	translate     []float64
	scale         []float64
	intensity     float64
	fill          string
	wireframe     bool
	triangleColor string
	seed          uint64
	depthTest     bool
	clearColor    []float64
	drawColor     []float64

	preview bool
	watch   bool
}

func newRenderCmd() *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [mesh]",
		Short: "Render one mesh to an image file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			load := func() (scene.Config, error) {
				return f.resolve(cmd, args)
			}
			if f.watch {
				return watch(cmd, f, load)
			}

			cfg, err := load()
			if err != nil {
				return err
			}
			res, err := scene.Render(cmd.Context(), cfg, slog.Default())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d faces, %d drawn, %v\n",
				res.Output, res.Faces, res.Stats.FacesDrawn, res.Total())

			if f.preview {
				return showPreview(cmd.Context(), res.Framebuffer)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "TOML config file")
	fl.StringVarP(&f.output, "output", "o", "", "output image path")
	fl.StringVar(&f.format, "format", "", "output format: bmp, png, webp, tga (default from extension)")
	fl.IntVar(&f.width, "width", 0, "window width in pixels")
	fl.IntVar(&f.height, "height", 0, "window height in pixels")
	fl.IntSliceVar(&f.viewport, "viewport", nil, "viewport x,y,width,height")
	fl.Float64SliceVarP(&f.translate, "translate", "t", nil, "translate x,y,z")
	fl.Float64SliceVarP(&f.scale, "scale", "s", nil, "scale x,y,z")
	fl.Float64VarP(&f.intensity, "intensity", "i", 1, "light intensity")
	fl.StringVar(&f.fill, "fill", "scanline", "triangle fill: scanline or barycentric")
	fl.BoolVarP(&f.wireframe, "wireframe", "w", false, "draw edges only")
	fl.StringVar(&f.triangleColor, "triangle-color", "random", "triangle color: random or shaded")
	fl.Uint64Var(&f.seed, "seed", 0, "random color seed (0 = time based)")
	fl.BoolVar(&f.depthTest, "depth-test", false, "enable the z-buffer (barycentric fill only)")
	fl.Float64SliceVar(&f.clearColor, "clear-color", nil, "clear color r,g,b in [0,1]")
	fl.Float64SliceVar(&f.drawColor, "draw-color", nil, "draw color r,g,b in [0,1]")
	fl.BoolVarP(&f.preview, "preview", "p", false, "show the result in the terminal")
	fl.BoolVar(&f.watch, "watch", false, "re-render when the mesh or config changes")

	return cmd
}

// resolve loads the config file, if any, and applies the mesh argument and
// every flag the user set.
func (f *renderFlags) resolve(cmd *cobra.Command, args []string) (scene.Config, error) {
	cfg := scene.Default()
	if f.config != "" {
		var err error
		if cfg, err = scene.Load(f.config); err != nil {
			return scene.Config{}, err
		}
	}
	if len(args) > 0 {
		cfg.Mesh = args[0]
	}

	fl := cmd.Flags()
	changed := fl.Changed
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("width") {
		cfg.Window.Width = f.width
	}
	if changed("height") {
		cfg.Window.Height = f.height
	}
	if changed("viewport") {
		if len(f.viewport) != 4 {
			return scene.Config{}, errors.New("--viewport needs x,y,width,height")
		}
		cfg.Viewport = scene.Rect{X: f.viewport[0], Y: f.viewport[1], Width: f.viewport[2], Height: f.viewport[3]}
	}

	triples := []struct {
		name string
		val  []float64
		dst  *[3]float64
	}{
		{"translate", f.translate, &cfg.Translate},
		{"scale", f.scale, &cfg.Scale},
		{"clear-color", f.clearColor, &cfg.ClearColor},
		{"draw-color", f.drawColor, &cfg.DrawColor},
	}
	for _, tr := range triples {
		if !changed(tr.name) {
			continue
		}
		if len(tr.val) != 3 {
			return scene.Config{}, fmt.Errorf("--%s needs 3 values, got %d", tr.name, len(tr.val))
		}
		copy(tr.dst[:], tr.val)
	}

	if changed("intensity") {
		cfg.Intensity = f.intensity
	}
	if changed("fill") {
		cfg.Fill = f.fill
	}
	if changed("wireframe") {
		cfg.Wireframe = f.wireframe
	}
	if changed("triangle-color") {
		cfg.TriangleColor = f.triangleColor
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("depth-test") {
		cfg.DepthTest = f.depthTest
	}
	return cfg, nil
}

func watch(cmd *cobra.Command, f *renderFlags, load func() (scene.Config, error)) error {
	w := &scene.Watcher{
		Load:       load,
		ConfigPath: f.config,
		Logger:     slog.Default(),
		OnRender: func(res *scene.Result, err error) {
			if err != nil {
				slog.Error("render failed", slog.Any("err", err))
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d faces, %v\n", res.Output, res.Faces, res.Total())
		},
	}
	slog.Info("watching for changes, press ctrl+c to stop")
	return w.Run(cmd.Context())
}
