package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/swraster/pkg/imagefile"
	"github.com/taigrr/swraster/pkg/render"
)

const sampleConfig = `
mesh = "deer.obj"
output = "out/deer.png"
translate = [2000.0, 1200.0, 0.0]
scale = [0.5, 0.5, 0.5]
intensity = 0.8
fill = "barycentric"
depth_test = true
seed = 7

[window]
width = 640
height = 480

[viewport]
x = 10
y = 20
width = 320
height = 240
`

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "deer.obj", cfg.Mesh)
	assert.Equal(t, [3]float64{2000, 1200, 0}, cfg.Translate)
	assert.Equal(t, [3]float64{0.5, 0.5, 0.5}, cfg.Scale)
	assert.Equal(t, 0.8, cfg.Intensity)
	assert.Equal(t, Window{640, 480}, cfg.Window)
	assert.Equal(t, render.Viewport{X: 10, Y: 20, Width: 320, Height: 240}, cfg.ViewportRect())

	// untouched keys keep their defaults
	assert.Equal(t, "random", cfg.TriangleColor)
	assert.Equal(t, [3]float64{1, 1, 1}, cfg.DrawColor)

	require.NoError(t, cfg.Validate())
	format, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, imagefile.PNG, format)

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.FillBarycentric, opts.Fill)
	assert.True(t, opts.DepthTest)
	assert.Equal(t, uint64(7), opts.Seed)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("mesh = \"a.obj\"\nlight = 3\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader("mesh = \n"))
	assert.Error(t, err)
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deer.obj"), cfg.Mesh)
	assert.Equal(t, filepath.Join(dir, "out", "deer.png"), cfg.Output)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestDefaultViewport(t *testing.T) {
	cfg := Default()
	assert.Equal(t, render.Viewport{Width: 1920, Height: 1080}, cfg.ViewportRect())

	format, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, imagefile.BMP, format)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Mesh = "m.obj"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no mesh", func(c *Config) { c.Mesh = "" }, "mesh is required"},
		{"no output", func(c *Config) { c.Output = "" }, "output is required"},
		{"zero window", func(c *Config) { c.Window.Width = 0 }, "window must be positive"},
		{"viewport too big", func(c *Config) { c.Viewport = Rect{X: 100, Width: 1920, Height: 1080} }, "exceeds window"},
		{"negative offset", func(c *Config) { c.Viewport = Rect{X: -1, Width: 10, Height: 10} }, "must not be negative"},
		{"zero viewport height", func(c *Config) { c.Viewport = Rect{Width: 10} }, "viewport must be positive"},
		{"fill", func(c *Config) { c.Fill = "flood" }, "unknown fill mode"},
		{"triangle color", func(c *Config) { c.TriangleColor = "blue" }, "unknown triangle color"},
		{"depth with scanline", func(c *Config) { c.DepthTest = true }, "depth_test"},
		{"format", func(c *Config) { c.Format = "gif" }, "unknown image format"},
		{"extension", func(c *Config) { c.Output = "x.jpg" }, "unknown image format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
