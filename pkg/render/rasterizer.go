package render

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// FillMode selects the triangle fill strategy.
type FillMode int

const (
	FillScanline    FillMode = iota // Edge-slope scanline sweep
	FillBarycentric                 // Bounding box with barycentric test
)

func (m FillMode) String() string {
	switch m {
	case FillScanline:
		return "scanline"
	case FillBarycentric:
		return "barycentric"
	default:
		return fmt.Sprintf("FillMode(%d)", int(m))
	}
}

// ParseFillMode parses "scanline" or "barycentric".
func ParseFillMode(s string) (FillMode, error) {
	switch s {
	case "scanline":
		return FillScanline, nil
	case "barycentric":
		return FillBarycentric, nil
	default:
		return 0, fmt.Errorf("unknown fill mode %q (use scanline or barycentric)", s)
	}
}

// TriangleColor selects how triangular faces are colored in shaded mode.
// Quads always use their flat gray level.
type TriangleColor int

const (
	TriangleRandom TriangleColor = iota // A random color per triangle
	TriangleShaded                      // The flat gray level, like quads
)

func (c TriangleColor) String() string {
	switch c {
	case TriangleRandom:
		return "random"
	case TriangleShaded:
		return "shaded"
	default:
		return fmt.Sprintf("TriangleColor(%d)", int(c))
	}
}

// ParseTriangleColor parses "random" or "shaded".
func ParseTriangleColor(s string) (TriangleColor, error) {
	switch s {
	case "random":
		return TriangleRandom, nil
	case "shaded":
		return TriangleShaded, nil
	default:
		return 0, fmt.Errorf("unknown triangle color %q (use random or shaded)", s)
	}
}

// Options configure a Renderer.
type Options struct {
	Fill          FillMode
	TriangleColor TriangleColor

	// DepthTest enables the z-buffer in the barycentric fill. The scanline
	// fill never consults it.
	DepthTest bool

	// Seed for random triangle colors. Zero picks a time based seed.
	Seed uint64

	Logger *slog.Logger
}

// Stats counts the work done by a Renderer since the last ResetStats.
type Stats struct {
	FacesTested     int // Faces considered by a mesh draw
	FacesCulled     int // Faces skipped for negative intensity
	FacesDrawn      int // Faces handed to the rasterizer
	Degenerate      int // Triangles skipped for zero height or area
	PixelsWritten   int // Plots that wrote the framebuffer
	PixelsDiscarded int // Plots outside [-1, 1] or the framebuffer
	DepthRejected   int // Plots that failed the depth test
}

// Renderer is one render session. It owns the framebuffer, the depth
// buffer and the current draw state. A Renderer is not safe for
// concurrent use; use one per image.
type Renderer struct {
	fb       *Framebuffer
	depth    *DepthBuffer
	viewport Viewport

	drawColor  Color
	clearColor Color

	opts   Options
	rng    *rand.Rand
	logger *slog.Logger

	Stats Stats
}

// New creates a renderer for a width×height window. The viewport covers
// the whole window, the draw color is white and the buffers are cleared to
// black.
func New(width, height int, opts Options) *Renderer {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Renderer{
		viewport:  Viewport{0, 0, width, height},
		drawColor: White,
		opts:      opts,
		rng:       rand.New(rand.NewPCG(seed, seed)),
		logger:    logger,
	}
	r.resize(width, height)
	return r
}

func (r *Renderer) resize(width, height int) {
	r.fb = NewFramebuffer(width, height)
	r.depth = NewDepthBuffer(width, height)
	r.fb.Clear(r.clearColor)
}

// Framebuffer returns the color buffer.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// DepthBuffer returns the depth buffer.
func (r *Renderer) DepthBuffer() *DepthBuffer {
	return r.depth
}

// Options returns the options the renderer was created with.
func (r *Renderer) Options() Options {
	return r.opts
}

// Width returns the framebuffer width.
func (r *Renderer) Width() int {
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Renderer) Height() int {
	return r.fb.Height
}

// SetViewport sets the pixel rectangle NDC maps onto.
func (r *Renderer) SetViewport(v Viewport) {
	r.viewport = v
}

// Viewport returns the current viewport.
func (r *Renderer) Viewport() Viewport {
	return r.viewport
}

// SetColor sets the draw color from components in [0, 1].
func (r *Renderer) SetColor(red, green, blue float64) {
	r.drawColor = UnitRGB(red, green, blue)
}

// SetDrawColor sets the color used by Plot and Line.
func (r *Renderer) SetDrawColor(c Color) {
	r.drawColor = c
}

// DrawColor returns the current draw color.
func (r *Renderer) DrawColor() Color {
	return r.drawColor
}

// ClearColor sets the clear color from components in [0, 1] and clears.
func (r *Renderer) ClearColor(red, green, blue float64) {
	r.clearColor = UnitRGB(red, green, blue)
	r.Clear()
}

// Clear reallocates both buffers, fills the framebuffer with the clear
// color and resets every depth to -Inf.
func (r *Renderer) Clear() {
	r.resize(r.fb.Width, r.fb.Height)
}

// ResetStats zeroes the counters.
func (r *Renderer) ResetStats() {
	r.Stats = Stats{}
}

// Plot writes the draw color at p.
func (r *Renderer) Plot(p NDC) {
	r.PlotColor(p, r.drawColor)
}

// PlotColor writes c at p. Points outside [-1, 1] or outside the
// framebuffer are silently discarded; this is the only clipping the
// rasterizer does.
func (r *Renderer) PlotColor(p NDC, c Color) {
	x, y, ok := r.pixel(p)
	if !ok {
		r.Stats.PixelsDiscarded++
		return
	}
	r.fb.SetPixel(x, y, c)
	r.Stats.PixelsWritten++
}

// plotDepth is PlotColor guarded by the depth test.
func (r *Renderer) plotDepth(p NDC, z float64, c Color) {
	x, y, ok := r.pixel(p)
	if !ok {
		r.Stats.PixelsDiscarded++
		return
	}
	if !r.depth.Test(x, y, z) {
		r.Stats.DepthRejected++
		return
	}
	r.fb.SetPixel(x, y, c)
	r.Stats.PixelsWritten++
}

// pixel maps p to an integer framebuffer pixel. A coordinate that rounds
// to exactly the framebuffer size is pulled one pixel inward, so NDC 1
// stays on screen.
func (r *Renderer) pixel(p NDC) (x, y int, ok bool) {
	if !p.InRange() {
		return 0, 0, false
	}
	s := r.viewport.ToScreen(p)
	x = int(math.RoundToEven(s.X))
	y = int(math.RoundToEven(s.Y))
	if x == r.fb.Width {
		x--
	}
	if y == r.fb.Height {
		y--
	}
	if x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return 0, 0, false
	}
	return x, y, true
}

// plotPixel plots an integer pixel through NDC.
func (r *Renderer) plotPixel(x, y int, c Color) {
	r.PlotColor(r.viewport.PixelNDC(x, y), c)
}

// randomColor draws R, G and B in that order.
func (r *Renderer) randomColor() Color {
	red := uint8(r.rng.IntN(256))
	green := uint8(r.rng.IntN(256))
	blue := uint8(r.rng.IntN(256))
	return RGB(red, green, blue)
}
