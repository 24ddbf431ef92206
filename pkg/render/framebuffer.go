// Package render implements the software rasterizer: framebuffer and depth
// buffer, viewport mapping, line and triangle rasterization, flat shading
// and mesh drawing.
package render

import (
	"image"
	"image/color"
	"math"
)

// Framebuffer is a row-major grid of pixels. Row 0 maps to NDC y = -1, so
// it is the bottom row of the rendered picture.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Row returns the pixels of row y. The slice aliases the framebuffer.
func (fb *Framebuffer) Row(y int) []Color {
	return fb.Pixels[y*fb.Width : (y+1)*fb.Width]
}

// Count returns how many pixels are not bg.
func (fb *Framebuffer) Count(bg Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p != bg {
			n++
		}
	}
	return n
}

// ToImage converts the framebuffer to a standard Go image. Image rows run
// top to bottom, so framebuffer row 0 becomes the last image row.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		iy := fb.Height - 1 - y
		for x := 0; x < fb.Width; x++ {
			p := fb.Pixels[y*fb.Width+x]
			img.SetRGBA(x, iy, color.RGBA{p.R, p.G, p.B, 255})
		}
	}
	return img
}

// DepthBuffer holds one depth per framebuffer pixel. Larger values are
// closer to the viewer.
type DepthBuffer struct {
	Width  int
	Height int
	Depth  []float64
}

// NewDepthBuffer creates a depth buffer with every entry at -Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Depth:  make([]float64, width*height),
	}
	d.Reset()
	return d
}

// Reset sets every entry back to -Inf.
func (d *DepthBuffer) Reset() {
	inf := math.Inf(-1)
	for i := range d.Depth {
		d.Depth[i] = inf
	}
}

// At returns the stored depth at (x, y), or -Inf out of bounds.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math.Inf(-1)
	}
	return d.Depth[y*d.Width+x]
}

// Test stores z at (x, y) and returns true if z is greater than the
// stored depth. Out of bounds always fails.
func (d *DepthBuffer) Test(x, y int, z float64) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if z <= d.Depth[i] {
		return false
	}
	d.Depth[i] = z
	return true
}
