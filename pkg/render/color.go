package render

import "math"

// Color is a 24-bit pixel stored in blue-green-red order, the layout the
// bitmap writer emits. It implements image/color.Color.
type Color struct {
	B, G, R uint8
}

// Colors for convenience
var (
	Black = Color{}
	White = Color{255, 255, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{B: b, G: g, R: r}
}

// Gray returns the gray level l, clamped to [0, 255].
func Gray(l int) Color {
	v := uint8(max(0, min(255, l)))
	return Color{v, v, v}
}

// UnitRGB converts components in [0, 1] to a color with floor(c*255).
// Out of range components are clamped.
func UnitRGB(r, g, b float64) Color {
	return RGB(unitByte(r), unitByte(g), unitByte(b))
}

func unitByte(c float64) uint8 {
	return uint8(max(0, min(255, math.Floor(c*255))))
}

// RGBA implements color.Color. Pixels are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}
