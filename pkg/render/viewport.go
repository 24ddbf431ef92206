package render

import "math"

// NDC is a point in normalized device coordinates, [-1, 1] on both axes.
type NDC struct {
	X, Y float64
}

// Screen is a point in framebuffer pixel space, before rounding.
type Screen struct {
	X, Y float64
}

// Viewport is the pixel rectangle of the framebuffer that NDC maps onto.
// X+Width and Y+Height must not exceed the framebuffer size.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// InRange reports whether both coordinates lie in [-1, 1].
func (p NDC) InRange() bool {
	return p.X >= -1 && p.X <= 1 && p.Y >= -1 && p.Y <= 1
}

func (p NDC) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// ToScreen maps NDC to pixel space.
func (v Viewport) ToScreen(p NDC) Screen {
	hw := float64(v.Width) / 2
	hh := float64(v.Height) / 2
	return Screen{
		X: hw + p.X*hw + float64(v.X),
		Y: hh + p.Y*hh + float64(v.Y),
	}
}

// ToNDC is the inverse of ToScreen.
func (v Viewport) ToNDC(p Screen) NDC {
	hw := float64(v.Width) / 2
	hh := float64(v.Height) / 2
	return NDC{
		X: (p.X - float64(v.X) - hw) / hw,
		Y: (p.Y - float64(v.Y) - hh) / hh,
	}
}

// PixelNDC maps an integer pixel to NDC.
func (v Viewport) PixelNDC(x, y int) NDC {
	return v.ToNDC(Screen{float64(x), float64(y)})
}
