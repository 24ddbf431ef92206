package render

import "math"

// Line draws a line between two NDC points in the draw color.
func (r *Renderer) Line(a, b NDC) {
	r.LineColor(a, b, r.drawColor)
}

// LineColor draws a line between two NDC points with Bresenham's
// algorithm. Both endpoints are floored to pixels first and both are
// plotted. Lines with a non-finite endpoint are dropped.
func (r *Renderer) LineColor(a, b NDC, c Color) {
	if !a.finite() || !b.finite() {
		return
	}
	sa := r.viewport.ToScreen(a)
	sb := r.viewport.ToScreen(b)
	x0, y0 := int(math.Floor(sa.X)), int(math.Floor(sa.Y))
	x1, y1 := int(math.Floor(sb.X)), int(math.Floor(sb.Y))

	if abs(y1-y0) < abs(x1-x0) {
		if x0 > x1 {
			r.lineLow(x1, y1, x0, y0, c)
		} else {
			r.lineLow(x0, y0, x1, y1, c)
		}
		return
	}
	if y0 > y1 {
		r.lineHigh(x1, y1, x0, y0, c)
	} else {
		r.lineHigh(x0, y0, x1, y1, c)
	}
}

// lineLow handles |dy| < |dx| with x0 <= x1.
func (r *Renderer) lineLow(x0, y0, x1, y1 int, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	yi := 1
	if dy < 0 {
		yi = -1
		dy = -dy
	}

	d := 2*dy - dx
	y := y0
	for x := x0; x <= x1; x++ {
		r.plotPixel(x, y, c)
		if d > 0 {
			y += yi
			d -= 2 * dx
		}
		d += 2 * dy
	}
}

// lineHigh handles |dy| >= |dx| with y0 <= y1.
func (r *Renderer) lineHigh(x0, y0, x1, y1 int, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	xi := 1
	if dx < 0 {
		xi = -1
		dx = -dx
	}

	d := 2*dx - dy
	x := x0
	for y := y0; y <= y1; y++ {
		r.plotPixel(x, y, c)
		if d > 0 {
			x += xi
			d -= 2 * dy
		}
		d += 2 * dx
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
