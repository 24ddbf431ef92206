package render

import (
	"math"

	"github.com/taigrr/swraster/pkg/math3d"
)

// Triangle fills triangle abc with the configured strategy. Vertices are
// in pixel space and are expected to have integer X and Y; Z is only used
// by the depth test.
func (r *Renderer) Triangle(a, b, c math3d.Vec3, col Color) {
	switch r.opts.Fill {
	case FillBarycentric:
		r.TriangleBarycentric(a, b, c, col)
	default:
		r.TriangleScanline(a, b, c, col)
	}
}

// TriangleScanline fills abc by sweeping rows between the long edge A→C and
// the two short edges. Both halves include row B.y, which closes the seam.
func (r *Renderer) TriangleScanline(a, b, c math3d.Vec3, col Color) {
	if a.Y > b.Y {
		a, b = b, a
	}
	if a.Y > c.Y {
		a, c = c, a
	}
	if b.Y > c.Y {
		b, c = c, b
	}

	if c.Y == a.Y {
		r.Stats.Degenerate++
		return
	}
	slopeAC := (c.X - a.X) / (c.Y - a.Y)

	if b.Y != a.Y {
		slopeAB := (b.X - a.X) / (b.Y - a.Y)
		r.spans(a, slopeAC, a, slopeAB, int(a.Y), int(b.Y), col)
	}
	if c.Y != b.Y {
		slopeBC := (c.X - b.X) / (c.Y - b.Y)
		r.spans(a, slopeAC, b, slopeBC, int(b.Y), int(c.Y), col)
	}
}

// spans fills rows y0..y1 between the edge through p with slope sp and the
// edge through q with slope sq (slopes in x per row).
func (r *Renderer) spans(p math3d.Vec3, sp float64, q math3d.Vec3, sq float64, y0, y1 int, col Color) {
	for y := y0; y <= y1; y++ {
		fy := float64(y)
		xi := int(math.RoundToEven(p.X - sp*(p.Y-fy)))
		xf := int(math.RoundToEven(q.X - sq*(q.Y-fy)))
		if xi > xf {
			xi, xf = xf, xi
		}
		for x := xi; x <= xf; x++ {
			r.plotPixel(x, y, col)
		}
	}
}

// TriangleBarycentric tests every pixel of the bounding box of abc and
// plots those with no negative weight. With the depth test on, the
// interpolated Z must beat the stored depth.
func (r *Renderer) TriangleBarycentric(a, b, c math3d.Vec3, col Color) {
	pa, pb, pc := a.XY(), b.XY(), c.XY()
	if math3d.Barycentric(pa, pb, pc, pa) == math3d.Outside {
		r.Stats.Degenerate++
		return
	}

	lo, hi := math3d.BoundingBox(pa, pb, pc)
	x0, x1 := int(math.Floor(lo.X)), int(math.Ceil(hi.X))
	y0, y1 := int(math.Floor(lo.Y)), int(math.Ceil(hi.Y))

	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			bc := math3d.Barycentric(pa, pb, pc, math3d.V2(float64(x), float64(y)))
			if !math3d.Inside(bc) {
				continue
			}
			p := r.viewport.PixelNDC(x, y)
			if r.opts.DepthTest {
				z := a.Z*bc.X + b.Z*bc.Y + c.Z*bc.Z
				r.plotDepth(p, z, col)
				continue
			}
			r.PlotColor(p, col)
		}
	}
}
