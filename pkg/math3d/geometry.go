package math3d

// Outside is the barycentric result for a degenerate triangle. It has a
// negative weight, so inside tests reject it without a special case.
var Outside = Vec3{-1, -1, -1}

// BoundingBox returns the axis-aligned bounds of the given points.
// It panics when called with no points.
func BoundingBox(points ...Vec2) (lo, hi Vec2) {
	if len(points) == 0 {
		panic("math3d: BoundingBox of no points")
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}

// AffineTransform translates v by t, scales the result by s component-wise
// and rounds to integer coordinates. This is the only projection the
// rasterizer uses; there is no perspective divide.
func AffineTransform(v, t, s Vec3) Vec3 {
	return v.Add(t).Mul(s).Round()
}

// Barycentric returns the weights (u, v, w) of p relative to triangle abc,
// with p = u*a + v*b + w*c. The weights sum to 1 and are all non-negative
// iff p lies inside or on the triangle.
//
// Triangles whose doubled signed area has magnitude below 1 are treated as
// degenerate and yield Outside.
func Barycentric(a, b, c, p Vec2) Vec3 {
	u := V3(c.X-a.X, b.X-a.X, a.X-p.X).Cross(V3(c.Y-a.Y, b.Y-a.Y, a.Y-p.Y))
	if u.Z > -1 && u.Z < 1 {
		return Outside
	}
	return Vec3{
		1 - (u.X+u.Y)/u.Z,
		u.Y / u.Z,
		u.X / u.Z,
	}
}

// Inside reports whether all three barycentric weights are non-negative.
func Inside(bc Vec3) bool {
	return bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0
}
