package render

import (
	"math"

	"github.com/taigrr/swraster/pkg/math3d"
)

// Intensity returns the flat gray level of a face with the given unit
// normal, lit along +Z with strength light. Negative results mean the face
// points away from the light and should not be drawn.
func Intensity(normal math3d.Vec3, light float64) int {
	return int(math.RoundToEven(255 * normal.Dot(math3d.V3(0, 0, light))))
}

// FaceNormal returns the unit normal of triangle abc, or zero for a
// degenerate triangle.
func FaceNormal(a, b, c math3d.Vec3) math3d.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
