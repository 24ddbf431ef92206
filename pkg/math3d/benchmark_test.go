package math3d

import (
	"testing"
)

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkAffineTransform(b *testing.B) {
	v := V3(0.25, -0.5, 1.75)
	t := V3(2000, 1200, 0)
	s := V3(0.5, 0.5, 0.5)

	for b.Loop() {
		_ = AffineTransform(v, t, s)
	}
}

func BenchmarkBarycentric(b *testing.B) {
	a, c, d := V2(0, 0), V2(100, 0), V2(0, 100)
	p := V2(25, 25)

	for b.Loop() {
		_ = Barycentric(a, c, d, p)
	}
}
