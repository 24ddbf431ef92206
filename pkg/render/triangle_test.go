package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/swraster/pkg/math3d"
)

func fill(mode FillMode, a, b, c math3d.Vec3) *Renderer {
	r := New(16, 16, Options{Fill: mode, Seed: 1})
	r.Triangle(a, b, c, White)
	return r
}

// The two fills only agree when every edge crosses each row at an integer
// x. Elsewhere scanline rounds span ends and covers more.
func TestFillStrategiesAgree(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c math3d.Vec3
		want    int
	}{
		{"flat top", math3d.V3(0, 0, 0), math3d.V3(0, 10, 0), math3d.V3(10, 10, 0), 66},
		{"flat bottom", math3d.V3(2, 1, 0), math3d.V3(12, 1, 0), math3d.V3(2, 11, 0), 66},
		{"arrow", math3d.V3(0, 0, 0), math3d.V3(6, 3, 0), math3d.V3(0, 6, 0), 25},
		{"arrow shuffled", math3d.V3(0, 6, 0), math3d.V3(0, 0, 0), math3d.V3(6, 3, 0), 25},
		{"narrow", math3d.V3(3, 3, 0), math3d.V3(5, 4, 0), math3d.V3(3, 5, 0), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scan := covered(fill(FillScanline, tc.a, tc.b, tc.c).Framebuffer(), Black)
			bary := covered(fill(FillBarycentric, tc.a, tc.b, tc.c).Framebuffer(), Black)

			assert.Len(t, scan, tc.want)
			assert.Equal(t, scan, bary)
		})
	}
}

func TestScanlineShape(t *testing.T) {
	r := fill(FillScanline, math3d.V3(0, 0, 0), math3d.V3(6, 3, 0), math3d.V3(0, 6, 0))
	fb := r.Framebuffer()

	widths := []int{1, 3, 5, 7, 5, 3, 1}
	for y, w := range widths {
		n := 0
		for _, p := range fb.Row(y) {
			if p != Black {
				n++
			}
		}
		assert.Equal(t, w, n, "row %d", y)
	}
}

func TestDegenerateTriangles(t *testing.T) {
	t.Run("zero height", func(t *testing.T) {
		for _, mode := range []FillMode{FillScanline, FillBarycentric} {
			r := fill(mode, math3d.V3(1, 4, 0), math3d.V3(9, 4, 0), math3d.V3(5, 4, 0))
			assert.Equal(t, 0, r.Framebuffer().Count(Black), mode.String())
			assert.Equal(t, 1, r.Stats.Degenerate, mode.String())
		}
	})

	t.Run("collinear", func(t *testing.T) {
		r := fill(FillBarycentric, math3d.V3(0, 0, 0), math3d.V3(2, 2, 0), math3d.V3(4, 4, 0))
		assert.Equal(t, 0, r.Framebuffer().Count(Black))
		assert.Equal(t, 1, r.Stats.Degenerate)
	})

	t.Run("coincident", func(t *testing.T) {
		r := fill(FillBarycentric, math3d.V3(3, 3, 0), math3d.V3(3, 3, 0), math3d.V3(3, 3, 0))
		assert.Equal(t, 0, r.Framebuffer().Count(Black))
	})
}

func TestDepthTest(t *testing.T) {
	a, b, c := math3d.V2(0, 0), math3d.V2(10, 0), math3d.V2(0, 10)
	at := func(z float64) (math3d.Vec3, math3d.Vec3, math3d.Vec3) {
		return math3d.V3(a.X, a.Y, z), math3d.V3(b.X, b.Y, z), math3d.V3(c.X, c.Y, z)
	}
	red, green, blue := RGB(255, 0, 0), RGB(0, 255, 0), RGB(0, 0, 255)

	r := New(16, 16, Options{Fill: FillBarycentric, DepthTest: true, Seed: 1})
	p0, p1, p2 := at(5)
	r.Triangle(p0, p1, p2, red)
	require.Equal(t, 66, r.Stats.PixelsWritten)

	p0, p1, p2 = at(1)
	r.Triangle(p0, p1, p2, green)
	assert.Equal(t, 66, r.Stats.DepthRejected)
	assert.Equal(t, red, r.Framebuffer().GetPixel(1, 1))
	assert.Equal(t, 16*16-66, r.Framebuffer().Count(red))

	p0, p1, p2 = at(10)
	r.Triangle(p0, p1, p2, blue)
	assert.Equal(t, blue, r.Framebuffer().GetPixel(1, 1))
	assert.InDelta(t, 10.0, r.DepthBuffer().At(1, 1), 1e-9)
}

func TestDepthTestOffByDefault(t *testing.T) {
	r := New(16, 16, Options{Fill: FillBarycentric, Seed: 1})
	r.Triangle(math3d.V3(0, 0, 5), math3d.V3(10, 0, 5), math3d.V3(0, 10, 5), RGB(255, 0, 0))
	r.Triangle(math3d.V3(0, 0, 1), math3d.V3(10, 0, 1), math3d.V3(0, 10, 1), RGB(0, 255, 0))

	assert.Equal(t, RGB(0, 255, 0), r.Framebuffer().GetPixel(1, 1))
	assert.Equal(t, 0, r.Stats.DepthRejected)
}
