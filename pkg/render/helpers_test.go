package render

import (
	"image"

	"github.com/taigrr/swraster/pkg/math3d"
)

// mockMesh implements MeshSource for testing.
type mockMesh struct {
	vertices []math3d.Vec3
	faces    [][]int
}

func (m *mockMesh) FaceCount() int              { return len(m.faces) }
func (m *mockMesh) GetVertex(i int) math3d.Vec3 { return m.vertices[i] }
func (m *mockMesh) GetFace(i int) ([4]int, int) {
	var idx [4]int
	copy(idx[:], m.faces[i])
	return idx, len(m.faces[i])
}

// covered returns every pixel that differs from bg.
func covered(fb *Framebuffer, bg Color) map[image.Point]bool {
	set := make(map[image.Point]bool)
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) != bg {
				set[image.Pt(x, y)] = true
			}
		}
	}
	return set
}

func pt(x, y int) image.Point { return image.Pt(x, y) }

func points(pts ...[2]int) map[image.Point]bool {
	set := make(map[image.Point]bool, len(pts))
	for _, p := range pts {
		set[image.Pt(p[0], p[1])] = true
	}
	return set
}
