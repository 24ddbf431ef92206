package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/taigrr/swraster/pkg/math3d"
)

// ErrFaceArity is returned when a mesh face is neither a triangle nor a quad.
var ErrFaceArity = errors.New("face must have 3 or 4 vertices")

// MeshSource is the interface for meshes that can be drawn.
// This avoids importing the models package directly.
type MeshSource interface {
	FaceCount() int
	GetVertex(i int) math3d.Vec3
	// GetFace returns the 0-based position indices of face i and how many
	// of them are used.
	GetFace(i int) ([4]int, int)
}

// DrawWireframe draws every face edge, including the closing edge, in the
// draw color. Vertices are mapped with (v+t)*s and their X and Y are used
// directly as NDC.
func (r *Renderer) DrawWireframe(mesh MeshSource, t, s math3d.Vec3) {
	for i := range mesh.FaceCount() {
		idx, n := mesh.GetFace(i)
		r.Stats.FacesTested++
		for j := range n {
			v1 := mesh.GetVertex(idx[j]).Add(t).Mul(s)
			v2 := mesh.GetVertex(idx[(j+1)%n]).Add(t).Mul(s)
			r.Line(NDC{v1.X, v1.Y}, NDC{v2.X, v2.Y})
		}
		r.Stats.FacesDrawn++
	}
	r.logger.Debug("wireframe drawn", slog.Int("faces", r.Stats.FacesDrawn))
}

// DrawShaded fills every face facing the light. Vertices go through
// math3d.AffineTransform into pixel space. Quads are split into (A,B,C)
// and (A,C,D) and share one gray level; triangles get a random color unless
// the renderer was created with TriangleShaded.
func (r *Renderer) DrawShaded(mesh MeshSource, t, s math3d.Vec3, light float64) error {
	for i := range mesh.FaceCount() {
		idx, n := mesh.GetFace(i)
		if n != 3 && n != 4 {
			return fmt.Errorf("face %d: %w (got %d)", i, ErrFaceArity, n)
		}

		var p [4]math3d.Vec3
		for j := range n {
			p[j] = math3d.AffineTransform(mesh.GetVertex(idx[j]), t, s)
		}

		r.Stats.FacesTested++
		grey := Intensity(FaceNormal(p[0], p[1], p[2]), light)
		if grey < 0 {
			r.Stats.FacesCulled++
			continue
		}
		r.Stats.FacesDrawn++

		if n == 3 {
			r.Triangle(p[0], p[1], p[2], r.triangleColor(grey))
			continue
		}
		g := Gray(grey)
		r.Triangle(p[0], p[1], p[2], g)
		r.Triangle(p[0], p[2], p[3], g)
	}

	r.logger.Debug("shaded mesh drawn",
		slog.Int("tested", r.Stats.FacesTested),
		slog.Int("culled", r.Stats.FacesCulled),
		slog.Int("degenerate", r.Stats.Degenerate),
		slog.String("fill", r.opts.Fill.String()),
	)
	return nil
}

func (r *Renderer) triangleColor(grey int) Color {
	if r.opts.TriangleColor == TriangleShaded {
		return Gray(grey)
	}
	return r.randomColor()
}
