// Package models provides mesh loading and representation for swraster.
package models

import (
	"github.com/taigrr/swraster/pkg/math3d"
)

// MaxArity is the largest face the rasterizer handles (a quad).
const MaxArity = 4

// Mesh holds vertex positions and the faces that index them.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Corner is one face corner. All indices are 0-based; -1 marks an attribute
// the source did not provide. Only Position is consumed by the renderer.
type Corner struct {
	Position int
	Texture  int
	Normal   int
}

// Face is a triangle (Arity 3) or quad (Arity 4). Corners past Arity are
// unused.
type Face struct {
	Arity   int
	Corners [MaxArity]Corner
}

// Triangle builds a triangular face from 0-based position indices.
func Triangle(a, b, c int) Face {
	return Face{
		Arity:   3,
		Corners: [MaxArity]Corner{corner(a), corner(b), corner(c), corner(-1)},
	}
}

// Quad builds a quadrilateral face from 0-based position indices.
func Quad(a, b, c, d int) Face {
	return Face{
		Arity:   4,
		Corners: [MaxArity]Corner{corner(a), corner(b), corner(c), corner(d)},
	}
}

func corner(pos int) Corner {
	return Corner{Position: pos, Texture: -1, Normal: -1}
}

// Positions returns the 0-based position indices of the face and its arity.
func (f Face) Positions() (idx [MaxArity]int, n int) {
	for i := 0; i < f.Arity; i++ {
		idx[i] = f.Corners[i].Position
	}
	return idx, f.Arity
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// TriangleCount returns the number of triangles after splitting quads.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		n += f.Arity - 2
	}
	return n
}

// GetVertex returns the position of vertex i.
// Implements render.MeshSource.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// GetFace returns the position indices and arity of face i.
// Implements render.MeshSource.
func (m *Mesh) GetFace(i int) ([MaxArity]int, int) {
	return m.Faces[i].Positions()
}

// Validate checks that every face has a supported arity and that every
// position index refers to an existing vertex.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		if f.Arity != 3 && f.Arity != 4 {
			return &FaceError{Face: i, Err: ErrUnsupportedArity}
		}
		for j := 0; j < f.Arity; j++ {
			if p := f.Corners[j].Position; p < 0 || p >= len(m.Vertices) {
				return &FaceError{Face: i, Index: p + 1, Err: ErrIndexOutOfRange}
			}
		}
	}
	return nil
}
