package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/swraster/pkg/math3d"
)

const cubeFace = `# two faces
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1

f 1/1/1 2/1/1 3/1/1
f 1//1 2 3 4
o ignored
`

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(cubeFace), "quad.obj")
	require.NoError(t, err)

	assert.Equal(t, 4, mesh.VertexCount())
	require.Equal(t, 2, mesh.FaceCount())
	assert.Equal(t, 3, mesh.TriangleCount())

	tri := mesh.Faces[0]
	assert.Equal(t, 3, tri.Arity)
	assert.Equal(t, Corner{Position: 0, Texture: 0, Normal: 0}, tri.Corners[0])
	assert.Equal(t, Corner{Position: 2, Texture: 0, Normal: 0}, tri.Corners[2])

	quad := mesh.Faces[1]
	assert.Equal(t, 4, quad.Arity)
	assert.Equal(t, Corner{Position: 0, Texture: -1, Normal: 0}, quad.Corners[0])
	assert.Equal(t, Corner{Position: 3, Texture: -1, Normal: -1}, quad.Corners[3])

	idx, n := mesh.GetFace(1)
	assert.Equal(t, 4, n)
	assert.Equal(t, [MaxArity]int{0, 1, 2, 3}, idx)

	assert.Equal(t, math3d.V3(0, 0, 0), mesh.BoundsMin)
	assert.Equal(t, math3d.V3(1, 1, 0), mesh.BoundsMax)
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		line int
	}{
		{"bad float", "v 0 0 0\nv 1 x 0\n", ErrMalformed, 2},
		{"nan coordinate", "v nan 0 0\n", ErrMalformed, 1},
		{"inf coordinate", "v 0 0 0\nv inf 0 0\n", ErrMalformed, 2},
		{"infinity coordinate", "v 0 -Infinity 0\n", ErrMalformed, 1},
		{"short vertex", "v 1 2\n", ErrMalformed, 1},
		{"bad index", "v 0 0 0\nf 1 a 1\n", ErrMalformed, 2},
		{"missing position", "v 0 0 0\nf /1 1 1\n", ErrMalformed, 2},
		{"too many slashes", "v 0 0 0\nf 1/1/1/1 1 1\n", ErrMalformed, 2},
		{"index past end", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", ErrIndexOutOfRange, 3},
		{"index zero", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrIndexOutOfRange, 4},
		{"negative index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -1 1 2\n", ErrIndexOutOfRange, 4},
		{"pentagon", "v 0 0 0\nf 1 1 1 1 1\n", ErrUnsupportedArity, 2},
		{"line", "v 0 0 0\nf 1 1\n", ErrUnsupportedArity, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := ParseOBJ(strings.NewReader(tc.src), "bad.obj")
			assert.Nil(t, mesh)
			require.ErrorIs(t, err, tc.want)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.line, perr.Line)
			assert.Equal(t, "bad.obj", perr.Path)
		})
	}
}

func TestParseOBJLaterVertices(t *testing.T) {
	// faces may reference vertices declared further down
	mesh, err := ParseOBJ(strings.NewReader("f 1 2 3\nv 0 0 0\nv 1 0 0\nv 0 1 0\n"), "late.obj")
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.FaceCount())
}

func TestParseOBJWhitespace(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader("v  1.5\t2   -3\r\n\r\nv 0 0 0 1\n"), "ws.obj")
	require.NoError(t, err)
	require.Equal(t, 2, mesh.VertexCount())
	assert.Equal(t, math3d.V3(1.5, 2, -3), mesh.Vertices[0])
	assert.Equal(t, math3d.V3(0, 0, 0), mesh.Vertices[1])
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(cubeFace), 0o644))

	mesh, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "quad.obj", mesh.Name)
	assert.Equal(t, 2, mesh.FaceCount())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/nonexistent/mesh.obj")
	assert.Error(t, err)

	_, err = Load("mesh.stl")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
