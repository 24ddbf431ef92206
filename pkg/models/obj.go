package models

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/swraster/pkg/math3d"
)

const maxOBJLine = 1 << 20

// LoadOBJ loads a WaveFront OBJ file. Only "v" and "f" records are read;
// everything else is skipped.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, path)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads OBJ records from r. name is used in error messages.
// No partial mesh is returned on failure.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	var faceLines []int

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, &ParseError{Path: name, Line: line, Err: err}
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			face, err := parseFace(fields[1:])
			if err != nil {
				return nil, &ParseError{Path: name, Line: line, Err: err}
			}
			mesh.Faces = append(mesh.Faces, face)
			faceLines = append(faceLines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	// Indices can only be checked once every vertex is known.
	for i, f := range mesh.Faces {
		for j := 0; j < f.Arity; j++ {
			if p := f.Corners[j].Position; p < 0 || p >= len(mesh.Vertices) {
				return nil, &ParseError{
					Path: name,
					Line: faceLines[i],
					Err:  &FaceError{Face: i, Index: p + 1, Err: ErrIndexOutOfRange},
				}
			}
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(tokens []string) (math3d.Vec3, error) {
	if len(tokens) < 3 {
		return math3d.Vec3{}, fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrMalformed, len(tokens))
	}

	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return math3d.Vec3{}, fmt.Errorf("%w: vertex coordinate %q", ErrMalformed, tokens[i])
		}
		xyz[i] = f
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), nil
}

func parseFace(tokens []string) (Face, error) {
	if len(tokens) != 3 && len(tokens) != 4 {
		return Face{}, fmt.Errorf("%w: %d vertices", ErrUnsupportedArity, len(tokens))
	}

	face := Face{Arity: len(tokens)}
	for i, tok := range tokens {
		c, err := parseCorner(tok)
		if err != nil {
			return Face{}, err
		}
		face.Corners[i] = c
	}
	for i := face.Arity; i < MaxArity; i++ {
		face.Corners[i] = corner(-1)
	}
	return face, nil
}

// parseCorner parses "p", "p/t", "p//n" or "p/t/n" into 0-based indices.
func parseCorner(tok string) (Corner, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return Corner{}, fmt.Errorf("%w: face corner %q", ErrMalformed, tok)
	}

	idx := [3]int{-1, -1, -1}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return Corner{}, fmt.Errorf("%w: face corner %q has no position", ErrMalformed, tok)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Corner{}, fmt.Errorf("%w: face index %q", ErrMalformed, p)
		}
		idx[i] = n - 1
	}
	return Corner{Position: idx[0], Texture: idx[1], Normal: idx[2]}, nil
}
