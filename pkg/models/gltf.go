package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/swraster/pkg/math3d"
)

// LoadGLTF loads the triangle primitives of a GLTF or GLB file into a single
// mesh. glTF winding is kept as stored (counter-clockwise front faces), which
// is what the flat shader expects.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := MeshFromGLTF(doc, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return mesh, nil
}

// MeshFromGLTF converts every triangle primitive in doc. Non-triangle
// primitives and primitives without positions are skipped.
func MeshFromGLTF(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if err := appendPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := readPositions(doc, posIdx)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	base := len(mesh.Vertices)
	mesh.Vertices = append(mesh.Vertices, positions...)

	if prim.Indices == nil {
		// sequential triangles
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Faces = append(mesh.Faces, Triangle(base+i, base+i+1, base+i+2))
		}
		return nil
	}

	indices, err := readIndices(doc, *prim.Indices)
	if err != nil {
		return fmt.Errorf("read indices: %w", err)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Faces = append(mesh.Faces, Triangle(base+indices[i], base+indices[i+1], base+indices[i+2]))
	}
	return nil
}

// accessorBytes returns the buffer backing an accessor, its first byte
// offset and the element stride.
func accessorBytes(doc *gltf.Document, idx int, elemSize int) ([]byte, int, int, *gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d out of range", idx)
	}
	accessor := doc.Accessors[idx]
	if accessor.BufferView == nil {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d has no buffer view", idx)
	}

	if v := *accessor.BufferView; v < 0 || v >= len(doc.BufferViews) {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d: buffer view %d out of range", idx, v)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d: buffer %d out of range", idx, view.Buffer)
	}
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, 0, nil, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + accessor.ByteOffset
	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elemSize
		if end > len(buffer.Data) {
			return nil, 0, 0, nil, fmt.Errorf("accessor %d exceeds buffer (%d > %d)", idx, end, len(buffer.Data))
		}
	}
	return buffer.Data, start, stride, accessor, nil
}

// readPositions reads a float VEC3 accessor.
func readPositions(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	data, start, stride, accessor, err := accessorBytes(doc, idx, 12)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := start + i*stride
		var xyz [3]float64
		for j := range xyz {
			f := float64(readFloat32(data[off+4*j:]))
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("%w: vertex %d coordinate %v", ErrMalformed, i, f)
			}
			xyz[j] = f
		}
		result[i] = math3d.V3(xyz[0], xyz[1], xyz[2])
	}
	return result, nil
}

// readIndices reads an unsigned SCALAR accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}

	var size int
	switch doc.Accessors[idx].ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", doc.Accessors[idx].ComponentType)
	}

	data, start, stride, accessor, err := accessorBytes(doc, idx, size)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	result := make([]int, accessor.Count)
	for i := range result {
		off := start + i*stride
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
