package model

import (
	"fmt"
	gomath "math"

	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/formats"
)

// NewMesh takes ownership of the arrays of a parsed OBJ.
func NewMesh(obj *formats.OBJ) *Mesh {
	return &Mesh{
		Positions: obj.Positions,
		Normals:   obj.Normals,
		Faces:     obj.Faces,
	}
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// Interleave builds the renderer payload: one VertexStride-float vertex per
// face corner in face order, and the sequential index list 0..N-1.
// Corners whose normal index has no vn record get the flat normal of
// their triangle.
func Interleave(m *Mesh) ([]float32, []uint32, error) {
	vertices := make([]float32, 0, len(m.Faces)*VertexStride)
	indices := make([]uint32, 0, len(m.Faces))

	for t := 0; t+2 < len(m.Faces); t += 3 {
		tri := m.Faces[t : t+3]

		var pos [3][3]float32
		for j, c := range tri {
			if !hasTriple(m.Positions, c.Vertex) {
				return nil, nil, fmt.Errorf("%w: vertex %d of %d (corner %d)",
					ErrIndexOutOfRange, c.Vertex+1, m.VertexCount(), t+j)
			}
			pos[j] = triple(m.Positions, c.Vertex)
		}

		var flat *[3]float32
		for j, c := range tri {
			var n [3]float32
			if hasTriple(m.Normals, c.Normal) {
				n = triple(m.Normals, c.Normal)
			} else {
				if flat == nil {
					fn := FaceNormal(pos[0], pos[1], pos[2])
					flat = &fn
				}
				n = *flat
			}

			indices = append(indices, uint32(len(indices)))
			vertices = append(vertices,
				pos[j][0], pos[j][1], pos[j][2],
				n[0], n[1], n[2],
			)
		}
	}

	return vertices, indices, nil
}

// ComputeBounds returns the axis-aligned box of flat xyz positions.
// An empty slice yields an inverted box (Min > Max).
func ComputeBounds(positions []float32) Bounds {
	b := Bounds{
		Min: [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32},
		Max: [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32},
	}
	for i := 0; i+2 < len(positions); i += 3 {
		updateBounds(&b, [3]float32{positions[i], positions[i+1], positions[i+2]})
	}
	return b
}

func updateBounds(b *Bounds, p [3]float32) {
	if p[0] < b.Min[0] {
		b.Min[0] = p[0]
	}
	if p[1] < b.Min[1] {
		b.Min[1] = p[1]
	}
	if p[2] < b.Min[2] {
		b.Min[2] = p[2]
	}
	if p[0] > b.Max[0] {
		b.Max[0] = p[0]
	}
	if p[1] > b.Max[1] {
		b.Max[1] = p[1]
	}
	if p[2] > b.Max[2] {
		b.Max[2] = p[2]
	}
}
