package model

import (
	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/math"
)

// FaceNormal returns the unit normal of triangle (a, b, c) with
// counter-clockwise winding. Degenerate triangles get +Y.
func FaceNormal(a, b, c [3]float32) [3]float32 {
	e1 := math.V3(b).Sub(math.V3(a))
	e2 := math.V3(c).Sub(math.V3(a))
	n := e1.Cross(e2)
	if n.Length() < 1e-8 {
		return [3]float32{0, 1, 0}
	}
	return n.Normalize().Array()
}

// triple reads element i of a flat xyz slice.
func triple(s []float32, i uint32) [3]float32 {
	return [3]float32{s[i*3], s[i*3+1], s[i*3+2]}
}

// hasTriple reports whether element i exists in a flat xyz slice.
func hasTriple(s []float32, i uint32) bool {
	return uint64(i)*3+2 < uint64(len(s))
}
