package model

import (
	"fmt"
	gomath "math"
)

// NormalizeInPlace centers the mesh on its bounding-box center and divides
// every coordinate by the largest axis extent, so the longest side spans
// [-0.5, 0.5] and aspect ratio is kept. Returns the new bounds.
//
// A mesh without positions, with zero extent on every axis or with any
// non-finite coordinate, center or extent fails with ErrDegenerateMesh and
// is left untouched.
func NormalizeInPlace(m *Mesh) (Bounds, error) {
	if len(m.Positions) < 3 {
		return Bounds{}, fmt.Errorf("%w: no vertices", ErrDegenerateMesh)
	}

	for i, p := range m.Positions {
		if !finite(p) {
			return Bounds{}, fmt.Errorf("%w: coordinate %d is %v", ErrDegenerateMesh, i, p)
		}
	}

	b := ComputeBounds(m.Positions)
	divisor := b.MaxExtent()
	if !(divisor > 0) || !finite(divisor) {
		return b, fmt.Errorf("%w: extent %v", ErrDegenerateMesh, b.Extent())
	}
	center := b.Center()
	if !finite(center[0]) || !finite(center[1]) || !finite(center[2]) {
		return b, fmt.Errorf("%w: center %v", ErrDegenerateMesh, center)
	}

	for i := 0; i+2 < len(m.Positions); i += 3 {
		m.Positions[i] = (m.Positions[i] - center[0]) / divisor
		m.Positions[i+1] = (m.Positions[i+1] - center[1]) / divisor
		m.Positions[i+2] = (m.Positions[i+2] - center[2]) / divisor
	}

	return ComputeBounds(m.Positions), nil
}

// CentroidShift returns a copy of positions moved so the vertex mean sits
// at the origin. No rescaling; the input is not modified.
func CentroidShift(positions []float32) ([]float32, error) {
	n := len(positions) / 3
	if n == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrDegenerateMesh)
	}

	var sum [3]float64
	for i := 0; i < n*3; i += 3 {
		if !finite(positions[i]) || !finite(positions[i+1]) || !finite(positions[i+2]) {
			return nil, fmt.Errorf("%w: vertex %d is not finite", ErrDegenerateMesh, i/3)
		}
		sum[0] += float64(positions[i])
		sum[1] += float64(positions[i+1])
		sum[2] += float64(positions[i+2])
	}
	centroid := [3]float32{
		float32(sum[0] / float64(n)),
		float32(sum[1] / float64(n)),
		float32(sum[2] / float64(n)),
	}

	out := make([]float32, n*3)
	for i := 0; i < n*3; i += 3 {
		out[i] = positions[i] - centroid[0]
		out[i+1] = positions[i+1] - centroid[1]
		out[i+2] = positions[i+2] - centroid[2]
	}
	return out, nil
}

func finite(v float32) bool {
	f := float64(v)
	return !gomath.IsInf(f, 0) && !gomath.IsNaN(f)
}
