// Package model provides OBJ mesh storage, normalization and the
// interleaved vertex layout handed to the renderer.
package model

import (
	"errors"

	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/formats"
)

// Mesh errors.
var (
	ErrDegenerateMesh  = errors.New("degenerate mesh: zero bounding extent")
	ErrIndexOutOfRange = errors.New("face index out of range")
)

// VertexStride is the number of floats per interleaved vertex:
// position xyz followed by normal xyz.
const VertexStride = 6

// Mesh holds parsed mesh data. Positions and Normals are flat xyz triples
// indexed independently by Faces.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Faces     []formats.OBJIndex
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the box center per axis.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Extent returns max-min per axis.
func (b Bounds) Extent() [3]float32 {
	return [3]float32{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}

// MaxExtent returns the largest axis extent.
func (b Bounds) MaxExtent() float32 {
	e := b.Extent()
	m := e[0]
	if e[1] > m {
		m = e[1]
	}
	if e[2] > m {
		m = e[2]
	}
	return m
}

// Normalization selects how a loaded mesh is recentered.
type Normalization int

const (
	NormalizeBounds   Normalization = iota // Bounding-box center, uniform rescale
	NormalizeCentroid                      // Vertex mean, no rescale
	NormalizeNone                          // Keep file coordinates
)

// String returns the config name of the mode.
func (n Normalization) String() string {
	switch n {
	case NormalizeBounds:
		return "bounds"
	case NormalizeCentroid:
		return "centroid"
	case NormalizeNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseNormalization maps a config name to a mode.
func ParseNormalization(s string) (Normalization, bool) {
	switch s {
	case "bounds", "":
		return NormalizeBounds, true
	case "centroid":
		return NormalizeCentroid, true
	case "none":
		return NormalizeNone, true
	default:
		return NormalizeBounds, false
	}
}
