// Package formats provides parsers for 3D model file formats.
// Currently this is the Wavefront OBJ text format, read as a triangle mesh.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrFileNotFound    = errors.New("OBJ file not found")
	ErrMalformedFace   = errors.New("malformed OBJ face group")
	ErrMalformedRecord = errors.New("malformed OBJ record")
)

var errNonFinite = errors.New("non-finite value")

// objMaxLineSize bounds a single line; face lines of large n-gons can be long.
const objMaxLineSize = 1 << 20

// OBJIndex is one triangle corner: zero-based vertex, texture and normal
// indices. Missing texture or normal indices default to 0 (file index 1).
type OBJIndex struct {
	Vertex   uint32
	TexCoord uint32
	Normal   uint32
}

// OBJStats counts input that was accepted leniently.
type OBJStats struct {
	IgnoredLines    int // Unsupported record kinds
	MalformedValues int // Non-numeric, non-finite or missing v/vn components, stored as 0
	MalformedGroups int // Face groups without a readable vertex index
}

// Lenient reports whether anything was defaulted or skipped.
func (s OBJStats) Lenient() bool {
	return s.MalformedValues > 0 || s.MalformedGroups > 0
}

// OBJOptions controls parser strictness.
type OBJOptions struct {
	// Strict fails on malformed numbers and face groups instead of
	// defaulting or skipping them.
	Strict bool
}

// OBJ represents a parsed OBJ file.
type OBJ struct {
	Positions []float32  // Flat xyz triples from "v" records
	Normals   []float32  // Flat xyz triples from "vn" records
	Faces     []OBJIndex // Triangulated corners, always a multiple of 3
	Stats     OBJStats
}

// VertexCount returns the number of positions.
func (o *OBJ) VertexCount() int {
	return len(o.Positions) / 3
}

// NormalCount returns the number of normals.
func (o *OBJ) NormalCount() int {
	return len(o.Normals) / 3
}

// TriangleCount returns the number of triangles.
func (o *OBJ) TriangleCount() int {
	return len(o.Faces) / 3
}

// ParseOBJ parses OBJ text from a reader.
// Only v, vn and f records are read; every other line is ignored.
func ParseOBJ(r io.Reader, opts OBJOptions) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), objMaxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			obj.Positions, err = obj.appendTriple(obj.Positions, fields[1:], opts)
		case "vn":
			obj.Normals, err = obj.appendTriple(obj.Normals, fields[1:], opts)
		case "f":
			err = obj.appendFace(fields[1:], opts)
		default:
			obj.Stats.IgnoredLines++
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string, opts OBJOptions) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s: not a regular file", ErrFileNotFound, path)
	}

	obj, err := ParseOBJ(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return obj, nil
}

// appendTriple reads three floats. Missing, malformed or non-finite
// components become 0.
func (o *OBJ) appendTriple(dst []float32, args []string, opts OBJOptions) ([]float32, error) {
	var xyz [3]float32
	for i := range xyz {
		if i >= len(args) {
			if opts.Strict {
				return dst, fmt.Errorf("%w: expected 3 components, got %d", ErrMalformedRecord, len(args))
			}
			o.Stats.MalformedValues++
			continue
		}
		v, err := strconv.ParseFloat(args[i], 32)
		if err == nil && (math.IsInf(v, 0) || math.IsNaN(v)) {
			err = errNonFinite
		}
		if err != nil {
			if opts.Strict {
				return dst, fmt.Errorf("%w: %q is not a finite number", ErrMalformedRecord, args[i])
			}
			o.Stats.MalformedValues++
			continue
		}
		xyz[i] = float32(v)
	}
	return append(dst, xyz[0], xyz[1], xyz[2]), nil
}

// appendFace reads every index group of a face line and fan-triangulates
// the polygon around its first accepted group.
func (o *OBJ) appendFace(groups []string, opts OBJOptions) error {
	corners := make([]OBJIndex, 0, len(groups))
	for _, g := range groups {
		idx, ok := parseFaceGroup(g)
		if !ok {
			if opts.Strict {
				return fmt.Errorf("%w: %q", ErrMalformedFace, g)
			}
			o.Stats.MalformedGroups++
			continue
		}
		corners = append(corners, idx)
	}

	for i := 1; i+1 < len(corners); i++ {
		o.Faces = append(o.Faces, corners[0], corners[i], corners[i+1])
	}
	return nil
}

// parseFaceGroup reads one "v", "v/vt", "v//vn" or "v/vt/vn" group.
// Texture and normal indices that are absent or unreadable default to
// file index 1. The group is rejected only when the vertex index is.
func parseFaceGroup(s string) (OBJIndex, bool) {
	sc := groupScanner{s: s}

	v, ok := sc.index()
	if !ok {
		return OBJIndex{}, false
	}
	vt, vn := uint32(1), uint32(1)

	if sc.accept('/') {
		if sc.accept('/') {
			if n, ok := sc.index(); ok {
				vn = n
			}
		} else {
			if t, ok := sc.index(); ok {
				vt = t
			} else {
				sc.skipTo('/')
			}
			if sc.accept('/') {
				if n, ok := sc.index(); ok {
					vn = n
				}
			}
		}
	}

	return OBJIndex{Vertex: v - 1, TexCoord: vt - 1, Normal: vn - 1}, true
}

// groupScanner walks a face group with one byte of lookahead.
type groupScanner struct {
	s   string
	pos int
}

// accept consumes c if it is the next byte.
func (g *groupScanner) accept(c byte) bool {
	if g.pos < len(g.s) && g.s[g.pos] == c {
		g.pos++
		return true
	}
	return false
}

// skipTo advances to the next c or the end of the group.
func (g *groupScanner) skipTo(c byte) {
	for g.pos < len(g.s) && g.s[g.pos] != c {
		g.pos++
	}
}

// index reads a run of decimal digits as a one-based index.
// Zero, an empty run and values overflowing uint32 are not indices.
func (g *groupScanner) index() (uint32, bool) {
	start := g.pos
	for g.pos < len(g.s) && g.s[g.pos] >= '0' && g.s[g.pos] <= '9' {
		g.pos++
	}
	if g.pos == start {
		return 0, false
	}
	n, err := strconv.ParseUint(g.s[start:g.pos], 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint32(n), true
}
