// Package object ties a loaded mesh to its transform and to the GPU
// buffers it is drawn from.
package object

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/model"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/transform"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/logger"
	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/formats"
	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/math"
)

// ErrAlreadyLoaded is returned when Load is called on a loaded object.
// Normalizing twice would compound the scaling.
var ErrAlreadyLoaded = errors.New("object already loaded")

// Uploader copies mesh buffers to the GPU.
// vertices is interleaved position+normal with stride model.VertexStride.
type Uploader interface {
	Upload(vertices []float32, indices []uint32) (Buffer, error)
}

// Buffer is an uploaded mesh.
type Buffer interface {
	// Draw issues an indexed triangle draw of count indices.
	Draw(count int32)
	// Release frees the GPU resources.
	Release()
}

// Options controls how a mesh is loaded.
type Options struct {
	Normalize model.Normalization
	Strict    bool
}

// Object owns one mesh and one transform.
type Object struct {
	gpu  Uploader
	opts Options

	transform *transform.Transform

	mesh     *model.Mesh
	bounds   model.Bounds
	vertices []float32
	indices  []uint32
	buffer   Buffer
}

// New creates an empty object that uploads through gpu.
func New(gpu Uploader, opts Options) *Object {
	return &Object{
		gpu:       gpu,
		opts:      opts,
		transform: transform.New(),
	}
}

// Load parses, normalizes and uploads the OBJ file at path.
// On error nothing is kept and the object stays empty.
func (o *Object) Load(path string) error {
	if o.mesh != nil {
		return ErrAlreadyLoaded
	}
	log := logger.Named("object")

	obj, err := formats.ParseOBJFile(path, formats.OBJOptions{Strict: o.opts.Strict})
	if err != nil {
		return err
	}
	if obj.Stats.Lenient() {
		log.Warn("OBJ input accepted leniently",
			zap.String("path", path),
			zap.Int("malformedValues", obj.Stats.MalformedValues),
			zap.Int("malformedGroups", obj.Stats.MalformedGroups),
		)
	}

	mesh := model.NewMesh(obj)
	bounds, err := normalize(mesh, o.opts.Normalize)
	if err != nil {
		return fmt.Errorf("normalizing %s: %w", path, err)
	}

	vertices, indices, err := model.Interleave(mesh)
	if err != nil {
		return fmt.Errorf("building buffers for %s: %w", path, err)
	}

	buffer, err := o.gpu.Upload(vertices, indices)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}

	o.mesh = mesh
	o.bounds = bounds
	o.vertices = vertices
	o.indices = indices
	o.buffer = buffer

	log.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("normals", len(mesh.Normals)/3),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("ignoredLines", obj.Stats.IgnoredLines),
		zap.Stringer("normalize", o.opts.Normalize),
	)
	return nil
}

// normalize applies the chosen mode and returns the resulting bounds.
func normalize(m *model.Mesh, mode model.Normalization) (model.Bounds, error) {
	switch mode {
	case model.NormalizeCentroid:
		shifted, err := model.CentroidShift(m.Positions)
		if err != nil {
			return model.Bounds{}, err
		}
		m.Positions = shifted
	case model.NormalizeNone:
	default:
		return model.NormalizeInPlace(m)
	}
	return model.ComputeBounds(m.Positions), nil
}

// Move delegates to the transform.
func (o *Object) Move(d transform.MoveDirection) {
	o.transform.Move(d)
}

// Rotate delegates to the transform.
func (o *Object) Rotate(d transform.RotateDirection) {
	o.transform.Rotate(d)
}

// SetScale sets the uniform or per-axis scale of the transform.
func (o *Object) SetScale(x, y, z float32) {
	o.transform.SetScale(x, y, z)
}

// Transform returns the object's transform.
func (o *Object) Transform() *transform.Transform {
	return o.transform
}

// ModelMatrix returns the current model matrix.
func (o *Object) ModelMatrix() math.Mat4 {
	return o.transform.ModelMatrix()
}

// Draw renders the mesh. It does nothing before a successful Load.
func (o *Object) Draw() {
	if o.buffer == nil {
		return
	}
	o.buffer.Draw(int32(len(o.indices)))
}

// Close releases the GPU buffer. Safe to call more than once.
func (o *Object) Close() {
	if o.buffer != nil {
		o.buffer.Release()
		o.buffer = nil
	}
}

// Loaded reports whether Load succeeded.
func (o *Object) Loaded() bool {
	return o.mesh != nil
}

// Mesh returns the normalized mesh, or nil before Load.
func (o *Object) Mesh() *model.Mesh {
	return o.mesh
}

// Bounds returns the bounds of the mesh after normalization.
func (o *Object) Bounds() model.Bounds {
	return o.bounds
}

// Vertices returns the interleaved buffer that was uploaded.
func (o *Object) Vertices() []float32 {
	return o.vertices
}

// Indices returns the index list that was uploaded.
func (o *Object) Indices() []uint32 {
	return o.indices
}
