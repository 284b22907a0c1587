package object

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/model"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/transform"
	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/formats"
)

type fakeBuffer struct {
	draws    []int32
	releases int
}

func (b *fakeBuffer) Draw(count int32) { b.draws = append(b.draws, count) }
func (b *fakeBuffer) Release()         { b.releases++ }

type fakeGPU struct {
	vertices []float32
	indices  []uint32
	buffer   *fakeBuffer
	err      error
}

func (g *fakeGPU) Upload(vertices []float32, indices []uint32) (Buffer, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.vertices = vertices
	g.indices = indices
	g.buffer = &fakeBuffer{}
	return g.buffer, nil
}

const quadOBJ = `# unit quad in the z=2 plane, offset from the origin
v 2 2 2
v 6 2 2
v 6 4 2
v 2 4 2
vn 0 0 1
f 1//1 2//1 3//1 4//1
`

func writeOBJ(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.obj")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	gpu := &fakeGPU{}
	obj := New(gpu, Options{})

	if err := obj.Load(writeOBJ(t, quadOBJ)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !obj.Loaded() {
		t.Fatal("expected Loaded() after successful Load")
	}

	// Quad -> 2 triangles -> 6 corners.
	if len(gpu.indices) != 6 || len(gpu.vertices) != 6*model.VertexStride {
		t.Fatalf("expected 6 corners uploaded, got %d indices and %d floats", len(gpu.indices), len(gpu.vertices))
	}
	for i, idx := range gpu.indices {
		if idx != uint32(i) {
			t.Errorf("indices[%d] = %d, want %d", i, idx, i)
		}
	}

	// Bounding box (2..6, 2..4, 2..2): center (4,3,2), divisor 4.
	// Fan order: corners 1,2,3 then 1,3,4.
	want := []float32{
		-0.5, -0.25, 0, 0, 0, 1,
		0.5, -0.25, 0, 0, 0, 1,
		0.5, 0.25, 0, 0, 0, 1,
		-0.5, -0.25, 0, 0, 0, 1,
		0.5, 0.25, 0, 0, 0, 1,
		-0.5, 0.25, 0, 0, 0, 1,
	}
	for i, v := range want {
		if gpu.vertices[i] != v {
			t.Errorf("vertices[%d] = %f, want %f", i, gpu.vertices[i], v)
		}
	}

	if obj.Bounds().MaxExtent() != 1 {
		t.Errorf("expected normalized extent 1, got %f", obj.Bounds().MaxExtent())
	}
	if obj.Mesh().TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", obj.Mesh().TriangleCount())
	}
	if len(obj.Vertices()) != len(gpu.vertices) || len(obj.Indices()) != len(gpu.indices) {
		t.Error("accessors should expose the uploaded buffers")
	}
}

func TestLoadCentroid(t *testing.T) {
	gpu := &fakeGPU{}
	obj := New(gpu, Options{Normalize: model.NormalizeCentroid})

	if err := obj.Load(writeOBJ(t, quadOBJ)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Centroid (4,3,2); no rescale keeps the 4x2 size.
	b := obj.Bounds()
	if b.Min != [3]float32{-2, -1, 0} || b.Max != [3]float32{2, 1, 0} {
		t.Errorf("unexpected bounds %+v", b)
	}
}

func TestLoadNone(t *testing.T) {
	gpu := &fakeGPU{}
	obj := New(gpu, Options{Normalize: model.NormalizeNone})

	if err := obj.Load(writeOBJ(t, quadOBJ)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gpu.vertices[0] != 2 || gpu.vertices[1] != 2 || gpu.vertices[2] != 2 {
		t.Errorf("expected file coordinates, got %v", gpu.vertices[:3])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		opts    Options
		gpuErr  error
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.obj") },
			wantErr: formats.ErrFileNotFound,
		},
		{
			name:    "degenerate mesh",
			path:    func(t *testing.T) string { return writeOBJ(t, "v 1 1 1\nv 1 1 1\nv 1 1 1\nf 1 2 3\n") },
			wantErr: model.ErrDegenerateMesh,
		},
		{
			name:    "empty file",
			path:    func(t *testing.T) string { return writeOBJ(t, "# nothing\n") },
			wantErr: model.ErrDegenerateMesh,
		},
		{
			name:    "vertex index out of range",
			path:    func(t *testing.T) string { return writeOBJ(t, "v 0 0 0\nv 1 0 0\nf 1 2 9\n") },
			wantErr: model.ErrIndexOutOfRange,
		},
		{
			name:    "strict malformed face",
			path:    func(t *testing.T) string { return writeOBJ(t, quadOBJ+"f 1 ? 2\n") },
			opts:    Options{Strict: true},
			wantErr: formats.ErrMalformedFace,
		},
		{
			name:    "strict non-finite vertex",
			path:    func(t *testing.T) string { return writeOBJ(t, "v inf 0 0\nv 0 1 0\nv 0 0 1\nf 1 2 3\n") },
			opts:    Options{Strict: true},
			wantErr: formats.ErrMalformedRecord,
		},
		{
			name:    "upload failure",
			path:    func(t *testing.T) string { return writeOBJ(t, quadOBJ) },
			gpuErr:  errUpload,
			wantErr: errUpload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gpu := &fakeGPU{err: tt.gpuErr}
			obj := New(gpu, tt.opts)

			err := obj.Load(tt.path(t))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if obj.Loaded() || obj.Mesh() != nil || obj.Vertices() != nil {
				t.Error("failed Load must not keep a partial mesh")
			}
			obj.Draw() // no-op, must not panic
		})
	}
}

var errUpload = errors.New("upload failed")

func TestLoadTwice(t *testing.T) {
	obj := New(&fakeGPU{}, Options{})
	path := writeOBJ(t, quadOBJ)

	if err := obj.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := append([]float32(nil), obj.Vertices()...)

	if err := obj.Load(path); !errors.Is(err, ErrAlreadyLoaded) {
		t.Fatalf("expected ErrAlreadyLoaded, got %v", err)
	}
	for i := range before {
		if obj.Vertices()[i] != before[i] {
			t.Fatal("second Load changed the mesh")
		}
	}
}

func TestDrawAndClose(t *testing.T) {
	gpu := &fakeGPU{}
	obj := New(gpu, Options{})

	obj.Draw() // before load
	if err := obj.Load(writeOBJ(t, quadOBJ)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	obj.Draw()
	obj.Draw()
	if len(gpu.buffer.draws) != 2 || gpu.buffer.draws[0] != 6 {
		t.Errorf("expected two draws of 6 indices, got %v", gpu.buffer.draws)
	}

	obj.Close()
	obj.Close()
	if gpu.buffer.releases != 1 {
		t.Errorf("expected exactly one release, got %d", gpu.buffer.releases)
	}

	obj.Draw()
	if len(gpu.buffer.draws) != 2 {
		t.Error("Draw after Close must not reach the released buffer")
	}
}

func TestTransformDelegation(t *testing.T) {
	obj := New(&fakeGPU{}, Options{})

	obj.Move(transform.MoveRight)
	obj.Rotate(transform.RotateAnticlockY)
	obj.SetScale(2, 2, 2)

	tr := obj.Transform()
	if tr.Position() != [3]float32{0.01, 0, 0} {
		t.Errorf("unexpected position %v", tr.Position())
	}
	if tr.Rotation() != [3]float32{0, 1, 0} {
		t.Errorf("unexpected rotation %v", tr.Rotation())
	}
	if obj.ModelMatrix() != tr.ModelMatrix() {
		t.Error("ModelMatrix should delegate to the transform")
	}

	obj.Move(transform.MoveReset)
	obj.Rotate(transform.RotateReset)
	got := obj.ModelMatrix().TransformPoint([3]float32{1, 1, 1})
	if got != [3]float32{2, 2, 2} {
		t.Errorf("(1,1,1) maps to %v, want (2,2,2)", got)
	}
}
