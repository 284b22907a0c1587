package camera

import (
	"testing"

	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/math"
)

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := New()

	// The center lands on the view axis at -Distance.
	got := c.ViewMatrix().TransformPoint([3]float32{0, 0, 0})
	if got != [3]float32{0, 0, -6} {
		t.Errorf("center in view space = %v, want (0,0,-6)", got)
	}

	c.Center = math.Vec3{X: 1, Y: 2, Z: 0}
	got = c.ViewMatrix().TransformPoint([3]float32{1, 2, 0})
	if got != [3]float32{0, 0, -6} {
		t.Errorf("moved center in view space = %v, want (0,0,-6)", got)
	}
}

func TestHandleZoom(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		steps int
		want  float32
	}{
		{"no scroll", 0, 1, 6},
		{"zoom out clamps", -1, 100, 20},
		{"zoom in clamps", 1, 100, 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			for i := 0; i < tt.steps; i++ {
				c.HandleZoom(tt.delta)
			}
			if c.Distance != tt.want {
				t.Errorf("distance = %f, want %f", c.Distance, tt.want)
			}
		})
	}
}

func TestProjectionMatrix(t *testing.T) {
	c := New()
	p := c.ProjectionMatrix(2)
	if p.At(3, 2) != -1 {
		t.Errorf("expected perspective divide term -1, got %f", p.At(3, 2))
	}
	// Horizontal focal length is the vertical one over the aspect ratio.
	if d := p.At(0, 0)*2 - p.At(1, 1); d > 1e-6 || d < -1e-6 {
		t.Errorf("x scale %f inconsistent with y scale %f at aspect 2", p.At(0, 0), p.At(1, 1))
	}
}
