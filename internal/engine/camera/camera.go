// Package camera provides the viewer camera.
package camera

import (
	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/math"
)

// Camera looks down -Z at a center point from a zoomable distance.
type Camera struct {
	Center math.Vec3

	Distance    float32
	MinDistance float32
	MaxDistance float32

	FovY float32 // degrees
	Near float32
	Far  float32

	ZoomSensitivity float32
}

// New creates a camera with defaults that frame a normalized mesh
// anywhere in the object's movement range.
func New() *Camera {
	return &Camera{
		Distance:        6,
		MinDistance:     4.5,
		MaxDistance:     20,
		FovY:            45,
		Near:            0.1,
		Far:             100,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 {
	return math.Vec3{X: c.Center.X, Y: c.Center.Y, Z: c.Center.Z + c.Distance}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for the aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FovY), aspect, c.Near, c.Far)
}

// HandleZoom updates distance based on scroll wheel delta.
// Positive delta moves closer.
func (c *Camera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
