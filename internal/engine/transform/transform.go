// Package transform holds the position, rotation and scale of a mesh and
// composes its model matrix.
package transform

import (
	"fmt"

	"github.com/Jokuhus/Graphics-LearOpenGL/pkg/math"
)

// Movement limits and per-call steps.
const (
	PositionLimit float32 = 4
	PlanarStep    float32 = 0.01 // X and Y
	DepthStep     float32 = 0.05 // Z
	RotationLimit float32 = 360
	RotationStep  float32 = 1 // degrees
)

// MoveDirection is a discrete move command.
type MoveDirection int

const (
	MoveRight MoveDirection = iota // +X
	MoveLeft                       // -X
	MoveUp                         // +Y
	MoveDown                       // -Y
	MoveClose                      // -Z
	MoveFar                        // +Z
	MoveReset
)

// String returns a human-readable direction name.
func (d MoveDirection) String() string {
	switch d {
	case MoveRight:
		return "Right"
	case MoveLeft:
		return "Left"
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	case MoveClose:
		return "Close"
	case MoveFar:
		return "Far"
	case MoveReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// RotateDirection is a discrete rotate command.
type RotateDirection int

const (
	RotateClockX RotateDirection = iota
	RotateAnticlockX
	RotateClockY
	RotateAnticlockY
	RotateClockZ
	RotateAnticlockZ
	RotateReset
)

// String returns a human-readable direction name.
func (d RotateDirection) String() string {
	switch d {
	case RotateClockX:
		return "ClockX"
	case RotateAnticlockX:
		return "AnticlockX"
	case RotateClockY:
		return "ClockY"
	case RotateAnticlockY:
		return "AnticlockY"
	case RotateClockZ:
		return "ClockZ"
	case RotateAnticlockZ:
		return "AnticlockZ"
	case RotateReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// moveSteps maps each direction to (axis, delta).
var moveSteps = map[MoveDirection]struct {
	axis  int
	delta float32
}{
	MoveRight: {0, PlanarStep},
	MoveLeft:  {0, -PlanarStep},
	MoveUp:    {1, PlanarStep},
	MoveDown:  {1, -PlanarStep},
	MoveClose: {2, -DepthStep},
	MoveFar:   {2, DepthStep},
}

// rotateSteps maps each direction to (axis, delta). Clockwise around Y is
// negative; around X and Z it is positive.
var rotateSteps = map[RotateDirection]struct {
	axis  int
	delta float32
}{
	RotateClockX:     {0, RotationStep},
	RotateAnticlockX: {0, -RotationStep},
	RotateClockY:     {1, -RotationStep},
	RotateAnticlockY: {1, RotationStep},
	RotateClockZ:     {2, RotationStep},
	RotateAnticlockZ: {2, -RotationStep},
}

// Transform is the placement of one mesh in the world.
// Position stays within [-PositionLimit, PositionLimit] per axis and
// rotation (degrees) within [-RotationLimit, RotationLimit].
type Transform struct {
	position [3]float32
	rotation [3]float32
	scale    [3]float32
}

// New returns a transform at the origin with no rotation and unit scale.
func New() *Transform {
	return &Transform{scale: [3]float32{1, 1, 1}}
}

// Position returns the translation.
func (t *Transform) Position() [3]float32 { return t.position }

// Rotation returns the Euler angles in degrees.
func (t *Transform) Rotation() [3]float32 { return t.rotation }

// Scale returns the per-axis scale.
func (t *Transform) Scale() [3]float32 { return t.scale }

// SetScale sets the per-axis scale.
func (t *Transform) SetScale(x, y, z float32) {
	t.scale = [3]float32{x, y, z}
}

// Move steps the position one increment and clamps the moved axis.
// MoveReset returns to the origin. Unknown directions are ignored.
func (t *Transform) Move(d MoveDirection) {
	if d == MoveReset {
		t.position = [3]float32{}
		return
	}
	step, ok := moveSteps[d]
	if !ok {
		return
	}
	t.position[step.axis] = clamp(t.position[step.axis]+step.delta, -PositionLimit, PositionLimit)
}

// Rotate steps one axis by one degree. Past +360 the angle jumps to -360
// and past -360 to +360. RotateReset zeroes all angles.
func (t *Transform) Rotate(d RotateDirection) {
	if d == RotateReset {
		t.rotation = [3]float32{}
		return
	}
	step, ok := rotateSteps[d]
	if !ok {
		return
	}
	t.rotation[step.axis] = wrap(t.rotation[step.axis] + step.delta)
}

// ModelMatrix returns T * Rz * Ry * Rx * S.
func (t *Transform) ModelMatrix() math.Mat4 {
	tr := math.Translate(t.position[0], t.position[1], t.position[2])
	rot := math.RotateEuler(t.rotation[0], t.rotation[1], t.rotation[2])
	sc := math.Scale(t.scale[0], t.scale[1], t.scale[2])
	return tr.Mul(rot.Mul(sc))
}

func clamp(v, lo, hi float32) float32 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

func wrap(deg float32) float32 {
	if deg > RotationLimit {
		return -RotationLimit
	}
	if deg < -RotationLimit {
		return RotationLimit
	}
	return deg
}
