package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/transform"
)

// Action is a one-shot command triggered by a key press.
type Action int

const (
	ActionQuit Action = iota
	ActionToggleNormals
	ActionScreenshot
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "Quit"
	case ActionToggleNormals:
		return "ToggleNormals"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}

// Keys reports keyboard state for the current frame.
type Keys interface {
	IsKeyHeld(sdl.Scancode) bool
	IsKeyPressed(sdl.Scancode) bool
}

// Controllable receives move and rotate commands.
type Controllable interface {
	Move(transform.MoveDirection)
	Rotate(transform.RotateDirection)
}

// Held keys repeat every frame. Slices keep the application order stable.
var moveBindings = []struct {
	key sdl.Scancode
	dir transform.MoveDirection
}{
	{sdl.SCANCODE_RIGHT, transform.MoveRight},
	{sdl.SCANCODE_LEFT, transform.MoveLeft},
	{sdl.SCANCODE_UP, transform.MoveUp},
	{sdl.SCANCODE_DOWN, transform.MoveDown},
	{sdl.SCANCODE_PAGEUP, transform.MoveClose},
	{sdl.SCANCODE_PAGEDOWN, transform.MoveFar},
	{sdl.SCANCODE_R, transform.MoveReset},
}

var rotateBindings = []struct {
	key sdl.Scancode
	dir transform.RotateDirection
}{
	{sdl.SCANCODE_W, transform.RotateClockX},
	{sdl.SCANCODE_S, transform.RotateAnticlockX},
	{sdl.SCANCODE_A, transform.RotateClockY},
	{sdl.SCANCODE_D, transform.RotateAnticlockY},
	{sdl.SCANCODE_Q, transform.RotateClockZ},
	{sdl.SCANCODE_E, transform.RotateAnticlockZ},
	{sdl.SCANCODE_T, transform.RotateReset},
}

var actionBindings = []struct {
	key    sdl.Scancode
	action Action
}{
	{sdl.SCANCODE_ESCAPE, ActionQuit},
	{sdl.SCANCODE_N, ActionToggleNormals},
	{sdl.SCANCODE_F12, ActionScreenshot},
}

// ApplyHeld sends one move or rotate step to target for every held key.
func ApplyHeld(keys Keys, target Controllable) {
	for _, b := range moveBindings {
		if keys.IsKeyHeld(b.key) {
			target.Move(b.dir)
		}
	}
	for _, b := range rotateBindings {
		if keys.IsKeyHeld(b.key) {
			target.Rotate(b.dir)
		}
	}
}

// Actions returns the one-shot actions pressed this frame.
func Actions(keys Keys) []Action {
	var actions []Action
	for _, b := range actionBindings {
		if keys.IsKeyPressed(b.key) {
			actions = append(actions, b.action)
		}
	}
	return actions
}
