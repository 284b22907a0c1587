// Package viewer runs the interactive OBJ viewer: one mesh, keyboard
// driven transform, per-frame draw.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Jokuhus/Graphics-LearOpenGL/internal/config"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/camera"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/input"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/object"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/renderer"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/screenshot"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/shader"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/window"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/logger"
)

const ambient = 0.2

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	program  *shader.Program
	object   *object.Object
	shots    *screenshot.Capturer

	camera      *camera.Camera
	showNormals bool
}

// New opens the window, compiles the shaders and loads the configured mesh.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		log:    logger.Named("viewer"),
		camera: camera.New(),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      fmt.Sprintf("%s - %s", cfg.Window.Title, cfg.Model.Path),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.program, err = shader.Load(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to load shaders: %w", err)
	}

	v.object = object.New(v.renderer, object.Options{
		Normalize: cfg.Normalization(),
		Strict:    cfg.Model.Strict,
	})
	s := cfg.Model.Scale
	v.object.SetScale(s[0], s[1], s[2])
	if err := v.object.Load(cfg.Model.Path); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	v.input = input.New()
	v.shots = screenshot.New(screenshot.Options{
		Dir:     cfg.Screenshot.Dir,
		Prefix:  "objviewer",
		Format:  cfg.Screenshot.Format,
		MaxSize: cfg.Screenshot.MaxSize,
	})

	v.log.Info("viewer initialized", zap.String("model", cfg.Model.Path))
	return v, nil
}

// Run starts the main loop and returns when the window is closed or
// Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			if event.Type == input.EventWindowResize {
				v.renderer.Resize(v.window.DrawableSize())
			}
		}

		ApplyHeld(v.input, v.object)
		if scroll := v.input.Scroll(); scroll != 0 {
			v.camera.HandleZoom(scroll)
		}

		v.render()

		// Capture before the swap, while the back buffer holds this frame.
		for _, action := range Actions(v.input) {
			v.handle(action)
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			tr := v.object.Transform()
			v.log.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Any("position", tr.Position()),
				zap.Any("rotation", tr.Rotation()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handle(action Action) {
	v.log.Debug("action", zap.Stringer("action", action))

	switch action {
	case ActionQuit:
		v.running = false
	case ActionToggleNormals:
		v.showNormals = !v.showNormals
	case ActionScreenshot:
		pixels, w, h := v.renderer.ReadPixels()
		path, err := v.shots.Save(pixels, w, h)
		if err != nil {
			v.log.Error("screenshot failed", zap.Error(err))
			return
		}
		v.log.Info("screenshot saved", zap.String("path", path))
	}
}

// render draws the current frame.
func (v *Viewer) render() {
	v.renderer.Begin()

	v.program.Use()
	v.program.SetMat4("uProjection", v.camera.ProjectionMatrix(v.renderer.Aspect()))
	v.program.SetMat4("uView", v.camera.ViewMatrix())
	v.program.SetMat4("uModel", v.object.ModelMatrix())
	v.program.SetBool("uShowNormals", v.showNormals)
	v.program.SetFloat("uAmbient", ambient)

	v.object.Draw()
}

// Close releases GPU resources, then the window. Safe on a partially
// constructed viewer.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.object != nil {
		v.object.Close()
	}
	if v.program != nil {
		v.program.Delete()
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
