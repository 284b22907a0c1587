// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/model"
	"github.com/Jokuhus/Graphics-LearOpenGL/internal/engine/screenshot"
)

// Screenshot formats.
const (
	FormatWebP = screenshot.FormatWebP
	FormatTGA  = screenshot.FormatTGA
	FormatPNG  = screenshot.FormatPNG
)

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Model      ModelConfig      `yaml:"model"`
	Shaders    ShaderConfig     `yaml:"shaders"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ModelConfig holds mesh loading settings.
type ModelConfig struct {
	Path      string     `yaml:"path"`      // OBJ file to load
	Normalize string     `yaml:"normalize"` // bounds, centroid or none
	Strict    bool       `yaml:"strict"`    // Fail on malformed records
	Scale     [3]float32 `yaml:"scale"`
}

// ShaderConfig holds shader source paths.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir     string `yaml:"dir"`
	Format  string `yaml:"format"`   // webp, tga or png
	MaxSize int    `yaml:"max_size"` // Longest side in pixels, 0 keeps window size
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "objviewer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Model: ModelConfig{
			Path:      "resources/42.obj",
			Normalize: model.NormalizeBounds.String(),
			Strict:    false,
			Scale:     [3]float32{1, 1, 1},
		},
		Shaders: ShaderConfig{
			Vertex:   "shaders/object.vert",
			Fragment: "shaders/object.frag",
		},
		Screenshot: ScreenshotConfig{
			Dir:     "screenshots",
			Format:  FormatWebP,
			MaxSize: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Normalization returns the parsed normalize mode.
func (c *Config) Normalization() model.Normalization {
	n, _ := model.ParseNormalization(c.Model.Normalize)
	return n
}

// Validate rejects values the viewer cannot act on.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is empty")
	}
	if _, ok := model.ParseNormalization(c.Model.Normalize); !ok {
		return fmt.Errorf("unknown model.normalize %q (want bounds, centroid or none)", c.Model.Normalize)
	}
	for i, s := range c.Model.Scale {
		if s == 0 {
			return fmt.Errorf("model.scale[%d] is zero", i)
		}
	}
	switch c.Screenshot.Format {
	case FormatWebP, FormatTGA, FormatPNG:
	default:
		return fmt.Errorf("unknown screenshot.format %q (want webp, tga or png)", c.Screenshot.Format)
	}
	if c.Screenshot.MaxSize < 0 {
		return fmt.Errorf("screenshot.max_size %d is negative", c.Screenshot.MaxSize)
	}
	return nil
}
