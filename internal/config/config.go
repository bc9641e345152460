// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection names accepted in the camera section.
const (
	ProjectionPerspective  = "perspective"
	ProjectionOrthographic = "orthographic"
)

// Controller names accepted in the camera section.
const (
	ControllerNone  = "none"
	ControllerOrbit = "orbit"
	ControllerFPS   = "fps"
)

// Screenshot formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera and controller settings.
type CameraConfig struct {
	Projection string     `yaml:"projection"`
	FOV        float32    `yaml:"fov"`    // degrees
	Aspect     float32    `yaml:"aspect"` // 0 follows the window
	Width      float32    `yaml:"width"`  // orthographic only
	Height     float32    `yaml:"height"` // orthographic only
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	Zoom       float32    `yaml:"zoom"`
	Position   mgl32.Vec3 `yaml:"position,flow"`
	Target     mgl32.Vec3 `yaml:"target,flow"`
	WorldUp    mgl32.Vec3 `yaml:"world_up,flow"`

	Controller  string  `yaml:"controller"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	PanSpeed    float32 `yaml:"pan_speed"`
	DollySpeed  float32 `yaml:"dolly_speed"`
	MoveSpeed   float32 `yaml:"move_speed"`
	LookSpeed   float32 `yaml:"look_speed"`
}

// DebugConfig holds debug drawer settings.
type DebugConfig struct {
	LinesBatchSize   int           `yaml:"lines_batch_size"`
	CircleSegments   int           `yaml:"circle_segments"`
	StatsInterval    time.Duration `yaml:"stats_interval"`
	ScreenshotDir    string        `yaml:"screenshot_dir"`
	ScreenshotFormat string        `yaml:"screenshot_format"`
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
			Title:  "linegl",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Camera: CameraConfig{
			Projection:  ProjectionPerspective,
			FOV:         45,
			Aspect:      0,
			Width:       20,
			Height:      20,
			Near:        0.1,
			Far:         100,
			Zoom:        1,
			Position:    mgl32.Vec3{0, -3, 0},
			Target:      mgl32.Vec3{0, 0, 0},
			WorldUp:     mgl32.Vec3{0, 0, 1},
			Controller:  ControllerOrbit,
			RotateSpeed: 1,
			PanSpeed:    1,
			DollySpeed:  1,
			MoveSpeed:   4,
			LookSpeed:   1,
		},
		Debug: DebugConfig{
			LinesBatchSize:   1024,
			CircleSegments:   20,
			StatsInterval:    time.Second,
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: FormatPNG,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	switch c.Camera.Projection {
	case ProjectionPerspective, ProjectionOrthographic:
	default:
		return fmt.Errorf("unknown camera projection %q", c.Camera.Projection)
	}
	switch c.Camera.Controller {
	case ControllerNone, ControllerOrbit, ControllerFPS:
	default:
		return fmt.Errorf("unknown camera controller %q", c.Camera.Controller)
	}
	if c.Camera.WorldUp.Len() == 0 {
		return fmt.Errorf("camera world_up must be non-zero")
	}
	if c.Debug.LinesBatchSize <= 0 {
		return fmt.Errorf("debug lines_batch_size %d must be positive", c.Debug.LinesBatchSize)
	}
	if c.Debug.CircleSegments < 3 {
		return fmt.Errorf("debug circle_segments %d must be at least 3", c.Debug.CircleSegments)
	}
	switch c.Debug.ScreenshotFormat {
	case FormatPNG, FormatBMP:
	default:
		return fmt.Errorf("unknown screenshot format %q", c.Debug.ScreenshotFormat)
	}
	return nil
}
