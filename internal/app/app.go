// Package app wires the window, GL backend, camera and debug drawer into the
// interactive viewer loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/linegl/internal/config"
	"github.com/Faultbox/linegl/internal/engine/camera"
	"github.com/Faultbox/linegl/internal/engine/debug"
	"github.com/Faultbox/linegl/internal/engine/input"
	"github.com/Faultbox/linegl/internal/engine/opengl"
	"github.com/Faultbox/linegl/internal/engine/scene"
	"github.com/Faultbox/linegl/internal/engine/window"
	"github.com/Faultbox/linegl/internal/logger"
)

// App owns every subsystem of the viewer.
type App struct {
	cfg *config.Config

	window     *window.Window
	drawer     *debug.Drawer
	camera     *camera.Camera
	controller *camera.Controller
	scene      *scene.Graph
	screenshot *debug.ScreenshotCapture
	stats      *statsReporter

	// probe is a frozen copy of the camera shown as a frustum (F1 toggles).
	probe *camera.Camera

	running bool
}

// New creates the window and GL state, then the drawer and camera on top of it.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL must be initialized after the context exists
	if err := opengl.Init(); err != nil {
		a.window.Close()
		return nil, err
	}

	fbWidth, fbHeight := a.window.DrawableSize()
	opengl.Viewport(fbWidth, fbHeight)

	a.drawer, err = debug.NewDrawer(opengl.NewBackend(), debug.Options{
		BatchSize:      cfg.Debug.LinesBatchSize,
		CircleSegments: cfg.Debug.CircleSegments,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create debug drawer: %w", err)
	}

	a.camera, err = NewCamera(cfg.Camera, fbWidth, fbHeight)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("camera: %w", err)
	}
	a.controller, err = NewController(a.camera, cfg.Camera)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("camera controller: %w", err)
	}

	a.scene = DemoScene()
	a.screenshot = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "linegl", cfg.Debug.ScreenshotFormat)

	logger.Info("viewer initialized",
		zap.Stringer("camera", a.camera),
		zap.Stringer("controller", a.controller),
		zap.Stringer("drawer", a.drawer),
	)
	return a, nil
}

// Run drives the frame loop until the window is closed or Escape is pressed.
func (a *App) Run() error {
	a.running = true
	last := time.Now()
	a.stats = newStatsReporter(a.cfg.Debug.StatsInterval, last)

	logger.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		events := a.window.PollEvents()
		a.handleEvents(events)
		if !a.running {
			break
		}
		a.controller.Update(dt, events)

		var probe debug.Viewpoint
		if a.probe != nil {
			probe = a.probe
		}
		DrawDemo(a.drawer, a.scene, probe)

		opengl.Clear()
		a.drawer.Render(a.camera)

		if input.Pressed(events, input.KeyF12) {
			a.captureScreenshot()
		}

		a.window.SwapBuffers()

		if s, ok := a.stats.frame(now, a.drawer); ok {
			logger.Debug("debug drawer stats",
				zap.Int("lines", s.Lines),
				zap.Int("drawCalls", s.DrawCalls),
				zap.Int("frames", s.Frames),
				zap.Float64("fps", s.FPS()),
			)
			a.window.SetTitle(fmt.Sprintf("%s | %s", a.cfg.Window.Title, s))
		}
	}

	return nil
}

func (a *App) handleEvents(events []input.Event) {
	for _, e := range events {
		switch e.Type {
		case input.EventQuit:
			a.running = false
		case input.EventWindowResize:
			opengl.Viewport(e.Width, e.Height)
		case input.EventKeyDown:
			if e.Repeat {
				continue
			}
			switch e.Key {
			case input.KeyEscape:
				a.running = false
			case input.KeyF1:
				a.toggleProbe()
			}
		}
	}
}

// toggleProbe freezes a copy of the camera so its frustum can be inspected
// from another viewpoint.
func (a *App) toggleProbe() {
	if a.probe != nil {
		a.probe = nil
		logger.Info("frustum probe cleared")
		return
	}
	probe := *a.camera
	probe.Name = "probe"
	a.probe = &probe
	logger.Info("frustum probe frozen", zap.Stringer("camera", a.probe))
}

func (a *App) captureScreenshot() {
	w, h := a.window.DrawableSize()
	path, err := a.screenshot.Capture(opengl.ReadPixels(w, h), w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.drawer != nil {
		a.drawer.Release()
	}
	if a.window != nil {
		a.window.Close()
	}
}
