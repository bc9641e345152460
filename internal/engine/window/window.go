// Package window handles SDL2 window, OpenGL context creation and event polling.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/linegl/internal/engine/input"
	"github.com/Faultbox/linegl/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and its OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	events    []input.Event
}

// New creates a new window with an OpenGL 4.1 core context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		events: make([]input.Event, 0, 16),
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels (differs from Size on HiDPI displays).
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// PollEvents drains the SDL queue and converts it to input events.
// The returned slice is reused by the next call.
func (w *Window) PollEvents() []input.Event {
	w.events = w.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.events = append(w.events, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				fbWidth, fbHeight := w.DrawableSize()
				w.events = append(w.events, input.Event{
					Type:   input.EventWindowResize,
					Width:  fbWidth,
					Height: fbHeight,
				})
			}

		case *sdl.KeyboardEvent:
			ev := input.Event{Key: mapScancode(e.Keysym.Scancode), Repeat: e.Repeat != 0}
			switch e.Type {
			case sdl.KEYDOWN:
				ev.Type = input.EventKeyDown
			case sdl.KEYUP:
				ev.Type = input.EventKeyUp
			default:
				continue
			}
			w.events = append(w.events, ev)

		case *sdl.MouseMotionEvent:
			w.events = append(w.events, input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			ev := input.Event{
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: mapButton(e.Button),
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = input.EventMouseDown
			} else {
				ev.Type = input.EventMouseUp
			}
			w.events = append(w.events, ev)

		case *sdl.MouseWheelEvent:
			w.events = append(w.events, input.Event{
				Type:    input.EventScroll,
				ScrollX: float32(e.X),
				ScrollY: float32(e.Y),
			})
		}
	}

	return w.events
}

func mapScancode(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_W:
		return input.KeyW
	case sdl.SCANCODE_A:
		return input.KeyA
	case sdl.SCANCODE_S:
		return input.KeyS
	case sdl.SCANCODE_D:
		return input.KeyD
	case sdl.SCANCODE_Q:
		return input.KeyQ
	case sdl.SCANCODE_E:
		return input.KeyE
	case sdl.SCANCODE_UP:
		return input.KeyUp
	case sdl.SCANCODE_DOWN:
		return input.KeyDown
	case sdl.SCANCODE_LEFT:
		return input.KeyLeft
	case sdl.SCANCODE_RIGHT:
		return input.KeyRight
	case sdl.SCANCODE_SPACE:
		return input.KeySpace
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_F1:
		return input.KeyF1
	case sdl.SCANCODE_F12:
		return input.KeyF12
	default:
		return input.KeyUnknown
	}
}

func mapButton(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	default:
		return input.ButtonNone
	}
}
