package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/linegl/internal/config"
	"github.com/Faultbox/linegl/internal/engine/camera"
	"github.com/Faultbox/linegl/internal/engine/debug"
	"github.com/Faultbox/linegl/internal/engine/scene"
	"github.com/Faultbox/linegl/pkg/math"
)

// NewCamera builds the main camera from config. A zero aspect follows the
// framebuffer size.
func NewCamera(cfg config.CameraConfig, fbWidth, fbHeight int) (*camera.Camera, error) {
	kind, err := camera.ParseProjectionKind(cfg.Projection)
	if err != nil {
		return nil, err
	}

	cam := camera.New("main_camera")
	cam.WorldUp = cfg.WorldUp
	cam.Zoom = cfg.Zoom
	cam.Data = camera.ProjectionData{
		Projection: kind,
		FOV:        cfg.FOV,
		Aspect:     cfg.Aspect,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Near:       cfg.Near,
		Far:        cfg.Far,
	}
	if cam.Zoom <= 0 {
		return nil, fmt.Errorf("camera zoom %v must be positive", cfg.Zoom)
	}
	if cfg.Aspect <= 0 {
		cam.SetAspect(fbWidth, fbHeight)
	}

	cam.SetPosition(cfg.Position)
	cam.LookAt(cfg.Target)
	return cam, nil
}

// NewController binds the configured controller to cam.
func NewController(cam *camera.Camera, cfg config.CameraConfig) (*camera.Controller, error) {
	mode, err := camera.ParseMode(cfg.Controller)
	if err != nil {
		return nil, err
	}
	return camera.NewController(cam, mode, camera.Speeds{
		Rotate: cfg.RotateSpeed,
		Pan:    cfg.PanSpeed,
		Dolly:  cfg.DollySpeed,
		Move:   cfg.MoveSpeed,
		Look:   cfg.LookSpeed,
	}), nil
}

// Demo shape colors.
var (
	colorBox      = mgl32.Vec3{1, 1, 1}
	colorSphere   = mgl32.Vec3{0.1, 0.1, 0.8}
	colorCylinder = mgl32.Vec3{0.1, 0.8, 0.1}
	colorFrustum  = mgl32.Vec3{0.9, 0.6, 0.1}
)

// DemoScene returns the frames the viewer draws every frame: a box, a sphere
// and a cylinder, each hanging off the world origin.
func DemoScene() *scene.Graph {
	g := scene.New()
	world, _ := g.Add(scene.NoParent, "world", math.IdentityPose())
	_, _ = g.Add(world, "box", math.At(mgl32.Vec3{1, 1, 1}))
	_, _ = g.Add(world, "sphere", math.At(mgl32.Vec3{1, -1, 1}))
	_, _ = g.Add(world, "cylinder", math.At(mgl32.Vec3{-1, 1, 1}))
	return g
}

// DrawDemo queues one frame of demo geometry: world axes, the ground grid,
// the demo shapes at their scene nodes and, when probe is non-nil, its frustum.
func DrawDemo(d *debug.Drawer, g *scene.Graph, probe debug.Viewpoint) {
	d.DrawLine(mgl32.Vec3{}, mgl32.Vec3{5, 0, 0}, debug.ColorRed)
	d.DrawLine(mgl32.Vec3{}, mgl32.Vec3{0, 5, 0}, debug.ColorGreen)
	d.DrawLine(mgl32.Vec3{}, mgl32.Vec3{0, 0, 5}, debug.ColorBlue)
	d.DrawGrid(10, 1, math.IdentityPose(), debug.ColorGray)

	g.Walk(func(_ scene.Handle, n scene.Node, world math.Pose) {
		switch n.Name {
		case "box":
			d.DrawBox(mgl32.Vec3{0.1, 0.15, 0.2}, world, colorBox)
		case "sphere":
			d.DrawSphere(0.2, world, colorSphere)
		case "cylinder":
			d.DrawCylinder(0.2, 0.2, world, colorCylinder)
		default:
			return
		}
		d.DrawAxes(world, 0.3)
	})

	if probe != nil {
		d.DrawFrustum(probe, colorFrustum)
	}
}

// Stats is one report of the drawer counters.
type Stats struct {
	Lines     int
	DrawCalls int
	Frames    int
	Elapsed   time.Duration
}

// FPS returns frames per second over the report window.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

func (s Stats) String() string {
	return fmt.Sprintf("lines: %d | draw calls: %d | fps: %.1f", s.Lines, s.DrawCalls, s.FPS())
}

// counters is the part of *debug.Drawer the stats reporter reads.
type counters interface {
	NumLines() int
	NumDrawCalls() int
	ClearCounters()
}

// statsReporter samples the drawer counters once per interval and clears
// them. A non-positive interval disables reporting.
type statsReporter struct {
	interval time.Duration
	start    time.Time
	frames   int
}

func newStatsReporter(interval time.Duration, now time.Time) *statsReporter {
	return &statsReporter{interval: interval, start: now}
}

// frame counts one rendered frame and returns a report when the interval
// has elapsed. Counters are cleared only after they are read.
func (r *statsReporter) frame(now time.Time, c counters) (Stats, bool) {
	if r.interval <= 0 {
		return Stats{}, false
	}
	r.frames++
	elapsed := now.Sub(r.start)
	if elapsed < r.interval {
		return Stats{}, false
	}

	s := Stats{
		Lines:     c.NumLines(),
		DrawCalls: c.NumDrawCalls(),
		Frames:    r.frames,
		Elapsed:   elapsed,
	}
	c.ClearCounters()
	r.frames = 0
	r.start = now
	return s, true
}
