package camera

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/linegl/internal/engine/input"
	"github.com/Faultbox/linegl/pkg/math"
)

// Mode selects how a Controller reacts to input.
type Mode int

const (
	ModeNone Mode = iota
	ModeOrbit
	ModeFPS
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeOrbit:
		return "orbit"
	case ModeFPS:
		return "fps"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "none", "orbit" or "fps".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "orbit":
		return ModeOrbit, nil
	case "fps":
		return ModeFPS, nil
	default:
		return ModeNone, fmt.Errorf("unknown controller %q", s)
	}
}

// OrbitState is the drag gesture an orbit controller is tracking.
type OrbitState int

const (
	OrbitIdle OrbitState = iota
	OrbitRotate
	OrbitPan
	OrbitDolly
)

func (s OrbitState) String() string {
	switch s {
	case OrbitIdle:
		return "idle"
	case OrbitRotate:
		return "rotate"
	case OrbitPan:
		return "pan"
	case OrbitDolly:
		return "dolly"
	default:
		return fmt.Sprintf("OrbitState(%d)", int(s))
	}
}

const (
	// maxDt caps the frame time used for movement.
	maxDt = 0.1
	// maxMouseDelta caps a single mouse move in pixels.
	maxMouseDelta = 50

	rotatePerPixel = 0.005
	lookPerPixel   = 0.002
	panPerPixel    = 0.001
	dollyPerPixel  = 0.01
	dollyPerScroll = 0.1

	minOrbitDistance = 0.01
	// minPoleAngle keeps orbit pitch away from WorldUp.
	minPoleAngle = 0.01
)

// Speeds scales controller input. Zero fields are treated as 1.
type Speeds struct {
	Rotate float32
	Pan    float32
	Dolly  float32
	Move   float32
	Look   float32
}

func (s Speeds) withDefaults() Speeds {
	for _, f := range []*float32{&s.Rotate, &s.Pan, &s.Dolly, &s.Move, &s.Look} {
		if *f == 0 {
			*f = 1
		}
	}
	return s
}

type fpsKeys struct {
	forward, backward bool
	left, right       bool
	up, down          bool
}

// Controller moves a Camera from input events. One type serves every Mode;
// only the state belonging to the active mode is used.
type Controller struct {
	camera  *Camera
	mode    Mode
	speeds  Speeds
	Enabled bool

	orbit OrbitState
	keys  fpsKeys
}

// NewController binds a controller to cam.
func NewController(cam *Camera, mode Mode, speeds Speeds) *Controller {
	return &Controller{
		camera:  cam,
		mode:    mode,
		speeds:  speeds.withDefaults(),
		Enabled: true,
	}
}

// Camera returns the controlled camera.
func (c *Controller) Camera() *Camera { return c.camera }

// Mode returns the active mode.
func (c *Controller) Mode() Mode { return c.mode }

// OrbitState returns the current orbit gesture.
func (c *Controller) OrbitState() OrbitState { return c.orbit }

// SetMode switches mode and drops any in-progress gesture or held keys.
func (c *Controller) SetMode(m Mode) {
	c.mode = m
	c.orbit = OrbitIdle
	c.keys = fpsKeys{}
}

// Update applies this frame's events, then any continuous movement for dt
// seconds. Resize events update the camera aspect even when disabled.
func (c *Controller) Update(dt float32, events []input.Event) {
	if c.camera == nil {
		return
	}

	for _, e := range events {
		if e.Type == input.EventWindowResize {
			c.camera.SetAspect(e.Width, e.Height)
			continue
		}
		if !c.Enabled {
			continue
		}
		switch c.mode {
		case ModeOrbit:
			c.handleOrbit(e)
		case ModeFPS:
			c.handleFPS(e)
		}
	}

	if c.Enabled && c.mode == ModeFPS {
		c.moveFPS(dt)
	}
}

func (c *Controller) handleOrbit(e input.Event) {
	switch e.Type {
	case input.EventMouseDown:
		switch e.Button {
		case input.ButtonLeft:
			c.orbit = OrbitRotate
		case input.ButtonRight:
			c.orbit = OrbitPan
		case input.ButtonMiddle:
			c.orbit = OrbitDolly
		}
	case input.EventMouseUp:
		c.orbit = OrbitIdle
	case input.EventMouseMove:
		dx, dy := clampDelta(e.DeltaX), clampDelta(e.DeltaY)
		switch c.orbit {
		case OrbitRotate:
			c.rotate(dx, dy)
		case OrbitPan:
			c.pan(dx, dy)
		case OrbitDolly:
			c.dolly(dy * dollyPerPixel)
		}
	case input.EventScroll:
		c.dolly(-e.ScrollY * dollyPerScroll)
	}
}

// rotate orbits the camera around its target: dx yaws around WorldUp and dy
// pitches around the camera right vector.
func (c *Controller) rotate(dx, dy float32) {
	cam := c.camera
	worldUp := cam.WorldUp.Normalize()
	offset := cam.Pose.Position.Sub(cam.Target)
	if offset.Len() == 0 {
		return
	}

	k := rotatePerPixel * c.speeds.Rotate
	offset = mgl32.QuatRotate(-dx*k, worldUp).Rotate(offset)

	if axis := worldUp.Cross(offset); axis.Len() > parallelEps {
		pitched := mgl32.QuatRotate(-dy*k, axis.Normalize()).Rotate(offset)
		if angle := poleAngle(pitched, worldUp); angle > minPoleAngle && angle < math32.Pi-minPoleAngle {
			offset = pitched
		}
	}

	cam.Pose.Position = cam.Target.Add(offset)
	cam.LookAt(cam.Target)
}

// pan slides camera and target together in the view plane.
func (c *Controller) pan(dx, dy float32) {
	cam := c.camera
	k := panPerPixel * c.speeds.Pan * math32.Max(cam.Distance(), 1)
	delta := cam.Right.Mul(-dx * k).Add(cam.Up.Mul(dy * k))
	cam.Pose.Position = cam.Pose.Position.Add(delta)
	cam.Target = cam.Target.Add(delta)
}

// dolly moves towards (amount < 0) or away from (amount > 0) the target.
// Orthographic cameras change Zoom instead.
func (c *Controller) dolly(amount float32) {
	cam := c.camera
	amount *= c.speeds.Dolly
	if cam.Data.Projection == Orthographic {
		cam.Zoom = math32.Max(cam.Zoom*(1-amount), 1e-3)
		return
	}

	offset := cam.Pose.Position.Sub(cam.Target)
	dist := offset.Len()
	if dist == 0 {
		return
	}
	newDist := math32.Max(dist*(1+amount), minOrbitDistance)
	cam.Pose.Position = cam.Target.Add(offset.Mul(newDist / dist))
}

func (c *Controller) handleFPS(e input.Event) {
	switch e.Type {
	case input.EventKeyDown, input.EventKeyUp:
		c.setKey(e.Key, e.Type == input.EventKeyDown)
	case input.EventMouseMove:
		c.look(clampDelta(e.DeltaX), clampDelta(e.DeltaY))
	}
}

func (c *Controller) setKey(k input.Key, down bool) {
	switch k {
	case input.KeyW, input.KeyUp:
		c.keys.forward = down
	case input.KeyS, input.KeyDown:
		c.keys.backward = down
	case input.KeyA, input.KeyLeft:
		c.keys.left = down
	case input.KeyD, input.KeyRight:
		c.keys.right = down
	case input.KeyE:
		c.keys.up = down
	case input.KeyQ:
		c.keys.down = down
	}
}

// look turns the view direction in place: dx yaws around WorldUp and dy
// pitches around the camera right vector, then re-aims with LookAt.
func (c *Controller) look(dx, dy float32) {
	cam := c.camera
	dist := math32.Max(cam.Distance(), 1)
	dir := cam.Front.Mul(-1)

	k := lookPerPixel * c.speeds.Look
	dir = mgl32.QuatRotate(-dx*k, cam.WorldUp.Normalize()).Rotate(dir)
	pitched := mgl32.QuatRotate(-dy*k, cam.Right).Rotate(dir)
	if !math.Parallel(pitched.Normalize(), cam.WorldUp.Normalize(), minPoleAngle) {
		dir = pitched
	}

	cam.LookAt(cam.Pose.Position.Add(dir.Normalize().Mul(dist)))
}

func (c *Controller) moveFPS(dt float32) {
	dt = math32.Min(dt, maxDt)
	if dt <= 0 {
		return
	}

	var forward, strafe, lift float32
	if c.keys.forward {
		forward++
	}
	if c.keys.backward {
		forward--
	}
	if c.keys.right {
		strafe++
	}
	if c.keys.left {
		strafe--
	}
	if c.keys.up {
		lift++
	}
	if c.keys.down {
		lift--
	}
	if forward == 0 && strafe == 0 && lift == 0 {
		return
	}

	cam := c.camera
	step := c.speeds.Move * dt
	delta := cam.Front.Mul(-forward * step).
		Add(cam.Right.Mul(strafe * step)).
		Add(cam.WorldUp.Normalize().Mul(lift * step))

	cam.Pose.Position = cam.Pose.Position.Add(delta)
	cam.LookAt(cam.Target.Add(delta))
}

// poleAngle returns the angle between v and the unit vector up.
func poleAngle(v, up mgl32.Vec3) float32 {
	return math32.Acos(mgl32.Clamp(v.Normalize().Dot(up), -1, 1))
}

func clampDelta(d int) float32 {
	return mgl32.Clamp(float32(d), -maxMouseDelta, maxMouseDelta)
}

func (c *Controller) String() string {
	name := "None"
	if c.camera != nil {
		name = c.camera.Name
	}
	return fmt.Sprintf("<Controller mode=%s camera=%q enabled=%t orbit=%s>", c.mode, name, c.Enabled, c.orbit)
}
