package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/linegl/internal/engine/input"
)

func newOrbit(t *testing.T) (*Controller, *Camera) {
	t.Helper()
	cam := newLookingCamera(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{})
	return NewController(cam, ModeOrbit, Speeds{}), cam
}

func newFPS(t *testing.T, speeds Speeds) (*Controller, *Camera) {
	t.Helper()
	cam := newLookingCamera(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{})
	return NewController(cam, ModeFPS, speeds), cam
}

func mouseDown(b input.Button) input.Event {
	return input.Event{Type: input.EventMouseDown, Button: b}
}

func mouseUp(b input.Button) input.Event {
	return input.Event{Type: input.EventMouseUp, Button: b}
}

func mouseMove(dx, dy int) input.Event {
	return input.Event{Type: input.EventMouseMove, DeltaX: dx, DeltaY: dy}
}

func key(k input.Key, down bool) input.Event {
	if down {
		return input.Event{Type: input.EventKeyDown, Key: k}
	}
	return input.Event{Type: input.EventKeyUp, Key: k}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeNone, false},
		{"none", ModeNone, false},
		{"Orbit", ModeOrbit, false},
		{"fps", ModeFPS, false},
		{"fly", ModeNone, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	assert.Equal(t, "orbit", ModeOrbit.String())
	assert.Equal(t, "fps", ModeFPS.String())
	assert.Equal(t, "dolly", OrbitDolly.String())
}

func TestOrbitStateFollowsButtons(t *testing.T) {
	ctrl, _ := newOrbit(t)

	ctrl.Update(0.016, []input.Event{mouseDown(input.ButtonLeft)})
	assert.Equal(t, OrbitRotate, ctrl.OrbitState())

	ctrl.Update(0.016, []input.Event{mouseUp(input.ButtonLeft), mouseDown(input.ButtonRight)})
	assert.Equal(t, OrbitPan, ctrl.OrbitState())

	ctrl.Update(0.016, []input.Event{mouseUp(input.ButtonRight), mouseDown(input.ButtonMiddle)})
	assert.Equal(t, OrbitDolly, ctrl.OrbitState())

	ctrl.Update(0.016, []input.Event{mouseUp(input.ButtonMiddle)})
	assert.Equal(t, OrbitIdle, ctrl.OrbitState())
}

func TestOrbitMoveWithoutButtonDoesNothing(t *testing.T) {
	ctrl, cam := newOrbit(t)
	before := *cam

	ctrl.Update(0.016, []input.Event{mouseMove(20, 20)})

	assert.Equal(t, before.Pose, cam.Pose)
	assert.Equal(t, before.Target, cam.Target)
}

func TestOrbitRotateKeepsDistanceAndAim(t *testing.T) {
	ctrl, cam := newOrbit(t)
	start := cam.Position()

	ctrl.Update(0.016, []input.Event{mouseDown(input.ButtonLeft), mouseMove(30, 10)})

	assert.NotEqual(t, start, cam.Position())
	assert.InDelta(t, 3, cam.Distance(), eps)
	assertVec3(t, mgl32.Vec3{}, cam.Target)
	assertVec3(t, cam.Position().Sub(cam.Target).Normalize(), cam.Front)
	assertOrthonormal(t, cam)
}

func TestOrbitRotateClampsMouseDelta(t *testing.T) {
	a, camA := newOrbit(t)
	b, camB := newOrbit(t)

	a.Update(0.016, []input.Event{mouseDown(input.ButtonLeft), mouseMove(maxMouseDelta, 0)})
	b.Update(0.016, []input.Event{mouseDown(input.ButtonLeft), mouseMove(1000, 0)})

	assertVec3(t, camA.Position(), camB.Position())
}

func TestOrbitRotateStopsAtPole(t *testing.T) {
	ctrl, cam := newOrbit(t)

	events := []input.Event{mouseDown(input.ButtonLeft)}
	for i := 0; i < 100; i++ {
		events = append(events, mouseMove(0, -50))
	}
	ctrl.Update(0.016, events)

	assert.InDelta(t, 3, cam.Distance(), eps)
	assert.Less(t, cam.Front.Dot(cam.WorldUp), float32(1))
	assertOrthonormal(t, cam)
}

func TestOrbitPanMovesTargetAndCamera(t *testing.T) {
	ctrl, cam := newOrbit(t)
	startPos, startTarget := cam.Position(), cam.Target

	ctrl.Update(0.016, []input.Event{mouseDown(input.ButtonRight), mouseMove(10, 5)})

	posDelta := cam.Position().Sub(startPos)
	targetDelta := cam.Target.Sub(startTarget)
	assert.Greater(t, posDelta.Len(), float32(0))
	assertVec3(t, posDelta, targetDelta)
	assert.InDelta(t, 0, posDelta.Dot(cam.Front), eps, "pan stays in the view plane")
}

func TestOrbitScrollDollies(t *testing.T) {
	ctrl, cam := newOrbit(t)

	ctrl.Update(0.016, []input.Event{{Type: input.EventScroll, ScrollY: 1}})
	assert.InDelta(t, 2.7, cam.Distance(), eps)

	ctrl.Update(0.016, []input.Event{{Type: input.EventScroll, ScrollY: -1}})
	assert.InDelta(t, 2.97, cam.Distance(), eps)
	assertVec3(t, mgl32.Vec3{0, -1, 0}, cam.Front)
}

func TestOrbitScrollZoomsOrthographic(t *testing.T) {
	ctrl, cam := newOrbit(t)
	cam.Data.Projection = Orthographic

	ctrl.Update(0.016, []input.Event{{Type: input.EventScroll, ScrollY: 1}})

	assert.InDelta(t, 1.1, cam.Zoom, eps)
	assert.InDelta(t, 3, cam.Distance(), eps)
}

func TestFPSMovesForward(t *testing.T) {
	ctrl, cam := newFPS(t, Speeds{Move: 4})

	ctrl.Update(0.05, []input.Event{key(input.KeyW, true)})
	assertVec3(t, mgl32.Vec3{0, -2.8, 0}, cam.Position())
	assertVec3(t, mgl32.Vec3{0, 0.2, 0}, cam.Target)

	// Held keys keep moving without new events.
	ctrl.Update(0.05, nil)
	assertVec3(t, mgl32.Vec3{0, -2.6, 0}, cam.Position())

	ctrl.Update(0.05, []input.Event{key(input.KeyW, false)})
	assertVec3(t, mgl32.Vec3{0, -2.6, 0}, cam.Position())
}

func TestFPSClampsDt(t *testing.T) {
	ctrl, cam := newFPS(t, Speeds{Move: 4})

	ctrl.Update(5, []input.Event{key(input.KeyUp, true)})

	assertVec3(t, mgl32.Vec3{0, -2.6, 0}, cam.Position())
}

func TestFPSStrafeAndLift(t *testing.T) {
	ctrl, cam := newFPS(t, Speeds{Move: 1})

	ctrl.Update(0.1, []input.Event{key(input.KeyD, true), key(input.KeyE, true)})

	assertVec3(t, mgl32.Vec3{0.1, -3, 0.1}, cam.Position())
	assertVec3(t, mgl32.Vec3{0, -1, 0}, cam.Front, "moving does not turn the camera")
}

func TestFPSOppositeKeysCancel(t *testing.T) {
	ctrl, cam := newFPS(t, Speeds{})

	ctrl.Update(0.1, []input.Event{key(input.KeyA, true), key(input.KeyRight, true)})

	assertVec3(t, mgl32.Vec3{0, -3, 0}, cam.Position())
}

func TestFPSLookTurnsInPlace(t *testing.T) {
	ctrl, cam := newFPS(t, Speeds{})
	start := cam.Front

	ctrl.Update(0.016, []input.Event{mouseMove(40, 0)})

	assertVec3(t, mgl32.Vec3{0, -3, 0}, cam.Position())
	assert.False(t, mgl32.Vec3{}.ApproxEqual(start.Sub(cam.Front)), "yaw must change the front vector")
	assert.InDelta(t, 0, cam.Front.Z(), eps, "pure yaw keeps the horizon level")
	assertOrthonormal(t, cam)
}

func TestResizeUpdatesAspect(t *testing.T) {
	for _, mode := range []Mode{ModeNone, ModeOrbit, ModeFPS} {
		cam := New("r")
		ctrl := NewController(cam, mode, Speeds{})
		ctrl.Enabled = false

		ctrl.Update(0.016, []input.Event{{Type: input.EventWindowResize, Width: 1600, Height: 900}})

		assert.InDelta(t, 1600.0/900.0, cam.Data.Aspect, eps, mode.String())
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	ctrl, cam := newFPS(t, Speeds{})
	ctrl.Enabled = false

	ctrl.Update(0.1, []input.Event{key(input.KeyW, true), mouseMove(30, 30)})

	assertVec3(t, mgl32.Vec3{0, -3, 0}, cam.Position())
	assertVec3(t, mgl32.Vec3{0, -1, 0}, cam.Front)
}

func TestSetModeResetsState(t *testing.T) {
	ctrl, cam := newFPS(t, Speeds{})
	ctrl.Update(0.01, []input.Event{key(input.KeyW, true)})
	pos := cam.Position()

	ctrl.SetMode(ModeOrbit)
	ctrl.SetMode(ModeFPS)
	ctrl.Update(0.1, nil)

	assertVec3(t, pos, cam.Position(), "held keys are dropped on mode change")
	assert.Equal(t, ModeFPS, ctrl.Mode())
}

func TestControllerString(t *testing.T) {
	ctrl, _ := newOrbit(t)
	assert.Equal(t, `<Controller mode=orbit camera="test" enabled=true orbit=idle>`, ctrl.String())
	assert.Equal(t, `<Controller mode=none camera="None" enabled=true orbit=idle>`, NewController(nil, ModeNone, Speeds{}).String())
}
