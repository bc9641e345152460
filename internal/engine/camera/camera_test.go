package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/linegl/pkg/math"
)

const eps = 1e-4

func assertVec3(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, math.Vec3NearlyEqual(want, got, eps), append([]any{"want %v, got %v", want, got}, msgAndArgs...)...)
}

func assertOrthonormal(t *testing.T, c *Camera) {
	t.Helper()
	assert.InDelta(t, 1, c.Right.Len(), eps)
	assert.InDelta(t, 1, c.Up.Len(), eps)
	assert.InDelta(t, 1, c.Front.Len(), eps)
	assert.InDelta(t, 0, c.Right.Dot(c.Up), eps)
	assert.InDelta(t, 0, c.Up.Dot(c.Front), eps)
	assert.InDelta(t, 0, c.Front.Dot(c.Right), eps)
	assertVec3(t, c.Front, c.Right.Cross(c.Up), "basis must be right-handed")
}

func newLookingCamera(pos, target mgl32.Vec3) *Camera {
	c := New("test")
	c.SetPosition(pos)
	c.LookAt(target)
	return c
}

func TestNew(t *testing.T) {
	c := New("main")

	assert.Equal(t, "main", c.Name)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.WorldUp)
	assert.Equal(t, float32(1), c.Zoom)
	assert.Equal(t, DefaultProjectionData(), c.Data)
	assertVec3(t, math.AxisX, c.Right)
	assertVec3(t, math.AxisY, c.Up)
	assertVec3(t, math.AxisZ, c.Front)
	assert.InDelta(t, 1, c.Distance(), eps)
}

func TestDefaultProjectionData(t *testing.T) {
	d := DefaultProjectionData()
	assert.Equal(t, Perspective, d.Projection)
	assert.Equal(t, float32(45), d.FOV)
	assert.Equal(t, float32(1), d.Aspect)
	assert.Equal(t, float32(2), d.Width)
	assert.Equal(t, float32(2), d.Height)
	assert.Equal(t, float32(0.1), d.Near)
	assert.Equal(t, float32(100), d.Far)
}

func TestLookAtBasis(t *testing.T) {
	c := newLookingCamera(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{})

	assertVec3(t, mgl32.Vec3{0, -1, 0}, c.Front)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right)
	assertVec3(t, mgl32.Vec3{0, 0, 1}, c.Up)
	assert.Equal(t, mgl32.Vec3{}, c.Target)
	assertOrthonormal(t, c)

	right, up, front := math.BasisFromQuat(c.Pose.Orientation)
	assertVec3(t, c.Right, right)
	assertVec3(t, c.Up, up)
	assertVec3(t, c.Front, front)
}

func TestLookAtOrthonormalFromManyPositions(t *testing.T) {
	positions := []mgl32.Vec3{
		{1, 2, 3},
		{-4, 0.5, -2},
		{10, -10, 0.1},
		{0.001, 0, 5},
		{-1, -1, -1},
	}
	for _, p := range positions {
		c := newLookingCamera(p, mgl32.Vec3{0.5, 0.5, 0})
		assertOrthonormal(t, c)
		assertVec3(t, p.Sub(mgl32.Vec3{0.5, 0.5, 0}).Normalize(), c.Front)
	}
}

func TestLookAtDegenerate(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl32.Vec3
	}{
		{"above target", mgl32.Vec3{0, 0, 5}},
		{"below target", mgl32.Vec3{0, 0, -5}},
		{"on target", mgl32.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newLookingCamera(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{})
			right, up, front, q := c.Right, c.Up, c.Front, c.Pose.Orientation

			c.SetPosition(tt.pos)
			c.LookAt(mgl32.Vec3{})

			assert.Equal(t, right, c.Right)
			assert.Equal(t, up, c.Up)
			assert.Equal(t, front, c.Front)
			assert.Equal(t, q, c.Pose.Orientation)
			assert.Equal(t, mgl32.Vec3{}, c.Target, "target is stored even when the basis is kept")
		})
	}
}

func TestLookAtOrientation(t *testing.T) {
	c := newLookingCamera(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{})

	c.LookAtOrientation(mgl32.QuatRotate(mgl32.DegToRad(90), math.AxisZ))

	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Right)
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, c.Up)
	assertVec3(t, mgl32.Vec3{0, 0, 1}, c.Front)
	assertVec3(t, mgl32.Vec3{0, -3, -3}, c.Target)
	assert.InDelta(t, 3, c.Distance(), eps)
}

func TestLookAtOrientationRoundTrip(t *testing.T) {
	c := newLookingCamera(mgl32.Vec3{2, -3, 1.5}, mgl32.Vec3{0.5, 0, 0})
	right, up, front, target := c.Right, c.Up, c.Front, c.Target

	c.LookAtOrientation(c.Pose.Orientation)

	assertVec3(t, right, c.Right)
	assertVec3(t, up, c.Up)
	assertVec3(t, front, c.Front)
	assertVec3(t, target, c.Target)
}

func TestComputeViewMatrix(t *testing.T) {
	c := newLookingCamera(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{})
	c.Data.Aspect = 1.33

	view := c.ComputeViewMatrix()

	rot := view.Mat3()
	assert.True(t, math.Mat4NearlyEqual(mgl32.Ident4(), rot.Mul3(rot.Transpose()).Mat4(), eps), "rotation block must be orthonormal")
	assertVec3(t, mgl32.Vec3{0, 0, -3}, view.Col(3).Vec3())
	assertVec3(t, rot.Mul3x1(c.Position()).Mul(-1), view.Col(3).Vec3())

	// The target lands on the -Z axis of view space at the camera distance.
	assertVec3(t, mgl32.Vec3{0, 0, -3}, mgl32.TransformCoordinate(c.Target, view))
	// The camera itself maps to the view-space origin.
	assertVec3(t, mgl32.Vec3{}, mgl32.TransformCoordinate(c.Position(), view))
}

func TestComputeViewMatrixMatchesLookAtV(t *testing.T) {
	pos := mgl32.Vec3{3, -4, 2}
	c := newLookingCamera(pos, mgl32.Vec3{})

	want := mgl32.LookAtV(pos, mgl32.Vec3{}, math.AxisZ)
	assert.True(t, math.Mat4NearlyEqual(want, c.ComputeViewMatrix(), eps))
}

func TestComputeProjectionPerspective(t *testing.T) {
	c := New("p")
	c.Data.FOV = 90
	c.Data.Aspect = 1
	c.Data.Near = 1
	c.Data.Far = 10

	want := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 10)
	assert.True(t, math.Mat4NearlyEqual(want, c.ComputeProjectionMatrix(), eps))

	c.Zoom = 2
	proj := c.ComputeProjectionMatrix()
	assert.InDelta(t, 2, proj[0], eps)
	assert.InDelta(t, 2, proj[5], eps)
}

func TestComputeProjectionPerspectiveAspect(t *testing.T) {
	c := New("p")
	c.Data.Aspect = 2

	proj := c.ComputeProjectionMatrix()
	assert.InDelta(t, proj[5]/2, proj[0], eps)
	assert.InDelta(t, 0, proj[8], eps, "frustum is symmetric")
	assert.InDelta(t, 0, proj[9], eps, "frustum is symmetric")
}

func TestComputeProjectionOrthographic(t *testing.T) {
	c := New("o")
	c.Data.Projection = Orthographic
	c.Data.Width = 4
	c.Data.Height = 2
	c.Zoom = 2

	want := mgl32.Ortho(-1, 1, -0.5, 0.5, c.Data.Near, c.Data.Far)
	assert.True(t, math.Mat4NearlyEqual(want, c.ComputeProjectionMatrix(), eps))
}

func TestViewProjection(t *testing.T) {
	c := newLookingCamera(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{})
	ndc := mgl32.TransformCoordinate(c.Target, c.ViewProjection())
	assert.InDelta(t, 0, ndc[0], eps)
	assert.InDelta(t, 0, ndc[1], eps)
	assert.True(t, ndc[2] > -1 && ndc[2] < 1, "target must lie between the clip planes, got %v", ndc[2])
}

func TestSetAspect(t *testing.T) {
	c := New("a")
	c.SetAspect(800, 600)
	assert.InDelta(t, 800.0/600.0, c.Data.Aspect, eps)
	assert.Equal(t, float32(2), c.Data.Width, "perspective keeps the ortho box")

	c.SetAspect(0, 600)
	assert.InDelta(t, 800.0/600.0, c.Data.Aspect, eps)

	c.Data.Projection = Orthographic
	c.SetAspect(400, 100)
	assert.InDelta(t, 4, c.Data.Aspect, eps)
	assert.InDelta(t, 8, c.Data.Width, eps)
	assert.Equal(t, float32(2), c.Data.Height)
}

func TestProjectionKind(t *testing.T) {
	tests := []struct {
		in   string
		want ProjectionKind
	}{
		{"perspective", Perspective},
		{"Persp", Perspective},
		{"orthographic", Orthographic},
		{" ortho ", Orthographic},
	}
	for _, tt := range tests {
		got, err := ParseProjectionKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseProjectionKind("fisheye")
	assert.Error(t, err)

	assert.Equal(t, "perspective", Perspective.String())
	assert.Equal(t, "orthographic", Orthographic.String())
	assert.Equal(t, "ProjectionKind(7)", ProjectionKind(7).String())
}

func TestStrings(t *testing.T) {
	c := New("main")
	assert.Contains(t, c.String(), `<Camera "main"`)
	assert.Contains(t, c.String(), "perspective")
	assert.Contains(t, c.Data.String(), "fov=45.00")
}
