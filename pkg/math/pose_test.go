package math

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestIdentityPoseApply(t *testing.T) {
	p := IdentityPose()
	got := p.Apply(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, got)
}

func TestZeroPoseIsIdentity(t *testing.T) {
	var p Pose
	got := p.Apply(mgl32.Vec3{1, 2, 3})
	assert.True(t, Vec3NearlyEqual(got, mgl32.Vec3{1, 2, 3}, eps), "got %v", got)
}

func TestPoseApplyRotateTranslate(t *testing.T) {
	// 90 degrees about Z maps +X to +Y
	q := mgl32.QuatRotate(float32(gomath.Pi/2), AxisZ)
	p := NewPose(mgl32.Vec3{10, 0, 0}, q)

	got := p.Apply(mgl32.Vec3{1, 0, 0})
	assert.True(t, Vec3NearlyEqual(got, mgl32.Vec3{10, 1, 0}, eps), "got %v", got)

	dir := p.ApplyDirection(mgl32.Vec3{1, 0, 0})
	assert.True(t, Vec3NearlyEqual(dir, mgl32.Vec3{0, 1, 0}, eps), "got %v", dir)
}

func TestPoseMat4MatchesApply(t *testing.T) {
	q := mgl32.QuatRotate(0.7, mgl32.Vec3{1, 2, 3}.Normalize())
	p := NewPose(mgl32.Vec3{-1, 4, 2}, q)
	pt := mgl32.Vec3{0.3, -2, 5}

	want := p.Apply(pt)
	got := p.Mat4().Mul4x1(pt.Vec4(1)).Vec3()
	assert.True(t, Vec3NearlyEqual(got, want, 1e-4), "got %v want %v", got, want)
}

func TestPoseComposeAndInverse(t *testing.T) {
	parent := NewPose(mgl32.Vec3{1, 2, 3}, mgl32.QuatRotate(0.5, AxisZ))
	child := NewPose(mgl32.Vec3{0, 1, 0}, mgl32.QuatRotate(-1.2, AxisX))
	pt := mgl32.Vec3{2, -1, 0.5}

	composed := parent.Compose(child)
	want := parent.Apply(child.Apply(pt))
	assert.True(t, Vec3NearlyEqual(composed.Apply(pt), want, 1e-4))

	back := parent.Inverse().Apply(parent.Apply(pt))
	assert.True(t, Vec3NearlyEqual(back, pt, 1e-4), "got %v", back)
}

func TestBasisRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		q    mgl32.Quat
	}{
		{"identity", mgl32.QuatIdent()},
		{"yaw", mgl32.QuatRotate(1.1, AxisZ)},
		{"pitch", mgl32.QuatRotate(-0.4, AxisX)},
		{"oblique", mgl32.QuatRotate(2.5, mgl32.Vec3{1, -1, 2}.Normalize())},
		{"half turn", mgl32.QuatRotate(float32(gomath.Pi), AxisY)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, u, f := BasisFromQuat(tt.q)
			assert.InDelta(t, 0, r.Dot(u), eps)
			assert.InDelta(t, 0, r.Dot(f), eps)
			assert.InDelta(t, 0, u.Dot(f), eps)
			assert.True(t, Vec3NearlyEqual(r.Cross(u), f, 1e-4))

			r2, u2, f2 := BasisFromQuat(QuatFromBasis(r, u, f))
			assert.True(t, Vec3NearlyEqual(r, r2, 1e-4), "right %v vs %v", r, r2)
			assert.True(t, Vec3NearlyEqual(u, u2, 1e-4), "up %v vs %v", u, u2)
			assert.True(t, Vec3NearlyEqual(f, f2, 1e-4), "front %v vs %v", f, f2)
		})
	}
}

func TestParallel(t *testing.T) {
	assert.True(t, Parallel(AxisZ, AxisZ, 0))
	assert.True(t, Parallel(AxisZ, AxisZ.Mul(-1), 0))
	assert.False(t, Parallel(AxisZ, AxisX, 0))

	nearly := mgl32.Vec3{1e-7, 0, 1}.Normalize()
	assert.False(t, Parallel(AxisZ, nearly, 0))
	assert.True(t, Parallel(AxisZ, nearly, 1e-6))
}

func TestParseVec3(t *testing.T) {
	v, err := ParseVec3("1, -2.5,3")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, -2.5, 3}, v)

	_, err = ParseVec3("1,2")
	assert.Error(t, err)

	_, err = ParseVec3("1,x,2")
	assert.Error(t, err)
}
