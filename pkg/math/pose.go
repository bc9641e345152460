// Package math provides the pose and basis helpers used on top of mgl32.
package math

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a position plus an orientation, i.e. a rigid local-to-world transform.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Orientation: mgl32.QuatIdent()}
}

// NewPose creates a pose from a position and an orientation.
func NewPose(position mgl32.Vec3, orientation mgl32.Quat) Pose {
	return Pose{Position: position, Orientation: orientation}
}

// At returns an unrotated pose at the given position.
func At(position mgl32.Vec3) Pose {
	return Pose{Position: position, Orientation: mgl32.QuatIdent()}
}

// Apply transforms a point from local space to world space.
func (p Pose) Apply(point mgl32.Vec3) mgl32.Vec3 {
	return p.rotation().Rotate(point).Add(p.Position)
}

// ApplyDirection rotates a direction vector (translation is ignored).
func (p Pose) ApplyDirection(dir mgl32.Vec3) mgl32.Vec3 {
	return p.rotation().Rotate(dir)
}

// Compose returns the pose of child expressed in the parent frame of p,
// so that p.Compose(c).Apply(x) == p.Apply(c.Apply(x)).
func (p Pose) Compose(child Pose) Pose {
	q := p.rotation()
	return Pose{
		Position:    q.Rotate(child.Position).Add(p.Position),
		Orientation: q.Mul(child.rotation()).Normalize(),
	}
}

// Inverse returns the world-to-local transform of p.
func (p Pose) Inverse() Pose {
	inv := p.rotation().Inverse()
	return Pose{
		Position:    inv.Rotate(p.Position.Mul(-1)),
		Orientation: inv,
	}
}

// Mat4 returns the homogeneous transform matrix of the pose.
func (p Pose) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(p.rotation().Mat4())
}

// String returns a compact representation of the pose.
func (p Pose) String() string {
	q := p.Orientation
	return fmt.Sprintf("pos=(%.3f, %.3f, %.3f) rot=(w=%.3f, x=%.3f, y=%.3f, z=%.3f)",
		p.Position.X(), p.Position.Y(), p.Position.Z(), q.W, q.V.X(), q.V.Y(), q.V.Z())
}

// rotation returns the orientation, treating the zero quaternion as identity
// so that a zero-value Pose behaves like IdentityPose.
func (p Pose) rotation() mgl32.Quat {
	if p.Orientation.W == 0 && p.Orientation.V == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return p.Orientation
}
