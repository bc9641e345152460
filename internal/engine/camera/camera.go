// Package camera provides the view/projection camera used by the debug
// drawer and the controller that moves it from input events.
package camera

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/linegl/pkg/math"
)

// parallelEps is the largest cross product length at which a look direction
// counts as parallel to the world up vector.
const parallelEps = 1e-6

// Camera is a posed viewpoint. Front points from the target towards the
// camera, so the camera looks along -Front.
type Camera struct {
	Name string
	Pose math.Pose

	Target mgl32.Vec3
	Front  mgl32.Vec3
	Up     mgl32.Vec3
	Right  mgl32.Vec3

	WorldUp mgl32.Vec3
	Zoom    float32
	Data    ProjectionData
}

// New returns a camera at the origin with identity orientation, Z as world
// up, and a target one unit in front of it.
func New(name string) *Camera {
	c := &Camera{
		Name:    name,
		Pose:    math.IdentityPose(),
		WorldUp: math.AxisZ,
		Zoom:    1,
		Data:    DefaultProjectionData(),
	}
	c.Right, c.Up, c.Front = math.BasisFromQuat(c.Pose.Orientation)
	c.Target = c.Pose.Position.Sub(c.Front)
	return c
}

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 {
	return c.Pose.Position
}

// SetPosition moves the camera without re-aiming it.
func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.Pose.Position = p
}

// ComputeViewMatrix builds the world-to-camera transform from the basis
// directly: rows are right, up and front, translation is -basis·position.
func (c *Camera) ComputeViewMatrix() mgl32.Mat4 {
	pos := c.Pose.Position
	m := mgl32.Ident4()
	for row, axis := range [3]mgl32.Vec3{c.Right, c.Up, c.Front} {
		m.Set(row, 0, axis[0])
		m.Set(row, 1, axis[1])
		m.Set(row, 2, axis[2])
		m.Set(row, 3, -axis.Dot(pos))
	}
	return m
}

// ComputeProjectionMatrix builds the perspective or orthographic projection,
// scaled by Zoom. Zoom must be positive.
func (c *Camera) ComputeProjectionMatrix() mgl32.Mat4 {
	d := c.Data
	if d.Projection == Orthographic {
		w := d.Width / c.Zoom
		h := d.Height / c.Zoom
		return mgl32.Ortho(-w/2, w/2, -h/2, h/2, d.Near, d.Far)
	}

	top := d.Near * math32.Tan(mgl32.DegToRad(0.5*d.FOV)) / c.Zoom
	height := 2 * top
	width := d.Aspect * height
	left := -0.5 * width
	return mgl32.Frustum(left, left+width, top-height, top, d.Near, d.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ComputeProjectionMatrix().Mul4(c.ComputeViewMatrix())
}

// LookAt aims the camera at target. Target is always stored; the basis and
// orientation are left unchanged when the camera sits on the target or the
// look direction is parallel to WorldUp.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target

	offset := c.Pose.Position.Sub(target)
	if offset.Len() == 0 || c.WorldUp.Len() == 0 {
		return
	}
	front := offset.Normalize()
	worldUp := c.WorldUp.Normalize()
	if math.Parallel(front, worldUp, parallelEps) {
		return
	}

	right := worldUp.Cross(front).Normalize()
	up := front.Cross(right).Normalize()

	c.Front, c.Right, c.Up = front, right, up
	c.Pose.Orientation = math.QuatFromBasis(right, up, front)
}

// LookAtOrientation sets the basis from q and moves the target along -Front,
// keeping its previous distance from the camera.
func (c *Camera) LookAtOrientation(q mgl32.Quat) {
	dist := c.Pose.Position.Sub(c.Target).Len()

	q = q.Normalize()
	c.Right, c.Up, c.Front = math.BasisFromQuat(q)
	c.Pose.Orientation = q
	c.Target = c.Pose.Position.Sub(c.Front.Mul(dist))
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float32 {
	return c.Pose.Position.Sub(c.Target).Len()
}

// SetAspect updates the aspect ratio for a framebuffer size. Orthographic
// cameras keep their height and widen or narrow the box. Non-positive sizes
// are ignored.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Data.Aspect = float32(width) / float32(height)
	if c.Data.Projection == Orthographic {
		c.Data.Width = c.Data.Height * c.Data.Aspect
	}
}

func (c *Camera) String() string {
	p := c.Pose.Position
	return fmt.Sprintf("<Camera %q pos=(%.3f, %.3f, %.3f) target=(%.3f, %.3f, %.3f) front=(%.3f, %.3f, %.3f) zoom=%.3f %s>",
		c.Name, p[0], p[1], p[2],
		c.Target[0], c.Target[1], c.Target[2],
		c.Front[0], c.Front[1], c.Front[2],
		c.Zoom, c.Data)
}
