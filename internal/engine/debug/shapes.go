package debug

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/linegl/pkg/math"
)

// Axis colors.
var (
	ColorRed   = mgl32.Vec3{1, 0, 0}
	ColorGreen = mgl32.Vec3{0, 1, 0}
	ColorBlue  = mgl32.Vec3{0, 0, 1}
	ColorWhite = mgl32.Vec3{1, 1, 1}
	ColorGray  = mgl32.Vec3{0.5, 0.5, 0.5}
)

// ring returns segments points evenly spaced on the unit circle as (cos, sin).
func ring(segments int) [][2]float32 {
	pts := make([][2]float32, segments)
	step := 2 * math32.Pi / float32(segments)
	for i := range pts {
		a := float32(i) * step
		pts[i] = [2]float32{math32.Cos(a), math32.Sin(a)}
	}
	return pts
}

// closedLoop emits point i -> i+1 for every point, wrapping the last to the first.
func closedLoop(sink LineSink, points []mgl32.Vec3, color mgl32.Vec3) {
	for i := range points {
		sink.DrawLine(points[i], points[(i+1)%len(points)], color)
	}
}

// Circle emits a ring of radius r in the pose's local XY plane.
func Circle(sink LineSink, radius float32, segments int, pose math.Pose, color mgl32.Vec3) {
	pts := make([]mgl32.Vec3, 0, segments)
	for _, p := range ring(segments) {
		pts = append(pts, pose.Apply(mgl32.Vec3{radius * p[0], radius * p[1], 0}))
	}
	closedLoop(sink, pts, color)
}

// Sphere emits three great circles in the local XY, YZ and XZ planes,
// 3*segments lines in total.
func Sphere(sink LineSink, radius float32, segments int, pose math.Pose, color mgl32.Vec3) {
	pts := ring(segments)
	xy := make([]mgl32.Vec3, segments)
	yz := make([]mgl32.Vec3, segments)
	xz := make([]mgl32.Vec3, segments)
	for i, p := range pts {
		c, s := radius*p[0], radius*p[1]
		xy[i] = pose.Apply(mgl32.Vec3{c, s, 0})
		yz[i] = pose.Apply(mgl32.Vec3{0, c, s})
		xz[i] = pose.Apply(mgl32.Vec3{c, 0, s})
	}
	closedLoop(sink, xy, color)
	closedLoop(sink, yz, color)
	closedLoop(sink, xz, color)
}

// Cylinder emits a cylinder aligned with the local Z axis and centered on the
// pose: two axial rectangles (XZ and YZ planes) and the top and bottom rings,
// 8+2*segments lines in total.
func Cylinder(sink LineSink, radius, height float32, segments int, pose math.Pose, color mgl32.Vec3) {
	hh := height / 2

	rect := func(axis mgl32.Vec3) {
		a := axis.Mul(radius)
		b := axis.Mul(-radius)
		corners := []mgl32.Vec3{
			pose.Apply(a.Add(mgl32.Vec3{0, 0, -hh})),
			pose.Apply(a.Add(mgl32.Vec3{0, 0, hh})),
			pose.Apply(b.Add(mgl32.Vec3{0, 0, hh})),
			pose.Apply(b.Add(mgl32.Vec3{0, 0, -hh})),
		}
		closedLoop(sink, corners, color)
	}
	rect(math.AxisX)
	rect(math.AxisY)

	bottom := make([]mgl32.Vec3, segments)
	top := make([]mgl32.Vec3, segments)
	for i, p := range ring(segments) {
		bottom[i] = pose.Apply(mgl32.Vec3{radius * p[0], radius * p[1], -hh})
		top[i] = pose.Apply(mgl32.Vec3{radius * p[0], radius * p[1], hh})
	}
	closedLoop(sink, bottom, color)
	closedLoop(sink, top, color)
}

// Axes emits the pose's local X, Y and Z axes in red, green and blue.
func Axes(sink LineSink, pose math.Pose, length float32) {
	origin := pose.Position
	sink.DrawLine(origin, pose.Apply(math.AxisX.Mul(length)), ColorRed)
	sink.DrawLine(origin, pose.Apply(math.AxisY.Mul(length)), ColorGreen)
	sink.DrawLine(origin, pose.Apply(math.AxisZ.Mul(length)), ColorBlue)
}

// Grid emits a cells x cells grid of the given spacing centered on the pose
// in its local XY plane: 2*(cells+1) lines.
func Grid(sink LineSink, cells int, spacing float32, pose math.Pose, color mgl32.Vec3) {
	if cells <= 0 {
		return
	}
	half := float32(cells) * spacing / 2
	for i := 0; i <= cells; i++ {
		o := -half + float32(i)*spacing
		sink.DrawLine(pose.Apply(mgl32.Vec3{o, -half, 0}), pose.Apply(mgl32.Vec3{o, half, 0}), color)
		sink.DrawLine(pose.Apply(mgl32.Vec3{-half, o, 0}), pose.Apply(mgl32.Vec3{half, o, 0}), color)
	}
}

// ndcCorners follows the BoxCorners ordering with the near plane at z=-1.
var ndcCorners = [8]mgl32.Vec3{
	{1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, -1, -1},
	{1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {-1, -1, 1},
}

// FrustumCorners returns the world-space corners of a viewpoint's view
// volume, near plane first. ok is false if the view-projection is singular.
func FrustumCorners(vp Viewpoint) (corners [8]mgl32.Vec3, ok bool) {
	vpm := vp.ComputeProjectionMatrix().Mul4(vp.ComputeViewMatrix())
	if vpm.Det() == 0 {
		return corners, false
	}
	inv := vpm.Inv()
	for i, c := range ndcCorners {
		p := inv.Mul4x1(c.Vec4(1))
		if p[3] == 0 {
			return corners, false
		}
		corners[i] = p.Vec3().Mul(1 / p[3])
	}
	return corners, true
}

// Frustum emits the 12 edges of a viewpoint's view volume. A singular
// view-projection emits nothing.
func Frustum(sink LineSink, vp Viewpoint, color mgl32.Vec3) {
	corners, ok := FrustumCorners(vp)
	if !ok {
		return
	}
	boxFromCorners(sink, corners, color)
}
