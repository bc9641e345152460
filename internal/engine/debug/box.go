package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/linegl/pkg/math"
)

// LineSink receives generated line segments. *Drawer implements it.
type LineSink interface {
	DrawLine(start, end, color mgl32.Vec3)
}

// BoxEdgeCount is the number of lines a box wireframe emits.
const BoxEdgeCount = 12

// boxEdges indexes BoxCorners: bottom ring, top ring, then the verticals.
var boxEdges = [BoxEdgeCount][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxCorners returns the eight corners of a box of full extent size centered
// on pose. Corners 0..3 are the -Z face and 4..7 the +Z face, each going
// (+x,-y), (+x,+y), (-x,+y), (-x,-y).
func BoxCorners(size mgl32.Vec3, pose math.Pose) [8]mgl32.Vec3 {
	h := size.Mul(0.5)
	local := [8]mgl32.Vec3{
		{h[0], -h[1], -h[2]},
		{h[0], h[1], -h[2]},
		{-h[0], h[1], -h[2]},
		{-h[0], -h[1], -h[2]},
		{h[0], -h[1], h[2]},
		{h[0], h[1], h[2]},
		{-h[0], h[1], h[2]},
		{-h[0], -h[1], h[2]},
	}
	var out [8]mgl32.Vec3
	for i, c := range local {
		out[i] = pose.Apply(c)
	}
	return out
}

// Box emits the 12 unique edges of an oriented box.
func Box(sink LineSink, size mgl32.Vec3, pose math.Pose, color mgl32.Vec3) {
	boxFromCorners(sink, BoxCorners(size, pose), color)
}

// AABB emits an axis-aligned box spanning min..max. Swapped bounds are fixed up.
func AABB(sink LineSink, min, max, color mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}
	center := min.Add(max).Mul(0.5)
	Box(sink, max.Sub(min), math.At(center), color)
}

// PadAABB grows min..max by padding on every side.
func PadAABB(min, max mgl32.Vec3, padding float32) (mgl32.Vec3, mgl32.Vec3) {
	p := mgl32.Vec3{padding, padding, padding}
	return min.Sub(p), max.Add(p)
}

func boxFromCorners(sink LineSink, corners [8]mgl32.Vec3, color mgl32.Vec3) {
	for _, e := range boxEdges {
		sink.DrawLine(corners[e[0]], corners[e[1]], color)
	}
}
