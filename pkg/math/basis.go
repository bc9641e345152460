package math

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis unit vectors.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// BasisFromQuat returns the normalized columns of the rotation matrix of q.
// For a camera these are its right, up and front vectors.
func BasisFromQuat(q mgl32.Quat) (right, up, front mgl32.Vec3) {
	m := q.Normalize().Mat4().Mat3()
	return m.Col(0).Normalize(), m.Col(1).Normalize(), m.Col(2).Normalize()
}

// QuatFromBasis builds the rotation whose matrix has the given vectors as
// columns. The vectors must form a right-handed orthonormal basis.
func QuatFromBasis(right, up, front mgl32.Vec3) mgl32.Quat {
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, up, front).Mat4()).Normalize()
}

// Parallel reports whether a and b point along the same line (same or
// opposite direction). Both must be unit length. eps bounds the length of
// their cross product; eps == 0 means exact comparison.
func Parallel(a, b mgl32.Vec3, eps float32) bool {
	if eps == 0 {
		return a == b || a == b.Mul(-1)
	}
	return a.Cross(b).Len() <= eps
}

// NearlyEqual reports whether two scalars differ by at most eps.
func NearlyEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

// Vec3NearlyEqual compares two vectors component-wise.
func Vec3NearlyEqual(a, b mgl32.Vec3, eps float32) bool {
	return NearlyEqual(a[0], b[0], eps) && NearlyEqual(a[1], b[1], eps) && NearlyEqual(a[2], b[2], eps)
}

// Mat4NearlyEqual compares two matrices element-wise.
func Mat4NearlyEqual(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		if !NearlyEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

// ParseVec3 parses "x,y,z" into a vector.
func ParseVec3(s string) (mgl32.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("vec3 %q: want 3 comma-separated components, got %d", s, len(parts))
	}
	var v mgl32.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("vec3 %q component %d: %w", s, i, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}
