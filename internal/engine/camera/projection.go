package camera

import (
	"fmt"
	"strings"
)

// ProjectionKind selects how a camera maps view space to clip space.
type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

func (k ProjectionKind) String() string {
	switch k {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("ProjectionKind(%d)", int(k))
	}
}

// ParseProjectionKind accepts "perspective"/"persp" and "orthographic"/"ortho".
func ParseProjectionKind(s string) (ProjectionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective", "persp":
		return Perspective, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	default:
		return 0, fmt.Errorf("unknown projection %q", s)
	}
}

// ProjectionData holds the parameters of both projection kinds. FOV is the
// vertical field of view in degrees; Width and Height size the orthographic box.
type ProjectionData struct {
	Projection ProjectionKind
	FOV        float32
	Aspect     float32
	Width      float32
	Height     float32
	Near       float32
	Far        float32
}

// DefaultProjectionData returns a 45 degree perspective with a 2x2 orthographic box.
func DefaultProjectionData() ProjectionData {
	return ProjectionData{
		Projection: Perspective,
		FOV:        45,
		Aspect:     1,
		Width:      2,
		Height:     2,
		Near:       0.1,
		Far:        100,
	}
}

func (d ProjectionData) String() string {
	return fmt.Sprintf("<ProjectionData %s fov=%.2f aspect=%.3f width=%.2f height=%.2f near=%.3f far=%.2f>",
		d.Projection, d.FOV, d.Aspect, d.Width, d.Height, d.Near, d.Far)
}
