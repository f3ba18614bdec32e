package shape

import (
	"cmp"
	"fmt"
)

// Rotation is a counter-clockwise rotation in multiples of 90 degrees.
type Rotation uint8

const (
	R0 Rotation = iota
	R90
	R180
	R270
)

// Degrees returns the rotation angle.
func (r Rotation) Degrees() int { return int(r%4) * 90 }

// RotationFromDegrees maps 0, 90, 180 and 270 (and their equivalents modulo
// 360) to a Rotation.
func RotationFromDegrees(deg int) (Rotation, error) {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	if deg%90 != 0 {
		return R0, fmt.Errorf("rotation %d is not a multiple of 90 degrees", deg)
	}
	return Rotation(deg / 90), nil
}

// Transform is the placement transform shared by labels and cell
// placements: mirror about the x axis, then magnify, then rotate.
type Transform struct {
	Rotation Rotation `json:"rotation,omitempty"`
	Mirror   bool     `json:"mirror,omitempty"`
	Mag      float64  `json:"mag,omitempty"`
}

// canonical stores an unset magnification as 1.
func (t Transform) canonical() Transform {
	if t.Mag == 0 {
		t.Mag = 1
	}
	t.Rotation %= 4
	return t
}

// IsIdentity reports whether t leaves geometry unchanged.
func (t Transform) IsIdentity() bool {
	c := t.canonical()
	return c.Rotation == R0 && !c.Mirror && c.Mag == 1
}

func (t Transform) compare(o Transform) int {
	a, b := t.canonical(), o.canonical()
	return cmp.Or(
		cmp.Compare(a.Rotation, b.Rotation),
		compareBool(a.Mirror, b.Mirror),
		cmp.Compare(a.Mag, b.Mag),
	)
}

func (h *hasher) transform(t Transform) {
	c := t.canonical()
	h.u32(uint32(c.Rotation))
	h.bool(c.Mirror)
	h.f64(c.Mag)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
