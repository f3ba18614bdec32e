package shape

import (
	"testing"

	"github.com/matzehuels/shapecache/pkg/geom"
)

func TestNewBoxNormalisesCorners(t *testing.T) {
	b, at := NewBox(1, 2, geom.Pt(30, 50), geom.Pt(10, 20), nil)
	if at != geom.Pt(10, 20) {
		t.Errorf("anchor = %v, want (10,20)", at)
	}
	if b.Width != 20 || b.Height != 30 {
		t.Errorf("size = %dx%d, want 20x30", b.Width, b.Height)
	}
}

func TestTranslatedShapesAreEqual(t *testing.T) {
	tri := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 20}}
	a, atA := NewPolygon(1, 0, tri, nil)
	b, atB := NewPolygon(1, 0, geom.Translate(tri, geom.Pt(500, -70)), nil)

	if !a.Equal(&b) {
		t.Fatal("translated polygons should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal polygons must hash equal")
	}
	if atB.Sub(atA) != geom.Pt(500, -70) {
		t.Errorf("anchor delta = %v", atB.Sub(atA))
	}
	if a.Points[0] != (geom.Point{}) {
		t.Errorf("first relative vertex = %v, want origin", a.Points[0])
	}
}

func TestPropertiesMultiset(t *testing.T) {
	p1 := Properties{{"net", "vdd"}, {"pin", "a"}, {"net", "vdd"}}
	p2 := Properties{{"pin", "a"}, {"net", "vdd"}, {"net", "vdd"}}
	p3 := Properties{{"pin", "a"}, {"pin", "a"}, {"net", "vdd"}}

	if !p1.Equal(p2) {
		t.Error("reordered property lists should be equal")
	}
	if p1.Hash() != p2.Hash() {
		t.Error("reordered property lists must hash equal")
	}
	if p1.Equal(p3) {
		t.Error("different multiplicities must not be equal")
	}
	if Properties(nil).Canonical() != nil || (Properties{}).Canonical() != nil {
		t.Error("empty property list should canonicalise to nil")
	}
}

func TestBoxIdentity(t *testing.T) {
	base, _ := NewBox(1, 0, geom.Pt(0, 0), geom.Pt(10, 10), Properties{{"a", "1"}})
	tests := []struct {
		name  string
		other Box
		equal bool
	}{
		{"same", base, true},
		{"layer", Box{Layer: 2, Width: 10, Height: 10, Props: base.Props}, false},
		{"datatype", Box{Layer: 1, Datatype: 1, Width: 10, Height: 10, Props: base.Props}, false},
		{"width", Box{Layer: 1, Width: 11, Height: 10, Props: base.Props}, false},
		{"props", Box{Layer: 1, Width: 10, Height: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(&tt.other); got != tt.equal {
				t.Errorf("Equal = %v, want %v", got, tt.equal)
			}
			if tt.equal && base.Hash() != tt.other.Hash() {
				t.Error("equal boxes must hash equal")
			}
			if got := base.Compare(&tt.other) == 0; got != tt.equal {
				t.Errorf("Compare==0 is %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestPathExtensionsIgnoredUnlessExplicit(t *testing.T) {
	line := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}
	a, _ := NewPath(3, 0, 5, CapFlush, 7, 9, line, nil)
	b, _ := NewPath(3, 0, 5, CapFlush, 0, 0, line, nil)
	if !a.Equal(&b) {
		t.Error("flush paths should ignore extensions")
	}

	c, _ := NewPath(3, 0, 5, CapExplicit, 7, 9, line, nil)
	d, _ := NewPath(3, 0, 5, CapExplicit, 7, 8, line, nil)
	if c.Equal(&d) {
		t.Error("explicit extensions must split identity")
	}
}

func TestLabelNormalisesText(t *testing.T) {
	// "é" precomposed versus "e" + combining acute accent.
	a, _ := NewLabel(10, 0, "caf\u00e9", Transform{}, geom.Pt(0, 0), nil)
	b, _ := NewLabel(10, 0, "cafe\u0301", Transform{Mag: 1}, geom.Pt(4, 4), nil)
	if !a.Equal(&b) {
		t.Errorf("labels %q and %q should be equal after NFC", a.Text, b.Text)
	}
	if a.Hash() != b.Hash() {
		t.Error("equal labels must hash equal")
	}
}

func TestPlacementTransform(t *testing.T) {
	a, _ := NewPlacement("INV", Transform{Rotation: R90}, geom.Pt(0, 0), nil)
	b, _ := NewPlacement("INV", Transform{Rotation: R90, Mag: 1}, geom.Pt(9, 9), nil)
	c, _ := NewPlacement("INV", Transform{Rotation: R90, Mirror: true}, geom.Pt(0, 0), nil)
	if !a.Equal(&b) {
		t.Error("magnification 0 and 1 should be equal")
	}
	if a.Equal(&c) {
		t.Error("mirrored placement must differ")
	}
	if _, _, ok := a.LayerDatatype(); ok {
		t.Error("placements carry no layer")
	}
}

func TestTransformIsIdentity(t *testing.T) {
	tests := []struct {
		name string
		t    Transform
		want bool
	}{
		{"zero", Transform{}, true},
		{"unit mag", Transform{Mag: 1}, true},
		{"full turn", Transform{Rotation: 4}, true},
		{"rotated", Transform{Rotation: R90}, false},
		{"mirrored", Transform{Mirror: true}, false},
		{"magnified", Transform{Mag: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.IsIdentity(); got != tt.want {
				t.Errorf("IsIdentity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiffAgainstZeroState(t *testing.T) {
	b := Box{Layer: 1, Width: 5, Height: 5}
	want := WeightLayer + 2*WeightDimension
	if got := b.Cost(); got != want {
		t.Errorf("Cost = %d, want %d", got, want)
	}
	if got := b.Diff(&b); got != 0 {
		t.Errorf("Diff(self) = %d, want 0", got)
	}

	same := Box{Layer: 1, Width: 5, Height: 9}
	if got := same.Diff(&b); got != WeightDimension {
		t.Errorf("Diff = %d, want %d", got, WeightDimension)
	}
}

func TestKindSet(t *testing.T) {
	s := KindSet(0).With(KindBox).With(KindLabel)
	if !s.Has(KindBox) || !s.Has(KindLabel) || s.Has(KindPath) {
		t.Errorf("unexpected set contents %s", s)
	}
	if s.String() != "bl" {
		t.Errorf("String = %q, want bl", s.String())
	}
	if AllKinds.String() != "bpwlc" {
		t.Errorf("AllKinds = %q", AllKinds.String())
	}
	for _, k := range Kinds {
		got, ok := KindForLetter(k.Letter())
		if !ok || got != k {
			t.Errorf("KindForLetter(%c) = %v, %v", k.Letter(), got, ok)
		}
		byName, ok := ParseKind(k.String())
		if !ok || byName != k {
			t.Errorf("ParseKind(%s) = %v, %v", k, byName, ok)
		}
	}
}

func TestRotationFromDegrees(t *testing.T) {
	tests := []struct {
		deg     int
		want    Rotation
		wantErr bool
	}{
		{0, R0, false},
		{90, R90, false},
		{-90, R270, false},
		{450, R90, false},
		{45, R0, true},
	}
	for _, tt := range tests {
		got, err := RotationFromDegrees(tt.deg)
		if (err != nil) != tt.wantErr {
			t.Errorf("RotationFromDegrees(%d) error = %v", tt.deg, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("RotationFromDegrees(%d) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}
