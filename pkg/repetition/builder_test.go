package repetition

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/shapecache/pkg/geom"
)

func grid(at geom.Point, dx, dy int64, cols, rowsN int) []geom.Point {
	var pts []geom.Point
	for j := range rowsN {
		for i := range cols {
			pts = append(pts, at.Add(geom.Pt(int64(i)*dx, int64(j)*dy)))
		}
	}
	return pts
}

func sortedPoints(pts []geom.Point) []geom.Point {
	out := slices.Clone(pts)
	slices.SortFunc(out, geom.CompareRows)
	return out
}

func TestRunCompleteness(t *testing.T) {
	for n := MinRun; n <= 12; n++ {
		pts := grid(geom.Pt(-50, 7), 25, 0, n, 1)
		got := NewBuilder().Build(pts)
		want := []Pattern{Run{At: geom.Pt(-50, 7), Step: geom.Pt(25, 0), N: n}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("n=%d: patterns mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestColumnRun(t *testing.T) {
	pts := grid(geom.Pt(3, 0), 0, 40, 1, 6)
	got := NewBuilder().Build(pts)
	want := []Pattern{Run{At: geom.Pt(3, 0), Step: geom.Pt(0, 40), N: 6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
	if got[0].Code() != CodeColumn {
		t.Errorf("Code = %d, want %d", got[0].Code(), CodeColumn)
	}
}

func TestShortRowIsResidual(t *testing.T) {
	pts := grid(geom.Pt(0, 0), 10, 0, MinRun-1, 1)
	got := NewBuilder().Build(pts)
	if len(got) != 1 {
		t.Fatalf("got %d patterns, want 1", len(got))
	}
	if _, ok := got[0].(Residual); !ok {
		t.Fatalf("got %T, want Residual", got[0])
	}
}

func TestArrayCompleteness(t *testing.T) {
	pts := grid(geom.Pt(100, 200), 10, 20, 5, 3)
	got := NewBuilder().Build(pts)
	want := []Pattern{Array{
		At:    geom.Pt(100, 200),
		Step1: geom.Pt(10, 0), N1: 5,
		Step2: geom.Pt(0, 20), N2: 3,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
	if got[0].Code() != CodeOrthogonalArray {
		t.Errorf("Code = %d, want %d", got[0].Code(), CodeOrthogonalArray)
	}
}

func TestArrayWithShortRows(t *testing.T) {
	// Rows are too short for runs; the array still forms.
	pts := grid(geom.Pt(0, 0), 7, 3, 3, 5)
	got := NewBuilder().Build(pts)
	want := []Pattern{Array{
		At:    geom.Pt(0, 0),
		Step1: geom.Pt(7, 0), N1: 3,
		Step2: geom.Pt(0, 3), N2: 5,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestSmallGrids(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
	}{
		{"2x2", 2, 2},
		{"3x3", 3, 3},
		{"2x3", 2, 3},
		{"3x2", 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBuilder().Build(grid(geom.Pt(5, 5), 10, 10, tt.cols, tt.rows))
			want := []Pattern{Array{
				At:    geom.Pt(5, 5),
				Step1: geom.Pt(10, 0), N1: tt.cols,
				Step2: geom.Pt(0, 10), N2: tt.rows,
			}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("patterns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSideBySideArrays(t *testing.T) {
	pts := grid(geom.Pt(0, 0), 10, 20, 5, 4)
	pts = append(pts, grid(geom.Pt(1000, 0), 10, 20, 5, 4)...)

	got := NewBuilder().Build(pts)
	want := []Pattern{
		Array{At: geom.Pt(0, 0), Step1: geom.Pt(10, 0), N1: 5, Step2: geom.Pt(0, 20), N2: 4},
		Array{At: geom.Pt(1000, 0), Step1: geom.Pt(10, 0), N1: 5, Step2: geom.Pt(0, 20), N2: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestStackedArraysAtDifferentPitch(t *testing.T) {
	pts := grid(geom.Pt(0, 0), 10, 10, 4, 4)
	pts = append(pts, grid(geom.Pt(0, 500), 25, 30, 6, 3)...)

	got := NewBuilder().Build(pts)
	want := []Pattern{
		Array{At: geom.Pt(0, 0), Step1: geom.Pt(10, 0), N1: 4, Step2: geom.Pt(0, 10), N2: 4},
		Array{At: geom.Pt(0, 500), Step1: geom.Pt(25, 0), N1: 6, Step2: geom.Pt(0, 30), N2: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestBelowArrayMinimum(t *testing.T) {
	b := NewBuilder()
	b.ArrayMin = 3
	got := b.Build(grid(geom.Pt(0, 0), 10, 10, 6, 2))
	for _, p := range got {
		if _, ok := p.(Array); ok {
			t.Fatalf("unexpected array %v", p)
		}
	}
	if len(got) != 2 {
		t.Errorf("got %d patterns, want 2 runs", len(got))
	}
}

func TestArraysDisabled(t *testing.T) {
	b := NewBuilder()
	b.ArrayMin = 0
	got := b.Build(grid(geom.Pt(0, 0), 10, 10, 4, 4))
	if len(got) != 4 {
		t.Fatalf("got %d patterns, want 4 runs", len(got))
	}
	for _, p := range got {
		if _, ok := p.(Run); !ok {
			t.Errorf("got %T, want Run", p)
		}
	}
}

func TestArrayClipping(t *testing.T) {
	pts := grid(geom.Pt(0, 0), 10, 0, 10, 1)
	pts = append(pts, grid(geom.Pt(30, 20), 10, 0, 4, 1)...)

	got := NewBuilder().Build(pts)
	want := []Pattern{
		Array{At: geom.Pt(30, 0), Step1: geom.Pt(10, 0), N1: 4, Step2: geom.Pt(0, 20), N2: 2},
		Residual{
			At:      geom.Pt(0, 0),
			Offsets: []geom.Point{{X: 1}, {X: 2}, {X: 7}, {X: 8}, {X: 9}},
			Grid:    10,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestClippedLeftoversBecomeRuns(t *testing.T) {
	pts := grid(geom.Pt(0, 0), 5, 0, 12, 1)                  // x = 0..55
	pts = append(pts, grid(geom.Pt(30, 9), 5, 0, 6, 1)...) // x = 30..55

	got := NewBuilder().Build(pts)
	want := []Pattern{
		Array{At: geom.Pt(30, 0), Step1: geom.Pt(5, 0), N1: 6, Step2: geom.Pt(0, 9), N2: 2},
		Run{At: geom.Pt(0, 0), Step: geom.Pt(5, 0), N: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestStrideEstimationSkipsOutlier(t *testing.T) {
	pts := []geom.Point{{X: 0}, {X: 7}, {X: 10}, {X: 20}, {X: 30}, {X: 40}}
	got := NewBuilder().Build(pts)
	want := []Pattern{
		Run{At: geom.Pt(0, 0), Step: geom.Pt(10, 0), N: 5},
		Single{At: geom.Pt(7, 0)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestCoincidentPointsAreConserved(t *testing.T) {
	pts := grid(geom.Pt(0, 0), 10, 0, 5, 1)
	pts = append(pts, geom.Pt(20, 0), geom.Pt(20, 0))

	got := NewBuilder().Build(pts)
	if Total(got) != len(pts) {
		t.Fatalf("Total = %d, want %d", Total(got), len(pts))
	}
	want := []Pattern{
		Run{At: geom.Pt(0, 0), Step: geom.Pt(10, 0), N: 5},
		Residual{At: geom.Pt(20, 0), Offsets: []geom.Point{{}}, Grid: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestNonPeriodic(t *testing.T) {
	b := NewBuilder()
	b.Periodic = false
	got := b.Build(grid(geom.Pt(0, 0), 10, 0, 8, 1))
	if len(got) != 1 {
		t.Fatalf("got %d patterns, want 1", len(got))
	}
	r, ok := got[0].(Residual)
	if !ok {
		t.Fatalf("got %T, want Residual", got[0])
	}
	if r.Grid != 10 || r.Code() != CodeRowResidualGrid {
		t.Errorf("residual = %+v code %d", r, r.Code())
	}
}

func TestRunMinimumFloor(t *testing.T) {
	b := NewBuilder()
	b.RunMin = 2
	got := b.Build(grid(geom.Pt(0, 0), 10, 0, 3, 1))
	for _, p := range got {
		if _, ok := p.(Run); ok {
			t.Fatalf("run shorter than %d extracted: %v", MinRun, p)
		}
	}
}

func TestSingleAndEmpty(t *testing.T) {
	if got := NewBuilder().Build(nil); got != nil {
		t.Errorf("Build(nil) = %v, want nil", got)
	}
	got := NewBuilder().Build([]geom.Point{{X: 4, Y: 4}})
	if diff := cmp.Diff([]Pattern{Single{At: geom.Pt(4, 4)}}, got); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestConservation(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for round := range 200 {
		var pts []geom.Point
		// Mix grids, runs, duplicates and noise on a shared lattice.
		for range rng.IntN(4) {
			at := geom.Pt(int64(rng.IntN(20))*5, int64(rng.IntN(20))*5)
			pts = append(pts, grid(at, 5*int64(1+rng.IntN(3)), 5*int64(1+rng.IntN(3)), 1+rng.IntN(7), 1+rng.IntN(5))...)
		}
		for range rng.IntN(30) {
			pts = append(pts, geom.Pt(int64(rng.IntN(40))*5, int64(rng.IntN(40))*5))
		}
		if len(pts) == 0 {
			continue
		}

		b := NewBuilder()
		b.ArrayMin = rng.IntN(4)
		got := b.Build(pts)

		if Total(got) != len(pts) {
			t.Fatalf("round %d: Total = %d, want %d", round, Total(got), len(pts))
		}
		if diff := cmp.Diff(sortedPoints(pts), sortedPoints(Expand(got))); diff != "" {
			t.Fatalf("round %d: expanded positions differ (-want +got):\n%s", round, diff)
		}
		for _, p := range got {
			switch v := p.(type) {
			case Run:
				if v.N < MinRun {
					t.Fatalf("round %d: short run %v", round, v)
				}
			case Array:
				if b.ArrayMin > 0 && (v.N1 < max(b.ArrayMin, 2) || v.N2 < max(b.ArrayMin, 2)) {
					t.Fatalf("round %d: small array %v", round, v)
				}
				if b.ArrayMin == 0 {
					t.Fatalf("round %d: array with arrays disabled", round)
				}
			}
		}
	}
}
