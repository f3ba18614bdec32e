package table

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/shape"
)

func box(w int64) *shape.Box {
	b, _ := shape.NewBox(1, 0, geom.Pt(0, 0), geom.Pt(w, 10), nil)
	return &b
}

func TestRecordDeduplicates(t *testing.T) {
	tb := New[*shape.Box]()

	h1, fresh := tb.Record(box(5), geom.Pt(0, 0))
	if !fresh {
		t.Fatal("first insert should be fresh")
	}
	h2, fresh := tb.Record(box(5), geom.Pt(100, 0))
	if fresh || h2 != h1 {
		t.Fatalf("second insert = (%d, %v), want (%d, false)", h2, fresh, h1)
	}
	if _, fresh := tb.Record(box(6), geom.Pt(0, 0)); !fresh {
		t.Fatal("different content should be fresh")
	}

	if tb.Allocated() != 2 {
		t.Errorf("Allocated = %d, want 2", tb.Allocated())
	}
	e := tb.Entry(h1)
	if e.Count() != 2 || e.Placements[0] != geom.Pt(100, 0) {
		t.Errorf("entry = %+v", e)
	}
	if got := e.Positions(); len(got) != 2 || got[0] != geom.Pt(0, 0) {
		t.Errorf("Positions = %v", got)
	}
}

func TestHandlesSurviveRehash(t *testing.T) {
	tb := New[*shape.Box]()
	first, _ := tb.Record(box(1), geom.Pt(0, 0))
	start := tb.Buckets()

	n := start*MaxDensity + 50
	for i := 2; i <= n; i++ {
		tb.Record(box(int64(i)), geom.Pt(0, 0))
	}
	if tb.Buckets() <= start {
		t.Fatalf("bucket count %d did not grow past %d", tb.Buckets(), start)
	}
	if tb.Allocated() != n {
		t.Fatalf("Allocated = %d, want %d", tb.Allocated(), n)
	}
	if tb.Entry(first).Shape.Width != 1 {
		t.Error("handle to first entry no longer resolves to it")
	}
	for i := 1; i <= n; i++ {
		if _, ok := tb.Lookup(box(int64(i))); !ok {
			t.Fatalf("lookup of width %d failed after rehash", i)
		}
	}
}

func TestDedupIsOrderIndependent(t *testing.T) {
	var inputs []*shape.Box
	for i := range 300 {
		inputs = append(inputs, box(int64(i%37)))
	}
	want := map[int64]int{}
	for _, b := range inputs {
		want[b.Width]++
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for round := range 5 {
		rng.Shuffle(len(inputs), func(i, j int) { inputs[i], inputs[j] = inputs[j], inputs[i] })
		tb := New[*shape.Box]()
		for i, b := range inputs {
			tb.Record(b, geom.Pt(int64(i), 0))
		}
		if tb.Allocated() != len(want) {
			t.Fatalf("round %d: Allocated = %d, want %d", round, tb.Allocated(), len(want))
		}
		if tb.Occurrences() != len(inputs) {
			t.Fatalf("round %d: Occurrences = %d, want %d", round, tb.Occurrences(), len(inputs))
		}
		for _, e := range tb.Extract() {
			if e.Count() != want[e.Shape.Width] {
				t.Errorf("round %d: width %d count %d, want %d", round, e.Shape.Width, e.Count(), want[e.Shape.Width])
			}
		}
	}
}

func TestReset(t *testing.T) {
	tb := New[*shape.Box]()
	for i := range 1000 {
		tb.Record(box(int64(i)), geom.Pt(0, 0))
	}
	tb.Reset()
	if tb.Allocated() != 0 || len(tb.Extract()) != 0 {
		t.Error("Reset should empty the table")
	}
	if tb.Buckets() != initialBuckets {
		t.Errorf("Buckets = %d after Reset, want %d", tb.Buckets(), initialBuckets)
	}
}
