package cache

import (
	stderrors "errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/shapecache/pkg/config"
	"github.com/matzehuels/shapecache/pkg/errors"
	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/observability"
	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
	"github.com/matzehuels/shapecache/pkg/writer"
)

func newTestCache(t *testing.T, spec string) (*ObjectCache, *writer.Recorder) {
	t.Helper()
	rec := writer.NewRecorder()
	c := New(rec, WithSession("test"))
	if warnings := c.SetupRepetition(spec, false); len(warnings) != 0 {
		t.Fatalf("SetupRepetition(%q): %v", spec, warnings)
	}
	return c, rec
}

func cacheUnitBox(t *testing.T, c *ObjectCache, at geom.Point) {
	t.Helper()
	if err := c.CacheBox(1, 0, at, at.Add(geom.Pt(5, 5)), nil); err != nil {
		t.Fatalf("CacheBox(%v): %v", at, err)
	}
}

func sorted(pts []geom.Point) []geom.Point {
	out := slices.Clone(pts)
	slices.SortFunc(out, geom.CompareRows)
	return out
}

func TestFlushConservesOccurrences(t *testing.T) {
	c, rec := newTestCache(t, "")

	var want []geom.Point
	for i := range 6 {
		want = append(want, geom.Pt(int64(i)*20, 0))
	}
	for j := range 3 {
		for i := range 4 {
			want = append(want, geom.Pt(1000+int64(i)*7, int64(j)*9))
		}
	}
	want = append(want, geom.Pt(-50, 33), geom.Pt(400, 400), geom.Pt(-50, 33))

	for _, p := range want {
		cacheUnitBox(t, c, p)
	}
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}

	got := rec.Positions(shape.KindBox)
	if diff := cmp.Diff(sorted(want), sorted(got)); diff != "" {
		t.Errorf("written positions mismatch (-want +got):\n%s", diff)
	}

	var codes []repetition.Code
	for _, r := range rec.Records {
		codes = append(codes, r.Code())
	}
	wantCodes := []repetition.Code{repetition.CodeOrthogonalArray, repetition.CodeRow, repetition.CodeResidual}
	if diff := cmp.Diff(wantCodes, codes); diff != "" {
		t.Errorf("record codes mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushDeduplicates(t *testing.T) {
	c, rec := newTestCache(t, "")

	for i := range 3 {
		at := geom.Pt(int64(i)*100, 0)
		cacheUnitBox(t, c, at)
		if err := c.CacheBox(2, 0, at, at.Add(geom.Pt(5, 5)), nil); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Stats().Kinds[shape.KindBox].Pending; got != 2 {
		t.Errorf("Pending = %d, want 2", got)
	}
	if err := c.FlushBox(); err != nil {
		t.Fatal(err)
	}

	layers := map[uint32]int{}
	for _, r := range rec.Records {
		layers[r.Layer] += len(r.Positions())
	}
	if diff := cmp.Diff(map[uint32]int{1: 3, 2: 3}, layers); diff != "" {
		t.Errorf("occurrences per layer (-want +got):\n%s", diff)
	}
}

func TestCheckFlushMaxItems(t *testing.T) {
	c, rec := newTestCache(t, "x=10")

	for i := range 9 {
		if err := c.CachePolygon(1, 0, []geom.Point{{}, geom.Pt(int64(i)+1, 0), geom.Pt(0, 1)}, nil); err != nil {
			t.Fatal(err)
		}
		if err := c.CheckFlushPolygon(); err != nil {
			t.Fatal(err)
		}
	}
	if len(rec.Records) != 0 {
		t.Fatalf("flushed after 9 unique shapes, records = %d", len(rec.Records))
	}

	if err := c.CachePolygon(1, 0, []geom.Point{{}, geom.Pt(100, 0), geom.Pt(0, 1)}, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.CheckFlushPolygon(); err != nil {
		t.Fatal(err)
	}
	if len(rec.Records) != 10 {
		t.Errorf("records after 10th unique shape = %d, want 10", len(rec.Records))
	}
	if st := c.Stats().Kinds[shape.KindPolygon]; st.Pending != 0 || st.Flushes != 1 || st.Unique != 10 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCheckFlushMaxItemsBoxes(t *testing.T) {
	c, rec := newTestCache(t, "x=10")

	cacheSized := func(i int) {
		t.Helper()
		size := geom.Pt(int64(i)+1, 1)
		if err := c.CacheBox(1, 0, geom.Pt(0, 0), size, nil); err != nil {
			t.Fatal(err)
		}
		if err := c.CheckFlushBox(); err != nil {
			t.Fatal(err)
		}
	}

	for i := range 9 {
		cacheSized(i)
	}
	if len(rec.Records) != 0 || c.Stats().Kinds[shape.KindBox].Pending != 9 {
		t.Fatalf("flushed after 9 unique boxes, records = %d", len(rec.Records))
	}

	cacheSized(9)
	if len(rec.Records) != 10 {
		t.Errorf("records after 10th unique box = %d, want 10", len(rec.Records))
	}
	if st := c.Stats().Kinds[shape.KindBox]; st.Pending != 0 || st.Flushes != 1 || st.Unique != 10 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCheckFlushMaxReps(t *testing.T) {
	c, rec := newTestCache(t, "t=100")

	// One fresh insertion followed by 100 repeats does not exceed t.
	for i := range 101 {
		if err := c.CacheLabel(3, 0, "A", shape.Transform{}, geom.Pt(int64(i)*13, int64(i%7)), nil); err != nil {
			t.Fatal(err)
		}
		if err := c.CheckFlushLabel(); err != nil {
			t.Fatal(err)
		}
	}
	if len(rec.Records) != 0 {
		t.Fatalf("flushed at 100 repeats")
	}

	if err := c.CacheLabel(3, 0, "A", shape.Transform{}, geom.Pt(-1, -1), nil); err != nil {
		t.Fatal(err)
	}
	if err := c.CheckFlushLabel(); err != nil {
		t.Fatal(err)
	}
	if n := len(rec.Positions(shape.KindLabel)); n != 102 {
		t.Errorf("written label positions = %d, want 102", n)
	}
}

func TestFlushWriteFailureAborts(t *testing.T) {
	rec := &writer.Recorder{FailAfter: 1}
	counter := observability.NewCounter()
	c := New(rec, WithFlushHooks(counter))

	for i := range 3 {
		if err := c.CachePath(4, 0, 2, shape.CapFlush, 0, 0,
			[]geom.Point{{}, geom.Pt(int64(i+1)*10, 0)}, nil); err != nil {
			t.Fatal(err)
		}
	}

	err := c.Flush()
	if err == nil {
		t.Fatal("Flush() succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeWriteFailed) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeWriteFailed)
	}
	if !stderrors.Is(err, writer.ErrInjected) {
		t.Errorf("error %v does not wrap the writer error", err)
	}
	if len(rec.Records) != 1 {
		t.Errorf("records = %d, want 1", len(rec.Records))
	}
	if st := c.Stats().Kinds[shape.KindPath]; st.Pending != 0 {
		t.Errorf("Pending after failed flush = %d, want 0", st.Pending)
	}
	if s := counter.Kind("path"); s.Failures != 1 || s.Records != 1 {
		t.Errorf("flush hooks = %+v", s)
	}
}

func TestFlushPropertyFailureAborts(t *testing.T) {
	rec := &writer.Recorder{PropertyErr: stderrors.New("property queue full")}
	c := New(rec)
	props := shape.Properties{{Name: "net", Value: "a"}}
	if err := c.CacheBox(1, 0, geom.Pt(0, 0), geom.Pt(1, 1), props); err != nil {
		t.Fatal(err)
	}
	if err := c.Flush(); !errors.Is(err, errors.ErrCodeWriteFailed) {
		t.Errorf("Flush() = %v, want WRITE_FAILED", err)
	}
	if len(rec.Records) != 0 {
		t.Errorf("records = %d, want 0", len(rec.Records))
	}
}

func TestKindSelection(t *testing.T) {
	c, _ := newTestCache(t, "bl")

	if !c.CachingBoxes() || !c.CachingLabels() {
		t.Error("selected kinds not caching")
	}
	if c.CachingPolygons() || c.CachingPaths() || c.CachingPlacements() {
		t.Error("unselected kinds caching")
	}

	err := c.CachePlacement("inv", shape.Transform{}, geom.Pt(0, 0), nil)
	if !stderrors.Is(err, ErrKindDisabled) {
		t.Errorf("CachePlacement() = %v, want ErrKindDisabled", err)
	}
	if !errors.Is(err, errors.ErrCodeKindDisabled) {
		t.Errorf("error code = %q", errors.GetCode(err))
	}
}

func TestFlushRestoresModalState(t *testing.T) {
	c, rec := newTestCache(t, "")
	rec.SetLayerDatatype(99, 7)

	props := shape.Properties{{Name: "net", Value: "vss"}}
	if err := c.CacheBox(1, 2, geom.Pt(0, 0), geom.Pt(3, 3), props); err != nil {
		t.Fatal(err)
	}
	if err := c.CachePlacement("nand", shape.Transform{Rotation: shape.R180}, geom.Pt(5, 5), nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	if rec.Layer != 99 || rec.Datatype != 7 {
		t.Errorf("modal layer = (%d,%d), want (99,7)", rec.Layer, rec.Datatype)
	}
	if q := rec.QueuedProperties(); q != nil {
		t.Errorf("property queue not cleared: %v", q)
	}
	if _, inUse := rec.Repetition(); inUse {
		t.Error("repetition left in use")
	}

	box := rec.Kind(shape.KindBox)[0]
	if box.Layer != 1 || box.Datatype != 2 || !box.Props.Equal(props) {
		t.Errorf("box record = %+v", box)
	}
	if pl := rec.Kind(shape.KindPlacement)[0]; pl.Layer != 99 {
		t.Errorf("placement record written on layer %d, want modal 99", pl.Layer)
	}
}

func TestLabelsDeduplicateEquivalentText(t *testing.T) {
	c, rec := newTestCache(t, "")
	for i, text := range []string{"caf\u00e9", "cafe\u0301"} {
		if err := c.CacheLabel(5, 0, text, shape.Transform{}, geom.Pt(int64(i)*10, 0), nil); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(rec.Records) != 1 {
		t.Errorf("records = %d, want 1", len(rec.Records))
	}
}

func TestNonPeriodicWritesResidual(t *testing.T) {
	c, rec := newTestCache(t, "r")
	for i := range 8 {
		cacheUnitBox(t, c, geom.Pt(int64(i)*10, 0))
	}
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(rec.Records) != 1 || rec.Records[0].Code() != repetition.CodeRowResidualGrid {
		t.Fatalf("records = %+v", rec.Records)
	}
	if got := rec.Records[0].Repetition.Grid; got != 10 {
		t.Errorf("grid = %d, want 10", got)
	}
}

func TestStats(t *testing.T) {
	counter := observability.NewCounter()
	rec := writer.NewRecorder()
	c := New(rec, WithSession("s"), WithCacheHooks(counter), WithConfig(config.Default()))

	for i := range 5 {
		cacheUnitBox(t, c, geom.Pt(int64(i)*10, 0))
	}
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}

	st := c.Stats()
	if st.Session != "s" {
		t.Errorf("Session = %q", st.Session)
	}
	want := KindStats{
		Inserts: 5, Repeats: 4, Unique: 1, Records: 1, Flushes: 1,
		Patterns: map[repetition.Code]int{repetition.CodeRow: 1},
	}
	if diff := cmp.Diff(want, st.Kinds[shape.KindBox]); diff != "" {
		t.Errorf("box stats (-want +got):\n%s", diff)
	}
	if total := st.Total(); total.Inserts != 5 || total.Records != 1 {
		t.Errorf("Total() = %+v", total)
	}
	if s := counter.Kind("box"); s.Inserts != 5 || s.Repeats != 4 {
		t.Errorf("cache hooks = %+v", s)
	}
}

func TestSessionDefaultsToUUID(t *testing.T) {
	a, b := New(writer.NewNull()), New(writer.NewNull())
	if len(a.Session()) != 36 || a.Session() == b.Session() {
		t.Errorf("sessions %q, %q", a.Session(), b.Session())
	}
}
