package shape

import (
	"hash/fnv"
	"math"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// hasher feeds fixed-width little-endian fields into FNV-1a.
type hasher struct {
	buf []byte
}

func newHasher() *hasher { return &hasher{buf: make([]byte, 0, 64)} }

func (h *hasher) u64(v uint64) {
	h.buf = append(h.buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func (h *hasher) i64(v int64)   { h.u64(uint64(v)) }
func (h *hasher) u32(v uint32)  { h.u64(uint64(v)) }
func (h *hasher) f64(v float64) { h.u64(math.Float64bits(v)) }

func (h *hasher) bool(v bool) {
	if v {
		h.buf = append(h.buf, 1)
	} else {
		h.buf = append(h.buf, 0)
	}
}

// string writes the length first so adjacent strings cannot alias.
func (h *hasher) string(s string) {
	h.u64(uint64(len(s)))
	h.buf = append(h.buf, s...)
}

func (h *hasher) points(pts []geom.Point) {
	h.u64(uint64(len(pts)))
	for _, p := range pts {
		h.i64(p.X)
		h.i64(p.Y)
	}
}

func (h *hasher) sum() uint64 {
	f := fnv.New64a()
	_, _ = f.Write(h.buf) // fnv.Write never returns an error
	return f.Sum64()
}

// withProperties folds an order-independent property hash into a field hash.
func withProperties(fields uint64, ps Properties) uint64 {
	return fields ^ (ps.Hash() * 0x9e3779b97f4a7c15)
}
