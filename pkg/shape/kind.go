package shape

// Kind identifies one of the five canonical shape variants.
type Kind int

const (
	KindBox Kind = iota
	KindPolygon
	KindPath
	KindLabel
	KindPlacement
)

// Kinds lists every kind in flush order.
var Kinds = [...]Kind{KindBox, KindPolygon, KindPath, KindLabel, KindPlacement}

var kindNames = [...]string{
	KindBox:       "box",
	KindPolygon:   "polygon",
	KindPath:      "path",
	KindLabel:     "label",
	KindPlacement: "placement",
}

// kindLetters are the selector letters of the repetition configuration
// string: b(oxes) p(olygons) w(ires) l(abels) c(ell placements).
var kindLetters = [...]byte{
	KindBox:       'b',
	KindPolygon:   'p',
	KindPath:      'w',
	KindLabel:     'l',
	KindPlacement: 'c',
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Letter returns the configuration selector letter for k.
func (k Kind) Letter() byte {
	if k < 0 || int(k) >= len(kindLetters) {
		return 0
	}
	return kindLetters[k]
}

// ParseKind maps a kind name to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// KindForLetter maps a configuration selector letter to its Kind.
func KindForLetter(c byte) (Kind, bool) {
	for k, l := range kindLetters {
		if l == c {
			return Kind(k), true
		}
	}
	return 0, false
}

// KindSet is a bit set of kinds.
type KindSet uint8

// AllKinds has every kind selected.
const AllKinds KindSet = 1<<len(Kinds) - 1

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool { return s&(1<<k) != 0 }

// With returns s with k added.
func (s KindSet) With(k Kind) KindSet { return s | 1<<k }

// String lists the selector letters of the kinds in s, e.g. "bpw".
func (s KindSet) String() string {
	var b []byte
	for _, k := range Kinds {
		if s.Has(k) {
			b = append(b, k.Letter())
		}
	}
	return string(b)
}

// Shape is implemented by the pointer form of every canonical variant.
type Shape interface {
	Kind() Kind
	// LayerDatatype returns the modal layer pair of the shape; ok is false
	// for placements, which carry no layer.
	LayerDatatype() (layer, datatype uint32, ok bool)
	Properties() Properties
}
