package geom

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// GridFactor returns the largest integer g that divides every value.
//
// Layout offsets are usually multiples of decimal grid steps, so shared
// factors of 2 and 5 are divided out first; the GCD of what remains is
// then multiplied back in. A set of all-zero values, or an empty set, has
// grid factor 1.
func GridFactor(vals ...int64) int64 {
	rest := make([]int64, 0, len(vals))
	for _, v := range vals {
		if v != 0 {
			rest = append(rest, abs(v))
		}
	}
	if len(rest) == 0 {
		return 1
	}

	g := int64(1)
	for _, f := range [...]int64{2, 5} {
		for divisibleBy(rest, f) {
			for i := range rest {
				rest[i] /= f
			}
			g *= f
		}
	}

	r := rest[0]
	for _, v := range rest[1:] {
		if r == 1 {
			break
		}
		r = GCD(r, v)
	}
	return g * r
}

// PointsGridFactor is GridFactor over both components of every point.
func PointsGridFactor(pts []Point) int64 {
	vals := make([]int64, 0, 2*len(pts))
	for _, p := range pts {
		vals = append(vals, p.X, p.Y)
	}
	return GridFactor(vals...)
}

func divisibleBy(vals []int64, f int64) bool {
	for _, v := range vals {
		if v%f != 0 {
			return false
		}
	}
	return true
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
