// Package config holds the repetition settings of a shape cache and parses
// them from the compact token string producers pass in, or from a TOML file.
//
// The token grammar is a whitespace-separated list:
//
//	r            disable periodicity (runs and arrays)
//	m=<n>        shortest run, 4..65535
//	a=<n>        smallest array dimension, 0 (disabled) or 2..65535
//	t=<n>        flush after n repetitions, 0 (disabled) or 100..1000000000
//	x=<n>        flush at n unique shapes, 10..50000
//	d            log every emitted pattern
//	[bpwlc]+     select the participating kinds
//
// A malformed or out-of-range token is reported as a warning and the
// previous value of its setting is kept. Parsing never fails.
package config

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapecache/pkg/errors"
	"github.com/matzehuels/shapecache/pkg/ordering"
	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// Limits of the numeric settings.
const (
	RunMinMin, RunMinMax     = repetition.MinRun, 65535
	ArrayMinMin, ArrayMinMax = 2, 65535
	MaxRepsMin, MaxRepsMax   = 100, 1000000000
	MaxItemsMin, MaxItemsMax = 10, 50000
)

// Defaults.
const (
	DefaultRunMin   = repetition.DefaultRunMin
	DefaultArrayMin = repetition.DefaultArrayMin
	DefaultMaxReps  = 0
	DefaultMaxItems = 10000
)

// Repetition is the resolved configuration of one cache.
type Repetition struct {
	Periodic bool
	RunMin   int
	ArrayMin int
	// MaxReps triggers a flush once a kind has seen more repeated
	// insertions than this. Zero disables the trigger.
	MaxReps int
	// MaxItems triggers a flush once a kind holds this many unique shapes.
	MaxItems int
	Debug    bool
	Kinds    shape.KindSet
	// NoGCD disables grid compaction of residuals.
	NoGCD bool
	Sort  ordering.Mode
}

// Default returns the default settings: periodic, m=4 a=2 t=0 x=10000, all
// kinds.
func Default() Repetition {
	return Repetition{
		Periodic: true,
		RunMin:   DefaultRunMin,
		ArrayMin: DefaultArrayMin,
		MaxReps:  DefaultMaxReps,
		MaxItems: DefaultMaxItems,
		Kinds:    shape.AllKinds,
		Sort:     ordering.ModeAuto,
	}
}

// Builder returns the repetition builder these settings describe.
func (r Repetition) Builder() repetition.Builder {
	return repetition.Builder{
		RunMin:         r.RunMin,
		ArrayMin:       r.ArrayMin,
		Periodic:       r.Periodic,
		GridCompaction: !r.NoGCD,
	}
}

// String formats r as a token string that Parse maps back to r, apart from
// NoGCD and Sort which are not part of the grammar.
func (r Repetition) String() string {
	var parts []string
	if !r.Periodic {
		parts = append(parts, "r")
	}
	parts = append(parts,
		"m="+strconv.Itoa(r.RunMin),
		"a="+strconv.Itoa(r.ArrayMin),
		"t="+strconv.Itoa(r.MaxReps),
		"x="+strconv.Itoa(r.MaxItems),
	)
	if r.Debug {
		parts = append(parts, "d")
	}
	if r.Kinds != shape.AllKinds {
		parts = append(parts, r.Kinds.String())
	}
	return strings.Join(parts, " ")
}

// Parse applies the token string spec on top of prev. Numeric settings not
// named in spec keep their value from prev; the flags r and d and the kind
// selection are taken from spec alone, so an empty spec restores periodic
// mode without debug for all kinds. The returned warnings have code
// INVALID_CONFIG and are also logged on logger, which may be nil.
func Parse(spec string, noGCD bool, prev Repetition, logger *log.Logger) (Repetition, []error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	r := prev
	r.Periodic = true
	r.Debug = false
	r.NoGCD = noGCD
	var kinds shape.KindSet

	var warnings []error
	warn := func(err error) {
		logger.Warn("ignoring repetition setting", "err", errors.UserMessage(err))
		warnings = append(warnings, err)
	}

	for _, tok := range strings.Fields(spec) {
		switch {
		case tok == "r":
			r.Periodic = false
		case tok == "d":
			r.Debug = true
		case len(tok) > 2 && tok[1] == '=':
			if err := r.set(tok[0], tok[2:]); err != nil {
				warn(err)
			}
		default:
			set, err := parseKinds(tok)
			if err != nil {
				warn(err)
				continue
			}
			kinds |= set
		}
	}

	r.Kinds = kinds
	if kinds == 0 {
		r.Kinds = shape.AllKinds
	}
	return r, warnings
}

func (r *Repetition) set(key byte, value string) error {
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%c=%s is not an integer", key, value)
	}
	name := string(key)
	switch key {
	case 'm':
		err = errors.ValidateRange(name, v, RunMinMin, RunMinMax, false)
		if err == nil {
			r.RunMin = int(v)
		}
	case 'a':
		err = errors.ValidateRange(name, v, ArrayMinMin, ArrayMinMax, true)
		if err == nil {
			r.ArrayMin = int(v)
		}
	case 't':
		err = errors.ValidateRange(name, v, MaxRepsMin, MaxRepsMax, true)
		if err == nil {
			r.MaxReps = int(v)
		}
	case 'x':
		err = errors.ValidateRange(name, v, MaxItemsMin, MaxItemsMax, false)
		if err == nil {
			r.MaxItems = int(v)
		}
	default:
		err = errors.New(errors.ErrCodeInvalidConfig, "unknown setting %q", name)
	}
	return err
}

func parseKinds(tok string) (shape.KindSet, error) {
	var set shape.KindSet
	for i := range len(tok) {
		k, ok := shape.KindForLetter(tok[i])
		if !ok {
			return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown token %q", tok)
		}
		set = set.With(k)
	}
	return set, nil
}
