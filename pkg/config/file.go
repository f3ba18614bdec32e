package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapecache/pkg/errors"
	"github.com/matzehuels/shapecache/pkg/ordering"
)

// File is the TOML configuration file layout.
//
//	[repetition]
//	spec = "m=4 a=2 x=10000"
//	no_gcd = false
//	sort = "auto"
type File struct {
	Repetition struct {
		Spec  string `toml:"spec"`
		NoGCD bool   `toml:"no_gcd"`
		Sort  string `toml:"sort"`
	} `toml:"repetition"`
}

// Load reads a TOML configuration file and resolves it against the
// defaults. Bad settings inside the file are warnings, as with Parse; only
// an unreadable or syntactically invalid file is an error.
func Load(path string, logger *log.Logger) (Repetition, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Repetition{}, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Decode(data, logger)
}

// Decode resolves TOML configuration data against the defaults.
func Decode(data []byte, logger *log.Logger) (Repetition, []error, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return Repetition{}, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}

	r, warnings := Parse(f.Repetition.Spec, f.Repetition.NoGCD, Default(), logger)

	mode, err := ordering.ParseMode(f.Repetition.Sort)
	if err != nil {
		w := errors.Wrap(errors.ErrCodeInvalidConfig, err, "sort")
		if logger != nil {
			logger.Warn("ignoring sort mode", "err", err)
		}
		warnings = append(warnings, w)
	} else {
		r.Sort = mode
	}
	return r, warnings, nil
}
