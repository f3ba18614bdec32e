package io

import (
	"testing"

	"github.com/matzehuels/shapecache/pkg/config"
)

func mustParse(t *testing.T, spec string) config.Repetition {
	t.Helper()
	r, warnings := config.Parse(spec, false, config.Default(), nil)
	if len(warnings) != 0 {
		t.Fatalf("Parse(%q): %v", spec, warnings)
	}
	return r
}
