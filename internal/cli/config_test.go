package cli

import (
	"strings"
	"testing"
)

func TestConfigCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults",
			args: []string{"config"},
			want: []string{"run min", "10000", "bpwlc (all)", "auto"},
		},
		{
			name: "tokens",
			args: []string{"config", "m=6 a=0 bw", "--sort", "quick"},
			want: []string{"6", "0 (disabled)", "bw", "quick"},
		},
		{
			name: "fallback",
			args: []string{"config", "m=3 x=20"},
			want: []string{"m=3 out of range", "m=4 a=2 t=0 x=20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "", tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(stdout, w) {
					t.Errorf("output missing %q:\n%s", w, stdout)
				}
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `"go_version"`) {
		t.Errorf("version output = %s", stdout)
	}
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "shapecache") {
		t.Error("bash completion does not mention the command")
	}
}
