package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapecache/pkg/config"
	"github.com/matzehuels/shapecache/pkg/errors"
)

// configCommand creates the config command, which resolves repetition
// settings and prints the result.
func (c *CLI) configCommand() *cobra.Command {
	var settings settingsFlags

	cmd := &cobra.Command{
		Use:   `config ["<tokens>"]`,
		Short: "Resolve and print repetition settings",
		Long: `Config parses a repetition settings string the way compact does and prints
the resolved values. Rejected tokens are reported and keep their defaults.

Tokens:
  r          disable runs and arrays
  m=<n>      shortest run (4..65535)
  a=<n>      smallest array dimension (0 or 2..65535)
  t=<n>      flush after n repetitions (0 or 100..1000000000)
  x=<n>      flush at n unique shapes (10..50000)
  d          log every emitted pattern
  [bpwlc]+   cache only boxes, polygons, paths (wires), labels, placements`,
		Example: `  shapecache config "m=6 a=0 bw"
  shapecache config --config shapecache.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if len(args) == 1 {
				if err := cmd.Flags().Set("repetition", args[0]); err != nil {
					return err
				}
			}
			cfg, warnings, err := settings.resolve(cmd, logger)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, warning := range warnings {
				printWarning(w, "%s", errors.UserMessage(warning))
			}
			printSettings(w, cfg)
			return nil
		},
	}

	settings.register(cmd)
	return cmd
}

// printSettings prints every resolved setting.
func printSettings(w io.Writer, cfg config.Repetition) {
	kinds := cfg.Kinds.String()
	if len(kinds) == 5 {
		kinds += " (all)"
	}
	printKeyValue(w, "periodic", strconv.FormatBool(cfg.Periodic))
	printKeyValue(w, "run min", strconv.Itoa(cfg.RunMin))
	printKeyValue(w, "array min", disabledIfZero(cfg.ArrayMin))
	printKeyValue(w, "max reps", disabledIfZero(cfg.MaxReps))
	printKeyValue(w, "max items", strconv.Itoa(cfg.MaxItems))
	printKeyValue(w, "debug", strconv.FormatBool(cfg.Debug))
	printKeyValue(w, "kinds", kinds)
	printKeyValue(w, "grid", strconv.FormatBool(!cfg.NoGCD))
	printKeyValue(w, "sort", cfg.Sort.String())
	printKeyValue(w, "tokens", cfg.String())
}

func disabledIfZero(n int) string {
	if n == 0 {
		return "0 (disabled)"
	}
	return strconv.Itoa(n)
}
