package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapecache/pkg/cache"
	"github.com/matzehuels/shapecache/pkg/config"
	"github.com/matzehuels/shapecache/pkg/errors"
	shapeio "github.com/matzehuels/shapecache/pkg/io"
	"github.com/matzehuels/shapecache/pkg/ordering"
	"github.com/matzehuels/shapecache/pkg/writer"
)

// settingsFlags are the flags that resolve a config.Repetition.
type settingsFlags struct {
	configFile string
	repetition string
	noGCD      bool
	sort       string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.repetition, "repetition", "r", "", `repetition settings, e.g. "m=4 a=2 x=10000 bpw"`)
	cmd.Flags().BoolVar(&f.noGCD, "no-gcd", false, "disable grid compaction of residual offsets")
	cmd.Flags().StringVar(&f.sort, "sort", "", "record ordering: auto, quick, search or none")
	cmd.Flags().StringVar(&f.configFile, "config", "", "TOML configuration file")
}

// resolve applies the config file, then any flags given on the command
// line. Bad settings are logged and returned as warnings.
func (f *settingsFlags) resolve(cmd *cobra.Command, logger *log.Logger) (config.Repetition, []error, error) {
	cfg := config.Default()
	var warnings []error

	if f.configFile != "" {
		var err error
		cfg, warnings, err = config.Load(f.configFile, logger)
		if err != nil {
			return cfg, nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("repetition") || flags.Changed("no-gcd") {
		spec := f.repetition
		if !flags.Changed("repetition") && f.configFile != "" {
			spec = cfg.String()
		}
		var w []error
		cfg, w = config.Parse(spec, f.noGCD, cfg, logger)
		warnings = append(warnings, w...)
	}
	if flags.Changed("sort") {
		mode, err := ordering.ParseMode(f.sort)
		if err != nil {
			return cfg, warnings, errors.Wrap(errors.ErrCodeInvalidConfig, err, "--sort")
		}
		cfg.Sort = mode
	}
	return cfg, warnings, nil
}

// compactCommand creates the compact command.
func (c *CLI) compactCommand() *cobra.Command {
	var (
		settings  settingsFlags
		output    string
		positions bool
		verify    bool
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "compact <input.jsonl>",
		Short: "Deduplicate a shape stream into repetition records",
		Long: `Compact reads a JSON-lines shape stream, stores every distinct shape once and
writes it back as one JSON record per repetition pattern.

Use "-" to read from standard input. Records go to standard output unless
--output is given; the summary table goes to standard error in that case.`,
		Example: `  shapecache compact layout.jsonl -o compact.jsonl
  shapecache compact layout.jsonl -r "m=6 a=0 bw" --no-gcd
  cat layout.jsonl | shapecache compact - --verify > /dev/null`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, _, err := settings.resolve(cmd, logger)
			if err != nil {
				return err
			}
			opts := compactOptions{
				input:     args[0],
				output:    output,
				positions: positions,
				verify:    verify,
				config:    cfg,
			}

			status := cmd.OutOrStdout()
			if output == "" {
				status = cmd.ErrOrStderr()
			}
			if quiet {
				status = io.Discard
			}
			return runCompact(cmd.Context(), logger, cmd.InOrStdin(), cmd.OutOrStdout(), status, opts)
		},
	}

	settings.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	cmd.Flags().BoolVar(&positions, "positions", false, "add expanded positions to every record")
	cmd.Flags().BoolVar(&verify, "verify", false, "check that the records expand back to the input")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the summary")

	return cmd
}

type compactOptions struct {
	input     string
	output    string
	positions bool
	verify    bool
	config    config.Repetition
}

// runCompact runs one export session from opts.input to opts.output.
func runCompact(ctx context.Context, logger *log.Logger, stdin io.Reader, stdout, status io.Writer, opts compactOptions) (err error) {
	session := uuid.New().String()
	base := logger
	logger = logger.With("session", session[:8])
	prog := newProgress(logger)

	in, verifyInput, closeIn, err := openInput(opts.input, stdin, opts.verify)
	if err != nil {
		return err
	}
	defer closeIn()

	out := stdout
	if opts.output != "" {
		f, createErr := os.Create(opts.output)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", opts.output, createErr)
		}
		defer closeInto(&err, f, opts.output)
		out = f
	}

	sinkOpts := []writer.JSONOption{writer.WithJSONSession(session)}
	if opts.positions {
		sinkOpts = append(sinkOpts, writer.WithJSONPositions())
	}
	sink := writer.NewJSONSink(out, sinkOpts...)

	var w writer.Writer = sink
	var rec *writer.Recorder
	if opts.verify {
		rec = writer.NewRecorder()
		w = writer.NewTee(sink, rec)
	}

	logger.Debug("starting session", "input", opts.input, "settings", opts.config.String(), "sort", opts.config.Sort)
	c := cache.New(w,
		cache.WithLogger(base),
		cache.WithConfig(opts.config),
		cache.WithSession(session),
		cache.WithFlushHooks(newFlushLogger(logger)),
	)

	fs, err := shapeio.Feed(c, w, contextReader{ctx: ctx, r: in})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Compacted %d shapes into %d records", fs.Items, sink.Written()))

	if opts.verify {
		input, err := verifyInput()
		if err != nil {
			return err
		}
		if err := verifyRecords(input, rec); err != nil {
			return err
		}
		printSuccess(status, "Verified %d shapes", fs.Items)
	}

	printSummary(status, c.Stats())
	if fs.Direct > 0 {
		printDetail(status, "%d shapes of unselected kinds written directly", fs.Direct)
	}
	if opts.output != "" {
		printFile(status, opts.output)
	}
	return nil
}

// openInput opens path, or stdin for "-". When keep is set, replay decodes
// the input a second time for verification: files are read again from
// disk, stdin is held in memory.
func openInput(path string, stdin io.Reader, keep bool) (r io.Reader, replay func() ([]shapeio.Item, error), closeFn func(), err error) {
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open %s: %w", path, err)
		}
		replay = func() ([]shapeio.Item, error) { return shapeio.ImportFile(path) }
		return f, replay, func() { f.Close() }, nil
	}
	if !keep {
		return stdin, nil, func() {}, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read stdin: %w", err)
	}
	replay = func() ([]shapeio.Item, error) {
		var items []shapeio.Item
		err := shapeio.Decode(bytes.NewReader(data), func(_ int, it shapeio.Item) error {
			items = append(items, it)
			return nil
		})
		return items, err
	}
	return bytes.NewReader(data), replay, func() {}, nil
}

// verifyRecords checks that the recorded output expands to exactly the
// input shapes.
func verifyRecords(input []shapeio.Item, rec *writer.Recorder) error {
	var output []shapeio.Item
	for _, r := range rec.Records {
		output = append(output, shapeio.FromRecord(r)...)
	}
	want, got := shapeio.Multiset(input), shapeio.Multiset(output)

	var missing, extra []string
	for k, n := range want {
		if got[k] < n {
			missing = append(missing, k)
		}
	}
	for k, n := range got {
		if want[k] < n {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	slices.Sort(missing)
	slices.Sort(extra)
	return errors.New(errors.ErrCodeInternal,
		"verification failed: %d shapes missing (first %s), %d unexpected (first %s)",
		len(missing), first(missing), len(extra), first(extra))
}

func first(s []string) string {
	if len(s) == 0 {
		return "none"
	}
	return s[0]
}

// closeInto closes c and reports a failure through *err unless an earlier
// error is already set.
func closeInto(err *error, c io.Closer, name string) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close %s: %w", name, cerr)
	}
}

// contextReader fails reads once ctx is done, so an interrupt stops a
// long stream at the next line.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
