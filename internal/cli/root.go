package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"seqkernel/internal/cmdutil"
	"seqkernel/internal/config"
	"seqkernel/internal/dispatch"
	"seqkernel/internal/metrics"
	"seqkernel/internal/writers"
)

// Version is stamped at build time with -ldflags "-X seqkernel/internal/cli.Version=...".
var Version = "dev"

// RootOptions holds global flags for all commands, plus the runtime the
// root command builds before any subcommand runs.
type RootOptions struct {
	Format   string // "text" | "tsv" | "json" | "jsonl"
	Config   string
	Quiet    bool
	Verbose  bool
	Threads  int
	Metrics  bool
	NoHeader bool
	Pretty   bool

	cfg  *config.Config
	log  *slog.Logger
	m    *metrics.Metrics
	pool *dispatch.Pool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "tsv", "json", "jsonl"}

// NewRootCommand creates the seqkernel command tree.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seqkernel",
		Short:         "seqkernel - genome sequence compute kernel",
		Long:          "Counts k-mers, compares sequences, scans for repeats and skew, lays out viewport grids\nand detects bonds, running every call on a pool of single-threaded kernels.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "invalid flags", err)
	})

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.Format, "format", "text", "output format: text | tsv | json | jsonl [text]")
	pf.StringVar(&opts.Config, "config", "", "YAML config file (overrides $"+config.EnvPath+") []")
	pf.BoolVarP(&opts.Quiet, "quiet", "q", false, "only warnings and errors on stderr [false]")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr [false]")
	pf.IntVar(&opts.Threads, "threads", 0, "number of kernel workers (0 = config, then all CPUs) [0]")
	pf.BoolVar(&opts.Metrics, "metrics", false, "dump Prometheus metrics to stderr on exit [false]")
	pf.BoolVar(&opts.NoHeader, "no-header", false, "suppress header line in text/TSV [false]")
	pf.BoolVar(&opts.Pretty, "pretty", true, "render ASCII blocks in text mode where available (off when stdout is not a terminal) [true]")

	// Add subcommands
	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewRevcompCommand(opts))
	cmd.AddCommand(NewEntropyCommand(opts))
	cmd.AddCommand(NewKmersCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewDistanceCommand(opts))
	cmd.AddCommand(NewPCACommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewSkewCommand(opts))
	cmd.AddCommand(NewPalindromesCommand(opts))
	cmd.AddCommand(NewRepeatsCommand(opts))
	cmd.AddCommand(NewGridCommand(opts))
	cmd.AddCommand(NewBondsCommand(opts))
	cmd.AddCommand(NewDependenceCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// setup validates the global flags and starts the logger, metrics and the
// dispatcher. It is idempotent.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if o.pool != nil {
		return nil
	}
	if !isValidFormat(o.Format) {
		return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	if o.Threads < 0 {
		return NewExitError(ExitUsage, "--threads must be ≥ 0")
	}
	cfg, err := config.Load(config.Path(o.Config))
	if err != nil {
		return WrapExitError(ExitUsage, "load config", err)
	}
	if o.Threads > 0 {
		cfg.Workers.Threads = o.Threads
	}
	if !cmd.Flags().Changed("pretty") && !isTerminal(cmd.OutOrStdout()) {
		o.Pretty = false
	}
	o.cfg = cfg
	o.log = cmdutil.NewLogger(cmd.ErrOrStderr(), o.Quiet, o.Verbose)
	o.m = metrics.New()
	o.pool = dispatch.New(dispatch.Config{
		Threads: cfg.ThreadCount(),
		Queue:   cfg.Workers.Queue,
		Kernel:  cfg.KernelOptions(),
	}, o.m, o.log)
	return nil
}

// teardown stops the dispatcher and dumps metrics when asked to.
func (o *RootOptions) teardown(stderr io.Writer) error {
	if o.pool == nil {
		return nil
	}
	err := o.pool.Close()
	o.pool = nil
	if o.Metrics && o.m != nil {
		if mErr := o.m.WriteText(stderr, false); err == nil {
			err = mErr
		}
	}
	return err
}

// isTerminal reports whether w is a terminal; writers that are not files
// count as one.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (o *RootOptions) writerOptions() writers.Options {
	return writers.Options{Header: !o.NoHeader, Pretty: o.Pretty}
}

func (o *RootOptions) jsonErrors() bool { return o.Format == "json" || o.Format == "jsonl" }

// Run executes the command tree on argv and returns the process exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := NewRootCommand(opts)
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if tErr := opts.teardown(stderr); err == nil && tErr != nil {
		err = WrapExitError(ExitFailure, "shutdown", tErr)
	}
	code := GetExitCode(err)
	if code != ExitSuccess && code != ExitInterrupted {
		reportError(stderr, opts.jsonErrors(), err)
	}
	return code
}
