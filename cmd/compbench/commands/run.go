// Package commands implements CLI command handlers for compbench.
package commands

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/compbench/internal/config"
	"github.com/Sumatoshi-tech/compbench/internal/method"
	"github.com/Sumatoshi-tech/compbench/internal/report"
)

// ErrNoPaths is returned when run is invoked without corpus paths.
var ErrNoPaths = errors.New(
	"need at least one file or directory to benchmark\n" +
		"Run 'compbench list' to see supported methods",
)

// RunOptions holds resolved settings for one benchmark run.
type RunOptions struct {
	Paths     []string
	Patterns  []string
	Workers   int
	BlockSize int64
	Format    string
	Timeout   time.Duration
	Verify    bool
	Verbose   bool
}

type benchExecutor func(
	ctx context.Context,
	registry *method.Registry,
	opts RunOptions,
	out io.Writer,
	diag *report.Diagnostics,
) error

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	patterns   []string
	workers    int
	blockSize  string
	format     string
	timeout    time.Duration
	verify     bool
	verbose    bool
	silent     bool
	noColor    bool
	configPath string

	exec benchExecutor
}

// NewRunCommand creates the benchmark run command.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(executeBenchmark)
}

func newRunCommandWithDeps(exec benchExecutor) *cobra.Command {
	rc := &RunCommand{exec: exec}

	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Benchmark compression methods against files or directories",
		Long: "Stage the given files or directories into a scratch area, run every\n" +
			"selected compression method against each staged file, and report\n" +
			"per-method aggregate statistics.",
		Args: cobra.ArbitraryArgs,
		RunE: rc.run,
	}

	cmd.Flags().StringSliceVarP(&rc.patterns, "methods", "m", nil,
		"Method names or glob patterns (example: zstd-19,gzip-*,br-best)")
	cmd.Flags().IntVar(&rc.workers, "workers", config.DefaultWorkers,
		"Number of parallel workers (0 = use CPU count, 1 = sequential)")
	cmd.Flags().StringVar(&rc.blockSize, "block-size", config.DefaultBlockSize,
		"Block rounding granularity (e.g. '4096', '8KiB')")
	cmd.Flags().StringVar(&rc.format, "format", config.DefaultFormat,
		"Output format: table, json, yaml, plot")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", config.DefaultTimeout,
		"Per-invocation timeout (0 = none)")
	cmd.Flags().BoolVar(&rc.verify, "verify", config.DefaultVerify,
		"Round-trip each output through the method's decompressor")
	cmd.Flags().BoolVarP(&rc.verbose, "verbose", "v", false,
		"Show each file being processed and its statistics")
	cmd.Flags().BoolVar(&rc.silent, "silent", false, "Disable progress output")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored diagnostics")
	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file path (default: .compbench.yaml in CWD or $HOME)")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ErrNoPaths
	}

	opts, err := rc.resolveOptions(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	diag := report.NewDiagnostics(cmd.ErrOrStderr(), rc.noColor, rc.isSilent(cmd))

	return rc.exec(ctx, method.BuiltinRegistry(), opts, cmd.OutOrStdout(), diag)
}

// resolveOptions merges the config file with explicitly set flags; a flag
// the user touched always wins.
func (rc *RunCommand) resolveOptions(cmd *cobra.Command, args []string) (RunOptions, error) {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return RunOptions{}, err
	}

	if cmd.Flags().Changed("methods") {
		cfg.Methods = rc.patterns
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = rc.workers
	}

	if cmd.Flags().Changed("block-size") {
		cfg.BlockSize = rc.blockSize
	}

	if cmd.Flags().Changed("format") {
		cfg.Format = rc.format
	}

	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = rc.timeout
	}

	if cmd.Flags().Changed("verify") {
		cfg.Verify = rc.verify
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return RunOptions{}, validateErr
	}

	blockSize, blockErr := cfg.BlockSizeBytes()
	if blockErr != nil {
		return RunOptions{}, blockErr
	}

	return RunOptions{
		Paths:     args,
		Patterns:  cfg.Methods,
		Workers:   cfg.Workers,
		BlockSize: blockSize,
		Format:    cfg.Format,
		Timeout:   cfg.Timeout,
		Verify:    cfg.Verify,
		Verbose:   rc.verbose,
	}, nil
}

func (rc *RunCommand) isSilent(cmd *cobra.Command) bool {
	if rc.silent {
		return true
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return false
	}

	return quiet
}
