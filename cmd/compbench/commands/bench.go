package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/compbench/internal/bench"
	"github.com/Sumatoshi-tech/compbench/internal/corpus"
	"github.com/Sumatoshi-tech/compbench/internal/method"
	"github.com/Sumatoshi-tech/compbench/internal/report"
)

// executeBenchmark is the default bench executor: select methods, stage
// the corpus, cross files with methods, aggregate, render.
func executeBenchmark(
	ctx context.Context,
	registry *method.Registry,
	opts RunOptions,
	out io.Writer,
	diag *report.Diagnostics,
) error {
	selector := method.NewSelector(registry)

	methods, warnings, err := selector.Resolve(opts.Patterns)
	for _, warning := range warnings {
		diag.Warnf("%s", warning)
	}

	if err != nil {
		return err
	}

	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, m.Name())
	}

	diag.Progressf("methods: %s", strings.Join(names, " "))

	stager, err := corpus.NewStager(diag.Warnf)
	if err != nil {
		return err
	}
	defer stager.Close()

	startedAt := time.Now()

	files, err := stager.Stage(opts.Paths)
	if err != nil {
		return err
	}

	diag.Progressf("staged %d files in %s", len(files), time.Since(startedAt).Round(time.Millisecond))

	workDir := filepath.Join(stager.Root(), "work")

	err = os.MkdirAll(workDir, 0o755)
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}

	runner := bench.NewRunner(workDir)
	runner.Timeout = opts.Timeout
	runner.Verify = opts.Verify

	agg := bench.NewAggregator(opts.BlockSize, names)

	var sink bench.Sink
	if opts.Verbose {
		sink = report.NewVerboseSink(diag)
	}

	startedAt = time.Now()

	bench.RunAll(ctx, runner, methods, files, opts.Workers, agg, sink)

	if ctx.Err() != nil {
		diag.Warnf("interrupted; reporting partial results")
	} else {
		diag.Progressf("benchmark finished in %s", time.Since(startedAt).Round(time.Millisecond))
	}

	return report.Render(out, opts.Format, agg.Rows())
}
