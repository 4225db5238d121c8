package bench

import (
	"context"
	"runtime"
	"sync"

	"github.com/Sumatoshi-tech/compbench/internal/corpus"
	"github.com/Sumatoshi-tech/compbench/internal/method"
)

// Sink receives each result as it completes. Implementations drive
// progress or verbose per-file output; the harness does not depend on
// them for correctness.
type Sink interface {
	Completed(Result)
}

// task is one (file, method) pair.
type task struct {
	m    method.Method
	file corpus.StagedFile
}

// RunAll crosses every staged file with every selected method and folds
// the results into agg. Workers are capped at the host's core count:
// oversubscribing CPU-bound compressors would make wall-clock timings
// unreliable.
//
// Cancellation stops dispatching new tasks; in-flight subprocesses are
// killed through the context. Partial summaries remain valid and the
// caller still renders them.
func RunAll(
	ctx context.Context,
	runner *Runner,
	methods []method.Method,
	files []corpus.StagedFile,
	workers int,
	agg *Aggregator,
	sink Sink,
) {
	if workers < 1 || workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	tasks := make(chan task)

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for t := range tasks {
				res := runner.Run(ctx, t.m, t.file)
				agg.Fold(res)

				if sink != nil {
					sink.Completed(res)
				}
			}
		}()
	}

	// Files outer, methods inner: matches the per-file sweep of the
	// sequential path and keeps a method's results loosely clustered.
dispatch:
	for _, file := range files {
		for _, m := range methods {
			select {
			case tasks <- task{m: m, file: file}:
			case <-ctx.Done():
				break dispatch
			}
		}
	}

	close(tasks)
	wg.Wait()
}
