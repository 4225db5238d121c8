package bench

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sumatoshi-tech/compbench/internal/corpus"
	"github.com/Sumatoshi-tech/compbench/internal/method"
)

// Runner invokes one compression method against one staged file and
// measures only the subprocess boundary: staging and result parsing stay
// outside the timed interval.
type Runner struct {
	// WorkDir receives compressor outputs; it lives inside the stager's
	// scratch tree so cleanup is shared.
	WorkDir string

	// Timeout bounds a single invocation. Zero means no timeout, since
	// benchmarking intentionally measures true elapsed time.
	Timeout time.Duration

	// Verify enables round-trip checking for methods that carry a
	// decompress template.
	Verify bool

	seq uint64

	mu      sync.Mutex
	missing map[string]bool
}

// NewRunner creates a runner writing outputs under workDir.
func NewRunner(workDir string) *Runner {
	return &Runner{
		WorkDir: workDir,
		missing: make(map[string]bool),
	}
}

// Run executes the method's compress command for the staged file. The
// returned Result is always populated with Method, File, and InBytes, so
// failed invocations still reach the aggregator for zero-count rows.
func (r *Runner) Run(ctx context.Context, m method.Method, file corpus.StagedFile) Result {
	res := Result{Method: m.Name(), File: file, InBytes: file.Size}

	if r.toolMissing(m.Tool()) {
		res.Reason = FailToolMissing

		return res
	}

	outPath := r.nextOutputPath(m)
	defer os.Remove(outPath)

	elapsed, reason := r.invoke(ctx, m.ExpandCompress(file.Path, outPath), m.WritesToStdout(), outPath)
	if reason != FailNone {
		res.Reason = reason

		return res
	}

	info, err := os.Stat(outPath)
	if err != nil || info.Size() == 0 {
		// Non-empty input must yield non-empty output.
		res.Reason = FailNoOutput

		return res
	}

	if r.Verify && m.Decompress != nil {
		verifyErr := r.verifyRoundTrip(ctx, m, file, outPath)
		if verifyErr != FailNone {
			res.Reason = verifyErr

			return res
		}
	}

	res.OK = true
	res.OutBytes = info.Size()
	res.Elapsed = elapsed

	return res
}

// invoke runs argv with the timer wrapped tightly around the subprocess.
func (r *Runner) invoke(ctx context.Context, argv []string, stdoutMode bool, outPath string) (time.Duration, FailureReason) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var out *os.File

	if stdoutMode {
		f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return 0, FailNoOutput
		}

		out = f
		cmd.Stdout = f
	}

	started := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(started)

	if out != nil {
		out.Close()
	}

	if runErr != nil {
		os.Remove(outPath)

		if ctx.Err() != nil {
			return 0, FailCancelled
		}

		return 0, FailNonZeroExit
	}

	return elapsed, FailNone
}

// verifyRoundTrip decompresses the produced output and byte-compares it
// against the staged input. Runs outside the timed interval.
func (r *Runner) verifyRoundTrip(ctx context.Context, m method.Method, file corpus.StagedFile, compressed string) FailureReason {
	restored := compressed + ".restored"
	defer os.Remove(restored)

	_, reason := r.invoke(ctx, m.ExpandDecompress(compressed, restored), m.DecompressWritesToStdout(), restored)
	if reason != FailNone {
		return reason
	}

	original, err := os.ReadFile(file.Path)
	if err != nil {
		return FailVerify
	}

	roundTripped, err := os.ReadFile(restored)
	if err != nil {
		return FailVerify
	}

	if !bytes.Equal(original, roundTripped) {
		return FailVerify
	}

	return FailNone
}

// toolMissing checks executable availability once per tool and caches the
// answer, so an absent compressor fails every file cheaply.
func (r *Runner) toolMissing(tool string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	missing, checked := r.missing[tool]
	if !checked {
		_, err := exec.LookPath(tool)
		missing = err != nil
		r.missing[tool] = missing
	}

	return missing
}

func (r *Runner) nextOutputPath(m method.Method) string {
	n := atomic.AddUint64(&r.seq, 1)
	name := strings.ReplaceAll(m.Name(), string(filepath.Separator), "_")

	return filepath.Join(r.WorkDir, fmt.Sprintf("out-%s-%d%s", name, n, m.Suffix))
}
