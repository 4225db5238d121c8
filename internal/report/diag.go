package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/compbench/internal/bench"
)

// Diagnostics writes warnings and progress lines to a side channel,
// keeping the result stream clean for piping.
type Diagnostics struct {
	mu     sync.Mutex
	w      io.Writer
	warn   *color.Color
	silent bool
}

// NewDiagnostics creates a diagnostics writer. Silent suppresses progress
// lines but never warnings.
func NewDiagnostics(w io.Writer, noColor, silent bool) *Diagnostics {
	warn := color.New(color.FgYellow)
	if noColor {
		warn.DisableColor()
	}

	return &Diagnostics{w: w, warn: warn, silent: silent}
}

// Warnf reports an excluded file, missing tool, or similar non-fatal
// condition.
func (d *Diagnostics) Warnf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, _ = d.warn.Fprintf(d.w, "warning: "+format+"\n", args...)
}

// Progressf reports run phase transitions.
func (d *Diagnostics) Progressf(format string, args ...any) {
	if d.silent {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	_, _ = fmt.Fprintf(d.w, "progress: "+format+"\n", args...)
}

// VerboseSink streams one line per completed (file, method) invocation.
type VerboseSink struct {
	diag *Diagnostics
}

// NewVerboseSink creates a per-result progress sink.
func NewVerboseSink(diag *Diagnostics) *VerboseSink {
	return &VerboseSink{diag: diag}
}

// Completed implements bench.Sink.
func (v *VerboseSink) Completed(res bench.Result) {
	if !res.OK {
		v.diag.Warnf("%-12s %s: %s", res.Method, res.File.Rel, res.Reason)

		return
	}

	speed := float64(res.InBytes) / res.Elapsed.Seconds() / bytesPerMiB
	v.diag.Progressf("%-12s %s: %s -> %s in %s (%.2f MiB/s)",
		res.Method, res.File.Rel,
		humanize.Comma(res.InBytes), humanize.Comma(res.OutBytes),
		res.Elapsed.Round(time.Microsecond), speed)
}
