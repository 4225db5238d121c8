// Package bench runs compression methods against staged files and folds
// the outcomes into per-method summaries.
package bench

import (
	"time"

	"github.com/Sumatoshi-tech/compbench/internal/corpus"
)

// FailureReason classifies why a single invocation produced no usable
// measurement.
type FailureReason string

// Failure reasons.
const (
	FailNone        FailureReason = ""
	FailToolMissing FailureReason = "tool-missing"
	FailNonZeroExit FailureReason = "non-zero-exit"
	FailNoOutput    FailureReason = "no-output"
	FailCancelled   FailureReason = "cancelled"
	FailVerify      FailureReason = "verify-mismatch"
)

// Result is the outcome of running one method against one staged file.
// When OK is false, OutBytes and Elapsed are undefined and must never be
// folded into aggregates.
type Result struct {
	Method string
	File   corpus.StagedFile

	OK     bool
	Reason FailureReason

	InBytes  int64
	OutBytes int64
	Elapsed  time.Duration
}
