// Package config loads compbench settings from file, environment, and
// defaults.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/compbench/internal/report"
)

// Defaults.
const (
	// DefaultWorkers of 0 means "use the host's core count".
	DefaultWorkers = 0

	// DefaultBlockSize models a 4 KiB filesystem allocation unit.
	DefaultBlockSize = "4096"

	DefaultFormat = report.FormatTable

	// DefaultTimeout of 0 imposes no per-invocation timeout; benchmarks
	// measure true elapsed time.
	DefaultTimeout = time.Duration(0)

	DefaultVerify = false
)

// ErrInvalidConfig is returned for settings that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all run settings.
type Config struct {
	// Methods is the default method pattern selection; empty selects all.
	Methods []string `mapstructure:"methods"`

	// Workers caps parallel (file, method) invocations; 0 = core count.
	Workers int `mapstructure:"workers"`

	// BlockSize is the rounding granularity, humanized ("4096", "4KiB").
	BlockSize string `mapstructure:"block_size"`

	// Format selects the report renderer.
	Format string `mapstructure:"format"`

	// Timeout bounds a single compressor invocation; 0 disables.
	Timeout time.Duration `mapstructure:"timeout"`

	// Verify enables decompress round-trip checking.
	Verify bool `mapstructure:"verify"`
}

// BlockSizeBytes parses the humanized block size.
func (c *Config) BlockSizeBytes() (int64, error) {
	parsed, err := humanize.ParseBytes(c.BlockSize)
	if err != nil {
		return 0, fmt.Errorf("%w: block_size %q: %w", ErrInvalidConfig, c.BlockSize, err)
	}

	return int64(parsed), nil
}

// Validate checks settings before any work starts; a bad value here is a
// fatal configuration error.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}

	block, err := c.BlockSizeBytes()
	if err != nil {
		return err
	}

	if block <= 0 {
		return fmt.Errorf("%w: block_size must be positive, got %d", ErrInvalidConfig, block)
	}

	if !slices.Contains(report.Formats(), c.Format) {
		return fmt.Errorf("%w: format %q (supported: %v)", ErrInvalidConfig, c.Format, report.Formats())
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be >= 0, got %s", ErrInvalidConfig, c.Timeout)
	}

	return nil
}
