package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sumatoshi-tech/compbench/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "compbench.yaml")

	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	if len(cfg.Methods) != 0 {
		t.Fatalf("expected empty default method selection, got %v", cfg.Methods)
	}

	if cfg.Workers != config.DefaultWorkers {
		t.Fatalf("unexpected default workers: %d", cfg.Workers)
	}

	block, err := cfg.BlockSizeBytes()
	if err != nil {
		t.Fatalf("parse default block size: %v", err)
	}

	if block != 4096 {
		t.Fatalf("expected 4096 default block size, got %d", block)
	}

	if cfg.Format != "table" || cfg.Timeout != 0 || cfg.Verify {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
methods:
  - zstd*
  - gzip-9
workers: 2
block_size: 8KiB
format: json
timeout: 30s
verify: true
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if len(cfg.Methods) != 2 || cfg.Methods[0] != "zstd*" {
		t.Fatalf("unexpected methods: %v", cfg.Methods)
	}

	if cfg.Workers != 2 || cfg.Format != "json" || !cfg.Verify {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Timeout)
	}

	block, err := cfg.BlockSizeBytes()
	if err != nil {
		t.Fatalf("parse block size: %v", err)
	}

	if block != 8192 {
		t.Fatalf("expected 8192, got %d", block)
	}
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"negative workers", "workers: -1"},
		{"bad format", "format: csv"},
		{"bad block size", "block_size: banana"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeConfig(t, tc.content))
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
