// Package corpus stages input files into an isolated scratch area before
// any compressor touches them. Staging warms the filesystem cache so
// first-read latency stays out of the timings, and guarantees a
// misbehaving tool can only ever touch the disposable copy.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoInput is returned when staging produced no usable files.
var ErrNoInput = errors.New("no stageable input files")

// StagedFile is one corpus member after staging.
type StagedFile struct {
	// Path is the absolute scratch location of the copy.
	Path string

	// Rel is the original relative path, kept for display only.
	Rel string

	// Size is the file size in bytes.
	Size int64
}

// WarnFunc receives diagnostics about skipped or failed files.
type WarnFunc func(format string, args ...any)

// Stager copies corpus members into a fresh scratch directory and removes
// the whole tree on Close.
type Stager struct {
	scratch string
	warnf   WarnFunc
}

// NewStager creates a stager with a fresh scratch directory.
func NewStager(warnf WarnFunc) (*Stager, error) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	scratch, err := os.MkdirTemp("", "compbench-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	return &Stager{scratch: scratch, warnf: warnf}, nil
}

// Root returns the scratch directory. Subprocess outputs may be placed
// under it so that Close cleans them up too.
func (s *Stager) Root() string {
	return s.scratch
}

// Close removes the scratch tree, including every staged copy and any
// leftover compressor output.
func (s *Stager) Close() error {
	return os.RemoveAll(s.scratch)
}

// Stage enumerates paths and copies each regular file into the scratch
// area. Directories are walked recursively in lexical order. Symlinks,
// irregular files, and zero-byte files are skipped with a warning;
// zero-byte files would produce undefined ratios. A single file's copy
// failure excludes that file and the run continues.
func (s *Stager) Stage(paths []string) ([]StagedFile, error) {
	var staged []StagedFile

	for i, path := range paths {
		// Per-argument subtree avoids name collisions between inputs.
		destRoot := filepath.Join(s.scratch, fmt.Sprintf("in%d", i))

		info, err := os.Lstat(path)
		if err != nil {
			s.warnf("skipping %s: %v", path, err)

			continue
		}

		if info.IsDir() {
			staged = append(staged, s.stageDir(path, destRoot)...)

			continue
		}

		file, ok := s.stageOne(path, info, filepath.Base(path), destRoot)
		if ok {
			staged = append(staged, file)
		}
	}

	if len(staged) == 0 {
		return nil, ErrNoInput
	}

	return staged, nil
}

func (s *Stager) stageDir(dir, destRoot string) []StagedFile {
	var staged []StagedFile

	// WalkDir visits entries in lexical order, which keeps staging
	// deterministic across runs.
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.warnf("skipping %s: %v", path, err)

			return nil
		}

		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			s.warnf("skipping %s: %v", path, relErr)

			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			s.warnf("skipping %s: %v", path, infoErr)

			return nil
		}

		file, ok := s.stageOne(path, info, rel, destRoot)
		if ok {
			staged = append(staged, file)
		}

		return nil
	})
	if walkErr != nil {
		s.warnf("walking %s: %v", dir, walkErr)
	}

	return staged
}

func (s *Stager) stageOne(path string, info fs.FileInfo, rel, destRoot string) (StagedFile, bool) {
	if !info.Mode().IsRegular() {
		s.warnf("skipping %s: not a regular file", path)

		return StagedFile{}, false
	}

	if info.Size() == 0 {
		s.warnf("skipping %s: empty file", path)

		return StagedFile{}, false
	}

	dest := filepath.Join(destRoot, rel)

	err := copyFile(path, dest)
	if err != nil {
		s.warnf("staging %s: %v", path, err)

		return StagedFile{}, false
	}

	return StagedFile{Path: dest, Rel: filepath.ToSlash(rel), Size: info.Size()}, true
}

func copyFile(src, dest string) error {
	err := os.MkdirAll(filepath.Dir(dest), 0o755)
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create staged copy: %w", err)
	}

	_, err = io.Copy(out, in)
	if err != nil {
		out.Close()

		return fmt.Errorf("copy bytes: %w", err)
	}

	return out.Close()
}
