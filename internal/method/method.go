// Package method defines the catalog of benchmarked compressor
// configurations and pattern-based selection over it.
package method

import (
	"errors"
	"fmt"
	"strings"
)

// Template placeholders expanded by the runner at invocation time.
const (
	PlaceholderInput  = "{input}"
	PlaceholderOutput = "{output}"
)

// ErrInvalidTemplate is returned when a command template has ambiguous or
// missing placeholders.
var ErrInvalidTemplate = errors.New("invalid command template")

// Method is one benchmarked compressor configuration: a family plus a
// level or variant. Methods are immutable and defined once at startup.
type Method struct {
	// Family is the tool family, e.g. "zstd".
	Family string

	// Level is the level or variant, e.g. "19" or "best". May be empty
	// for tools without levels.
	Level string

	// Compress is the argv template for compression. It must reference
	// {input} exactly once. It references {output} exactly once, or not
	// at all for tools that write compressed bytes to standard output.
	Compress []string

	// Decompress is the optional argv template for round-trip
	// verification. Same placeholder rules as Compress. Nil when the
	// tool offers no usable decompressor.
	Decompress []string

	// Suffix is the conventional output extension, e.g. ".gz". Archivers
	// such as 7z and zip silently append their own extension when the
	// target name lacks one, so output paths must carry it.
	Suffix string
}

// Name returns the registry identity: "family-level", or the bare family
// when the method has no level.
func (m Method) Name() string {
	if m.Level == "" {
		return m.Family
	}

	return m.Family + "-" + m.Level
}

// Tool returns the executable invoked by the compress template.
func (m Method) Tool() string {
	if len(m.Compress) == 0 {
		return ""
	}

	return m.Compress[0]
}

// WritesToStdout reports whether the compress template relies on standard
// output instead of an explicit output path.
func (m Method) WritesToStdout() bool {
	return countPlaceholder(m.Compress, PlaceholderOutput) == 0
}

// ExpandCompress binds the compress template to concrete paths.
func (m Method) ExpandCompress(inputPath, outputPath string) []string {
	return expand(m.Compress, inputPath, outputPath)
}

// ExpandDecompress binds the decompress template to concrete paths.
func (m Method) ExpandDecompress(inputPath, outputPath string) []string {
	return expand(m.Decompress, inputPath, outputPath)
}

// DecompressWritesToStdout reports whether the decompress template relies
// on standard output.
func (m Method) DecompressWritesToStdout() bool {
	return countPlaceholder(m.Decompress, PlaceholderOutput) == 0
}

func expand(template []string, inputPath, outputPath string) []string {
	argv := make([]string, len(template))
	for i, arg := range template {
		arg = strings.ReplaceAll(arg, PlaceholderInput, inputPath)
		arg = strings.ReplaceAll(arg, PlaceholderOutput, outputPath)
		argv[i] = arg
	}

	return argv
}

func countPlaceholder(template []string, placeholder string) int {
	total := 0
	for _, arg := range template {
		total += strings.Count(arg, placeholder)
	}

	return total
}

// validateTemplate enforces the placeholder contract at registration time.
// Compress templates need exactly one {input} and at most one {output};
// zero {output} means stdout capture.
func validateTemplate(name string, template []string) error {
	if len(template) == 0 {
		return fmt.Errorf("%w for %s: empty argv", ErrInvalidTemplate, name)
	}

	inputs := countPlaceholder(template, PlaceholderInput)
	if inputs != 1 {
		return fmt.Errorf("%w for %s: expected exactly one %s, got %d",
			ErrInvalidTemplate, name, PlaceholderInput, inputs)
	}

	outputs := countPlaceholder(template, PlaceholderOutput)
	if outputs > 1 {
		return fmt.Errorf("%w for %s: expected at most one %s, got %d",
			ErrInvalidTemplate, name, PlaceholderOutput, outputs)
	}

	if strings.Contains(template[0], PlaceholderInput) || strings.Contains(template[0], PlaceholderOutput) {
		return fmt.Errorf("%w for %s: argv[0] must be the tool name", ErrInvalidTemplate, name)
	}

	return nil
}
