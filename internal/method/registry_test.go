package method_test

import (
	"errors"
	"testing"

	"github.com/Sumatoshi-tech/compbench/internal/method"
)

func testMethods() []method.Method {
	return []method.Method{
		{Family: "zstd", Level: "1", Compress: []string{"zstd", "-c", "-1", "{input}"}},
		{Family: "zstd", Level: "3", Compress: []string{"zstd", "-c", "-3", "{input}"}},
		{Family: "gzip", Level: "6", Compress: []string{"gzip", "-c", "-6", "{input}"}},
	}
}

func TestRegistry_AllInsertionOrder(t *testing.T) {
	t.Parallel()

	registry, err := method.NewRegistry(testMethods())
	if err != nil {
		t.Fatalf("unexpected registry creation error: %v", err)
	}

	names := registry.Names()

	want := []string{"zstd-1", "zstd-3", "gzip-6"}
	if len(names) != len(want) {
		t.Fatalf("expected %d methods, got %d", len(want), len(names))
	}

	for i, name := range want {
		if names[i] != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, names[i])
		}
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	registry, err := method.NewRegistry(testMethods())
	if err != nil {
		t.Fatalf("unexpected registry creation error: %v", err)
	}

	m, ok := registry.Lookup("zstd-3")
	if !ok {
		t.Fatal("expected zstd-3 to exist")
	}

	if m.Family != "zstd" || m.Level != "3" {
		t.Fatalf("unexpected method: %+v", m)
	}

	_, ok = registry.Lookup("zstd-99")
	if ok {
		t.Fatal("expected zstd-99 lookup to fail")
	}
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	methods := testMethods()
	methods = append(methods, methods[0])

	_, err := method.NewRegistry(methods)
	if !errors.Is(err, method.ErrDuplicateMethod) {
		t.Fatalf("expected ErrDuplicateMethod, got %v", err)
	}
}

func TestNewRegistry_RejectsBadTemplates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		compress []string
	}{
		{"empty argv", nil},
		{"missing input", []string{"gzip", "-c"}},
		{"two inputs", []string{"gzip", "{input}", "{input}"}},
		{"two outputs", []string{"tool", "{input}", "{output}", "{output}"}},
		{"placeholder as tool", []string{"{input}"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := method.NewRegistry([]method.Method{{Family: "bad", Compress: tc.compress}})
			if !errors.Is(err, method.ErrInvalidTemplate) {
				t.Fatalf("expected ErrInvalidTemplate, got %v", err)
			}
		})
	}
}

func TestNewRegistry_RejectsBadDecompressTemplate(t *testing.T) {
	t.Parallel()

	_, err := method.NewRegistry([]method.Method{{
		Family:     "bad",
		Compress:   []string{"gzip", "-c", "{input}"},
		Decompress: []string{"gzip", "-d"},
	}})
	if !errors.Is(err, method.ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
}

func TestMethod_Expand(t *testing.T) {
	t.Parallel()

	m := method.Method{
		Family:   "zip",
		Compress: []string{"zip", "--quiet", "{output}", "{input}"},
	}

	argv := m.ExpandCompress("/in/a.txt", "/out/a.zip")

	want := []string{"zip", "--quiet", "/out/a.zip", "/in/a.txt"}
	for i := range want {
		if argv[i] != want[i] {
			t.Fatalf("argv[%d]: expected %s, got %s", i, want[i], argv[i])
		}
	}

	if m.WritesToStdout() {
		t.Fatal("zip template has an explicit output placeholder")
	}
}

func TestMethod_WritesToStdout(t *testing.T) {
	t.Parallel()

	m := method.Method{Family: "gzip", Level: "1", Compress: []string{"gzip", "-c", "{input}"}}
	if !m.WritesToStdout() {
		t.Fatal("gzip -c template relies on stdout")
	}
}

func TestMethod_Name(t *testing.T) {
	t.Parallel()

	leveled := method.Method{Family: "zstd", Level: "19"}
	if leveled.Name() != "zstd-19" {
		t.Fatalf("unexpected name: %s", leveled.Name())
	}

	bare := method.Method{Family: "zip"}
	if bare.Name() != "zip" {
		t.Fatalf("unexpected name: %s", bare.Name())
	}
}

func TestBuiltinRegistry(t *testing.T) {
	t.Parallel()

	registry := method.BuiltinRegistry()

	names := registry.Names()
	if names[0] != "cp" {
		t.Fatalf("expected cp baseline first, got %s", names[0])
	}

	for _, want := range []string{"gzip-9", "zstd-19", "br-best", "7z-ultra", "lrzip-9-zpaq"} {
		_, ok := registry.Lookup(want)
		if !ok {
			t.Fatalf("expected builtin method %s", want)
		}
	}
}
