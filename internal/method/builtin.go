package method

// Builtin returns the default method catalog. The "cp" entry is a dry-run
// baseline: it performs no compression and calibrates harness overhead.
//
// Tools that refuse explicit output paths and delete their input (classic
// "compress") are not registered. Archivers that cannot write to stdout
// (7z, zip) receive an explicit {output} archive argument instead.
func Builtin() []Method {
	methods := []Method{
		{Family: "cp", Suffix: ".copy",
			Compress:   argv("cp", "{input}", "{output}"),
			Decompress: argv("cp", "{input}", "{output}")},
	}

	for _, level := range []string{"1", "3", "6", "9"} {
		methods = append(methods, Method{
			Family:     "gzip",
			Level:      level,
			Suffix:     ".gz",
			Compress:   argv("gzip", "-c", "-"+level, "{input}"),
			Decompress: argv("gzip", "-d", "-c", "{input}"),
		})
	}

	// zopfli emits gzip-compatible streams, so gzip handles the
	// round-trip.
	for _, iters := range []string{"i15", "i50"} {
		methods = append(methods, Method{
			Family:     "zopfli",
			Level:      iters,
			Suffix:     ".gz",
			Compress:   argv("zopfli", "--"+iters, "-c", "{input}"),
			Decompress: argv("gzip", "-d", "-c", "{input}"),
		})
	}

	for _, level := range []string{"4", "6", "9"} {
		methods = append(methods, Method{
			Family:     "bz2",
			Level:      level,
			Suffix:     ".bz2",
			Compress:   argv("bzip2", "-z", "-c", "-"+level, "{input}"),
			Decompress: argv("bzip2", "-d", "-c", "{input}"),
		})
	}

	for _, level := range []string{"1", "3", "6", "9"} {
		methods = append(methods, Method{
			Family:     "xz",
			Level:      level,
			Suffix:     ".xz",
			Compress:   argv("xz", "-z", "-c", "-"+level, "{input}"),
			Decompress: argv("xz", "-d", "-c", "{input}"),
		})
	}

	for _, level := range []string{"6", "9"} {
		methods = append(methods, Method{
			Family:     "lzma",
			Level:      level,
			Suffix:     ".lzma",
			Compress:   argv("lzma", "-z", "-c", "-"+level, "{input}"),
			Decompress: argv("lzma", "-d", "-c", "{input}"),
		})
	}

	for _, level := range []string{"1", "3", "14", "16", "19"} {
		methods = append(methods, Method{
			Family:     "zstd",
			Level:      level,
			Suffix:     ".zst",
			Compress:   argv("zstd", "-q", "-c", "-"+level, "{input}"),
			Decompress: argv("zstd", "-q", "-d", "-c", "{input}"),
		})
	}

	// See https://bugs.debian.org/998207 for why lz4 gets explicit paths.
	for _, level := range []string{"1", "4", "9", "12"} {
		methods = append(methods, Method{
			Family:     "lz4",
			Level:      level,
			Suffix:     ".lz4",
			Compress:   argv("lz4", "-q", "-"+level, "{input}", "{output}"),
			Decompress: argv("lz4", "-q", "-d", "{input}", "{output}"),
		})
	}

	for _, level := range []string{"1", "3", "7", "9"} {
		methods = append(methods, Method{
			Family:     "lzop",
			Level:      level,
			Suffix:     ".lzo",
			Compress:   argv("lzop", "-c", "-"+level, "{input}"),
			Decompress: argv("lzop", "-d", "-c", "{input}"),
		})
	}

	for _, level := range []string{"1", "3", "9"} {
		methods = append(methods, Method{
			Family:     "br",
			Level:      level,
			Suffix:     ".br",
			Compress:   argv("brotli", "-c", "-q", level, "{input}"),
			Decompress: argv("brotli", "-d", "-c", "{input}"),
		})
	}

	methods = append(methods,
		Method{Family: "br", Level: "best", Suffix: ".br",
			Compress:   argv("brotli", "-c", "--best", "{input}"),
			Decompress: argv("brotli", "-d", "-c", "{input}")},
		Method{Family: "7z", Level: "ultra", Suffix: ".7z",
			Compress: argv("7z", "a", "-bd", "-bb0", "-bso0", "-t7z",
				"-m0=lzma", "-mx=9", "-mfb=64", "-md=32m", "-ms=on",
				"{output}", "{input}")},
		Method{Family: "zip", Suffix: ".zip",
			Compress: argv("zip", "--quiet", "{output}", "{input}")},
		Method{Family: "snappy", Suffix: ".sz",
			Compress: argv("snzip", "-c", "{input}")},
	)

	for _, level := range []string{"1", "9"} {
		for _, backend := range []string{"bzip2", "lzo", "zpaq"} {
			methods = append(methods, Method{
				Family: "lrzip",
				Level:  level + "-" + suffixFor(backend),
				Suffix: ".lrz",
				Compress: argv("lrzip", "--quiet", "-p", "1",
					"-L", level, "-N", "0", "--"+backend,
					"-o", "{output}", "{input}"),
			})
		}
	}

	return methods
}

// BuiltinRegistry builds the default registry. The catalog is static, so
// a construction error here is a programming mistake and panics.
func BuiltinRegistry() *Registry {
	registry, err := NewRegistry(Builtin())
	if err != nil {
		panic(err)
	}

	return registry
}

func suffixFor(backend string) string {
	if backend == "bzip2" {
		return "bz2"
	}

	return backend
}

func argv(args ...string) []string {
	return args
}
