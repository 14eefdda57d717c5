package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// openChunksInput opens the chunks file argument as a seekable source and
// returns the base name to use for version auto-detection. An empty path or
// "-" reads standard input. Gzip- and zstd-compressed sources are
// decompressed into memory, since decoding needs random access and neither
// stream format is seekable.
func openChunksInput(path string) (io.ReadSeeker, string, error) {
	if path == "" || path == "-" {
		source, err := intoMemory(os.Stdin)
		return source, "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	name := filepath.Base(path)

	head := make([]byte, 4)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, "", err
	}
	if !compressed(head[:n]) {
		return file, name, nil
	}

	defer file.Close()
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".zst")
	source, err := intoMemory(file)
	return source, name, err
}

func compressed(head []byte) bool {
	return bytes.HasPrefix(head, gzipMagic) || bytes.HasPrefix(head, zstdMagic)
}

// intoMemory slurps r into a seekable in-memory buffer, transparently
// decompressing gzip and zstd streams. Chunks files top out at a few dozen
// megabytes, so buffering whole files is acceptable.
func intoMemory(r io.Reader) (io.ReadSeeker, error) {
	buffered := bufio.NewReader(r)
	head, err := buffered.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}

	var source io.Reader = buffered
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		decompressor, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		defer decompressor.Close()
		source = decompressor
	case bytes.HasPrefix(head, zstdMagic):
		decompressor, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		defer decompressor.Close()
		source = decompressor
	}

	data, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// openOutput opens the output file argument, defaulting to standard output.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}
