package source

import (
	"io"
	"os"
	"path/filepath"
)

// Kind is the closed set of inputs the pager can read.
type Kind int

const (
	OrdinaryFile Kind = iota
	StandardInput
)

// Source names one input. It is resolved to a Stream once, by Open.
type Source struct {
	kind Kind
	path string
}

// File returns a source reading the file at path.
func File(path string) Source {
	return Source{kind: OrdinaryFile, path: path}
}

// Stdin returns a source reading standard input.
func Stdin() Source {
	return Source{kind: StandardInput}
}

// FromArgs picks the source for the given positional arguments. Only the
// last path is used; with no paths the source is standard input.
func FromArgs(paths []string) Source {
	if len(paths) == 0 {
		return Stdin()
	}
	return File(paths[len(paths)-1])
}

// Kind returns the source kind.
func (s Source) Kind() Kind {
	return s.kind
}

// Path returns the file path, or "" for standard input.
func (s Source) Path() string {
	return s.path
}

// IsStdin reports whether the source is standard input.
func (s Source) IsStdin() bool {
	return s.kind == StandardInput
}

// Name is the label shown in the status bar.
func (s Source) Name() string {
	if s.IsStdin() {
		return "[stdin]"
	}
	return filepath.Base(s.path)
}

// Open resolves the source into a readable stream.
func (s Source) Open() (*Stream, error) {
	if s.IsStdin() {
		return &Stream{name: "stdin", file: os.Stdin}, nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, &Error{Op: OpOpen, Path: s.path, Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, &Error{Op: OpOpen, Path: s.path, Err: err}
	}
	if info.IsDir() {
		file.Close()
		return nil, &Error{Op: OpIsDirectory, Path: s.path, Err: ErrIsDirectory}
	}

	return &Stream{name: s.path, file: file, owned: true}, nil
}

// Stream is an opened source: a byte reader with a pollable descriptor.
type Stream struct {
	name  string
	file  *os.File
	owned bool
}

// NewStream wraps an already open file. The stream takes ownership of f.
func NewStream(name string, f *os.File) *Stream {
	return &Stream{name: name, file: f, owned: true}
}

var _ io.ReadCloser = (*Stream)(nil)

// Read reads from the underlying file.
func (s *Stream) Read(p []byte) (int, error) {
	return s.file.Read(p)
}

// Fd returns the descriptor used for readiness polling.
func (s *Stream) Fd() uintptr {
	return s.file.Fd()
}

// Name returns the path or label the stream was opened from.
func (s *Stream) Name() string {
	return s.name
}

// ReadError wraps a mid-stream failure.
func (s *Stream) ReadError(err error) error {
	return &Error{Op: OpRead, Path: s.name, Err: err}
}

// Close closes the file unless it is standard input.
func (s *Stream) Close() error {
	if !s.owned {
		return nil
	}
	return s.file.Close()
}
