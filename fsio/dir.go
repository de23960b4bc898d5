package fsio

import (
	"io"
	"os"

	"github.com/wippyai/scoped-release/errors"
)

// DirFile is the open directory behind a Dir. *os.File implements it.
type DirFile interface {
	io.Closer
	Readdirnames(n int) ([]string, error)
}

// Dir is an open directory stream.
type Dir struct {
	f    DirFile
	name string
	fd   int
}

// OpenDir opens path for reading directory entries.
func OpenDir(path string) (*Dir, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseAcquire, "dir", "open "+path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.IO(errors.PhaseAcquire, "dir", "stat "+path, err)
	}
	if !info.IsDir() {
		f.Close()
		return nil, errors.New(errors.PhaseAcquire, errors.KindInvalidInput).
			Resource("dir").
			Value(path).
			Detail("%s is not a directory", path).
			Build()
	}

	d, err := NewDir(path, int(f.Fd()), f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

// NewDir wraps an already open directory whose descriptor is fd. The Dir
// owns f.
func NewDir(name string, fd int, f DirFile) (*Dir, error) {
	if f == nil {
		return nil, errors.NilPointer(errors.PhaseAcquire, "dir")
	}
	if fd < 0 {
		return nil, errors.InvalidHandle(errors.PhaseAcquire, "dir", fd)
	}
	return &Dir{f: f, name: name, fd: fd}, nil
}

// Name returns the path the directory was opened with.
func (d *Dir) Name() string { return d.name }

// Fd returns the descriptor backing the stream. It stays the same number
// after Close, at which point it no longer denotes an open file.
func (d *Dir) Fd() int { return d.fd }

// ReadNames returns up to n entry names; n <= 0 returns all remaining names.
func (d *Dir) ReadNames(n int) ([]string, error) {
	return d.f.Readdirnames(n)
}

// Close closes the directory stream.
func (d *Dir) Close() error {
	return d.f.Close()
}
