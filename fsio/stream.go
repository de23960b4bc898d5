package fsio

import (
	"bufio"
	"io"
	"os"

	"github.com/wippyai/scoped-release/errors"
)

// DefaultBufferSize is the buffer size for streams (64 KB)
const DefaultBufferSize = 65536

// Stream is a buffered stream over a file or any ReadWriteCloser.
// A Stream is not safe for concurrent use.
type Stream struct {
	rwc     io.ReadWriteCloser
	r       *bufio.Reader
	w       *bufio.Writer
	name    string
	closing bool
}

// OpenStream opens path with the given flags and wraps it in a Stream.
func OpenStream(path string, flag int, perm os.FileMode) (*Stream, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, errors.IO(errors.PhaseAcquire, "stream", "open "+path, err)
	}
	return NewStream(path, f), nil
}

// NewStream wraps rwc in a buffered Stream. The Stream owns rwc.
func NewStream(name string, rwc io.ReadWriteCloser) *Stream {
	return &Stream{
		rwc:  rwc,
		r:    bufio.NewReaderSize(rwc, DefaultBufferSize),
		w:    bufio.NewWriterSize(rwc, DefaultBufferSize),
		name: name,
	}
}

// Name returns the name the stream was opened with.
func (s *Stream) Name() string { return s.name }

// Read reads buffered data from the stream.
func (s *Stream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Write buffers p for writing.
func (s *Stream) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Flush writes any buffered data to the underlying writer.
func (s *Stream) Flush() error {
	return s.w.Flush()
}

// Buffered returns the number of bytes waiting to be flushed.
func (s *Stream) Buffered() int {
	return s.w.Buffered()
}

// Close flushes buffered output and closes the underlying stream. Only the
// first call flushes; later calls retry just the close, so a close that was
// interrupted can be attempted again without rewriting data.
func (s *Stream) Close() error {
	var flushErr error
	if !s.closing {
		s.closing = true
		if s.w.Buffered() > 0 {
			flushErr = s.w.Flush()
		}
	}
	if err := s.rwc.Close(); err != nil {
		return err
	}
	return flushErr
}
