// Package readfile reads whole files into memory under a size cap.
package readfile

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/wippyai/scoped-release/errors"
	"github.com/wippyai/scoped-release/scope"
)

// ReadAll reads r to EOF. It fails with a KindCapacity error as soon as more
// than limit bytes are available.
func ReadAll(r io.Reader, limit int) ([]byte, error) {
	if limit <= 0 {
		return nil, errors.InvalidInput(errors.PhaseRead, "limit must be positive")
	}

	// one byte past the limit is enough to detect overflow
	capped := int64(limit)
	if capped < math.MaxInt64 {
		capped++
	}

	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, capped))
	if err != nil {
		return nil, errors.IO(errors.PhaseRead, "stream", "read", err)
	}
	if n > int64(limit) {
		return nil, errors.CapacityExceeded(errors.PhaseRead, limit)
	}
	return buf.Bytes(), nil
}

// File reads the file at path through a scoped stream, which is closed on
// every return path.
func File(path string, limit int) ([]byte, error) {
	var data []byte
	err := scope.Run(func(s *scope.Scope) error {
		st, err := s.OpenStream(path, os.O_RDONLY, 0)
		if err != nil {
			return err
		}
		data, err = ReadAll(st.Get(), limit)
		return err
	})
	return data, err
}
