package release

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/wippyai/scoped-release/fsio"
	"github.com/wippyai/scoped-release/memory"
	"github.com/wippyai/scoped-release/resource"
)

// Func releases one handle of a resource kind. It must be a no-op on the
// kind's empty sentinel. The returned error is informational only.
type Func[T any] func(T) error

// closeFD is swapped in tests to simulate interrupted closes.
var closeFD = unix.Close

// Free unmaps a heap block.
func Free(b *memory.Block) error {
	if b == nil {
		return nil
	}
	return b.Free()
}

// CloseStream flushes and closes a buffered stream, retrying interrupted
// closes.
func CloseStream(s *fsio.Stream) error {
	if s == nil {
		return nil
	}
	_, err := RetryInterrupted(s.Close)
	return err
}

// CloseDir closes a directory stream, retrying interrupted closes.
func CloseDir(d *fsio.Dir) error {
	if d == nil {
		return nil
	}
	_, err := RetryInterrupted(d.Close)
	return err
}

// CloseFD closes a raw descriptor, retrying interrupted closes. Negative
// descriptors are empty.
func CloseFD(fd int) error {
	if resource.EmptyFD(fd) {
		return nil
	}
	_, err := RetryInterrupted(func() error {
		return closeFD(fd)
	})
	return err
}

// Unlock releases a held mutex.
func Unlock(mu *sync.Mutex) error {
	if mu == nil {
		return nil
	}
	mu.Unlock()
	return nil
}

// UnlockRW releases a held read/write lock. Pass the *sync.RWMutex for a
// write hold or rw.RLocker() for a read hold. Only a nil interface is empty;
// a Locker wrapping a nil lock is not a held lock and must not be passed.
func UnlockRW(l sync.Locker) error {
	if l == nil {
		return nil
	}
	l.Unlock()
	return nil
}
