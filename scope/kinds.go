package scope

import (
	"sync"

	"github.com/wippyai/scoped-release/errors"
	"github.com/wippyai/scoped-release/fsio"
	"github.com/wippyai/scoped-release/memory"
	"github.com/wippyai/scoped-release/release"
	"github.com/wippyai/scoped-release/resource"
)

// Heap guards a heap block; nil is empty.
func Heap(b *memory.Block) *Guard[*memory.Block] {
	return NewGuard[*memory.Block](resource.KindHeap, nil, release.Free, b)
}

// Stream guards a buffered stream; nil is empty.
func Stream(st *fsio.Stream) *Guard[*fsio.Stream] {
	return NewGuard[*fsio.Stream](resource.KindStream, nil, release.CloseStream, st)
}

// Dir guards a directory stream; nil is empty.
func Dir(d *fsio.Dir) *Guard[*fsio.Dir] {
	return NewGuard[*fsio.Dir](resource.KindDir, nil, release.CloseDir, d)
}

// FD guards a raw descriptor. Any negative value is empty.
func FD(fd int) *Guard[int] {
	return newGuard[int](resource.KindFD, resource.InvalidFD, resource.EmptyFD, release.CloseFD, fd)
}

// Mutex guards a mutex the caller already holds; nil is empty.
func Mutex(mu *sync.Mutex) *Guard[*sync.Mutex] {
	return NewGuard[*sync.Mutex](resource.KindMutex, nil, release.Unlock, mu)
}

// RWLock guards a read/write lock hold: the *sync.RWMutex itself for a
// write hold, rw.RLocker() for a read hold. nil is empty.
func RWLock(l sync.Locker) *Guard[sync.Locker] {
	return NewGuard[sync.Locker](resource.KindRWLock, nil, release.UnlockRW, l)
}

// Lock acquires mu and guards the hold.
func Lock(mu *sync.Mutex) *Guard[*sync.Mutex] {
	if mu == nil {
		panic(errors.NilPointer(errors.PhaseAcquire, resource.KindMutex.String()))
	}
	mu.Lock()
	return Mutex(mu)
}

// WLock acquires rw for writing and guards the hold.
func WLock(rw *sync.RWMutex) *Guard[sync.Locker] {
	if rw == nil {
		panic(errors.NilPointer(errors.PhaseAcquire, resource.KindRWLock.String()))
	}
	rw.Lock()
	return RWLock(rw)
}

// RLock acquires rw for reading and guards the hold.
func RLock(rw *sync.RWMutex) *Guard[sync.Locker] {
	if rw == nil {
		panic(errors.NilPointer(errors.PhaseAcquire, resource.KindRWLock.String()))
	}
	rl := rw.RLocker()
	rl.Lock()
	return RWLock(rl)
}
