package memory

import (
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/wippyai/scoped-release/errors"
)

var (
	liveBlocks atomic.Int64
	liveBytes  atomic.Int64
)

// Block is a heap allocation outside the Go garbage collector. It must be
// released explicitly with Free.
type Block struct {
	data []byte
}

// Alloc maps a zeroed anonymous region of size bytes.
func Alloc(size int) (*Block, error) {
	if size <= 0 {
		return nil, errors.InvalidInput(errors.PhaseAcquire, "allocation size must be positive")
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.AllocationFailed(size, err)
	}

	liveBlocks.Add(1)
	liveBytes.Add(int64(size))
	return &Block{data: data}, nil
}

// Bytes returns the block's memory. The slice is invalid after Free.
func (b *Block) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Len returns the block size in bytes, or 0 once freed.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Freed reports whether the block has been unmapped.
func (b *Block) Freed() bool {
	return b == nil || b.data == nil
}

// Free unmaps the block. Freeing a nil block is a no-op; freeing twice
// returns a KindReleased error and leaves the process state untouched.
func (b *Block) Free() error {
	if b == nil {
		return nil
	}
	if b.data == nil {
		return errors.Released(errors.PhaseRelease, "heap")
	}

	size := len(b.data)
	if err := unix.Munmap(b.data); err != nil {
		return errors.Wrap(errors.PhaseRelease, errors.KindIO, err, "munmap")
	}
	b.data = nil

	liveBlocks.Add(-1)
	liveBytes.Add(-int64(size))
	return nil
}

// Live returns the number of blocks allocated and not yet freed.
func Live() int {
	return int(liveBlocks.Load())
}

// LiveBytes returns the total size of blocks allocated and not yet freed.
func LiveBytes() int {
	return int(liveBytes.Load())
}
