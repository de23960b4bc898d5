package scope

import (
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/scoped-release/errors"
	"github.com/wippyai/scoped-release/fsio"
	"github.com/wippyai/scoped-release/memory"
	"github.com/wippyai/scoped-release/resource"
)

// Options configures a Scope.
type Options struct {
	// Logger receives release diagnostics. Defaults to the package Logger.
	Logger *zap.Logger
	// Observers are notified of every lifecycle event of the scope's guards.
	Observers []resource.Observer
	// OnReleaseError is called with each absorbed release failure.
	OnReleaseError func(kind resource.Kind, h resource.Handle, err error)
}

// DefaultOptions returns default scope configuration.
func DefaultOptions() Options {
	return Options{}
}

type releaser interface {
	Release()
}

// Scope owns a set of guards and releases them in reverse declaration order
// when it closes. A Scope belongs to one goroutine.
type Scope struct {
	logger *zap.Logger
	err    error
	guards []releaser
	opts   Options
	closed bool
}

// New creates an open scope. The caller must arrange for Close to run on
// every exit path, normally with defer.
func New(opts Options) *Scope {
	l := opts.Logger
	if l == nil {
		l = Logger()
	}
	return &Scope{
		logger: l,
		opts:   opts,
	}
}

// Run executes fn inside a scope with default options. See RunWith.
func Run(fn func(s *Scope) error) error {
	return RunWith(DefaultOptions(), fn)
}

// RunWith executes fn inside a new scope and closes it when fn returns or
// panics. The result is exactly fn's error; release failures never replace it.
func RunWith(opts Options, fn func(s *Scope) error) error {
	s := New(opts)
	defer s.Close()
	return fn(s)
}

// Declare binds g to s so that it is released when s closes.
func Declare[T comparable](s *Scope, g *Guard[T]) *Guard[T] {
	if s.closed {
		panic(errors.Released(errors.PhaseBind, "scope"))
	}
	g.attach(s)
	s.guards = append(s.guards, g)
	return g
}

// Close releases every declared guard, last declared first. Each release
// runs even if an earlier one panics. Close is idempotent.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true

	guards := s.guards
	s.guards = nil
	for _, g := range guards {
		defer g.Release()
	}
}

// Closed reports whether the scope has been closed.
func (s *Scope) Closed() bool {
	return s.closed
}

// Len returns the number of guards waiting for release.
func (s *Scope) Len() int {
	return len(s.guards)
}

// Fail records err as the scope's current error. Releases never modify it.
func (s *Scope) Fail(err error) {
	s.err = err
}

// Err returns the error last recorded with Fail.
func (s *Scope) Err() error {
	return s.err
}

// Heap declares a scoped heap block.
func (s *Scope) Heap(b *memory.Block) *Guard[*memory.Block] {
	return Declare(s, Heap(b))
}

// Alloc allocates size bytes and declares the block in s.
func (s *Scope) Alloc(size int) (*Guard[*memory.Block], error) {
	b, err := memory.Alloc(size)
	if err != nil {
		return nil, err
	}
	return s.Heap(b), nil
}

// Stream declares a scoped buffered stream.
func (s *Scope) Stream(st *fsio.Stream) *Guard[*fsio.Stream] {
	return Declare(s, Stream(st))
}

// OpenStream opens path and declares the stream in s.
func (s *Scope) OpenStream(path string, flag int, perm os.FileMode) (*Guard[*fsio.Stream], error) {
	st, err := fsio.OpenStream(path, flag, perm)
	if err != nil {
		return nil, err
	}
	return s.Stream(st), nil
}

// Dir declares a scoped directory stream.
func (s *Scope) Dir(d *fsio.Dir) *Guard[*fsio.Dir] {
	return Declare(s, Dir(d))
}

// OpenDir opens path and declares the directory stream in s.
func (s *Scope) OpenDir(path string) (*Guard[*fsio.Dir], error) {
	d, err := fsio.OpenDir(path)
	if err != nil {
		return nil, err
	}
	return s.Dir(d), nil
}

// FD declares a scoped raw descriptor.
func (s *Scope) FD(fd int) *Guard[int] {
	return Declare(s, FD(fd))
}

// Lock acquires mu and declares the hold in s.
func (s *Scope) Lock(mu *sync.Mutex) *Guard[*sync.Mutex] {
	return Declare(s, Lock(mu))
}

// WLock acquires rw for writing and declares the hold in s.
func (s *Scope) WLock(rw *sync.RWMutex) *Guard[sync.Locker] {
	return Declare(s, WLock(rw))
}

// RLock acquires rw for reading and declares the hold in s.
func (s *Scope) RLock(rw *sync.RWMutex) *Guard[sync.Locker] {
	return Declare(s, RLock(rw))
}
