package scope

import (
	"go.uber.org/zap"

	"github.com/wippyai/scoped-release/errors"
	"github.com/wippyai/scoped-release/release"
	"github.com/wippyai/scoped-release/resource"
)

// Guard is a scoped variable: a resource handle bound to the release
// callback of its kind. The callback runs once, on Release, against whatever
// the guard holds at that moment.
//
// A Guard is owned by one goroutine and is not safe for concurrent use.
type Guard[T comparable] struct {
	value     T
	empty     T
	isEmpty   func(T) bool
	release   release.Func[T]
	onError   func(resource.Kind, resource.Handle, error)
	logger    *zap.Logger
	observers []resource.Observer
	handle    resource.Handle
	kind      resource.Kind
	bound     bool
	released  bool
}

// NewGuard binds value to fn. The empty sentinel is empty; fn must accept it
// as a no-op.
func NewGuard[T comparable](kind resource.Kind, empty T, fn release.Func[T], value T) *Guard[T] {
	return newGuard(kind, empty, func(v T) bool { return v == empty }, fn, value)
}

func newGuard[T comparable](kind resource.Kind, empty T, isEmpty func(T) bool, fn release.Func[T], value T) *Guard[T] {
	return &Guard[T]{
		value:   value,
		empty:   empty,
		isEmpty: isEmpty,
		release: fn,
		handle:  resource.NextHandle(),
		kind:    kind,
	}
}

// Get returns the current handle without affecting ownership.
func (g *Guard[T]) Get() T {
	return g.value
}

// Live reports whether the guard currently owns a resource.
func (g *Guard[T]) Live() bool {
	return !g.released && !g.isEmpty(g.value)
}

// Released reports whether the guard reached its terminal state.
func (g *Guard[T]) Released() bool {
	return g.released
}

// Kind returns the resource kind the guard is bound to.
func (g *Guard[T]) Kind() resource.Kind {
	return g.kind
}

// Handle returns the guard's tracking handle.
func (g *Guard[T]) Handle() resource.Handle {
	return g.handle
}

// Reset stores v in the guard. A live resource already held is released
// first, so the guard never silently drops ownership. Resetting to the value
// already held keeps it; the guard still owns it and releases it once.
func (g *Guard[T]) Reset(v T) {
	if g.released {
		panic(errors.Released(errors.PhaseBind, g.kind.String()))
	}
	if !g.isEmpty(g.value) && g.value != v {
		g.report(g.release(g.value))
	}
	g.value = v
	g.notify(resource.EventAssigned, !g.isEmpty(v))
}

// Take transfers ownership of the current handle to the caller and leaves
// the empty sentinel behind. Taking from an empty guard returns the sentinel.
func (g *Guard[T]) Take() T {
	if g.released {
		panic(errors.Released(errors.PhaseTransfer, g.kind.String()))
	}
	v := g.value
	g.value = g.empty
	g.notify(resource.EventTransferred, !g.isEmpty(v))
	return v
}

// Release runs the release callback against the current handle and moves the
// guard to its terminal state. Later calls are no-ops. Release failures are
// logged and passed to the scope's error hook; they are never returned.
func (g *Guard[T]) Release() {
	if g.released {
		return
	}
	g.released = true

	v := g.value
	g.value = g.empty
	live := !g.isEmpty(v)

	g.report(g.release(v))
	g.notify(resource.EventReleased, live)
}

func (g *Guard[T]) report(err error) {
	if err == nil {
		return
	}
	l := g.logger
	if l == nil {
		l = Logger()
	}
	l.Debug("release failed",
		zap.Stringer("kind", g.kind),
		zap.Uint64("handle", uint64(g.handle)),
		zap.Error(err))
	if g.onError != nil {
		g.onError(g.kind, g.handle, err)
	}
}

func (g *Guard[T]) notify(t resource.EventType, live bool) {
	if len(g.observers) == 0 {
		return
	}
	e := resource.Event{
		Handle: g.handle,
		Kind:   g.kind,
		Type:   t,
		Live:   live,
	}
	for _, o := range g.observers {
		o.OnResourceEvent(e)
	}
}

func (g *Guard[T]) attach(s *Scope) {
	if g.bound {
		panic(errors.New(errors.PhaseBind, errors.KindInvalidInput).
			Resource(g.kind.String()).
			Detail("guard already bound to a scope").
			Build())
	}
	if g.released {
		panic(errors.Released(errors.PhaseBind, g.kind.String()))
	}
	g.bound = true
	g.observers = s.opts.Observers
	g.onError = s.opts.OnReleaseError
	g.logger = s.logger
	g.notify(resource.EventBound, g.Live())
}

// TakeFD transfers a descriptor out of g; g is left holding resource.InvalidFD.
func TakeFD(g *Guard[int]) int {
	return g.Take()
}

// TakePointer transfers a pointer out of g; g is left holding nil.
func TakePointer[P any](g *Guard[*P]) *P {
	return g.Take()
}
