package resource

import "sync/atomic"

// Kind identifies one of the supported scoped resource kinds.
type Kind uint8

const (
	KindHeap Kind = iota
	KindStream
	KindDir
	KindFD
	KindMutex
	KindRWLock
)

// Kinds lists every supported kind in declaration order.
var Kinds = []Kind{KindHeap, KindStream, KindDir, KindFD, KindMutex, KindRWLock}

func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindStream:
		return "stream"
	case KindDir:
		return "dir"
	case KindFD:
		return "fd"
	case KindMutex:
		return "mutex"
	case KindRWLock:
		return "rwlock"
	default:
		return "unknown"
	}
}

// InvalidFD is the empty sentinel for raw descriptors.
const InvalidFD = -1

// EmptyFD reports whether fd is the empty descriptor sentinel. Every negative
// value is empty; descriptor 0 is a live resource.
func EmptyFD(fd int) bool {
	return fd < 0
}

// Handle identifies a scoped variable for lifecycle tracking.
// Handle 0 is reserved and always invalid.
type Handle uint64

var lastHandle atomic.Uint64

// NextHandle returns a process-unique, non-zero handle.
func NextHandle() Handle {
	return Handle(lastHandle.Add(1))
}

// Event types for scoped variable lifecycle notifications.
type EventType uint8

const (
	EventBound EventType = iota
	EventAssigned
	EventTransferred
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventBound:
		return "bound"
	case EventAssigned:
		return "assigned"
	case EventTransferred:
		return "transferred"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event represents a scoped variable lifecycle event.
// Live reports whether the variable held a live resource at the time of the
// event: for EventReleased it tells whether the release callback had work to
// do, for EventTransferred whether a resource actually changed hands.
type Event struct {
	Handle Handle
	Kind   Kind
	Type   EventType
	Live   bool
}

// Observer receives notifications about scoped variable lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnResourceEvent calls f(e).
func (f ObserverFunc) OnResourceEvent(e Event) {
	f(e)
}
