// Package resource defines the resource kinds that can be bound to scoped
// variables and the lifecycle events those variables emit.
//
// # Resource Kinds
//
// Six kinds are supported, each with exactly one release callback and one
// empty sentinel:
//
//	KindHeap   - memory block        (empty: nil)
//	KindStream - buffered stream     (empty: nil)
//	KindDir    - directory stream    (empty: nil)
//	KindFD     - raw descriptor      (empty: any negative value, see EmptyFD)
//	KindMutex  - held mutex          (empty: nil)
//	KindRWLock - held read/write lock (empty: nil)
//
// # Lifecycle
//
// A scoped variable moves through
//
//	bound(empty) -> assigned(live) <-> transferred(empty) -> released
//
// and reports each step as an Event to its observers.
//
// # Tracking
//
// Tracker records every variable it sees and answers leak questions:
//
//	tr := resource.NewTracker()
//	s := scope.New(scope.Options{Observers: []resource.Observer{tr}})
//	...
//	s.Close()
//	if n := len(tr.Outstanding()); n != 0 {
//	    log.Printf("%d scoped variables never released", n)
//	}
package resource
