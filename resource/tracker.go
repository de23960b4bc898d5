package resource

import (
	"slices"
	"sync"
)

// Tracker is an Observer that keeps a table of every scoped variable it has
// seen bound. It answers leak and release-count questions and is safe for
// concurrent use.
type Tracker struct {
	entries map[Handle]*entry
	mu      sync.RWMutex
}

type entry struct {
	kind     Kind
	releases int
	live     bool
	released bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make(map[Handle]*entry, 16),
	}
}

// OnResourceEvent implements Observer.
func (t *Tracker) OnResourceEvent(e Event) {
	if e.Handle == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	en, ok := t.entries[e.Handle]
	if !ok {
		en = &entry{kind: e.Kind}
		t.entries[e.Handle] = en
	}

	switch e.Type {
	case EventBound, EventAssigned:
		en.live = e.Live
	case EventTransferred:
		en.live = false
	case EventReleased:
		en.releases++
		en.released = true
		en.live = false
	}
}

// Live returns the number of tracked variables holding a live resource.
func (t *Tracker) Live() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, en := range t.entries {
		if en.live {
			count++
		}
	}
	return count
}

// LiveKind returns the number of tracked variables of kind k holding a live
// resource.
func (t *Tracker) LiveKind(k Kind) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, en := range t.entries {
		if en.live && en.kind == k {
			count++
		}
	}
	return count
}

// Releases returns how many release events were observed for h.
func (t *Tracker) Releases(h Handle) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if en, ok := t.entries[h]; ok {
		return en.releases
	}
	return 0
}

// Outstanding returns the handles of variables that were bound but have not
// been released, in ascending order.
func (t *Tracker) Outstanding() []Handle {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var handles []Handle
	for h, en := range t.entries {
		if !en.released {
			handles = append(handles, h)
		}
	}
	slices.Sort(handles)
	return handles
}

// Len returns the number of tracked variables.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Reset forgets every tracked variable.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.entries)
}
