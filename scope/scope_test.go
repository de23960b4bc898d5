package scope

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sys/unix"

	"github.com/wippyai/scoped-release/errors"
	"github.com/wippyai/scoped-release/memory"
	"github.com/wippyai/scoped-release/resource"
)

var errEarly = stderrors.New("early exit")

func trackedOptions() (Options, *resource.Tracker) {
	tr := resource.NewTracker()
	return Options{Observers: []resource.Observer{tr}}, tr
}

func TestScope_ReleasesOnEveryExitPath(t *testing.T) {
	paths := map[string]func(s *Scope, g *Guard[int]) error{
		"fallthrough": func(s *Scope, g *Guard[int]) error {
			return nil
		},
		"early return": func(s *Scope, g *Guard[int]) error {
			if g.Live() {
				return errEarly
			}
			g.Reset(100)
			return nil
		},
		"panic": func(s *Scope, g *Guard[int]) error {
			panic("boom")
		},
	}

	for name, body := range paths {
		t.Run(name, func(t *testing.T) {
			opts, tr := trackedOptions()
			var calls []int
			var handle resource.Handle

			func() {
				defer func() { recover() }()
				RunWith(opts, func(s *Scope) error {
					g := Declare(s, recordingGuard(resource.KindFD, 11, &calls))
					handle = g.Handle()
					return body(s, g)
				})
			}()

			if len(calls) != 1 || calls[0] != 11 {
				t.Fatalf("calls = %v, want [11]", calls)
			}
			if tr.Releases(handle) != 1 {
				t.Fatalf("Releases() = %d, want 1", tr.Releases(handle))
			}
			if n := len(tr.Outstanding()); n != 0 {
				t.Fatalf("%d outstanding variables", n)
			}
		})
	}
}

func TestScope_PanicPropagates(t *testing.T) {
	var calls []int
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("recovered %v, want boom", r)
		}
		if len(calls) != 1 {
			t.Fatalf("calls = %v, want guard released before panic escaped", calls)
		}
	}()

	Run(func(s *Scope) error {
		Declare(s, recordingGuard(resource.KindHeap, 1, &calls))
		panic("boom")
	})
}

func TestScope_ReleaseOrderIsLIFO(t *testing.T) {
	var calls []int
	Run(func(s *Scope) error {
		for i := 1; i <= 4; i++ {
			Declare(s, recordingGuard(resource.KindFD, i, &calls))
		}
		return nil
	})

	if !slices.Equal(calls, []int{4, 3, 2, 1}) {
		t.Fatalf("release order = %v, want [4 3 2 1]", calls)
	}
}

func TestScope_PanickingReleaseDoesNotSkipOthers(t *testing.T) {
	var calls []int
	func() {
		defer func() { recover() }()
		Run(func(s *Scope) error {
			Declare(s, recordingGuard(resource.KindFD, 1, &calls))
			Declare(s, NewGuard(resource.KindFD, 0, func(int) error { panic("release failed") }, 2))
			Declare(s, recordingGuard(resource.KindFD, 3, &calls))
			return nil
		})
	}()

	if !slices.Equal(calls, []int{3, 1}) {
		t.Fatalf("calls = %v, want [3 1]", calls)
	}
}

func TestScope_ReturnsBodyError(t *testing.T) {
	err := Run(func(s *Scope) error {
		s.FD(openDevNull(t))
		return errEarly
	})
	if err != errEarly {
		t.Fatalf("Run() = %v, want body error", err)
	}
}

func TestScope_AmbientErrorPreserved(t *testing.T) {
	fd := openDevNull(t)
	unix.Close(fd)

	sentinel := stderrors.New("caller state")
	var absorbed []error
	opts := Options{
		OnReleaseError: func(kind resource.Kind, h resource.Handle, err error) {
			absorbed = append(absorbed, err)
		},
	}

	s := New(opts)
	s.FD(fd)
	s.Fail(sentinel)
	s.Close()

	if s.Err() != sentinel {
		t.Fatalf("Err() = %v, want sentinel unchanged", s.Err())
	}
	if len(absorbed) != 1 || !stderrors.Is(absorbed[0], unix.EBADF) {
		t.Fatalf("absorbed = %v, want one EBADF", absorbed)
	}

	err := RunWith(opts, func(s *Scope) error {
		s.FD(fd)
		s.Fail(sentinel)
		return s.Err()
	})
	if err != sentinel {
		t.Fatalf("RunWith() = %v, want sentinel", err)
	}
}

func TestScope_ReleaseFailureLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fd := openDevNull(t)
	unix.Close(fd)

	RunWith(Options{Logger: zap.New(core)}, func(s *Scope) error {
		s.FD(fd)
		return nil
	})

	entries := logs.FilterMessage("release failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if kind := entries[0].ContextMap()["kind"]; kind != "fd" {
		t.Fatalf("kind field = %v, want fd", kind)
	}
}

func TestScope_CloseIdempotent(t *testing.T) {
	var calls []int
	s := New(DefaultOptions())
	Declare(s, recordingGuard(resource.KindFD, 5, &calls))
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	s.Close()
	s.Close()

	if !s.Closed() || s.Len() != 0 {
		t.Fatalf("closed=%v len=%d after Close", s.Closed(), s.Len())
	}
	if len(calls) != 1 {
		t.Fatalf("calls = %v, want one release", calls)
	}
}

func TestScope_DeclareMisuse(t *testing.T) {
	expectPanic := func(name string, kind errors.Kind, fn func()) {
		t.Helper()
		defer func() {
			e, ok := recover().(*errors.Error)
			if !ok || e.Kind != kind {
				t.Errorf("%s: recovered %v, want %s", name, e, kind)
			}
		}()
		fn()
	}

	closed := New(DefaultOptions())
	closed.Close()
	expectPanic("closed scope", errors.KindReleased, func() { closed.FD(-1) })

	s := New(DefaultOptions())
	defer s.Close()
	g := s.FD(-1)
	expectPanic("double bind", errors.KindInvalidInput, func() { Declare(s, g) })

	released := FD(-1)
	released.Release()
	expectPanic("released guard", errors.KindReleased, func() { Declare(s, released) })
}

func TestScope_ObserverEvents(t *testing.T) {
	var events []resource.EventType
	opts := Options{Observers: []resource.Observer{
		resource.ObserverFunc(func(e resource.Event) { events = append(events, e.Type) }),
	}}

	Run(func(s *Scope) error {
		return nil
	})
	RunWith(opts, func(s *Scope) error {
		g := s.FD(-1)
		g.Reset(-1)
		g.Take()
		return nil
	})

	want := []resource.EventType{
		resource.EventBound,
		resource.EventAssigned,
		resource.EventTransferred,
		resource.EventReleased,
	}
	if !slices.Equal(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestScope_Locks(t *testing.T) {
	var mu sync.Mutex
	var rw sync.RWMutex

	Run(func(s *Scope) error {
		s.Lock(&mu)
		s.RLock(&rw)
		if mu.TryLock() || rw.TryLock() {
			t.Error("locks not held inside scope")
		}
		return nil
	})
	Run(func(s *Scope) error {
		s.WLock(&rw)
		return nil
	})

	if !mu.TryLock() || !rw.TryLock() {
		t.Fatal("locks still held after scope")
	}
}

// Scoped heap buffer in a function that returns early.
func TestEndToEnd_HeapEarlyReturn(t *testing.T) {
	opts, tr := trackedOptions()
	before := memory.Live()

	fill := func(fail bool) error {
		return RunWith(opts, func(s *Scope) error {
			buf, err := s.Alloc(1 << 16)
			if err != nil {
				return err
			}
			if fail {
				return errEarly
			}
			copy(buf.Get().Bytes(), "ok")
			return nil
		})
	}

	if err := fill(true); err != errEarly {
		t.Fatalf("fill(true) = %v, want early exit", err)
	}
	if err := fill(false); err != nil {
		t.Fatalf("fill(false) = %v", err)
	}

	if memory.Live() != before {
		t.Fatalf("memory.Live() = %d, want %d (leak)", memory.Live(), before)
	}
	if tr.LiveKind(resource.KindHeap) != 0 || len(tr.Outstanding()) != 0 {
		t.Fatal("tracker reports live heap variables")
	}
}

// Scoped descriptor handed to the caller with TakeFD.
func TestEndToEnd_TransferDescriptor(t *testing.T) {
	open := func() (int, error) {
		var out int
		err := Run(func(s *Scope) error {
			fd, err := unix.Open(os.DevNull, unix.O_RDONLY|unix.O_CLOEXEC, 0)
			if err != nil {
				return err
			}
			g := s.FD(fd)
			out = TakeFD(g)
			return nil
		})
		return out, err
	}

	fd, err := open()
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	if !fdValid(fd) {
		t.Fatal("descriptor closed by scope exit after transfer")
	}
	if err := unix.Close(fd); err != nil {
		t.Fatalf("caller close: %v", err)
	}
}

// Scoped directory stream released on normal exit.
func TestEndToEnd_DirectoryReleased(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "entry"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var fd int
	err := Run(func(s *Scope) error {
		d, err := s.OpenDir(dir)
		if err != nil {
			return err
		}
		fd = d.Get().Fd()
		names, err := d.Get().ReadNames(-1)
		if err != nil {
			return err
		}
		if len(names) != 1 {
			t.Errorf("names = %v", names)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != unix.EBADF {
		t.Fatalf("Fstat after scope exit = %v, want EBADF", err)
	}
}

func TestScope_OpenStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")

	err := Run(func(s *Scope) error {
		st, err := s.OpenStream(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		_, err = st.Get().Write([]byte("written in scope"))
		return err
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "written in scope" {
		t.Fatalf("contents = %q, want flushed on release", data)
	}
}

func TestScope_OpenErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	err := Run(func(s *Scope) error {
		if _, err := s.OpenDir(missing); err == nil {
			t.Error("OpenDir on missing path succeeded")
		}
		if _, err := s.OpenStream(missing, os.O_RDONLY, 0); err == nil {
			t.Error("OpenStream on missing path succeeded")
		}
		_, err := s.Alloc(0)
		return err
	})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseAcquire, Kind: errors.KindInvalidInput}) {
		t.Fatalf("Run() = %v, want invalid allocation size", err)
	}
}
