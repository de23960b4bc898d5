// Package scope binds resources to the lifetime of a lexical scope.
//
// A Guard is a scoped variable: it holds one resource of a fixed kind and the
// release callback for that kind. Releasing the guard runs the callback
// exactly once against whatever the guard holds at that moment, so values
// stored with Reset and handles moved out with Take are both honored.
//
// # Single Variables
//
// Pair a guard with defer:
//
//	g := scope.FD(fd)
//	defer g.Release()
//
// # Scopes
//
// A Scope collects guards and releases them, last declared first, when it
// closes. Run closes the scope on normal return, early return and panic:
//
//	err := scope.Run(func(s *scope.Scope) error {
//	    buf, err := s.Alloc(1 << 20)
//	    if err != nil {
//	        return err
//	    }
//	    dir, err := s.OpenDir(path)
//	    if err != nil {
//	        return err // buf is still released
//	    }
//	    ...
//	})
//
// # Ownership Transfer
//
// Take (or TakeFD and TakePointer) moves the handle to the caller and leaves
// the kind's empty sentinel behind, turning the pending release into a no-op:
//
//	func openConfig(path string) (int, error) {
//	    g := scope.FD(-1)
//	    defer g.Release()
//	    fd, err := unix.Open(path, unix.O_RDONLY, 0)
//	    if err != nil {
//	        return -1, err
//	    }
//	    g.Reset(fd)
//	    if err := validate(fd); err != nil {
//	        return -1, err // fd closed here
//	    }
//	    return scope.TakeFD(g), nil // caller owns fd
//	}
//
// # Errors
//
// Release is best-effort. Failures are logged at debug level and handed to
// Options.OnReleaseError; they never reach the caller's error path and never
// modify the error recorded with Scope.Fail.
package scope
