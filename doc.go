// Package scopedrelease ties the lifetime of operating-system resources to
// lexical scopes.
//
// A scoped variable holds one resource and the release routine for its kind.
// When the enclosing scope ends, whether by falling through, returning early
// or panicking, the routine runs exactly once against whatever the variable
// holds at that moment. Ownership can be moved out first, leaving an empty
// sentinel behind so the release has nothing to do.
//
// # Architecture Overview
//
//	scopedrelease/
//	├── scope/       Guards, scopes and ownership transfer
//	├── release/     One release callback per kind, EINTR retry
//	├── resource/    Kinds, sentinels, lifecycle events, Tracker
//	├── memory/      mmap-backed heap blocks
//	├── fsio/        Buffered streams and directory streams
//	├── readfile/    Capped whole-file reads
//	├── errors/      Structured error types
//	└── cmd/scoped/  Command line front end
//
// # Quick Start
//
//	err := scope.Run(func(s *scope.Scope) error {
//	    s.Lock(&mu)
//	    dir, err := s.OpenDir("/etc")
//	    if err != nil {
//	        return err
//	    }
//	    names, err := dir.Get().ReadNames(-1)
//	    ...
//	})
//
// # Supported Kinds
//
//	heap    *memory.Block   nil
//	stream  *fsio.Stream    nil
//	dir     *fsio.Dir       nil
//	fd      int             any negative value
//	mutex   *sync.Mutex     nil
//	rwlock  sync.Locker     nil
//
// The module targets Unix systems.
package scopedrelease
