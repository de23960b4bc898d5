// Package release holds one release callback per scoped resource kind.
//
//	heap    Free(*memory.Block)
//	stream  CloseStream(*fsio.Stream)
//	dir     CloseDir(*fsio.Dir)
//	fd      CloseFD(int)
//	mutex   Unlock(*sync.Mutex)
//	rwlock  UnlockRW(sync.Locker)
//
// Every callback is a no-op on its kind's empty sentinel (nil, or a negative
// descriptor). Callbacks whose close can be interrupted by a signal go
// through RetryInterrupted and try again for as long as the failure is EINTR;
// any other failure ends the release. Callbacks return that failure for
// diagnostics, but release is best-effort and callers never see it on their
// own error path.
//
// Callbacks do not allocate and do not log.
package release
