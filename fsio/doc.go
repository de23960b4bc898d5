// Package fsio provides the buffered stream and directory stream resources
// that scoped variables can own.
//
// Stream buffers reads and writes over a file (or any io.ReadWriteCloser);
// closing it flushes pending output once. Dir walks directory entries and
// exposes its descriptor number so callers can observe that a released
// directory no longer has an open descriptor.
package fsio
