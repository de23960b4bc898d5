// Package memory provides explicitly released heap allocations.
//
// A Block is an anonymous private mapping obtained with mmap(2). The Go
// garbage collector never sees it, so it leaks unless Free is called, which
// makes it the heap-allocation kind for scoped variables:
//
//	b, err := memory.Alloc(4096)
//	if err != nil {
//	    return err
//	}
//	defer scope.Heap(b).Release()
//
// Live and LiveBytes report outstanding allocations and are intended for
// leak assertions in tests.
package memory
