package malloc

//go:generate mockgen -source heap.go -destination ./mocks/heap.go

// Heap is the platform memory source behind the raw allocator. Implementations report exhaustion
// by returning an error marked with poolalloc.ErrOutOfMemory: only those errors are retried after
// calling the OOM handler. Any other error is treated as a terminal failure.
type Heap interface {
	// Alloc returns a fresh block of exactly n bytes
	Alloc(n int) ([]byte, error)
	// Realloc resizes p to n bytes, moving it if necessary. p must not be used after a successful call.
	Realloc(p []byte, n int) ([]byte, error)
	// Free releases p
	Free(p []byte)
}
