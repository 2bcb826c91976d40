package poolalloc

// OOMHandler is called by an allocator when the platform heap cannot satisfy a request. It is
// expected to release memory held elsewhere (caches, ballast, etc.) so that a retry can succeed.
// An allocator will keep calling it for as long as the heap keeps failing, so a handler that never
// frees anything blocks its caller forever.
type OOMHandler func()

// Allocator is the narrow contract shared by both allocation tiers. Blocks are handed out as byte
// slices whose first byte identifies them: a block must be returned with the same byte count it
// was allocated with (or, for pooled blocks, a byte count in the same size class).
type Allocator interface {
	// Allocate returns a block of at least n bytes. len of the returned slice is always n.
	Allocate(n int) ([]byte, error)
	// Deallocate returns a block obtained from Allocate with the same n.
	Deallocate(p []byte, n int) error
	// Reallocate resizes a block, copying min(oldSize, newSize) bytes if the block has to move.
	// The old block must not be used afterward.
	Reallocate(p []byte, oldSize, newSize int) ([]byte, error)
	// SetOOMHandler replaces the handler invoked when the platform heap is exhausted and returns
	// the previous one, which may be nil.
	SetOOMHandler(handler OOMHandler) OOMHandler
}
