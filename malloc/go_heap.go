package malloc

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/poolalloc"
)

// GoHeap is a Heap backed by the Go runtime. A positive limit caps the number of bytes it will
// have outstanding at once, which makes exhaustion reproducible: a request that would cross the
// limit fails with poolalloc.ErrOutOfMemory until enough memory is freed.
type GoHeap struct {
	limit int
	inUse int
}

var _ Heap = &GoHeap{}

// NewGoHeap creates a GoHeap. A limit of 0 means no limit.
func NewGoHeap(limit int) *GoHeap {
	return &GoHeap{limit: limit}
}

func (h *GoHeap) Limit() int { return h.limit }

func (h *GoHeap) SetLimit(limit int) { h.limit = limit }

// InUse returns the number of bytes allocated and not yet freed
func (h *GoHeap) InUse() int { return h.inUse }

func (h *GoHeap) checkLimit(delta, n int) error {
	if h.limit <= 0 {
		return nil
	}

	// No amount of freeing will make room for this one
	if n > h.limit {
		return errors.Newf("request of %d bytes exceeds the heap limit of %d bytes", n, h.limit)
	}

	if h.inUse+delta > h.limit {
		return errors.Mark(
			errors.Newf("heap limit of %d bytes reached: %d bytes in use, %d bytes requested", h.limit, h.inUse, n),
			poolalloc.ErrOutOfMemory,
		)
	}

	return nil
}

func (h *GoHeap) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Wrapf(poolalloc.ErrInvalidSize, "requested %d bytes", n)
	}

	err := h.checkLimit(n, n)
	if err != nil {
		return nil, err
	}

	h.inUse += n
	return make([]byte, n), nil
}

func (h *GoHeap) Realloc(p []byte, n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Wrapf(poolalloc.ErrInvalidSize, "requested %d bytes", n)
	}

	delta := n - cap(p)
	err := h.checkLimit(delta, n)
	if err != nil {
		return nil, err
	}

	mem := make([]byte, n)
	copy(mem, p[:cap(p)])
	h.inUse += delta
	return mem, nil
}

func (h *GoHeap) Free(p []byte) {
	h.inUse -= cap(p)
}
