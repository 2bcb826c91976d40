package pool

import (
	"io"

	"github.com/vkngwrapper/poolalloc/malloc"
	"golang.org/x/exp/slog"
)

const (
	// DefaultRefillCount is the number of blocks carved from the pool each time a free list runs
	// dry, when CreateOptions.RefillCount is not set
	DefaultRefillCount int = 20
)

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// RawAllocator serves requests larger than poolalloc.MaxBytes and supplies the memory the pool
	// is carved from. If nil, one is created over an unlimited malloc.GoHeap using the same logger.
	RawAllocator *malloc.Allocator
	// RefillCount is the number of blocks requested from the pool when a free list is empty. One
	// goes to the caller and the rest are linked into the free list.
	RefillCount int
}

// New creates a new Allocator
//
// logger - Receives debug output for each operation. If nil, output is discarded.
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, options CreateOptions) *Allocator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	allocator := &Allocator{
		logger:      logger,
		raw:         options.RawAllocator,
		refillCount: options.RefillCount,
		freeLists:   newFreeListTable(),
	}

	if allocator.raw == nil {
		allocator.raw = malloc.New(logger, malloc.CreateOptions{})
	}

	if allocator.refillCount < 1 {
		allocator.refillCount = DefaultRefillCount
	}

	return allocator
}
