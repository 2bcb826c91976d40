package malloc

import (
	"fmt"
	"io"
	"os"

	"github.com/vkngwrapper/poolalloc"
	"golang.org/x/exp/slog"
)

// FatalHandler is called once the allocator has concluded that an allocation cannot succeed: the
// heap is exhausted and either no OOM handler is set or the failure is not one a handler could fix.
// The default handler prints a short diagnostic and terminates the process. A handler that returns
// instead causes the failing call to return an error marked with poolalloc.ErrOutOfMemory.
type FatalHandler func(err error)

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// Heap is the platform memory source. If nil, an unlimited GoHeap is used.
	Heap Heap
	// OOMHandler is the initial out-of-memory handler. It can be replaced later with
	// Allocator.SetOOMHandler.
	OOMHandler poolalloc.OOMHandler
	// Fatal is called when memory is exhausted and cannot be recovered. If nil, the process exits.
	Fatal FatalHandler
}

func exitOutOfMemory(err error) {
	fmt.Fprintln(os.Stderr, "out of memory")
	os.Exit(1)
}

// New creates a new Allocator
//
// logger - Receives debug output for each operation and an error entry when memory is exhausted.
// If nil, output is discarded.
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, options CreateOptions) *Allocator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	allocator := &Allocator{
		logger:     logger,
		heap:       options.Heap,
		oomHandler: options.OOMHandler,
		fatal:      options.Fatal,
	}

	if allocator.heap == nil {
		allocator.heap = NewGoHeap(0)
	}

	if allocator.fatal == nil {
		allocator.fatal = exitOutOfMemory
	}

	return allocator
}
