package malloc

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/poolalloc"
	"golang.org/x/exp/slog"
)

// Allocator is the first allocation tier: every request goes straight to the platform Heap. When
// the heap runs out of memory, Allocate and Reallocate call the OOM handler and retry until the
// heap succeeds. With no handler set the failure is fatal.
//
// Allocator is not safe for concurrent use.
type Allocator struct {
	logger     *slog.Logger
	heap       Heap
	oomHandler poolalloc.OOMHandler
	fatal      FatalHandler

	allocationCount int
	allocationBytes int
	heapBytes       int
	oomHandlerCalls int
}

var _ poolalloc.Allocator = &Allocator{}

// SetOOMHandler replaces the out-of-memory handler and returns the previous one. Passing nil
// makes the next exhaustion fatal.
func (a *Allocator) SetOOMHandler(handler poolalloc.OOMHandler) poolalloc.OOMHandler {
	old := a.oomHandler
	a.oomHandler = handler
	return old
}

// OOMHandlerCalls returns the number of times the OOM handler has been invoked
func (a *Allocator) OOMHandlerCalls() int {
	return a.oomHandlerCalls
}

// AddStatistics sums this allocator's statistics into the provided poolalloc.Statistics object
func (a *Allocator) AddStatistics(stats *poolalloc.Statistics) {
	stats.AllocationCount += a.allocationCount
	stats.AllocationBytes += a.allocationBytes
	stats.HeapBytes += a.heapBytes
}

// TryAllocate makes a single attempt to allocate n bytes from the heap. Unlike Allocate, it never
// calls the OOM handler and never treats failure as fatal, which leaves callers free to recover
// some other way.
func (a *Allocator) TryAllocate(n int) ([]byte, error) {
	a.logger.Debug("Allocator::TryAllocate", slog.Int("Size", n))

	if n <= 0 {
		return nil, errors.Wrapf(poolalloc.ErrInvalidSize, "requested %d bytes", n)
	}

	mem, err := a.heap.Alloc(n)
	if err != nil {
		return nil, err
	}

	a.allocated(n)
	return mem[:n:n], nil
}

// Allocate returns a block of n bytes, retrying through the OOM handler while the heap is
// exhausted
func (a *Allocator) Allocate(n int) ([]byte, error) {
	a.logger.Debug("Allocator::Allocate", slog.Int("Size", n))

	if n <= 0 {
		return nil, errors.Wrapf(poolalloc.ErrInvalidSize, "requested %d bytes", n)
	}

	attempt := func() ([]byte, error) {
		return a.heap.Alloc(n)
	}

	mem, err := attempt()
	if err != nil {
		mem, err = a.retry(n, err, attempt)
		if err != nil {
			return nil, err
		}
	}

	a.allocated(n)
	return mem[:n:n], nil
}

// Deallocate returns p to the heap
func (a *Allocator) Deallocate(p []byte, n int) error {
	a.logger.Debug("Allocator::Deallocate", slog.Int("Size", n))

	if cap(p) == 0 {
		return poolalloc.ErrNilPointer
	}

	a.heap.Free(p)
	a.allocationCount--
	a.allocationBytes -= n
	return nil
}

// Reallocate resizes p with the heap's native resize, retrying through the OOM handler while the
// heap is exhausted. A nil p behaves like Allocate.
func (a *Allocator) Reallocate(p []byte, oldSize, newSize int) ([]byte, error) {
	a.logger.Debug("Allocator::Reallocate", slog.Int("OldSize", oldSize), slog.Int("NewSize", newSize))

	if cap(p) == 0 {
		return a.Allocate(newSize)
	}

	if newSize <= 0 {
		return nil, errors.Wrapf(poolalloc.ErrInvalidSize, "requested %d bytes", newSize)
	}

	attempt := func() ([]byte, error) {
		return a.heap.Realloc(p, newSize)
	}

	mem, err := attempt()
	if err != nil {
		mem, err = a.retry(newSize, err, attempt)
		if err != nil {
			return nil, err
		}
	}

	a.allocationBytes += newSize - oldSize
	if newSize > oldSize {
		a.heapBytes += newSize - oldSize
	}

	return mem[:newSize:newSize], nil
}

func (a *Allocator) allocated(n int) {
	a.allocationCount++
	a.allocationBytes += n
	a.heapBytes += n
}

// retry keeps calling the OOM handler and repeating attempt until attempt succeeds. It gives up
// as soon as there is no handler or the heap reports a failure that is not exhaustion.
func (a *Allocator) retry(n int, err error, attempt func() ([]byte, error)) ([]byte, error) {
	for {
		if !errors.Is(err, poolalloc.ErrOutOfMemory) {
			return nil, a.outOfMemory(n, err)
		}

		// Read the handler every time around, it may unset itself
		handler := a.oomHandler
		if handler == nil {
			return nil, a.outOfMemory(n, err)
		}

		a.oomHandlerCalls++
		a.logger.Debug("    Allocator::retry calling OOM handler", slog.Int("Size", n), slog.Int("Calls", a.oomHandlerCalls))
		handler()

		var mem []byte
		mem, err = attempt()
		if err == nil {
			return mem, nil
		}
	}
}

func (a *Allocator) outOfMemory(n int, cause error) error {
	err := errors.Mark(errors.Wrapf(cause, "could not allocate %d bytes", n), poolalloc.ErrOutOfMemory)
	a.logger.Error("out of memory", slog.Int("Size", n), slog.Any("error", cause))
	a.fatal(err)
	return err
}
