package pool

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/poolalloc"
	"github.com/vkngwrapper/poolalloc/malloc"
	"golang.org/x/exp/slog"
)

// Allocator is the second allocation tier. Requests of up to poolalloc.MaxBytes are rounded up
// to a multiple of poolalloc.Align and served from per-size free lists, which are refilled by
// carving chunks out of a pool of memory taken from the raw allocator in bulk. Larger requests
// go straight to the raw allocator. Pooled memory is never returned to the heap.
//
// Allocator is not safe for concurrent use. Wrap it in a Locked to share it between goroutines.
type Allocator struct {
	logger      *slog.Logger
	raw         *malloc.Allocator
	refillCount int

	freeLists *freeListTable
	pool      memoryPool

	allocationCount int
	allocationBytes int
	largeCount      int
	largeBytes      int
	poolGrowths     int
	scavenges       int
	fatalRetries    int
}

var _ poolalloc.Allocator = &Allocator{}

// RawAllocator returns the allocator that serves large requests and backs the pool
func (a *Allocator) RawAllocator() *malloc.Allocator {
	return a.raw
}

// SetOOMHandler replaces the raw allocator's out-of-memory handler and returns the previous one
func (a *Allocator) SetOOMHandler(handler poolalloc.OOMHandler) poolalloc.OOMHandler {
	return a.raw.SetOOMHandler(handler)
}

// FreeListLen returns the number of blocks currently linked into the free list for class
func (a *Allocator) FreeListLen(class SizeClass) int {
	return a.freeLists.Len(class)
}

// HeapSize returns the number of bytes ever taken from the heap to back the pool
func (a *Allocator) HeapSize() int {
	return a.pool.heapSize
}

// Allocate returns a block of n bytes. Blocks of up to poolalloc.MaxBytes have a capacity of
// their size class's block size.
func (a *Allocator) Allocate(n int) ([]byte, error) {
	a.logger.Debug("Allocator::Allocate", slog.Int("Size", n))

	if n <= 0 {
		return nil, errors.Wrapf(poolalloc.ErrInvalidSize, "requested %d bytes", n)
	}

	if n > poolalloc.MaxBytes {
		mem, err := a.raw.Allocate(n)
		if err != nil {
			return nil, err
		}

		a.largeCount++
		a.largeBytes += n
		return mem, nil
	}

	class := ClassIndex(n)
	block := a.freeLists.pop(class)
	if block == nil {
		var err error
		block, err = a.refill(class.BlockSize())
		if err != nil {
			return nil, err
		}
	}

	a.allocationCount++
	a.allocationBytes += n
	poolalloc.DebugValidate(a)

	return block[:n], nil
}

// Deallocate returns a block obtained from Allocate. n must fall in the same size class as the
// size the block was allocated with.
func (a *Allocator) Deallocate(p []byte, n int) error {
	a.logger.Debug("Allocator::Deallocate", slog.Int("Size", n))

	if cap(p) == 0 {
		return poolalloc.ErrNilPointer
	}

	if n <= 0 {
		return errors.Wrapf(poolalloc.ErrInvalidSize, "returned %d bytes", n)
	}

	if n > poolalloc.MaxBytes {
		err := a.raw.Deallocate(p, n)
		if err != nil {
			return err
		}

		a.largeCount--
		a.largeBytes -= n
		return nil
	}

	class := ClassIndex(n)
	blockSize := class.BlockSize()
	if cap(p) < blockSize {
		return errors.Wrapf(poolalloc.ErrInvalidBlock, "block with capacity %d returned as %d bytes", cap(p), n)
	}

	block := p[:blockSize:blockSize]
	if a.freeLists.contains(block) {
		return errors.Wrapf(poolalloc.ErrDoubleFree, "block of %d bytes", n)
	}

	a.freeLists.push(class, block)
	a.allocationCount--
	a.allocationBytes -= n
	poolalloc.DebugValidate(a)

	return nil
}

// Reallocate resizes p. Pooled blocks have no native resize: unless both sizes share a size class,
// a new block is allocated, min(oldSize, newSize) bytes are copied over and p is deallocated.
// A nil p behaves like Allocate.
func (a *Allocator) Reallocate(p []byte, oldSize, newSize int) ([]byte, error) {
	a.logger.Debug("Allocator::Reallocate", slog.Int("OldSize", oldSize), slog.Int("NewSize", newSize))

	if cap(p) == 0 {
		return a.Allocate(newSize)
	}

	if newSize <= 0 || oldSize <= 0 {
		return nil, errors.Wrapf(poolalloc.ErrInvalidSize, "resizing %d bytes to %d bytes", oldSize, newSize)
	}

	if oldSize > poolalloc.MaxBytes && newSize > poolalloc.MaxBytes {
		mem, err := a.raw.Reallocate(p, oldSize, newSize)
		if err != nil {
			return nil, err
		}

		a.largeBytes += newSize - oldSize
		return mem, nil
	}

	if oldSize <= poolalloc.MaxBytes && newSize <= poolalloc.MaxBytes &&
		poolalloc.RoundUp(oldSize) == poolalloc.RoundUp(newSize) {
		if cap(p) < poolalloc.RoundUp(newSize) {
			return nil, errors.Wrapf(poolalloc.ErrInvalidBlock, "block with capacity %d resized to %d bytes", cap(p), newSize)
		}

		a.allocationBytes += newSize - oldSize
		return p[:newSize], nil
	}

	mem, err := a.Allocate(newSize)
	if err != nil {
		return nil, err
	}

	copySize := min(oldSize, newSize)
	copy(mem[:copySize], p[:copySize])

	err = a.Deallocate(p, oldSize)
	if err != nil {
		return nil, err
	}

	return mem, nil
}

// Validate performs internal consistency checks on the free lists and the pool. When the allocator
// is functioning correctly it should not be possible for this method to return an error.
func (a *Allocator) Validate() error {
	if a.pool.start < 0 || a.pool.start > a.pool.end || a.pool.end > len(a.pool.mem) {
		return errors.Errorf("pool range [%d, %d) is invalid for a pool of %d bytes", a.pool.start, a.pool.end, len(a.pool.mem))
	}

	return a.freeLists.validate()
}

// AddStatistics sums this allocator's statistics into the provided poolalloc.Statistics object
func (a *Allocator) AddStatistics(stats *poolalloc.Statistics) {
	var raw poolalloc.Statistics
	a.raw.AddStatistics(&raw)

	stats.AllocationCount += a.allocationCount + a.largeCount
	stats.AllocationBytes += a.allocationBytes + a.largeBytes
	stats.HeapBytes += raw.HeapBytes
}

// AddDetailedStatistics sums this allocator's statistics, including the state of the pool and
// free lists, into the provided poolalloc.DetailedStatistics object
func (a *Allocator) AddDetailedStatistics(stats *poolalloc.DetailedStatistics) {
	a.AddStatistics(&stats.Statistics)

	for class := SizeClass(0); class < poolalloc.NumClasses; class++ {
		stats.AddFreeBlocks(a.freeLists.Len(class), class.BlockSize())
	}

	stats.PoolBytes += a.pool.available()
	stats.PoolGrowths += a.poolGrowths
	stats.Scavenges += a.scavenges
	stats.FatalRetries += a.fatalRetries
	stats.OOMHandlerCalls += a.raw.OOMHandlerCalls()
}
