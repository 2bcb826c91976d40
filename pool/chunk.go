package pool

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/poolalloc"
	"golang.org/x/exp/slog"
)

type chunkState uint32

const (
	// chunkStateDirectServe: the pool holds every requested block
	chunkStateDirectServe chunkState = iota
	// chunkStatePartialServe: the pool holds at least one block, but fewer than requested
	chunkStatePartialServe
	// chunkStateGrowPool: the pool cannot supply one block and must be replaced from the heap
	chunkStateGrowPool
	// chunkStateScavengeFreeLists: the heap refused to grow the pool, a larger free block is
	// repurposed instead
	chunkStateScavengeFreeLists
	// chunkStateFatalRetry: nothing could be scavenged, the retrying heap allocation is the last resort
	chunkStateFatalRetry
)

var chunkStateMapping = map[chunkState]string{
	chunkStateDirectServe:       "DirectServe",
	chunkStatePartialServe:      "PartialServe",
	chunkStateGrowPool:          "GrowPool",
	chunkStateScavengeFreeLists: "ScavengeFreeLists",
	chunkStateFatalRetry:        "FatalRetry",
}

func (s chunkState) String() string {
	return chunkStateMapping[s]
}

// memoryPool is the contiguous range [start, end) of mem that has not been carved yet. start only
// moves forward until the pool is replaced.
type memoryPool struct {
	mem   []byte
	start int
	end   int
	// heapSize is the number of bytes ever taken from the heap to back the pool
	heapSize int
}

func (p *memoryPool) available() int {
	return p.end - p.start
}

func (p *memoryPool) serveState(size, nobjs int) chunkState {
	available := p.available()
	if available >= size*nobjs {
		return chunkStateDirectServe
	} else if available >= size {
		return chunkStatePartialServe
	}

	return chunkStateGrowPool
}

func (p *memoryPool) carve(total int) []byte {
	chunk := p.mem[p.start : p.start+total : p.start+total]
	p.start += total
	return chunk
}

func (p *memoryPool) reset(mem []byte) {
	p.mem = mem
	p.start = 0
	p.end = len(mem)
}

// chunkAlloc carves nobjs blocks of size bytes out of the pool. If the pool holds fewer blocks,
// nobjs is lowered to the number actually carved. If it cannot hold even one, the pool is
// replaced once, after which the carve cannot fail.
func (a *Allocator) chunkAlloc(size int, nobjs *int) ([]byte, error) {
	poolalloc.DebugCheckAligned(size, "size")

	replaced := false
	for {
		state := a.pool.serveState(size, *nobjs)

		switch state {
		case chunkStateDirectServe:
			return a.pool.carve(size * *nobjs), nil
		case chunkStatePartialServe:
			*nobjs = a.pool.available() / size
			a.logger.Debug("    Allocator::chunkAlloc", slog.String("State", state.String()), slog.Int("Size", size), slog.Int("Count", *nobjs))
			return a.pool.carve(size * *nobjs), nil
		}

		if replaced {
			panic(errors.AssertionFailedf("pool holds %d bytes after being replaced, less than one %d byte block", a.pool.available(), size))
		}

		err := a.replacePool(size, *nobjs)
		if err != nil {
			return nil, err
		}
		replaced = true
	}
}

// replacePool swaps the exhausted pool for new memory: a fresh heap range if the heap will give
// one up without a fight, otherwise a free block of size bytes or more, otherwise whatever the
// retrying heap allocation produces.
func (a *Allocator) replacePool(size, nobjs int) error {
	bytesToGet := 2*size*nobjs + poolalloc.RoundUp(a.pool.heapSize>>4)
	a.logger.Debug("    Allocator::replacePool", slog.String("State", chunkStateGrowPool.String()), slog.Int("Size", size), slog.Int("BytesToGet", bytesToGet))

	a.recycleRemainder()

	mem, err := a.raw.TryAllocate(bytesToGet)
	if err == nil {
		a.installHeapRange(mem)
		return nil
	}

	a.logger.Debug("    Allocator::replacePool", slog.String("State", chunkStateScavengeFreeLists.String()), slog.Any("error", err))
	if a.scavenge(size) {
		return nil
	}

	a.logger.Debug("    Allocator::replacePool", slog.String("State", chunkStateFatalRetry.String()), slog.Int("BytesToGet", bytesToGet))
	a.pool.reset(nil)
	a.fatalRetries++

	mem, err = a.raw.Allocate(bytesToGet)
	if err != nil {
		return err
	}

	a.installHeapRange(mem)
	return nil
}

func (a *Allocator) installHeapRange(mem []byte) {
	a.pool.reset(mem)
	a.pool.heapSize += len(mem)
	a.poolGrowths++
}

// recycleRemainder moves whatever is left of the pool onto the free list whose block size matches
// it exactly. Every carve is a multiple of poolalloc.Align and the pool is only replaced when it
// cannot hold one block of at most poolalloc.MaxBytes, so the remainder is always a size class.
func (a *Allocator) recycleRemainder() {
	remainder := a.pool.available()
	if remainder == 0 {
		return
	}

	if remainder%poolalloc.Align != 0 || remainder > poolalloc.MaxBytes {
		panic(errors.AssertionFailedf("pool remainder of %d bytes does not match any size class", remainder))
	}

	a.freeLists.push(ClassIndex(remainder), a.pool.carve(remainder))
}

// scavenge repurposes the first free block of size bytes or larger as the pool, searching the
// smallest classes first
func (a *Allocator) scavenge(size int) bool {
	for class := ClassIndex(size); class < poolalloc.NumClasses; class++ {
		block := a.freeLists.pop(class)
		if block != nil {
			a.pool.reset(block)
			a.scavenges++
			return true
		}
	}

	return false
}
