package pool

import (
	"sync"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/poolalloc"
)

// Locked serializes every call into an Allocator behind a mutex so it can be shared between
// goroutines. The OOM handler runs with the mutex held and must not call back into the Locked.
type Locked struct {
	mutex     sync.Mutex
	allocator *Allocator
}

var _ poolalloc.Allocator = &Locked{}

func NewLocked(allocator *Allocator) *Locked {
	return &Locked{allocator: allocator}
}

func (l *Locked) Allocate(n int) ([]byte, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.allocator.Allocate(n)
}

func (l *Locked) Deallocate(p []byte, n int) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.allocator.Deallocate(p, n)
}

func (l *Locked) Reallocate(p []byte, oldSize, newSize int) ([]byte, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.allocator.Reallocate(p, oldSize, newSize)
}

func (l *Locked) SetOOMHandler(handler poolalloc.OOMHandler) poolalloc.OOMHandler {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.allocator.SetOOMHandler(handler)
}

func (l *Locked) Validate() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.allocator.Validate()
}

func (l *Locked) AddDetailedStatistics(stats *poolalloc.DetailedStatistics) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.allocator.AddDetailedStatistics(stats)
}

func (l *Locked) PrintDetailedMap(writer *jwriter.Writer) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.allocator.PrintDetailedMap(writer)
}
