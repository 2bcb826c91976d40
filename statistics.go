package poolalloc

// Statistics are basic counters reported by both allocation tiers
type Statistics struct {
	// AllocationCount is the number of blocks handed out and not yet returned
	AllocationCount int
	// AllocationBytes is the number of bytes requested by those blocks
	AllocationBytes int
	// HeapBytes is the number of bytes ever acquired from the platform heap. Memory is never
	// handed back, so this only grows.
	HeapBytes int
}

func (s *Statistics) Clear() {
	s.AllocationCount = 0
	s.AllocationBytes = 0
	s.HeapBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.AllocationCount += other.AllocationCount
	s.AllocationBytes += other.AllocationBytes
	s.HeapBytes += other.HeapBytes
}

// DetailedStatistics extends Statistics with the state of the pooling tier
type DetailedStatistics struct {
	Statistics
	// FreeBlockCount is the number of blocks currently linked into free lists
	FreeBlockCount int
	// FreeBlockBytes is the total size of those blocks
	FreeBlockBytes int
	// PoolBytes is the number of bytes in the pool that have not been carved yet
	PoolBytes int
	// PoolGrowths is the number of times the pool acquired a fresh range from the platform heap
	PoolGrowths int
	// Scavenges is the number of times a free block was repurposed as pool memory
	Scavenges int
	// FatalRetries is the number of times the pool fell back to a retrying heap allocation after
	// both growing and scavenging failed
	FatalRetries int
	// OOMHandlerCalls is the number of times an OOM handler was invoked
	OOMHandlerCalls int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.FreeBlockCount = 0
	s.FreeBlockBytes = 0
	s.PoolBytes = 0
	s.PoolGrowths = 0
	s.Scavenges = 0
	s.FatalRetries = 0
	s.OOMHandlerCalls = 0
}

func (s *DetailedStatistics) AddFreeBlocks(count int, blockSize int) {
	s.FreeBlockCount += count
	s.FreeBlockBytes += count * blockSize
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.FreeBlockCount += other.FreeBlockCount
	s.FreeBlockBytes += other.FreeBlockBytes
	s.PoolBytes += other.PoolBytes
	s.PoolGrowths += other.PoolGrowths
	s.Scavenges += other.Scavenges
	s.FatalRetries += other.FatalRetries
	s.OOMHandlerCalls += other.OOMHandlerCalls
}
