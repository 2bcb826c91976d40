package pool

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/poolalloc"
)

// PrintDetailedMap writes a json object describing the pool and every non-empty free list
func (a *Allocator) PrintDetailedMap(writer *jwriter.Writer) {
	var stats poolalloc.DetailedStatistics
	stats.Clear()
	a.AddDetailedStatistics(&stats)

	objState := writer.Object()
	defer objState.End()

	objState.Name("HeapBytes").Int(stats.HeapBytes)
	objState.Name("PoolHeapBytes").Int(a.pool.heapSize)
	objState.Name("PoolBytes").Int(stats.PoolBytes)
	objState.Name("Allocations").Int(stats.AllocationCount)
	objState.Name("AllocationBytes").Int(stats.AllocationBytes)
	objState.Name("FreeBlocks").Int(stats.FreeBlockCount)
	objState.Name("FreeBytes").Int(stats.FreeBlockBytes)
	objState.Name("PoolGrowths").Int(stats.PoolGrowths)
	objState.Name("Scavenges").Int(stats.Scavenges)
	objState.Name("FatalRetries").Int(stats.FatalRetries)
	objState.Name("OOMHandlerCalls").Int(stats.OOMHandlerCalls)

	arrayState := objState.Name("FreeLists").Array()
	defer arrayState.End()

	for class := SizeClass(0); class < poolalloc.NumClasses; class++ {
		count := a.freeLists.Len(class)
		if count == 0 {
			continue
		}

		obj := arrayState.Object()
		obj.Name("Class").Int(int(class))
		obj.Name("BlockSize").Int(class.BlockSize())
		obj.Name("Count").Int(count)
		obj.End()
	}
}
