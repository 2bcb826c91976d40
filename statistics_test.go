package poolalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetailedStatisticsAdd(t *testing.T) {
	var stats DetailedStatistics
	stats.AddFreeBlocks(3, 16)
	stats.AddFreeBlocks(2, 128)
	require.Equal(t, 5, stats.FreeBlockCount)
	require.Equal(t, 3*16+2*128, stats.FreeBlockBytes)

	other := DetailedStatistics{
		Statistics: Statistics{
			AllocationCount: 2,
			AllocationBytes: 40,
			HeapBytes:       640,
		},
		FreeBlockCount:  1,
		FreeBlockBytes:  8,
		PoolBytes:       320,
		PoolGrowths:     1,
		Scavenges:       2,
		FatalRetries:    3,
		OOMHandlerCalls: 4,
	}
	stats.AddDetailedStatistics(&other)

	require.Equal(t, DetailedStatistics{
		Statistics: Statistics{
			AllocationCount: 2,
			AllocationBytes: 40,
			HeapBytes:       640,
		},
		FreeBlockCount:  6,
		FreeBlockBytes:  3*16 + 2*128 + 8,
		PoolBytes:       320,
		PoolGrowths:     1,
		Scavenges:       2,
		FatalRetries:    3,
		OOMHandlerCalls: 4,
	}, stats)

	stats.Clear()
	require.Equal(t, DetailedStatistics{}, stats)
}
