package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreeListIsLIFO(t *testing.T) {
	table := newFreeListTable()

	first := make([]byte, 24)
	second := make([]byte, 24)
	table.push(2, first)
	table.push(2, second)
	require.Equal(t, 2, table.Len(2))
	require.True(t, table.contains(first))
	require.NoError(t, table.validate())

	require.Equal(t, addressOf(second), addressOf(table.pop(2)))
	require.Equal(t, addressOf(first), addressOf(table.pop(2)))
	require.Nil(t, table.pop(2))
	require.Zero(t, table.Len(2))
	require.False(t, table.contains(first))
}

func TestFreeListValidateWrongBlockSize(t *testing.T) {
	table := newFreeListTable()
	table.push(3, make([]byte, 16))

	require.Error(t, table.validate())
}

func TestFreeListValidateCycle(t *testing.T) {
	table := newFreeListTable()

	first := make([]byte, 8)
	second := make([]byte, 8)
	table.push(0, first)
	table.push(0, second)

	table.links.Put(addressOf(first), freeSlot{mem: first, next: addressOf(second)})
	require.Error(t, table.validate())
}

func TestFreeListValidateLength(t *testing.T) {
	table := newFreeListTable()
	table.push(0, make([]byte, 8))
	table.lengths[0] = 2

	require.Error(t, table.validate())
}

func TestFreeListValidateUnreachable(t *testing.T) {
	table := newFreeListTable()
	orphan := make([]byte, 8)
	table.links.Put(addressOf(orphan), freeSlot{mem: orphan})

	require.Error(t, table.validate())
}

func TestFreeListPopMissingLinkPanics(t *testing.T) {
	table := newFreeListTable()
	block := make([]byte, 8)
	table.push(0, block)
	table.links.Delete(addressOf(block))

	require.Panics(t, func() {
		table.pop(0)
	})
}
