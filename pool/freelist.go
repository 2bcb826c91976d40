package pool

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/poolalloc"
)

// noBlock terminates a free list
const noBlock uintptr = 0

type freeSlot struct {
	mem  []byte
	next uintptr
}

// freeListTable holds one LIFO free list per size class. Links are kept out of band, keyed by
// the address of each block's first byte, so a block's contents are never touched while it is
// free. A block is either linked here or owned by a caller, never both.
type freeListTable struct {
	heads   [poolalloc.NumClasses]uintptr
	lengths [poolalloc.NumClasses]int
	links   *swiss.Map[uintptr, freeSlot]
}

func newFreeListTable() *freeListTable {
	return &freeListTable{
		links: swiss.NewMap[uintptr, freeSlot](64),
	}
}

func addressOf(mem []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
}

func (t *freeListTable) Len(class SizeClass) int {
	return t.lengths[class]
}

func (t *freeListTable) contains(mem []byte) bool {
	return t.links.Has(addressOf(mem))
}

// push links mem in front of the class's list. mem must be exactly one block of the class.
func (t *freeListTable) push(class SizeClass, mem []byte) {
	address := addressOf(mem)
	t.links.Put(address, freeSlot{
		mem:  mem,
		next: t.heads[class],
	})
	t.heads[class] = address
	t.lengths[class]++
}

// pop unlinks and returns the most recently pushed block of the class, or nil if the list is empty
func (t *freeListTable) pop(class SizeClass) []byte {
	address := t.heads[class]
	if address == noBlock {
		return nil
	}

	slot, ok := t.links.Get(address)
	if !ok {
		panic(errors.AssertionFailedf("free list %d points at a block that is not in the link table", class))
	}

	t.links.Delete(address)
	t.heads[class] = slot.next
	t.lengths[class]--
	return slot.mem
}

func (t *freeListTable) validate() error {
	total := 0

	for class := SizeClass(0); class < poolalloc.NumClasses; class++ {
		blockSize := class.BlockSize()
		count := 0

		for address := t.heads[class]; address != noBlock; count++ {
			// Walking more nodes than exist means the chain loops
			if count > t.links.Count() {
				return errors.Errorf("free list %d contains a cycle", class)
			}

			slot, ok := t.links.Get(address)
			if !ok {
				return errors.Errorf("free list %d links to address %#x, which is not in the link table", class, address)
			}

			if len(slot.mem) != blockSize || cap(slot.mem) != blockSize {
				return errors.Errorf("free list %d holds a block of %d bytes, but its blocks must be %d bytes", class, len(slot.mem), blockSize)
			}

			address = slot.next
		}

		if count != t.lengths[class] {
			return errors.Errorf("free list %d has length %d, but %d blocks are linked", class, t.lengths[class], count)
		}

		total += count
	}

	if total != t.links.Count() {
		return errors.Errorf("the link table holds %d blocks, but only %d are reachable from the free lists", t.links.Count(), total)
	}

	return nil
}
