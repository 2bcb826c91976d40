package pool

// refill is called when the free list for size is empty. It returns one block of size bytes to
// the caller and links the rest of the carved chunk into the free list.
func (a *Allocator) refill(size int) ([]byte, error) {
	nobjs := a.refillCount

	chunk, err := a.chunkAlloc(size, &nobjs)
	if err != nil {
		return nil, err
	}

	result := chunk[:size:size]
	if nobjs == 1 {
		return result, nil
	}

	// Link back to front so the block after the caller's is the new head and the blocks come
	// back out in address order
	class := ClassIndex(size)
	for i := nobjs - 1; i >= 1; i-- {
		offset := i * size
		a.freeLists.push(class, chunk[offset:offset+size:offset+size])
	}

	return result, nil
}
