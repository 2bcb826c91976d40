package poolalloc

const (
	// Align is the boundary every pooled block is rounded up to. It must be a power of two.
	Align = 8
	// MaxBytes is the largest request served from the free lists. Anything larger goes straight
	// to the platform heap.
	MaxBytes = 128
	// NumClasses is the number of free lists, one per multiple of Align up to MaxBytes
	NumClasses = MaxBytes / Align
)

func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// RoundUp rounds bytes up to the next multiple of Align
func RoundUp(bytes int) int {
	return AlignUp(bytes, Align)
}
