package pool

import "github.com/vkngwrapper/poolalloc"

// SizeClass identifies one of the free lists. Class i holds blocks of exactly (i+1)*poolalloc.Align
// bytes.
type SizeClass int

// ClassIndex returns the size class that serves requests of n bytes. n must be between 1 and
// poolalloc.MaxBytes.
func ClassIndex(n int) SizeClass {
	return SizeClass((n+poolalloc.Align-1)/poolalloc.Align - 1)
}

// BlockSize returns the size in bytes of every block in this class
func (c SizeClass) BlockSize() int {
	return (int(c) + 1) * poolalloc.Align
}
