package poolalloc

import "github.com/pkg/errors"

var (
	// ErrInvalidSize is returned when an allocation of zero or negative bytes is requested
	ErrInvalidSize error = errors.New("allocation size must be greater than zero")
	// ErrNilPointer is returned when a nil or empty block is passed to Deallocate or Reallocate
	ErrNilPointer error = errors.New("block must not be nil")
	// ErrInvalidBlock is returned when a block is too small to belong to the size class it was
	// returned under
	ErrInvalidBlock error = errors.New("block does not match its size class")
	// ErrDoubleFree is returned when a block is returned to a free list it is already linked into
	ErrDoubleFree error = errors.New("block is already free")
	// ErrOutOfMemory marks every failure caused by the platform heap running out of memory
	ErrOutOfMemory error = errors.New("out of memory")
)
