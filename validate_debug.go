//go:build debug_poolalloc

package poolalloc

import (
	cerrors "github.com/cockroachdb/errors"
)

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_poolalloc build tag is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// DebugCheckAligned will verify that value is a multiple of Align, and panics if it is not.
// This method no-ops unless the debug_poolalloc build tag is present.
func DebugCheckAligned(value int, name string) {
	if value%Align != 0 {
		panic(cerrors.AssertionFailedf("%s is %d, which is not a multiple of %d", name, value, Align))
	}
}
