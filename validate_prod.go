//go:build !debug_poolalloc

package poolalloc

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_poolalloc build tag is present
func DebugValidate(validatable Validatable) {
}

// DebugCheckAligned will verify that value is a multiple of Align, and panics if it is not.
// This method no-ops unless the debug_poolalloc build tag is present.
func DebugCheckAligned(value int, name string) {
}
