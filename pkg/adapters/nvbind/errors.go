package nvbind

import "errors"

var (
	// ErrLibraryNotFound is returned when a native library cannot be loaded.
	ErrLibraryNotFound = errors.New("nvbind: library not found")

	// ErrSymbolNotFound is returned when a required entry point is missing.
	ErrSymbolNotFound = errors.New("nvbind: symbol not found")
)
