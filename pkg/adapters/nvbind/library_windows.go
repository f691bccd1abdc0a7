//go:build windows

package nvbind

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func openLibrary(name string) (*library, error) {
	handle, err := windows.LoadLibrary(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, name, err)
	}
	return &library{name: name, handle: uintptr(handle)}, nil
}

func (l *library) lookup(name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(l.handle), name)
}

func (l *library) close() error {
	return windows.FreeLibrary(windows.Handle(l.handle))
}
