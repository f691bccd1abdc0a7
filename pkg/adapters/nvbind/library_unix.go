//go:build !windows

package nvbind

import (
	"fmt"

	"github.com/ebitengine/purego"
)

func openLibrary(name string) (*library, error) {
	handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, name, err)
	}
	return &library{name: name, handle: handle}, nil
}

func (l *library) lookup(name string) (uintptr, error) {
	return purego.Dlsym(l.handle, name)
}

func (l *library) close() error {
	return purego.Dlclose(l.handle)
}
