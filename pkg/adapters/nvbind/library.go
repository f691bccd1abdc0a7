// Package nvbind resolves the CUDA driver and NVENC entry points from the
// installed NVIDIA libraries at run time. Nothing is linked at build time,
// so the binary starts on machines without an NVIDIA driver.
package nvbind

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// library is an open native library handle.
type library struct {
	name   string
	handle uintptr
}

// symbol pairs an exported entry point with the Go function it binds to.
type symbol struct {
	name string
	fptr interface{}
}

// bind resolves every symbol and registers it. It stops at the first
// missing entry point so that a partially bound table is never used.
func (l *library) bind(symbols []symbol) error {
	for _, s := range symbols {
		addr, err := l.lookup(s.name)
		if err != nil || addr == 0 {
			return fmt.Errorf("%w: %s in %s", ErrSymbolNotFound, s.name, l.name)
		}
		purego.RegisterFunc(s.fptr, addr)
	}
	return nil
}
