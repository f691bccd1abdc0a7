package mocks

import "github.com/user/nvencprobe/pkg/ports"

// FileSystem is a mock implementation of ports.FileSystem.
type FileSystem struct {
	WriteFileFunc func(path string, data []byte) error

	// Recorded calls for verification
	Files map[string][]byte
}

// NewFileSystem returns an in-memory FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{Files: make(map[string][]byte)}
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.Files[path] = append([]byte(nil), data...)
	return nil
}

var _ ports.FileSystem = (*FileSystem)(nil)
