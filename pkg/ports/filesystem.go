package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// WriteFile replaces the file at path with data, creating parent
	// directories as needed.
	WriteFile(path string, data []byte) error
}
