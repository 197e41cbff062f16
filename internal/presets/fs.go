package presets

import (
	"io/fs"
	"os"
)

// FileSystem abstracts file system operations for testing.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
	IsNotExist(err error) bool
}

// RealFileSystem implements FileSystem using the os package.
type RealFileSystem struct{}

func (r *RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) // #nosec G304 -- caller-supplied preset path, cleaned before use
}

func (r *RealFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (r *RealFileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}
