package migrate

import (
	"io/fs"
	"os"
)

// FS is the filesystem capability set required by the migration executor.
// Production code uses OS(); tests supply a fake or operate on t.TempDir.
type FS interface {
	// ReadDir lists the direct entries of a directory.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Stat describes a path.
	Stat(name string) (fs.FileInfo, error)

	// ReadFile returns the full content of a file.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to a file, creating it if needed.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory and all missing parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Remove deletes a single file or empty directory.
	Remove(name string) error

	// RemoveAll deletes a path and everything below it.
	RemoveAll(path string) error
}

// osFS is the real-filesystem implementation of FS.
type osFS struct{}

// OS returns an FS backed by the os package.
func OS() FS {
	return osFS{}
}

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (osFS) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (osFS) ReadFile(name string) ([]byte, error)       { return os.ReadFile(name) }
func (osFS) Remove(name string) error                   { return os.Remove(name) }
func (osFS) RemoveAll(path string) error                { return os.RemoveAll(path) }

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}
