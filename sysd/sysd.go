// Package sysd generates systemd units and installs them into a generator
// output directory.
package sysd

import (
	"os"
	"path/filepath"
)

// FS describes an interface which must be provided, so the package
// can interact with the filesystem.
type FS interface {
	Stat(path string) (os.FileInfo, error)
	LStat(path string) (os.FileInfo, error)
	Symlink(target, at string) error
	MkdirAll(at string) error
	Write(path string, data []byte, perms os.FileMode) error
}

// HostFS implements FS on the running system.
type HostFS struct{}

// Stat implements FS.
func (HostFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// LStat implements FS.
func (HostFS) LStat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Symlink implements FS.
func (HostFS) Symlink(target, at string) error {
	return os.Symlink(target, at)
}

// MkdirAll implements FS.
func (HostFS) MkdirAll(at string) error {
	return os.MkdirAll(at, 0755)
}

// Write implements FS. The file is written next to its destination and
// renamed into place, so readers never see a partial unit.
func (HostFS) Write(path string, data []byte, perms os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Chmod(perms); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
