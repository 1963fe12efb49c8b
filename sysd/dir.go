package sysd

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalFSTarget is the target pulling in local file systems at boot.
const LocalFSTarget = "local-fs.target"

// Dir is a generator output directory.
type Dir struct {
	FS   FS
	Path string
}

// NewDir returns the output directory at path on the host.
func NewDir(path string) *Dir {
	return &Dir{FS: HostFS{}, Path: path}
}

// UnitPath returns where the named unit lives in the directory.
func (d *Dir) UnitPath(unitName string) string {
	return filepath.Join(d.Path, unitName)
}

// WantsDir returns the .wants directory of target.
func (d *Dir) WantsDir(target string) string {
	return filepath.Join(d.Path, target+".wants")
}

// Prepare creates the .wants directories of the given targets.
func (d *Dir) Prepare(targets ...string) error {
	for _, t := range targets {
		if err := d.FS.MkdirAll(d.WantsDir(t)); err != nil {
			return err
		}
	}
	return nil
}

// Exists returns true if anything, a dangling symlink included, already
// occupies the unit's name.
func (d *Dir) Exists(unitName string) (bool, error) {
	_, err := d.FS.LStat(d.UnitPath(unitName))
	switch {
	case err != nil && !os.IsNotExist(err):
		return false, err
	case err != nil && os.IsNotExist(err):
		return false, nil
	default:
		return true, nil
	}
}

// Install writes the unit using the given name. Unless overwrite is set,
// os.ErrExist is returned for a name that is already taken.
func (d *Dir) Install(unitName string, conf *Unit, overwrite bool) error {
	if !overwrite {
		exists, err := d.Exists(unitName)
		if err != nil {
			return err
		}
		if exists {
			return os.ErrExist
		}
	}

	return d.FS.Write(d.UnitPath(unitName), []byte(conf.String()), 0644)
}

// IsWanted returns true if target already wants the unit.
func (d *Dir) IsWanted(target, unitName string) (bool, error) {
	s, err := d.FS.LStat(filepath.Join(d.WantsDir(target), unitName))
	switch {
	case err != nil && !os.IsNotExist(err):
		return false, err
	case err == nil && s.Mode()&os.ModeSymlink == 0:
		return false, fmt.Errorf("expected symlink on %s", filepath.Join(d.WantsDir(target), unitName))
	case err == nil:
		return true, nil
	}
	return false, nil
}

// Want adds a Wants= dependency from target on the unit by linking it into
// the target's .wants directory.
func (d *Dir) Want(target, unitName string) error {
	wanted, err := d.IsWanted(target, unitName)
	if err != nil || wanted {
		return err
	}
	return d.FS.Symlink(filepath.Join("..", unitName), filepath.Join(d.WantsDir(target), unitName))
}
