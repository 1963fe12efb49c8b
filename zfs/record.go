package zfs

import (
	"fmt"
	"strings"
)

// DatasetRecord is one parsed line of the property cache.
type DatasetRecord struct {
	Name       string
	Mountpoint string
	CanMount   CanMount

	Atime    Toggle
	Relatime Toggle
	Devices  Toggle
	Exec     Toggle
	Readonly Toggle
	Setuid   Toggle
	Nbmand   Toggle

	// EncryptionRoot is empty for unencrypted datasets.
	EncryptionRoot string
	KeyLocation    KeyLocation

	raw []string
}

// ParseRecord splits a cache line on tabs. Only tabs separate fields, so
// names and mountpoints may contain spaces.
//
// An unknown canmount, a missing field or a relative mountpoint on a dataset
// that would be mounted is returned as a Fatal RecordError.
func ParseRecord(line string) (*DatasetRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < len(CachedProperties) {
		return nil, fatal(fields[0], fmt.Errorf("%w: %d of %d fields", ErrShortRecord, len(fields), len(CachedProperties)))
	}
	// Extra trailing columns belong to newer cache writers.
	fields = fields[:len(CachedProperties)]

	r := &DatasetRecord{
		Name:        fields[colName],
		Mountpoint:  fields[colMountpoint],
		Atime:       parseToggle(fields[colAtime]),
		Relatime:    parseToggle(fields[colRelatime]),
		Devices:     parseToggle(fields[colDevices]),
		Exec:        parseToggle(fields[colExec]),
		Readonly:    parseToggle(fields[colReadonly]),
		Setuid:      parseToggle(fields[colSetuid]),
		Nbmand:      parseToggle(fields[colNbmand]),
		KeyLocation: parseKeyLocation(fields[colKeyLocation]),
		raw:         fields,
	}

	if er := fields[colEncryptionRoot]; er != "-" {
		r.EncryptionRoot = er
	}

	var ok bool
	if r.CanMount, ok = parseCanMount(fields[colCanMount]); !ok {
		return nil, fatal(r.Name, fmt.Errorf("%w %q", ErrInvalidCanMount, fields[colCanMount]))
	}

	if r.CanMount != CanMountOn || r.Mountpoint == MountpointLegacy || r.Mountpoint == MountpointNone {
		return r, nil
	}
	if !strings.HasPrefix(r.Mountpoint, "/") {
		return nil, fatal(r.Name, fmt.Errorf("%w %q", ErrInvalidMountpoint, r.Mountpoint))
	}

	return r, nil
}

// Skipped is true for datasets that are not mounted at boot.
func (r *DatasetRecord) Skipped() bool {
	return r.CanMount != CanMountOn || r.Mountpoint == MountpointLegacy || r.Mountpoint == MountpointNone
}

// Encrypted is true when the dataset has an encryption root.
func (r *DatasetRecord) Encrypted() bool {
	return r.EncryptionRoot != ""
}

// IsEncryptionRoot is true when the dataset holds its own key.
func (r *DatasetRecord) IsEncryptionRoot() bool {
	return r.Encrypted() && r.EncryptionRoot == r.Name
}

// Raw returns the cached text of a property, or "" for an unknown one.
func (r *DatasetRecord) Raw(property string) string {
	for i, p := range CachedProperties {
		if p == property {
			return r.raw[i]
		}
	}
	return ""
}

// Pool is the name of the pool the dataset belongs to.
func (r *DatasetRecord) Pool() string {
	if isRootDataset(r.Name) {
		return r.Name
	}
	return r.Name[:strings.IndexRune(r.Name, '/')]
}

func isRootDataset(name string) bool {
	return !strings.ContainsRune(name, '/')
}

