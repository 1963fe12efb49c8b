// Package generator turns cached dataset properties into mount units and
// key-load services for systemd.
package generator

import (
	"github.com/josephvusich/zfs-mount-generator/sysd"
	"github.com/josephvusich/zfs-mount-generator/zfs"
)

// Units the generated ones are ordered against.
const (
	PoolImportTarget = "zfs-import.target"
	MountAllService  = "zfs-mount.service"
)

const (
	documentation = "man:zfs-mount-generator(8)"
	fsType        = "zfs"
)

// Facilities are the external programs the generated units run.
type Facilities struct {
	ZFS         string
	AskPassword string
	Shell       string
}

// DefaultFacilities match a stock OpenZFS install.
var DefaultFacilities = Facilities{
	ZFS:         "/sbin/zfs",
	AskPassword: "systemd-ask-password",
	Shell:       "/bin/sh",
}

// MountUnitSpec describes the mount unit for one dataset.
type MountUnitSpec struct {
	UnitName string
	Where    string
	What     string
	Type     string
	Options  []string
	// Wants is also the After= list.
	Wants  []string
	Source string
}

// Unit renders the mount unit. The mount is ordered before local-fs.target and
// zfs-mount.service, and after the pool import and its key.
func (m *MountUnitSpec) Unit() *sysd.Unit {
	return &sysd.Unit{
		SourcePath:    m.Source,
		Documentation: []string{documentation},
		Before:        []string{sysd.LocalFSTarget, MountAllService},
		After:         m.Wants,
		Wants:         m.Wants,
		Mount: &sysd.Mount{
			Where:   m.Where,
			What:    m.What,
			Type:    m.Type,
			Options: m.Options,
		},
	}
}

// KeyLoadServiceSpec describes the service loading an encryption root's key.
type KeyLoadServiceSpec struct {
	UnitName string
	Dataset  string
	Load     sysd.Command
	Unload   sysd.Command
	// RequiresMountsFor is the key file, if the key comes from one.
	RequiresMountsFor string
	Source            string
}

// Unit renders the spec as a oneshot service that stays active until the
// key is unloaded.
func (k *KeyLoadServiceSpec) Unit() *sysd.Unit {
	u := &sysd.Unit{
		Description:           "Load ZFS key for " + k.Dataset,
		SourcePath:            k.Source,
		Documentation:         []string{documentation},
		NoDefaultDependencies: true,
		After:                 []string{PoolImportTarget},
		Wants:                 []string{PoolImportTarget},
		Service: &sysd.Service{
			Type:            sysd.OneshotService,
			RemainAfterExit: true,
			ExecStart:       k.Load,
			ExecStop:        k.Unload,
		},
	}
	if k.RequiresMountsFor != "" {
		u.RequiresMountsFor = []string{k.RequiresMountsFor}
	}
	return u
}

// Plan is everything generated for one dataset.
type Plan struct {
	Record *zfs.DatasetRecord
	Mount  *MountUnitSpec
	// KeyUnit is the key-load service the mount depends on, if encrypted.
	KeyUnit string
	// KeyLoad is set when the dataset is its own encryption root and its
	// key can be loaded at boot.
	KeyLoad *KeyLoadServiceSpec
	// Problems are Degraded errors that were worked around.
	Problems []error
}

// Plan decides which units a mounted dataset needs. Only escaping failures
// are returned as errors.
func (g *Generator) Plan(r *zfs.DatasetRecord, source string) (*Plan, error) {
	name, err := sysd.MountUnitName(g.Escaper, r.Mountpoint)
	if err != nil {
		return nil, err
	}

	opts, invalid := zfs.MountOptions(r)
	p := &Plan{
		Record: r,
		Mount: &MountUnitSpec{
			UnitName: name,
			Where:    r.Mountpoint,
			What:     r.Name,
			Type:     fsType,
			Options:  opts,
			Wants:    []string{PoolImportTarget},
			Source:   source,
		},
		Problems: invalid,
	}

	if err := g.resolveKey(p); err != nil {
		return nil, err
	}
	return p, nil
}
