package generator

import (
	"github.com/josephvusich/zfs-mount-generator/sysd"
	"github.com/josephvusich/zfs-mount-generator/zfs"
)

const (
	keyUnitPrefix = "zfs-load-key-"

	promptAttempts    = 3
	statusUnavailable = "unavailable"
)

// KeyLoadUnitName returns the key-load service name for an encryption root.
func (g *Generator) KeyLoadUnitName(root string) (string, error) {
	escaped, err := g.Escaper.Escape(root)
	if err != nil {
		return "", err
	}
	return keyUnitPrefix + escaped + ".service", nil
}

// resolveKey makes an encrypted dataset's mount depend on its root's
// key-load service, and plans that service when the dataset is the root.
// The service of a root on another line is assumed to be generated there.
func (g *Generator) resolveKey(p *Plan) error {
	r := p.Record
	if !r.Encrypted() {
		return nil
	}

	name, err := g.KeyLoadUnitName(r.EncryptionRoot)
	if err != nil {
		return err
	}
	p.KeyUnit = name
	p.Mount.Wants = append(p.Mount.Wants, name)

	if !r.IsEncryptionRoot() {
		return nil
	}

	zfsCmd := g.Facilities.ZFS
	spec := &KeyLoadServiceSpec{
		UnitName: name,
		Dataset:  r.Name,
		Unload:   sysd.Exec{zfsCmd, "unload-key", r.Name},
		Source:   p.Mount.Source,
	}

	switch r.KeyLocation.Source {
	case zfs.KeyFile:
		spec.Load = sysd.Exec{zfsCmd, "load-key", r.Name}
		spec.RequiresMountsFor = r.KeyLocation.Path
	case zfs.KeyPrompt:
		spec.Load = &sysd.PromptLoop{
			Shell:       g.Facilities.Shell,
			Status:      sysd.Exec{zfsCmd, "get", "-H", "-o", "value", "keystatus", r.Name},
			Unavailable: statusUnavailable,
			Prompt:      sysd.Exec{g.Facilities.AskPassword, "--id=zfs:" + r.Name, "Enter passphrase for " + r.Name + ":"},
			Load:        sysd.Exec{zfsCmd, "load-key", r.Name},
			Attempts:    promptAttempts,
		}
	default:
		p.Problems = append(p.Problems, zfs.InvalidKeyLocation(r))
		return nil
	}

	p.KeyLoad = spec
	return nil
}
