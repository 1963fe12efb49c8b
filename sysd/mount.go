package sysd

import (
	"strings"

	"github.com/coreos/go-systemd/v22/unit"
)

// Mount describes the [Mount] section of a mount unit.
type Mount struct {
	What    string   // Device or dataset to mount.
	Where   string   // Absolute path to mount point.
	Type    string   // File-system type.
	Options []string // Options to use when mounting.
}

// UnitOptions returns the [Mount] section options.
func (m *Mount) UnitOptions() []*unit.UnitOption {
	var opts []*unit.UnitOption
	add := func(name, value string) {
		opts = append(opts, unit.NewUnitOption("Mount", name, value))
	}

	if m.Where != "" {
		add("Where", m.Where)
	}
	if m.What != "" {
		add("What", m.What)
	}
	if m.Type != "" {
		add("Type", m.Type)
	}
	if len(m.Options) > 0 {
		add("Options", strings.Join(m.Options, ","))
	}
	return opts
}

// MountUnitName returns the unit name systemd requires for a mount unit
// at where.
func MountUnitName(e Escaper, where string) (string, error) {
	name, err := e.EscapePath(where)
	if err != nil {
		return "", err
	}
	return name + ".mount", nil
}
