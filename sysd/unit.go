package sysd

import (
	"io"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"
)

// Header is written above the first section of every generated unit.
const Header = "# Automatically generated by zfs-mount-generator\n\n"

// Unit represents the configuration of a systemd unit.
type Unit struct {
	Description   string
	SourcePath    string
	Documentation []string

	// NoDefaultDependencies writes DefaultDependencies=no.
	NoDefaultDependencies bool

	Before []string
	After  []string
	Wants  []string

	RequiresMountsFor []string

	Mount   *Mount
	Service *Service
}

// Options returns the unit as an ordered list of options.
func (u *Unit) Options() []*unit.UnitOption {
	var opts []*unit.UnitOption
	add := func(name, value string) {
		opts = append(opts, unit.NewUnitOption("Unit", name, value))
	}

	if u.Description != "" {
		add("Description", u.Description)
	}
	if u.SourcePath != "" {
		add("SourcePath", u.SourcePath)
	}
	if len(u.Documentation) > 0 {
		add("Documentation", strings.Join(u.Documentation, " "))
	}
	if u.NoDefaultDependencies {
		add("DefaultDependencies", "no")
	}
	if len(u.Before) > 0 {
		add("Before", strings.Join(u.Before, " "))
	}
	if len(u.After) > 0 {
		add("After", strings.Join(u.After, " "))
	}
	if len(u.Wants) > 0 {
		add("Wants", strings.Join(u.Wants, " "))
	}
	if len(u.RequiresMountsFor) > 0 {
		add("RequiresMountsFor", quotePaths(u.RequiresMountsFor))
	}

	if u.Mount != nil {
		opts = append(opts, u.Mount.UnitOptions()...)
	}
	if u.Service != nil {
		opts = append(opts, u.Service.UnitOptions()...)
	}
	return opts
}

// String returns the structure represented in the unit file format.
func (u *Unit) String() string {
	var out strings.Builder
	out.WriteString(Header)
	// Serialize only fails if reading from its own buffer does.
	io.Copy(&out, unit.Serialize(u.Options()))
	return out.String()
}
