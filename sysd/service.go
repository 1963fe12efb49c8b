package sysd

import (
	"github.com/coreos/go-systemd/v22/unit"
)

// ServiceType describes the type of systemd service.
type ServiceType string

const (
	// OneshotService represents a service which is considered started once the
	// main process exits.
	OneshotService ServiceType = "oneshot"
)

// Service represents the [Service] section of a systemd service.
type Service struct {
	Type            ServiceType
	RemainAfterExit bool

	ExecStart Command
	ExecStop  Command
}

// UnitOptions returns the [Service] section options.
func (s *Service) UnitOptions() []*unit.UnitOption {
	var opts []*unit.UnitOption
	add := func(name, value string) {
		opts = append(opts, unit.NewUnitOption("Service", name, value))
	}

	if s.Type != "" {
		add("Type", string(s.Type))
	}
	if s.RemainAfterExit {
		add("RemainAfterExit", "yes")
	}
	if s.ExecStart != nil {
		add("ExecStart", s.ExecStart.CommandLine())
	}
	if s.ExecStop != nil {
		add("ExecStop", s.ExecStop.CommandLine())
	}
	return opts
}
