package generator

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/josephvusich/zfs-mount-generator/sysd"
	"github.com/josephvusich/zfs-mount-generator/zfs"
)

// Generator writes units for cached datasets into one output directory.
// It is not safe for concurrent use.
type Generator struct {
	Dir        *sysd.Dir
	Escaper    sysd.Escaper
	Facilities Facilities
	Log        logrus.FieldLogger

	// key-load services written this run
	generated map[string]struct{}
	// key-load service -> datasets whose mounts want it
	wantedKeys map[string][]string
}

// New returns a Generator writing into dir.
func New(dir *sysd.Dir, escaper sysd.Escaper, facilities Facilities, log logrus.FieldLogger) *Generator {
	return &Generator{
		Dir:        dir,
		Escaper:    escaper,
		Facilities: facilities,
		Log:        log,
		generated:  make(map[string]struct{}),
		wantedKeys: make(map[string][]string),
	}
}

// Run processes every pool in order and stops at the first fatal error.
// Units written before that error are left in place.
func (g *Generator) Run(pools []*zfs.Pool) error {
	if err := g.Dir.Prepare(sysd.LocalFSTarget); err != nil {
		return fmt.Errorf("preparing %s: %w", g.Dir.Path, err)
	}

	for _, p := range pools {
		if err := g.ProcessPool(p); err != nil {
			return err
		}
	}

	unresolved, err := g.Unresolved()
	if err != nil {
		return err
	}
	for _, name := range unresolved {
		g.Log.WithFields(logrus.Fields{
			"unit":     name,
			"datasets": g.wantedKeys[name],
		}).Warnf("%s is wanted but was not generated", name)
	}
	return nil
}

// ProcessPool processes the lines of one pool's cache file.
func (g *Generator) ProcessPool(p *zfs.Pool) error {
	return p.EachLine(func(n int, line string) error {
		if err := g.ProcessLine(line, p.Path); err != nil {
			return fmt.Errorf("%s:%d: %w", p.Path, n, err)
		}
		return nil
	})
}

// ProcessLine generates the units for one cache line. Degraded problems are
// logged; the returned error is fatal to the run.
func (g *Generator) ProcessLine(line, source string) error {
	r, err := zfs.ParseRecord(line)
	if err != nil {
		return err
	}

	log := g.Log.WithFields(logrus.Fields{"pool": r.Pool(), "dataset": r.Name, "cache": source})
	if r.Skipped() {
		log.Debugf("skipping: canmount=%s mountpoint=%s", r.CanMount, r.Mountpoint)
		return nil
	}

	p, err := g.Plan(r, source)
	if err != nil {
		return err
	}
	for _, problem := range p.Problems {
		log.Warn(problem)
	}

	return g.Emit(p, log)
}

// Emit writes the units of a plan. The key-load service is always
// rewritten. An existing mount unit is left alone and not wired into
// local-fs.target; a new one is.
func (g *Generator) Emit(p *Plan, log logrus.FieldLogger) error {
	if p.KeyUnit != "" {
		g.wantedKeys[p.KeyUnit] = append(g.wantedKeys[p.KeyUnit], p.Record.Name)
	}

	if k := p.KeyLoad; k != nil {
		if err := g.Dir.Install(k.UnitName, k.Unit(), true); err != nil {
			return fmt.Errorf("writing %s: %w", k.UnitName, err)
		}
		g.generated[k.UnitName] = struct{}{}
		log.WithField("unit", k.UnitName).Debug("wrote key-load service")
	}

	m := p.Mount
	err := g.Dir.Install(m.UnitName, m.Unit(), false)
	switch {
	case errors.Is(err, os.ErrExist):
		log.WithField("unit", m.UnitName).Infof("%s already exists", m.UnitName)
		return nil
	case err != nil:
		return fmt.Errorf("writing %s: %w", m.UnitName, err)
	}

	if err := g.Dir.Want(sysd.LocalFSTarget, m.UnitName); err != nil {
		return fmt.Errorf("wiring %s: %w", m.UnitName, err)
	}
	log.WithField("unit", m.UnitName).Debug("wrote mount unit")
	return nil
}

// Unresolved returns the key-load services wanted by the datasets processed
// so far that were neither generated this run nor already present, sorted.
func (g *Generator) Unresolved() ([]string, error) {
	var names []string
	for name := range g.wantedKeys {
		if _, ok := g.generated[name]; ok {
			continue
		}
		exists, err := g.Dir.Exists(name)
		if err != nil {
			return nil, err
		}
		if !exists {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
