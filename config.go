package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/josephvusich/zfs-mount-generator/diag"
	"github.com/josephvusich/zfs-mount-generator/generator"
	"github.com/josephvusich/zfs-mount-generator/sysd"
	"github.com/josephvusich/zfs-mount-generator/zfs"
)

const defaultConfigPath = "/etc/zfs/zfs-mount-generator.conf"

type config struct {
	CacheDir  string `toml:"cache_dir"`
	LogTarget string `toml:"log_target"`

	ZFS         string `toml:"zfs"`
	AskPassword string `toml:"ask_password"`
	Shell       string `toml:"shell"`
	// run systemd-escape(1) from this path instead of escaping in-process
	EscapeHelper string `toml:"escape_helper"`

	// file the settings were read from, empty when defaults are used
	source string
}

func parseConfig(file string) (*config, error) {
	// set defaults
	config := config{
		CacheDir:    zfs.DefaultCacheDir,
		LogTarget:   diag.TargetKmsg,
		ZFS:         generator.DefaultFacilities.ZFS,
		AskPassword: generator.DefaultFacilities.AskPassword,
		Shell:       generator.DefaultFacilities.Shell,
	}

	md, err := toml.DecodeFile(file, &config)
	if err != nil {
		// A non-existing config isn't an error, use defaults in this case.
		if !os.IsNotExist(err) {
			return nil, err
		}
		return &config, nil
	}
	config.source = file

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown settings: %s", file, strings.Join(keys, ", "))
	}

	if err := checkLogTarget(config.LogTarget); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	for name, v := range map[string]string{"cache_dir": config.CacheDir, "zfs": config.ZFS, "shell": config.Shell} {
		if v == "" {
			return nil, fmt.Errorf("%s: %s must not be empty", file, name)
		}
	}

	return &config, nil
}

func checkLogTarget(target string) error {
	switch target {
	case diag.TargetKmsg, diag.TargetJournal, diag.TargetStderr:
		return nil
	}
	return fmt.Errorf("log target must be %s, %s or %s, got %q", diag.TargetKmsg, diag.TargetJournal, diag.TargetStderr, target)
}

func (c *config) facilities() generator.Facilities {
	return generator.Facilities{
		ZFS:         c.ZFS,
		AskPassword: c.AskPassword,
		Shell:       c.Shell,
	}
}

func (c *config) escaper() sysd.Escaper {
	if c.EscapeHelper != "" {
		return sysd.HelperEscaper{Path: c.EscapeHelper}
	}
	return sysd.LibraryEscaper{}
}
