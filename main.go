package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/josephvusich/go-getopt"
	"github.com/sirupsen/logrus"

	"github.com/josephvusich/zfs-mount-generator/diag"
	"github.com/josephvusich/zfs-mount-generator/generator"
	"github.com/josephvusich/zfs-mount-generator/sysd"
	"github.com/josephvusich/zfs-mount-generator/zfs"
)

const tag = "zfs-mount-generator"

// defaultOutputDir is written to when run by hand without arguments.
const defaultOutputDir = "/tmp"

var errArgCount = errors.New("zero or three arguments required")

func main() {
	configPath := flag.String("config", defaultConfigPath, "read settings from this TOML file")
	cacheDir := flag.String("cache-dir", "", "directory holding one property cache per pool (default "+zfs.DefaultCacheDir+")")
	logTarget := flag.String("log-target", "", "send diagnostics to kmsg, journal or stderr (default kmsg)")
	debug := flag.Bool("debug", false, "log every dataset considered")
	help := flag.Bool("help", false, "show this help message")
	getopt.Alias("c", "cache-dir")
	getopt.Alias("d", "debug")
	getopt.Alias("h", "help")
	if err := getopt.CommandLine.Parse(os.Args[1:]); err != nil {
		logrus.Fatal(err)
	}

	if *help {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: zfs-mount-generator [--config file] [--cache-dir dir] [--log-target target] [--debug] [normal-dir early-dir late-dir]")
		getopt.PrintDefaults()
		os.Exit(0)
	}

	logger := logrus.StandardLogger()
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := parseConfig(*configPath)
	if err != nil {
		target := *logTarget
		if target == "" {
			target = diag.TargetKmsg
		}
		setupLogging(logger, target)
		logger.Fatalf("loading configuration: %v", err)
	}
	if *cacheDir != "" {
		cfg.CacheDir = *cacheDir
	}
	if *logTarget != "" {
		cfg.LogTarget = *logTarget
	}

	setupLogging(logger, cfg.LogTarget)
	if cfg.source == "" {
		logger.Debug("configuration file not found, using defaults")
	}

	if err := generate(cfg, flag.Args(), logger); err != nil {
		logger.Fatal(err)
	}
}

// setupLogging points logger at target. A target that cannot be used is
// reported through the stderr fallback.
func setupLogging(logger *logrus.Logger, target string) {
	if err := diag.Setup(logger, target, tag); err != nil {
		logger.Warn(err)
	}
}

// generate writes units for every cached pool. Systemd passes the normal,
// early and late output directories; only the first is used.
func generate(cfg *config, args []string, logger logrus.FieldLogger) error {
	var dest string
	switch len(args) {
	case 0:
		dest = defaultOutputDir
	case 3:
		dest = args[0]
	default:
		return fmt.Errorf("%w, got %d", errArgCount, len(args))
	}

	pools, err := zfs.CachedPools(cfg.CacheDir)
	if os.IsNotExist(err) {
		logger.Debugf("%s does not exist, nothing to do", cfg.CacheDir)
		return nil
	}
	if err != nil {
		return err
	}

	g := generator.New(sysd.NewDir(dest), cfg.escaper(), cfg.facilities(), logger)
	return g.Run(pools)
}
