// Package diag routes logrus entries to the system log. Generators run
// before most of userspace, so the kernel ring buffer is the default sink.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/sirupsen/logrus"
)

// Log targets.
const (
	TargetKmsg    = "kmsg"
	TargetJournal = "journal"
	TargetStderr  = "stderr"
)

// KmsgPath is the kernel log device.
var KmsgPath = "/dev/kmsg"

// Setup points logger at target. The logger's own output is discarded for
// the kmsg and journal targets so nothing reaches stdout. If kmsg cannot be
// opened, or journald is not running, stderr is used instead and the
// returned error says why.
func Setup(logger *logrus.Logger, target, tag string) error {
	switch target {
	case TargetKmsg:
		f, err := os.OpenFile(KmsgPath, os.O_WRONLY, 0)
		if err != nil {
			useStderr(logger)
			return fmt.Errorf("opening %s: %w", KmsgPath, err)
		}
		logger.SetOutput(io.Discard)
		logger.AddHook(NewKmsgHook(f, tag))
	case TargetJournal:
		if !journal.Enabled() {
			useStderr(logger)
			return fmt.Errorf("journal is not available")
		}
		logger.SetOutput(io.Discard)
		logger.AddHook(&JournalHook{Identifier: tag})
	case TargetStderr:
		useStderr(logger)
	default:
		useStderr(logger)
		return fmt.Errorf("unknown log target %q", target)
	}
	return nil
}

func useStderr(logger *logrus.Logger) {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// allLevels is what both hooks fire on.
var allLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
}
