package diag

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestKmsgHook(t *testing.T) {
	assert := require.New(t)

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(NewKmsgHook(&buf, "zfs-mount-generator"))

	logger.WithFields(logrus.Fields{"unit": "data.mount", "dataset": "tank/data"}).Warn("invalid atime")
	logger.Info("data.mount already exists")
	logger.Debug("not logged at info level")

	assert.Equal("<4>zfs-mount-generator: invalid atime dataset=tank/data unit=data.mount\n"+
		"<6>zfs-mount-generator: data.mount already exists\n", buf.String())
}

func TestJournalFields(t *testing.T) {
	assert := require.New(t)

	h := &JournalHook{Identifier: "zfs-mount-generator"}
	assert.Equal(map[string]string{
		"DATASET":           "tank/data",
		"UNIT_NAME":         "data.mount",
		"SYSLOG_IDENTIFIER": "zfs-mount-generator",
	}, h.journalFields(logrus.Fields{"dataset": "tank/data", "unit-name": "data.mount"}))
}

func TestSetupFallback(t *testing.T) {
	assert := require.New(t)

	old := KmsgPath
	KmsgPath = filepath.Join(t.TempDir(), "missing", "kmsg")
	defer func() { KmsgPath = old }()

	logger := logrus.New()
	assert.Error(Setup(logger, TargetKmsg, "zfs-mount-generator"))
	assert.Error(Setup(logger, "syslog", "zfs-mount-generator"))
	assert.NoError(Setup(logger, TargetStderr, "zfs-mount-generator"))
}

func TestSetupKmsg(t *testing.T) {
	assert := require.New(t)

	old := KmsgPath
	KmsgPath = filepath.Join(t.TempDir(), "kmsg")
	defer func() { KmsgPath = old }()
	assert.NoError(os.WriteFile(KmsgPath, nil, 0644))

	logger := logrus.New()
	assert.NoError(Setup(logger, TargetKmsg, "zfs-mount-generator"))
	assert.Equal(io.Discard, logger.Out)
}
