package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// syslog(3) priorities, prefixed to kmsg records as "<N>".
var kmsgPriority = map[logrus.Level]int{
	logrus.PanicLevel: 0,
	logrus.FatalLevel: 2,
	logrus.ErrorLevel: 3,
	logrus.WarnLevel:  4,
	logrus.InfoLevel:  6,
	logrus.DebugLevel: 7,
	logrus.TraceLevel: 7,
}

// KmsgHook writes one kernel log record per entry.
type KmsgHook struct {
	w   io.Writer
	tag string
}

// NewKmsgHook returns a hook writing to w, normally /dev/kmsg.
func NewKmsgHook(w io.Writer, tag string) *KmsgHook {
	return &KmsgHook{w: w, tag: tag}
}

// Fire implements logrus.Hook. Each record must reach the device in a
// single write.
func (h *KmsgHook) Fire(entry *logrus.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<%d>%s: %s", kmsgPriority[entry.Level], h.tag, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')

	_, err := io.WriteString(h.w, b.String())
	return err
}

// Levels implements logrus.Hook.
func (h *KmsgHook) Levels() []logrus.Level {
	return allLevels
}
