package zfs

import (
	"errors"
	"fmt"
)

// Severity decides whether a bad record halts the whole run.
type Severity int

const (
	// Degraded problems are reported and worked around.
	Degraded Severity = iota
	// Fatal problems abort the run before anything else is written.
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "degraded"
}

var (
	ErrShortRecord        = errors.New("short record")
	ErrInvalidCanMount    = errors.New("invalid canmount")
	ErrInvalidMountpoint  = errors.New("invalid mountpoint")
	ErrInvalidProperty    = errors.New("invalid")
	ErrInvalidKeyLocation = errors.New("invalid keylocation")
)

// RecordError is a problem with a single cached dataset line.
type RecordError struct {
	Severity Severity
	Dataset  string
	Err      error
}

func (e *RecordError) Error() string {
	if e.Dataset == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("(%s) %v", e.Dataset, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func fatal(dataset string, err error) *RecordError {
	return &RecordError{Severity: Fatal, Dataset: dataset, Err: err}
}

func degraded(dataset string, err error) *RecordError {
	return &RecordError{Severity: Degraded, Dataset: dataset, Err: err}
}

// InvalidProperty reports an unusable value for a property that can be
// worked around by leaving it out.
func InvalidProperty(r *DatasetRecord, property string) *RecordError {
	return degraded(r.Name, fmt.Errorf("%w %s %q", ErrInvalidProperty, property, r.Raw(property)))
}

// InvalidKeyLocation reports an encryption root whose key cannot be loaded
// by a generated unit.
func InvalidKeyLocation(r *DatasetRecord) *RecordError {
	return degraded(r.Name, fmt.Errorf("%w %q", ErrInvalidKeyLocation, r.Raw("keylocation")))
}

// IsFatal reports whether err must abort the run. Errors that are not
// RecordErrors (I/O and the like) are always fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var re *RecordError
	if errors.As(err, &re) {
		return re.Severity == Fatal
	}
	return true
}
