package sysd

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"
)

// Escaper turns strings into unit name components.
type Escaper interface {
	// Escape escapes an arbitrary string, "/" becoming "-".
	Escape(s string) (string, error)
	// EscapePath escapes an absolute path, "/" alone becoming "-".
	EscapePath(path string) (string, error)
}

// LibraryEscaper escapes in-process.
type LibraryEscaper struct{}

// Escape implements Escaper.
func (LibraryEscaper) Escape(s string) (string, error) {
	return unit.UnitNameEscape(s), nil
}

// EscapePath implements Escaper.
func (LibraryEscaper) EscapePath(path string) (string, error) {
	return unit.UnitNamePathEscape(path), nil
}

// HelperEscaper runs systemd-escape(1).
type HelperEscaper struct {
	Path string
}

// Escape implements Escaper.
func (h HelperEscaper) Escape(s string) (string, error) {
	return h.run("--", s)
}

// EscapePath implements Escaper.
func (h HelperEscaper) EscapePath(path string) (string, error) {
	return h.run("--path", "--", path)
}

func (h HelperEscaper) run(args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(h.Path, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", h.Path, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}
