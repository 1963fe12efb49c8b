package sysd

import (
	"fmt"
	"strings"

	"gopkg.in/alessio/shellescape.v1"
)

// Command is a command line for ExecStart= and friends.
type Command interface {
	CommandLine() string
}

// Exec runs a program directly, without a shell.
type Exec []string

// CommandLine implements Command.
func (e Exec) CommandLine() string {
	return escapeSpecifiers(quoteArgs(e, true))
}

// PromptLoop asks for a passphrase and pipes it into a key loader, giving
// up after Attempts tries. Nothing is asked if Status reports anything but
// Unavailable.
type PromptLoop struct {
	Shell string
	// Status prints the current key status on stdout.
	Status Exec
	// Unavailable is the status that still needs a key.
	Unavailable string
	// Prompt prints the entered passphrase on stdout.
	Prompt Exec
	// Load reads the passphrase from stdin.
	Load     Exec
	Attempts int
}

// Script returns the loop as a shell script.
func (p *PromptLoop) Script() string {
	var b strings.Builder
	b.WriteString("set -eu;")
	fmt.Fprintf(&b, `keystatus="$(%s)";`, quoteArgs(p.Status, false))
	fmt.Fprintf(&b, `[ "$keystatus" = %s ] || exit 0;`, shellescape.Quote(p.Unavailable))
	b.WriteString("count=0;")
	fmt.Fprintf(&b, `while [ "$count" -lt %d ];do `, p.Attempts)
	fmt.Fprintf(&b, "%s|%s && exit 0;", quoteArgs(p.Prompt, false), quoteArgs(p.Load, false))
	b.WriteString("count=$((count + 1));done;exit 1")
	return b.String()
}

// CommandLine implements Command. The script is passed to the shell as a
// single double-quoted argument.
func (p *PromptLoop) CommandLine() string {
	return escapeSpecifiers(quoteArgs([]string{p.Shell, "-c"}, true) + " " + doubleQuote(p.Script()))
}

// quoteArgs shell-quotes every argument. Backslashes are doubled first when
// the result is read directly by systemd, which unescapes them.
func quoteArgs(argv []string, unescaped bool) string {
	q := make([]string, len(argv))
	for i, a := range argv {
		if unescaped {
			a = strings.ReplaceAll(a, `\`, `\\`)
		}
		q[i] = shellescape.Quote(a)
	}
	return strings.Join(q, " ")
}

var doubleQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func doubleQuote(s string) string {
	return `"` + doubleQuoter.Replace(s) + `"`
}

var specifierEscaper = strings.NewReplacer(`%`, `%%`, `$`, `$$`)

// escapeSpecifiers keeps systemd from expanding %-specifiers and $VARIABLES.
func escapeSpecifiers(s string) string {
	return specifierEscaper.Replace(s)
}

var percentEscaper = strings.NewReplacer(`%`, `%%`)

// quotePaths renders a space separated path list. Path settings expand
// %-specifiers but not variables.
func quotePaths(paths []string) string {
	return percentEscaper.Replace(quoteArgs(paths, true))
}
