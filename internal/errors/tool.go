package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ToolError reports an external process that exited non-zero.
// Kind is ErrInstallFailure or ErrCommandFailure.
type ToolError struct {
	Kind     error
	Tool     string
	Args     []string
	Dir      string
	ExitCode int
	Output   string
	Err      error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	cmdline := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	msg := fmt.Sprintf("%v: %s exited with status %d", e.Kind, cmdline, e.ExitCode)
	if out := lastLines(e.Output, 10); out != "" {
		msg += "\n" + out
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying process error.
func (e *ToolError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// ExitStatus returns the exit status of the first ToolError in the chain.
func ExitStatus(err error) (int, bool) {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.ExitCode, true
	}
	return 0, false
}

func lastLines(s string, n int) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
