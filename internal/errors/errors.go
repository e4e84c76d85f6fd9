// Package errors provides sentinel errors and structured error types for the fastaccel CLI.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrPathNotFound indicates the base path a command operates on does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrAlreadyExists indicates the target project directory already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrPathConflict indicates a non-directory entry blocks a required directory.
	ErrPathConflict = errors.New("path conflict")

	// ErrMissingTarget indicates an append targeted a file that does not exist.
	ErrMissingTarget = errors.New("missing target")

	// ErrInstallFailure indicates the package manager exited non-zero.
	ErrInstallFailure = errors.New("install failed")

	// ErrCommandFailure indicates an external command exited non-zero.
	ErrCommandFailure = errors.New("command failed")

	// ErrValidation indicates invalid user input or configuration.
	ErrValidation = errors.New("validation error")

	// ErrTemplateNotFound indicates an unknown template id.
	ErrTemplateNotFound = errors.New("template not found")
)

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path involved (optional).
	Location string

	// Field is the offending field name (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewPathNotFoundError reports a missing base path.
func NewPathNotFoundError(path string) error {
	return &DetailError{
		Type:     "path not found",
		Message:  fmt.Sprintf("the path %q does not exist", path),
		Location: path,
		Hint:     "Create the directory first or pass an existing one with --path.",
		Cause:    ErrPathNotFound,
	}
}

// NewAlreadyExistsError reports a project directory that is already present.
func NewAlreadyExistsError(path string) error {
	return &DetailError{
		Type:     "already exists",
		Message:  fmt.Sprintf("%q already exists", path),
		Location: path,
		Hint:     "Choose another project name or remove the existing directory.",
		Cause:    ErrAlreadyExists,
	}
}

// NewPathConflictError reports a file sitting where a directory is required.
func NewPathConflictError(path string, cause error) error {
	ctx := map[string]string{}
	if cause != nil {
		ctx["Cause"] = cause.Error()
	}
	return &DetailError{
		Type:     "path conflict",
		Message:  "a non-directory entry occupies a path that must be a directory",
		Location: path,
		Context:  ctx,
		Cause:    ErrPathConflict,
	}
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, field, hint string) error {
	return &DetailError{
		Type:    "validation failed",
		Message: message,
		Field:   field,
		Hint:    hint,
		Cause:   ErrValidation,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
