//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	all := []error{
		ErrPathNotFound, ErrAlreadyExists, ErrPathConflict, ErrMissingTarget,
		ErrInstallFailure, ErrCommandFailure, ErrValidation, ErrTemplateNotFound,
	}
	for i := range all {
		for j := range all {
			if i != j {
				assert.NotEqual(t, all[i], all[j])
			}
		}
	}
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "invalid value",
		Location: "/tmp/app",
		Field:    "database.type",
		Context:  map[string]string{"Given": "oracle"},
		Hint:     "Use postgres, sqlite or mysql",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: /tmp/app")
	assert.Contains(t, output, "Field: database.type")
	assert.Contains(t, output, "Given: oracle")
	assert.Contains(t, output, "invalid value")
	assert.Contains(t, output, "Hint: Use postgres, sqlite or mysql")
}

func TestDetailErrorUnwrap(t *testing.T) {
	err := NewPathNotFoundError("/nope")

	assert.True(t, errors.Is(err, ErrPathNotFound))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "/nope", detail.Location)
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("name must be an identifier", "name", "Use letters, digits and underscores")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "name", detail.Field)
}

func TestToolError(t *testing.T) {
	base := errors.New("exit status 3")
	err := fmt.Errorf("installing: %w", &ToolError{
		Kind:     ErrInstallFailure,
		Tool:     "pip",
		Args:     []string{"install", "fastapi"},
		ExitCode: 3,
		Output:   "line1\nboom\n",
		Err:      base,
	})

	assert.True(t, errors.Is(err, ErrInstallFailure))
	assert.True(t, errors.Is(err, base))
	assert.False(t, errors.Is(err, ErrCommandFailure))
	assert.Contains(t, err.Error(), "pip install fastapi exited with status 3")
	assert.Contains(t, err.Error(), "boom")

	code, ok := ExitStatus(err)
	assert.True(t, ok)
	assert.Equal(t, 3, code)
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "precondition", err: NewPathNotFoundError("/x"), wantCode: ExitGeneralError},
		{name: "validation", err: Wrap(ErrValidation, "bad type"), wantCode: ExitGeneralError},
		{name: "explicit exit error", err: &ExitError{Code: 7, Err: errors.New("x")}, wantCode: 7},
		{
			name:     "tool status propagates",
			err:      fmt.Errorf("alembic: %w", &ToolError{Kind: ErrCommandFailure, Tool: "alembic", ExitCode: 2}),
			wantCode: 2,
		},
		{
			name:     "tool without status falls back",
			err:      &ToolError{Kind: ErrCommandFailure, Tool: "alembic", ExitCode: -1},
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "schema check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "schema check failed")
}
