package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "render error type", errType: ErrTypeRender, expected: "RENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    &AppError{Type: ErrTypeParsing, Message: "cannot read input"},
			wantMessage: "[PARSING] cannot read input",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "write chart",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[STORAGE] write chart: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := NewRowError(3, "gf", "x", ErrInvalidNumber)
	appErr := NewParsingError("load matches", cause)

	assert.True(t, errors.Is(appErr, ErrInvalidNumber))

	var rowErr *RowError
	require.True(t, errors.As(appErr, &rowErr))
	assert.Equal(t, 3, rowErr.Row)
	assert.Equal(t, "gf", rowErr.Column)
}

func TestAppError_WithContext(t *testing.T) {
	appErr := &AppError{Type: ErrTypeConfig, Message: "bad config"}

	appErr.WithContext("file", "gdchart.yaml").WithContext("field", "data.policy")

	require.NotNil(t, appErr.Context)
	assert.Equal(t, "gdchart.yaml", appErr.Context["file"])
	assert.Equal(t, "data.policy", appErr.Context["field"])
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"parsing", NewParsingError("p", cause), ErrTypeParsing},
		{"storage", NewStorageError("s", cause), ErrTypeStorage},
		{"validation", NewValidationError("v", cause), ErrTypeValidation},
		{"config", NewConfigError("c", cause), ErrTypeConfig},
		{"render", NewRenderError("r", cause), ErrTypeRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, cause, tt.err.Cause)
			assert.NotNil(t, tt.err.Context)
		})
	}

	notFound := NewNotFoundError("input file")
	assert.Equal(t, ErrTypeNotFound, notFound.Type)
	assert.Equal(t, "input file not found", notFound.Message)
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("build: %w", NewValidationError("unsorted", ErrUnsortedInput))

	assert.Equal(t, ErrTypeValidation, TypeOf(wrapped))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}
