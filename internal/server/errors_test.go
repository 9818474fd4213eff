package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "resume_text", Message: "is required"}
	assert.Equal(t, "validation error: resume_text - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrMissingPart(t *testing.T) {
	err := &ErrMissingPart{Name: "resume"}
	assert.Equal(t, "missing form part: resume", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError((&types.AnalyzeRequest{}).Validate())

	var validationErr *ErrValidation
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "ResumeText", validationErr.Field)
	assert.Equal(t, "is required when JobText is empty", validationErr.Message)

	err = NewValidationError(fmt.Errorf("unexpected EOF"))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "body", validationErr.Field)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"ErrValidation", &ErrValidation{Field: "text", Message: "is required"}, http.StatusBadRequest},
		{"ErrMissingPart", &ErrMissingPart{Name: "job"}, http.StatusBadRequest},
		{"MaxBytesError", fmt.Errorf("read body: %w", &http.MaxBytesError{Limit: 10}), http.StatusRequestEntityTooLarge},
		{"unsupported type", fmt.Errorf("resume: %w", ingestion.ErrUnsupportedType), http.StatusUnsupportedMediaType},
		{"no text", ingestion.ErrNoText, http.StatusUnprocessableEntity},
		{"extraction failed", ingestion.ErrContentExtractionFailed, http.StatusUnprocessableEntity},
		{"fetch failed", fmt.Errorf("%w: timeout", ingestion.ErrHTTPRequestFailed), http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"canceled", context.Canceled, http.StatusServiceUnavailable},
		{"Unknown error", assert.AnError, http.StatusInternalServerError},
		{"Nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
