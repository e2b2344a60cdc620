package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched with errors.Is at the transport edge.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrUpstream marks a failed collaborator call: translation, media
	// hosting or batch create.
	ErrUpstream = errors.New("upstream service failed")
)

// FieldError is one rejected request field. It is rendered as-is in REST
// error bodies.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists the rejected fields of one request. It matches
// ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError rejects a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// NewValidationErrors rejects several fields at once.
func NewValidationErrors(fields []FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UpstreamError tags err as a collaborator failure of op. Both ErrUpstream
// and err stay reachable through errors.Is.
func UpstreamError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
}
