package app

import (
	"errors"

	"github.com/alexanderramin/timesheets/internal/engine"
)

// ErrEmptyBatch is returned when a submission carries no entries.
var ErrEmptyBatch = errors.New("empty batch: at least one entry is required")

// RequestError reports a malformed request field. Validate methods join one
// RequestError per problem, so errors.As finds the first.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

func fieldError(field, message string) error {
	return &RequestError{Field: field, Message: message}
}

// ReasonCode is the per-entry rejection code surfaced to callers.
type ReasonCode = engine.ReasonCode

const (
	ReasonInvalidIncrement   = engine.ReasonInvalidIncrement
	ReasonOutOfBounds        = engine.ReasonOutOfBounds
	ReasonNonWorkday         = engine.ReasonNonWorkday
	ReasonNoActiveAssignment = engine.ReasonNoActiveAssignment
	ReasonDailyCapExceeded   = engine.ReasonDailyCapExceeded
	ReasonDuplicateEntry     = engine.ReasonDuplicateEntry
)
