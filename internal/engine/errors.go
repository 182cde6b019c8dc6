package engine

import (
	"errors"
	"fmt"
)

// ReasonCode identifies why an entry was rejected.
type ReasonCode string

const (
	ReasonInvalidIncrement   ReasonCode = "INVALID_INCREMENT"
	ReasonOutOfBounds        ReasonCode = "OUT_OF_BOUNDS"
	ReasonNonWorkday         ReasonCode = "NON_WORKDAY"
	ReasonNoActiveAssignment ReasonCode = "NO_ACTIVE_ASSIGNMENT"
	ReasonDailyCapExceeded   ReasonCode = "DAILY_CAP_EXCEEDED"
	ReasonDuplicateEntry     ReasonCode = "DUPLICATE_ENTRY"
)

// RuleError is a per-entry rejection. Two RuleErrors match under errors.Is
// when their codes are equal, so callers can test against the sentinels below.
type RuleError struct {
	Code   ReasonCode
	Detail string
}

func (e *RuleError) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Detail
}

func (e *RuleError) Is(target error) bool {
	t, ok := target.(*RuleError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidIncrement   = &RuleError{Code: ReasonInvalidIncrement}
	ErrOutOfBounds        = &RuleError{Code: ReasonOutOfBounds}
	ErrNonWorkday         = &RuleError{Code: ReasonNonWorkday}
	ErrNoActiveAssignment = &RuleError{Code: ReasonNoActiveAssignment}
	ErrDailyCapExceeded   = &RuleError{Code: ReasonDailyCapExceeded}
	ErrDuplicateEntry     = &RuleError{Code: ReasonDuplicateEntry}
)

func reject(code ReasonCode, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the reason code from err, if it carries one.
func ReasonOf(err error) (ReasonCode, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return "", false
}
