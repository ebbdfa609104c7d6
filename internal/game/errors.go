package game

import (
	"errors"
	"fmt"
)

// RejectCode identifies why a submission was refused.
//
// The player surface treats every rejection as a silent no-op; the codes
// exist so tests and the submission journal can see the exact reason.
type RejectCode string

const (
	// RejectNoValue - the text doesn't evaluate (malformed, empty, or
	// division by zero).
	RejectNoValue RejectCode = "NO_VALUE"

	// RejectNonInteger - evaluates, but not to an integer.
	RejectNonInteger RejectCode = "NON_INTEGER"

	// RejectOutOfRange - an integer outside the target range.
	RejectOutOfRange RejectCode = "OUT_OF_RANGE"

	// RejectDigitUsage - doesn't use exactly the day's digit multiset.
	RejectDigitUsage RejectCode = "DIGIT_USAGE"

	// RejectCharacter - contains a character that isn't on the keypad.
	RejectCharacter RejectCode = "BAD_CHARACTER"

	// RejectDuplicate - the target was already answered today.
	RejectDuplicate RejectCode = "DUPLICATE"
)

// RejectError is a validation rejection with its reason.
type RejectError struct {
	Code    RejectCode
	Message string

	// Target is the evaluated integer, for codes where one exists
	// (RejectOutOfRange, RejectDuplicate).
	Target int

	// Err is the underlying evaluation error for RejectNoValue.
	Err error
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RejectError) Unwrap() error {
	return e.Err
}

// AsReject extracts a RejectError, distinguishing rule rejections from
// real failures such as storage errors.
func AsReject(err error) (*RejectError, bool) {
	var rej *RejectError
	ok := errors.As(err, &rej)
	return rej, ok
}

func reject(code RejectCode, format string, args ...any) *RejectError {
	return &RejectError{Code: code, Message: fmt.Sprintf(format, args...)}
}
