// Package errors defines the coded errors hilbertmaze reports to users.
//
// Every failure a user can cause (a bad scale, seed, format, palette, zoom,
// config file or output path, or a request too large to serve) carries a
// [Code] so the CLI and tests can tell kinds apart without string matching.
// Algorithm packages keep plain sentinel errors; the pipeline wraps them into
// coded errors at its boundary.
//
//	if errors.Is(err, errors.ErrCodeInvalidScale) { ... }
//	err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	// Rejected input. Nothing has been built when one of these is returned.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidScale   Code = "INVALID_SCALE"
	ErrCodeInvalidSeed    Code = "INVALID_SEED"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPalette Code = "INVALID_PALETTE"
	ErrCodeInvalidZoom    Code = "INVALID_ZOOM"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// ErrCodeTooLarge marks valid input beyond what an operation supports,
	// such as a tree diagram of a large lattice.
	ErrCodeTooLarge Code = "TOO_LARGE"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage renders err for a terminal: the message without its code,
// followed by the cause when there is one.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// IsValidation reports whether err was caused by input the user can change.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidScale, ErrCodeInvalidSeed,
		ErrCodeInvalidFormat, ErrCodeInvalidPalette, ErrCodeInvalidZoom,
		ErrCodeInvalidConfig, ErrCodeInvalidPath, ErrCodeTooLarge:
		return true
	}
	return false
}
