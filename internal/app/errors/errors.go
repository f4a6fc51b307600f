package errors

import (
	stderrors "errors"
	"fmt"
)

// Input errors are raised before any provider is called
var (
	ErrEmptyContent        = New("no content provided")
	ErrUnsupportedDocument = New("unsupported document type")
	ErrUnsupportedAudio    = New("unsupported audio format")
	ErrPayloadTooLarge     = New("payload exceeds upload limit")
	ErrNoTextExtracted     = New("no text could be extracted")
)

// History errors never fail a distillation; callers log them
var (
	ErrHistoryReadFailed  = New("history read failed")
	ErrHistoryWriteFailed = New("history write failed")
)

var inputErrors = []error{ErrEmptyContent, ErrUnsupportedDocument, ErrUnsupportedAudio, ErrPayloadTooLarge, ErrNoTextExtracted}

// Error is a sentinel or a sentinel wrapped with context
type Error struct {
	message string
	cause   error
}

// New creates a sentinel error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap adds context to err. It returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{message: message, cause: err}
}

// Wrapf is Wrap with a format string
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// IsInputError reports whether err was caused by the caller's input rather
// than by a provider or the host
func IsInputError(err error) bool {
	for _, target := range inputErrors {
		if Is(err, target) {
			return true
		}
	}
	return false
}
