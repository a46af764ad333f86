package apperror

import "strings"

// AppError is a custom error type that includes an HTTP status code and the
// user-facing reasons list. The front end renders the reasons verbatim, so
// every AppError must carry at least one.
type AppError struct {
	Code    int      // HTTP Status Code (e.g., 400, 404)
	Reasons []string // User-facing failure reasons
	Err     error    // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and a single reason.
func New(code int, reason string) *AppError {
	return &AppError{
		Code:    code,
		Reasons: []string{reason},
	}
}

// NewList creates a new AppError carrying multiple reasons.
func NewList(code int, reasons []string) *AppError {
	return &AppError{
		Code:    code,
		Reasons: reasons,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, reason string) *AppError {
	return &AppError{
		Code:    code,
		Reasons: []string{reason},
		Err:     err,
	}
}
