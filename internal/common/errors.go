package common

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeConfig    = "CONFIG_ERROR"
	CodeTransport = "TRANSPORT_ERROR"
	CodeParse     = "PARSE_ERROR"
	CodeInput     = "INPUT_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Detail is the error text without the code, for showing to users.
func (e *AppError) Detail() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Common application errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMissingAPIKey = errors.New("API key is missing")
	ErrEmptyResponse = errors.New("no data returned from extraction service")
	ErrBusy          = errors.New("processing already in progress")
	ErrValidation    = errors.New("validation failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError is returned before any network call when a precondition is unmet.
func ConfigError(cause error) error {
	return NewAppError(CodeConfig, "extraction client not configured", cause)
}

// TransportError wraps a failure talking to the extraction service.
func TransportError(cause error) error {
	return NewAppError(CodeTransport, "extraction service call failed", cause)
}

// ParseError wraps an unusable extraction response.
func ParseError(message string, cause error) error {
	return NewAppError(CodeParse, message, cause)
}

// CodeOf returns the AppError code in err's chain, or "" if there is none.
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
