// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMarketClosed       = errors.New("market is closed")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrSymbolNotFound     = errors.New("symbol not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrStockNotFound      = errors.New("stock not found")
	ErrConnectionFailed   = errors.New("connection failed")
	ErrTimeout            = errors.New("operation timed out")
	ErrConfigInvalid      = errors.New("invalid configuration")
	ErrNotAdmin           = errors.New("operation requires admin role")
)

// ValidationError represents a client-side validation failure. It is resolved
// entirely before submission and never reaches the network.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// APIError represents an error returned by the remote CloudEx API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api error [%d] %s: %s: %v", e.StatusCode, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("api error [%d] %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, endpoint, message string, err error) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
		Err:        err,
	}
}

// NetworkError represents a transport-level failure where no HTTP response
// was received at all.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError.
func NewNetworkError(endpoint string, err error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, Err: err}
}

// IsValidation reports whether err is a client-side validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err indicates a missing symbol, stock, or user.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrSymbolNotFound) || errors.Is(err, ErrStockNotFound) || errors.Is(err, ErrUserNotFound) {
		return true
	}
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == 404
}

// IsConflict reports whether err is a remote rejection of an otherwise
// well-formed request (insufficient funds, market closed, duplicate symbol).
func IsConflict(err error) bool {
	if errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrMarketClosed) {
		return true
	}
	var ae *APIError
	return errors.As(err, &ae) && (ae.StatusCode == 400 || ae.StatusCode == 409)
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// UserMessage converts any workflow error into a single user-facing message.
// Remote errors are caught at the workflow boundary; none crash the view.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		var ve *ValidationError
		errors.As(err, &ve)
		return ve.Message
	case IsNotFound(err):
		return "Symbol not found."
	case IsNetwork(err):
		return "Could not reach the exchange. Check your connection and try again."
	case IsConflict(err):
		var ae *APIError
		if errors.As(err, &ae) && ae.Message != "" {
			return ae.Message
		}
		return err.Error()
	default:
		return "Something went wrong. Please try again."
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
