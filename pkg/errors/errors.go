package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the caller does not own the resource
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// Research pipeline errors

var (
	// ErrProviderUnavailable indicates the grounded generation provider
	// could not be reached (timeout, transport failure, overload)
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderRejected indicates the provider declined the request;
	// retrying with the same input is futile
	ErrProviderRejected = errors.New("provider rejected request")

	// ErrExtractionFailed indicates the provider output contained no
	// parseable analysis object
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrStoreUnavailable indicates the persistence store could not be reached
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrRateLimitExceeded indicates the provider rate limit was exhausted
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
