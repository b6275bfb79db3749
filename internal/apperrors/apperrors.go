// Package apperrors defines the failures a property lookup can end in and the HTTP status
// each one is reported with.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeRateLimited    = "RATE_LIMITED"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// User-facing messages
const (
	MsgUnauthorized    = "Unauthorized"
	MsgMissingLocality = "either 'zip' or both 'city' and 'state' must be specified"
	MsgTooManyRequests = "Too many requests"
	MsgAddressNotFound = "could not resolve address using given parameters"
	MsgInternal        = "an error occurred while looking up property details, see server logs for more info"
)

// AppError is a terminal failure for a single request.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int

	// RetryAfter is the number of seconds a rate-limited caller should wait.
	// Only meaningful when HasRetryAfter is set.
	RetryAfter    int64
	HasRetryAfter bool

	Err error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Unauthorized reports a missing or mismatched inbound credential.
func Unauthorized() *AppError {
	return &AppError{Code: CodeUnauthorized, Message: MsgUnauthorized, HTTPStatus: http.StatusUnauthorized}
}

// InvalidRequest reports request parameters that cannot be used for a lookup.
func InvalidRequest(message string) *AppError {
	return &AppError{Code: CodeInvalidRequest, Message: message, HTTPStatus: http.StatusUnprocessableEntity}
}

// RateLimited reports upstream back-pressure. retryAfter is the provider's reset time minus now;
// a reset already in the past yields 0 rather than a negative Retry-After, which HTTP does not allow.
func RateLimited(retryAfter int64, cause error) *AppError {
	if retryAfter < 0 {
		retryAfter = 0
	}
	return &AppError{
		Code:          CodeRateLimited,
		Message:       MsgTooManyRequests,
		HTTPStatus:    http.StatusTooManyRequests,
		RetryAfter:    retryAfter,
		HasRetryAfter: true,
		Err:           cause,
	}
}

// RateLimitedUnknown reports upstream back-pressure without a known retry delay.
func RateLimitedUnknown(cause error) *AppError {
	return &AppError{Code: CodeRateLimited, Message: MsgTooManyRequests, HTTPStatus: http.StatusTooManyRequests, Err: cause}
}

// NotFound reports an address the provider could not resolve.
func NotFound() *AppError {
	return &AppError{Code: CodeNotFound, Message: MsgAddressNotFound, HTTPStatus: http.StatusNotFound}
}

// Internal reports a fault on our side of the upstream call. The cause is kept for logs
// and never shown to the caller.
func Internal(cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: MsgInternal, HTTPStatus: http.StatusInternalServerError, Err: cause}
}

// From returns err as an *AppError, treating anything else as an internal error.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
