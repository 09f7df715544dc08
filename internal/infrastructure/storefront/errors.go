// internal/infrastructure/storefront/errors.go
package storefront

import (
	"errors"
	"fmt"
)

// ErrorKind classifies upstream call failures
type ErrorKind string

const (
	// KindNetwork means the request never produced a usable response.
	// Local state must be left unchanged and retry is user-initiated.
	KindNetwork ErrorKind = "network"

	// KindAuth means the platform answered 401: the session has expired
	KindAuth ErrorKind = "auth"

	// KindServerRejection means a 4xx/5xx with a message body; the message
	// is surfaced verbatim when the platform sent a plain string
	KindServerRejection ErrorKind = "server_rejection"
)

const genericRejectionMessage = "The request was rejected by the server"

// APIError is the error returned by every upstream call that fails
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("upstream %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text safe to show the user for this failure
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindAuth:
		return "Please log in to continue"
	case KindNetwork:
		return "Could not reach the store, please try again"
	default:
		if e.Message != "" {
			return e.Message
		}
		return genericRejectionMessage
	}
}

// UserMessage returns the user-facing text for any error. Non-API errors
// get a generic failure message.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Something went wrong, please try again"
}

// KindOf extracts the error kind from err, or "" if err is not an APIError
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsAuthError reports whether err is a 401 from an authenticated call
func IsAuthError(err error) bool {
	return KindOf(err) == KindAuth
}

// IsNetworkError reports whether err is a transport-level failure
func IsNetworkError(err error) bool {
	return KindOf(err) == KindNetwork
}
