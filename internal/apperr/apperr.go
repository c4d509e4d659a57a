// Package apperr defines the error taxonomy shared by the API client, the
// tracker, and the views: validation, authentication, and network errors.
//
// None of these are retried automatically. Every one is terminal for the
// operation that produced it and non-fatal for the process.
package apperr

import (
	"errors"
	"fmt"
)

// Validation messages surfaced inline next to the offending field.
const (
	MsgRequired      = "required fields incomplete"
	MsgInvalidAmount = "invalid amount"
	MsgInsufficient  = "insufficient budget"
	MsgInvalidBudget = "budget must be greater than 0"
	MsgInvalidDate   = "invalid date, use YYYY-MM-DD"
)

// ValidationError is a client-detected problem with user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AuthError means the credentials were rejected or the cached token is no
// longer accepted. The session is not cleared automatically.
type AuthError struct {
	Reason string
	Status int
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authentication failed"
	}
	return e.Reason
}

// NetworkError is a transport failure or an unexpected server response.
type NetworkError struct {
	Op      string
	Status  int    // 0 when the request never got a response
	Message string // backend-provided message, if any
	Err     error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is (or wraps) an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsNetwork reports whether err is (or wraps) a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// UserMessage turns any error into the single line shown in a banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Error()
	}

	var ne *NetworkError
	if errors.As(err, &ne) {
		if ne.Message != "" {
			return ne.Message
		}
		return "could not reach the server, try again"
	}

	return err.Error()
}
