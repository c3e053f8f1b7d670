// Package apiclient talks to the CashPlayzz backend over HTTP.
// File: apiclient/errors.go
package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages shown when the backend gave nothing better.
const (
	MsgNetwork        = "Network error, please try again."
	MsgGeneric        = "Something went wrong, please try again."
	MsgSessionExpired = "Your session has expired, please log in again."
)

// ErrUnauthorized matches any 401 reply via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError is raised before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NetworkError means no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a reply from the backend that reports failure, either by
// status code or by a false success flag.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.Status)
	}
	return e.Message
}

// Unwrap exposes ErrUnauthorized for 401 replies.
func (e *ServerError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// IsUnauthorized reports whether err came from a 401 reply.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// UserMessage turns err into the text shown to the user. Server messages
// are passed through verbatim; a 401 also gets the re-login hint.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return MsgNetwork
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Status == http.StatusUnauthorized {
			if se.Message == "" {
				return MsgSessionExpired
			}
			return se.Message + " " + MsgSessionExpired
		}
		if se.Message != "" {
			return se.Message
		}
	}
	return MsgGeneric
}
