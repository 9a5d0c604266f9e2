package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound matches any *Error with KindNotFound via errors.Is.
var ErrNotFound = errors.New("not found")

type ErrorKind int

const (
	KindHTTP ErrorKind = iota
	KindNotFound
	KindValidation
)

// Error is a normalized backend or client-side precondition failure.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

func newValidationError(format string, args ...any) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func notFoundError(resource string) *Error {
	return &Error{
		Kind:       KindNotFound,
		StatusCode: 404,
		Message:    fmt.Sprintf("%s not found", resource),
	}
}

// errorBody is the JSON error shape the backend responds with.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// normalizeHTTPError maps a non-2xx response body to an *Error, preferring
// the server-supplied message when the body parses.
func normalizeHTTPError(statusCode int, body []byte, resource string) *Error {
	if statusCode == 404 {
		return notFoundError(resource)
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			return &Error{Kind: KindHTTP, StatusCode: statusCode, Message: eb.Error}
		}
		if eb.Message != "" {
			return &Error{Kind: KindHTTP, StatusCode: statusCode, Message: eb.Message}
		}
	}

	return &Error{
		Kind:       KindHTTP,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("API Error: %d", statusCode),
	}
}
