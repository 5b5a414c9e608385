package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Hooks match them with errors.Is; the engine never maps
// a kind to a stage on its own.
var (
	ErrMalformedNotation = errors.New("malformed controller notation")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrIncompleteView    = errors.New("incomplete view address")
	ErrNoRenderer        = errors.New("no renderer configured")
	ErrPanic             = errors.New("panic in lifecycle hook")
	ErrInvalidRoute      = errors.New("invalid route declaration")
)

// NotationError reports a token that matches none of the notation shapes.
type NotationError struct {
	Token string
}

func (e *NotationError) Error() string {
	return fmt.Sprintf("unexpected controller notation [%s]", e.Token)
}

func (e *NotationError) Unwrap() error {
	return ErrMalformedNotation
}

// RouteError reports a route declaration the dispatch table cannot register.
type RouteError struct {
	Err      error
	Key      string
	Notation string
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("route %q => %q: %v", e.Key, e.Notation, e.Err)
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

// PanicError is a panic recovered from a lifecycle hook.
type PanicError struct {
	Value any
	Stage string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s hook: %v", e.Stage, e.Value)
}

func (e *PanicError) Unwrap() error {
	return ErrPanic
}

// HTTPError represents an HTTP error with all data needed for rendering.
// It implements the error interface and unwraps to its underlying error,
// so errors.Is(err, ErrNotFound) holds for NotFound(...) values.
type HTTPError struct {
	// Err is the underlying error (for logging and errors.Is, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Title is an optional title for the error.
	Title string

	// Detail is an optional extended description.
	Detail string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Title = title
	}
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// kindError builds an HTTPError that unwraps to kind unless WithError overrides it.
func kindError(code int, kind error, message string, opts []HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, append([]HTTPErrorOption{WithError(kind)}, opts...)...)
}

// Convenience constructors for the error kinds.

func NotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return kindError(http.StatusNotFound, ErrNotFound, message, opts)
}

func Unauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return kindError(http.StatusUnauthorized, ErrUnauthorized, message, opts)
}

func AlreadyExists(message string, opts ...HTTPErrorOption) *HTTPError {
	return kindError(http.StatusConflict, ErrAlreadyExists, message, opts)
}

func InvalidArgument(message string, opts ...HTTPErrorOption) *HTTPError {
	return kindError(http.StatusBadRequest, ErrInvalidArgument, message, opts)
}

func Internal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError extracts the HTTPError from an error chain if present.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// StatusCode maps an error to an HTTP status.
// An error in the chain with a non-zero StatusCode() wins (HTTPError is one);
// otherwise the error kind decides.
func StatusCode(err error) int {
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		if code := coded.StatusCode(); code != 0 {
			return code
		}
	}
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
