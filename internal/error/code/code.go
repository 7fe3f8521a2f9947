// Package code defines the error kinds shared by all domain services and
// the uniform mapping from kind to HTTP status.
package code

import "fmt"

// Kind classifies a domain error. Every service error carries exactly
// one kind; controllers map kinds to HTTP statuses uniformly.
type Kind int

const (
	// KindValidation - 400: malformed input or reference to a missing
	// supporting entity (unknown service, checkpoint, file...).
	KindValidation Kind = iota + 1
	// KindNotFound - 404: the operation targets a missing entity by id.
	KindNotFound
	// KindConflict - 400: an invariant would be violated (duplicate
	// active visit, duplicate blacklist entry, duplicate active alert,
	// deletion blocked by existing references).
	KindConflict
	// KindAuthorization - 403: the caller's role is insufficient.
	KindAuthorization
	// KindUnauthenticated - 401: missing or invalid credentials.
	KindUnauthenticated
	// KindInternal - 500: everything else.
	KindInternal
)

// Error is the error type returned by all domain services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a validation error.
func Validation(format string, v ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, v...)}
}

// NotFound builds a not-found error.
func NotFound(format string, v ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, v...)}
}

// Conflict builds a conflict error.
func Conflict(format string, v ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, v...)}
}

// Authorization builds an authorization error.
func Authorization(format string, v ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, v...)}
}

// Unauthenticated builds an authentication error.
func Unauthenticated(format string, v ...interface{}) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, v...)}
}

// Internal wraps an unexpected error.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the kind of an error, defaulting to KindInternal for
// errors that did not originate in a service.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
