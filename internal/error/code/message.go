package code

import "net/http"

// HTTPStatus returns the fixed HTTP status for an error kind. The
// mapping is uniform across all operations, never operation-specific.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-visible message for an error. Internal
// errors are masked; everything else carries its own message.
func Message(err error) string {
	if e, ok := err.(*Error); ok && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}
