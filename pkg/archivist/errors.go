package archivist

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Every error returned by the client wraps exactly one of
// these, so callers can test the kind with errors.Is.
var (
	// ErrArchivist is the catch-all for non-2xx responses that have no more
	// specific kind.
	ErrArchivist = errors.New("archivist error")

	// ErrTransport means the request never reached the server (network,
	// DNS or TLS failure).
	ErrTransport = errors.New("transport error")

	ErrBadRequest         = errors.New("bad request")
	ErrPermission         = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrConfirmation means the record reached the FAILED status.
	ErrConfirmation = errors.New("confirmation failed")

	// ErrTimeout means the record was not confirmed before the deadline.
	ErrTimeout = errors.New("confirmation timed out")

	// ErrDuplicate means a signature lookup matched more than one record.
	ErrDuplicate = errors.New("duplicate records")
)

// Error describes a failed Archivist operation.
type Error struct {
	// Op is the operation that failed, e.g. "assets.read".
	Op string

	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int

	// Body is the raw response body, kept for diagnostics.
	Body []byte

	// Err is one of the sentinel errors above, or a wrapped cause.
	Err error

	// Msg is optional extra context.
	Msg string
}

func (e *Error) Error() string {
	s := e.Op + ": "
	if e.Msg != "" {
		s += e.Msg + ": "
	}
	s += e.Err.Error()
	if e.StatusCode != 0 {
		s += fmt.Sprintf(" (status %d)", e.StatusCode)
		if len(e.Body) > 0 {
			s += ": " + string(e.Body)
		}
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// kindForStatus maps an HTTP status code to its sentinel error. It returns
// nil for 2xx codes.
func kindForStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest:
		return ErrBadRequest
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrPermission
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= 500 && status < 600:
		return ErrServiceUnavailable
	default:
		return ErrArchivist
	}
}

// errorForResponse returns the *Error for a non-2xx response, or nil.
func errorForResponse(op string, status int, body []byte) error {
	kind := kindForStatus(status)
	if kind == nil {
		return nil
	}
	return &Error{
		Op:         op,
		StatusCode: status,
		Body:       body,
		Err:        kind,
	}
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether the caller may sensibly retry the request.
// Only 5xx responses and transport failures qualify.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrTransport)
}

// StatusCode returns the HTTP status attached to err, or zero.
func StatusCode(err error) int {
	var archivistErr *Error
	if errors.As(err, &archivistErr) {
		return archivistErr.StatusCode
	}
	return 0
}
