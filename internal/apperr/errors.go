// Package apperr defines the classified application error used by every layer
// below the HTTP responder.
//
// An *Error carries a Kind (mapped 1:1 to an HTTP status), a client-facing
// message, an optional cause and a stack captured at construction. Errors built
// by BadRequest, NotFound and friends are "expected": they describe a rule the
// caller broke. Internal is the only constructor producing an unexpected error,
// and it never exposes its cause in the message.
//
// Validation and the service layer are the only raisers. Handlers forward the
// value untouched and middleware.Render is the only place that turns it into a
// response.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies an application error.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindTooManyRequests
	KindInternal
)

// InternalMessage is the only message ever shown to clients for Internal errors.
const InternalMessage = "Internal Server Error"

var kindInfo = map[Kind]struct {
	name   string
	status int
}{
	KindBadRequest:       {"bad_request", http.StatusBadRequest},
	KindUnauthorized:     {"unauthorized", http.StatusUnauthorized},
	KindForbidden:        {"forbidden", http.StatusForbidden},
	KindNotFound:         {"not_found", http.StatusNotFound},
	KindMethodNotAllowed: {"method_not_allowed", http.StatusMethodNotAllowed},
	KindTooManyRequests:  {"too_many_requests", http.StatusTooManyRequests},
	KindInternal:         {"internal_error", http.StatusInternalServerError},
}

// Status returns the HTTP status code for k. Unknown kinds map to 500.
func (k Kind) Status() int {
	if info, ok := kindInfo[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// String returns the stable snake_case name of k.
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return "unknown"
}

// Error is an immutable, classified application failure.
type Error struct {
	kind     Kind
	message  string
	cause    error
	expected bool
	stack    pkgerrors.StackTrace
}

// stackTracer is implemented by errors created through github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// newError must be called directly by an exported constructor so the captured
// stack starts at the constructor's caller.
func newError(kind Kind, msg string, cause error, expected bool) *Error {
	var st pkgerrors.StackTrace
	if t, ok := pkgerrors.New(msg).(stackTracer); ok {
		st = t.StackTrace()
		// drop newError and the exported constructor
		if len(st) > 2 {
			st = st[2:]
		}
	}
	return &Error{kind: kind, message: msg, cause: cause, expected: expected, stack: st}
}

// BadRequest reports malformed or missing input.
func BadRequest(msg string) *Error { return newError(KindBadRequest, msg, nil, true) }

// Unauthorized is reserved for authentication failures.
func Unauthorized(msg string) *Error { return newError(KindUnauthorized, msg, nil, true) }

// Forbidden is reserved for authorization failures.
func Forbidden(msg string) *Error { return newError(KindForbidden, msg, nil, true) }

// NotFound reports that a referenced resource does not exist.
func NotFound(msg string) *Error { return newError(KindNotFound, msg, nil, true) }

// MethodNotAllowed reports a known route hit with an unsupported method.
func MethodNotAllowed(msg string) *Error { return newError(KindMethodNotAllowed, msg, nil, true) }

// TooManyRequests reports a rate-limit rejection.
func TooManyRequests(msg string) *Error { return newError(KindTooManyRequests, msg, nil, true) }

// Internal wraps an unexpected failure. The cause is kept for logs and
// non-production responses; the client message is always InternalMessage.
func Internal(cause error) *Error { return newError(KindInternal, InternalMessage, cause, false) }

// Wrap builds an expected error of the given kind carrying cause. Passing
// KindInternal is equivalent to Internal(cause).
func Wrap(kind Kind, msg string, cause error) *Error {
	if kind == KindInternal {
		return newError(KindInternal, InternalMessage, cause, false)
	}
	return newError(kind, msg, cause, true)
}

// Kind returns the classification.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the client-facing message.
func (e *Error) Message() string { return e.message }

// Cause returns the wrapped error, or nil.
func (e *Error) Cause() error { return e.cause }

// Expected reports whether the error is a deliberate business or validation failure.
func (e *Error) Expected() bool { return e.expected }

// Status is shorthand for e.Kind().Status().
func (e *Error) Status() int { return e.kind.Status() }

// Stack formats the construction stack, one frame per line pair.
func (e *Error) Stack() string {
	if len(e.stack) == 0 {
		return ""
	}
	return fmt.Sprintf("%s%+v", e.message, e.stack)
}

// Error implements error. The cause is appended for server-side logs only.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.cause }

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// StackOf formats a stack for any error: the *Error construction stack when
// available, the pkg/errors stack when err carries one, and otherwise a stack
// captured at the call site.
func StackOf(err error) string {
	if err == nil {
		return ""
	}
	if ae, ok := As(err); ok {
		return ae.Stack()
	}
	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%s%+v", err.Error(), st.StackTrace())
	}
	return fmt.Sprintf("%+v", pkgerrors.WithStack(err))
}
