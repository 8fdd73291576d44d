// File: internal/result/errors.go

package result

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure. A failure keeps its kind for its whole life:
// components forward it, they never re-tag it.
type Kind string

const (
	KindNetwork               Kind = "network_error"
	KindUnexpectedContentType Kind = "unexpected_content_type"
	KindInvalidQuery          Kind = "invalid_query"
	KindInvalidID             Kind = "invalid_id"
	KindNotAuthenticated      Kind = "not_authenticated"
	KindParse                 Kind = "parse_failure"
)

// Error is the failure payload carried by a Result
type Error struct {
	Kind   Kind
	Op     string // operation that failed, e.g. "fetch thread page"
	Field  string // offending field(s) for InvalidQuery
	Status int    // HTTP status when the platform answered with an error code
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " [%s]", e.Field)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NetworkError reports a transport or timeout failure
func NetworkError(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// HTTPStatusError reports a non-success status code from the platform
func HTTPStatusError(op string, status int) *Error {
	return &Error{Kind: KindNetwork, Op: op, Status: status, Msg: fmt.Sprintf("http %d", status)}
}

// UnexpectedContentType reports a response that is not of the required type
func UnexpectedContentType(op, want, got string) *Error {
	return &Error{Kind: KindUnexpectedContentType, Op: op, Msg: fmt.Sprintf("want %s, got %q", want, got)}
}

// InvalidQuery reports validation failures on the named fields
func InvalidQuery(field, msg string) *Error {
	return &Error{Kind: KindInvalidQuery, Op: "validate query", Field: field, Msg: msg}
}

// InvalidID reports a non-positive or missing identifier
func InvalidID(op string, id int) *Error {
	return &Error{Kind: KindInvalidID, Op: op, Msg: fmt.Sprintf("id %d is not a positive integer", id)}
}

// NotAuthenticated reports an operation that needs a session token
func NotAuthenticated(op, msg string) *Error {
	return &Error{Kind: KindNotAuthenticated, Op: op, Msg: msg}
}

// ParseFailure reports missing or malformed structured data
func ParseFailure(op string, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Err: err}
}

// ParseFailuref is ParseFailure with a formatted message
func ParseFailuref(op, format string, args ...interface{}) *Error {
	return &Error{Kind: KindParse, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or "" when err carries no *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries a failure of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
