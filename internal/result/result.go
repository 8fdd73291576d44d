// Package result provides the success/failure container threaded through
// every fallible step of the retrieval pipeline.
//
// Inside the pipeline a step inspects a Result and either continues with
// its value or forwards the failure unchanged. Only the outer boundaries
// (services.Client, HTTP handlers, the CLI) turn a failure into a Go error
// with Unwrap.
package result

// Result holds either a value or a failure, never both.
type Result[T any] struct {
	value T
	err   *Error
}

// Success wraps v.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps err. err must not be nil.
func Failure[T any](err *Error) Result[T] {
	if err == nil {
		panic("result: Failure called with nil error")
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool { return r.err == nil }

func (r Result[T]) IsFailure() bool { return r.err != nil }

// Value returns the wrapped value, or the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure, or nil on success.
func (r Result[T]) Err() *Error { return r.err }

// Unwrap converts the Result into Go's (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Forward re-types a failed Result without touching the failure.
// It panics when r is a success.
func Forward[U, T any](r Result[T]) Result[U] {
	return Failure[U](r.err)
}

// Then runs f on the value of r, or forwards the failure.
func Then[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return f(r.value)
}

// FirstFailure returns the failure with the lowest index in rs, or nil.
func FirstFailure[T any](rs []Result[T]) *Error {
	for _, r := range rs {
		if r.err != nil {
			return r.err
		}
	}
	return nil
}
