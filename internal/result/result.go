// Package result provides the asynchronous outcome type returned by the
// repository and use-case layers.
//
// A Result is exactly one of:
//
//	Loading          - the value has not been produced yet
//	Success(value)   - the operation completed
//	Error(cause)     - the operation failed with cause
//
// Callers that must handle every case use Match.
package result

import "errors"

// Kind discriminates the variants of a Result
type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	}
	return "unknown"
}

// Unit is the value of operations that only succeed or fail
type Unit struct{}

// ErrNilCause is stored when Error is built from a nil error
var ErrNilCause = errors.New("result: error with nil cause")

// Result is an immutable Loading / Success / Error variant
type Result[T any] struct {
	kind  Kind
	value T
	err   error
}

// Loading returns the Loading variant
func Loading[T any]() Result[T] {
	return Result[T]{kind: KindLoading}
}

// Success wraps value
func Success[T any](value T) Result[T] {
	return Result[T]{kind: KindSuccess, value: value}
}

// Error wraps cause; a nil cause is replaced by ErrNilCause
func Error[T any](cause error) Result[T] {
	if cause == nil {
		cause = ErrNilCause
	}
	return Result[T]{kind: KindError, err: cause}
}

// Done returns the Unit success
func Done() Result[Unit] {
	return Success(Unit{})
}

// From converts a (value, error) pair
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Error[T](err)
	}
	return Success(value)
}

func (r Result[T]) Kind() Kind { return r.kind }
func (r Result[T]) IsLoading() bool { return r.kind == KindLoading }
func (r Result[T]) IsSuccess() bool { return r.kind == KindSuccess }
func (r Result[T]) IsError() bool { return r.kind == KindError }
func (r Result[T]) Err() error { return r.err }

// Value returns the success value and whether r is a Success
func (r Result[T]) Value() (T, bool) {
	return r.value, r.kind == KindSuccess
}

// Unwrap returns the (value, error) pair. Loading yields ErrLoading.
func (r Result[T]) Unwrap() (T, error) {
	switch r.kind {
	case KindSuccess:
		return r.value, nil
	case KindError:
		var zero T
		return zero, r.err
	default:
		var zero T
		return zero, ErrLoading
	}
}

// ErrLoading is returned by Unwrap on a Loading result
var ErrLoading = errors.New("result: still loading")

// DoIfSuccess runs fn with the value when r is a Success and returns r
func (r Result[T]) DoIfSuccess(fn func(T)) Result[T] {
	if r.kind == KindSuccess {
		fn(r.value)
	}
	return r
}

// DoIfError runs fn with the cause when r is an Error and returns r
func (r Result[T]) DoIfError(fn func(error)) Result[T] {
	if r.kind == KindError {
		fn(r.err)
	}
	return r
}

// Match dispatches on the variant. Every branch must be supplied.
func Match[T, R any](r Result[T], onLoading func() R, onSuccess func(T) R, onError func(error) R) R {
	switch r.kind {
	case KindSuccess:
		return onSuccess(r.value)
	case KindError:
		return onError(r.err)
	default:
		return onLoading()
	}
}

// Map transforms the success value, passing Loading and Error through
func Map[T, R any](r Result[T], fn func(T) R) Result[R] {
	switch r.kind {
	case KindSuccess:
		return Success(fn(r.value))
	case KindError:
		return Error[R](r.err)
	default:
		return Loading[R]()
	}
}
