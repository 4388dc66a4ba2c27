package future

import (
	"context"
	"errors"
	"fmt"
)

// Future is the shared result of an asynchronous operation.
//
// Any number of goroutines may await the same Future; all of them observe
// the identical value or the identical error once it settles. A Future
// settles exactly once and never changes afterwards.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn in a new goroutine and returns a Future for its outcome.
//
// fn runs with a context detached from ctx cancellation: the operation is
// shared by every awaiter, so a single caller giving up must not abort it.
// Context values (request IDs, trace data) are preserved.
//
// A panic inside fn is recovered and reported as an error wrapping ErrPanic.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	runCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.val = zero
				f.err = errors.Join(ErrPanic, fmt.Errorf("%v", r))
			}
		}()
		f.val, f.err = fn(runCtx)
	}()

	return f
}

// Resolved returns a Future that is already settled with v.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v}
	close(f.done)
	return f
}

// Rejected returns a Future that is already settled with err.
// A nil err is replaced with ErrNilError so the Future is never
// mistaken for a successful one.
func Rejected[T any](err error) *Future[T] {
	if err == nil {
		err = ErrNilError
	}
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Await blocks until the Future settles or ctx is done.
// Cancelling ctx only stops this caller from waiting; the underlying
// operation keeps running and other awaiters still receive its outcome.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}

	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the Future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the Future has a result.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the outcome without blocking.
// ok is false while the Future is still pending.
func (f *Future[T]) Result() (val T, err error, ok bool) {
	if !f.Settled() {
		var zero T
		return zero, nil, false
	}
	return f.val, f.err, true
}

// Err returns the rejection error, or nil if the Future is pending
// or resolved successfully.
func (f *Future[T]) Err() error {
	if !f.Settled() {
		return nil
	}
	return f.err
}

// State reports the lifecycle stage of the Future.
func (f *Future[T]) State() State {
	if !f.Settled() {
		return StatePending
	}
	if f.err != nil {
		return StateRejected
	}
	return StateResolved
}

// Then returns a Future that settles with fn applied to the value of f.
// A rejection of f is passed through as-is and fn is not called.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	if val, err, ok := f.Result(); ok {
		if err != nil {
			return Rejected[U](err)
		}
		return settle(fn, val)
	}

	return Go(context.Background(), func(ctx context.Context) (U, error) {
		val, err := f.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(val)
	})
}

func settle[T, U any](fn func(T) (U, error), val T) (out *Future[U]) {
	defer func() {
		if r := recover(); r != nil {
			out = Rejected[U](errors.Join(ErrPanic, fmt.Errorf("%v", r)))
		}
	}()

	u, err := fn(val)
	if err != nil {
		return Rejected[U](err)
	}
	return Resolved(u)
}
