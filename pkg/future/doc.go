// Package future provides a shared, single-assignment result of an
// asynchronous operation.
//
// A [Future] is created by [Go], which runs the operation in its own
// goroutine, or by [Resolved] / [Rejected] for already-known outcomes.
// Every goroutine holding the same *Future observes the same value or the
// same error:
//
//	f := future.Go(ctx, func(ctx context.Context) (*User, error) {
//	    return repo.FindUser(ctx, "123")
//	})
//
//	u, err := f.Await(ctx) // blocks until settled or ctx is done
//
// The operation is detached from the caller's cancellation. Await honours
// the caller's ctx only for waiting, so a caller that gives up does not
// abort the work for the others.
//
// Panics inside the operation are recovered and surfaced as an error
// wrapping [ErrPanic].
//
// Use [Then] to derive a typed view over an existing Future without
// running the operation again.
package future
