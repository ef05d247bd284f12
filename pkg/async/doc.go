// Package async provides generic helpers for running computations off the
// caller's goroutine and waiting for their results.
//
// The package is centred around Future, the eventual result of an
// asynchronous operation. Futures come from two places:
//
//   - Async starts the supplied function in its own goroutine. Use it for
//     cheap, I/O-bound fan-out such as health checks.
//   - Submit hands the function to a Pool, a fixed set of worker goroutines.
//     Use it for deliberately expensive CPU-bound work (password hashing) so
//     that a burst of requests cannot start an unbounded number of
//     computations at once.
//
// # Usage
//
//	pool := async.NewPool(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	future := async.Submit(ctx, pool, password, func(_ context.Context, p []byte) (string, error) {
//	    return expensiveHash(p)
//	})
//
//	hash, err := future.AwaitContext(ctx)
//
// AwaitContext stops waiting when the caller's context is done. The job itself
// is not interrupted: it runs to completion on its worker and the result is
// dropped.
//
// # Error Handling
//
// Futures carry the error returned by the user callback. The package adds
// ErrPoolClosed and context errors for cancelled submissions.
package async
