// Package async provides small generic helpers for running work concurrently and joining
// on the results.
//
// Async starts a function in its own goroutine and returns a *Future. Await blocks until the
// function returns. Several futures can be joined two ways:
//
//   - WaitAll returns on the first error, which suits all-or-nothing work.
//   - Settle waits for every future and reports each outcome separately, which suits batches
//     of independent items where one failure must not affect its siblings.
//
// Map is a shortcut for launching one future per item and settling them.
//
// # Usage
//
//	outcomes := async.Map(ctx, uris, func(ctx context.Context, uri string) (string, error) {
//		return convert(ctx, uri)
//	})
//	for i, o := range outcomes {
//		if !o.OK() {
//			log.Printf("item %d failed: %v", i, o.Err)
//		}
//	}
//
// # Cancellation
//
// If the context is already done when the goroutine starts, the function is not called and
// the future completes with ctx.Err(). Functions that block should watch ctx themselves.
//
// # Performance Considerations
//
// Futures are thin wrappers around a goroutine and a channel. There is no concurrency limit;
// use a worker pool when the number of items is unbounded.
package async
