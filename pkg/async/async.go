package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete reports whether the function has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn(ctx, param) in its own goroutine and returns a Future for its result.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Skip the work entirely when the context is already done.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		res, err := fn(ctx, param)
		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// WaitAll waits for the futures in order and stops at the first error.
// Results gathered so far are returned along with that error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		if future == nil {
			return results, ErrNilFuture
		}
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// Outcome is the settled state of a single future.
type Outcome[U any] struct {
	Value U
	Err   error
}

// OK reports whether the future completed without error.
func (o Outcome[U]) OK() bool {
	return o.Err == nil
}

// Settle waits for every future and returns one Outcome per future, in order.
// Unlike WaitAll it never short-circuits: a failed future does not hide the others.
func Settle[U any](futures ...*Future[U]) []Outcome[U] {
	outcomes := make([]Outcome[U], len(futures))
	for i, future := range futures {
		if future == nil {
			outcomes[i] = Outcome[U]{Err: ErrNilFuture}
			continue
		}
		v, err := future.Await()
		outcomes[i] = Outcome[U]{Value: v, Err: err}
	}
	return outcomes
}

// Map starts fn for every item concurrently and settles all of them.
func Map[T any, U any](ctx context.Context, items []T, fn func(context.Context, T) (U, error)) []Outcome[U] {
	futures := make([]*Future[U], len(items))
	for i, item := range items {
		futures[i] = Async(ctx, item, fn)
	}
	return Settle(futures...)
}
