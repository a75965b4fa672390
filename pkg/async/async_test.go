package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrymomot/contentkit/pkg/async"
)

func TestAsyncAwait(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	future := async.Async(ctx, 42, func(ctx context.Context, num int) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return fmt.Sprintf("Number: %d", num), nil
	})

	res, err := future.Await()
	if err != nil || res != "Number: 42" {
		t.Errorf("Expected 'Number: 42', got '%s', error: %v", res, err)
	}
	if !future.IsComplete() {
		t.Error("Expected future to be complete after Await")
	}
}

func TestAsyncErrorPropagation(t *testing.T) {
	t.Parallel()
	expectedErr := errors.New("boom")

	future := async.Async(context.Background(), 1, func(ctx context.Context, num int) (int, error) {
		return 0, expectedErr
	})

	res, err := future.Await()
	if !errors.Is(err, expectedErr) {
		t.Errorf("Expected error %v, got %v", expectedErr, err)
	}
	if res != 0 {
		t.Errorf("Expected zero result, got %d", res)
	}
}

func TestAsyncCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	future := async.Async(ctx, 1, func(ctx context.Context, num int) (int, error) {
		called.Store(true)
		return num, nil
	})

	_, err := future.Await()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if called.Load() {
		t.Error("Expected function not to be called for a canceled context")
	}
}

func TestIsComplete(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})

	future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
		<-release
		return 1, nil
	})

	if future.IsComplete() {
		t.Error("Expected future to be pending")
	}
	close(release)
	_, _ = future.Await()
	if !future.IsComplete() {
		t.Error("Expected future to be complete")
	}
}

func TestWaitAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	double := func(ctx context.Context, n int) (int, error) { return n * 2, nil }

	results, err := async.WaitAll(
		async.Async(ctx, 1, double),
		async.Async(ctx, 2, double),
		async.Async(ctx, 3, double),
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, want := range []int{2, 4, 6} {
		if results[i] != want {
			t.Errorf("results[%d] = %d, want %d", i, results[i], want)
		}
	}

	expectedErr := errors.New("second failed")
	_, err = async.WaitAll(
		async.Async(ctx, 1, double),
		async.Async(ctx, 2, func(ctx context.Context, n int) (int, error) { return 0, expectedErr }),
	)
	if !errors.Is(err, expectedErr) {
		t.Errorf("Expected %v, got %v", expectedErr, err)
	}

	_, err = async.WaitAll[int](nil)
	if !errors.Is(err, async.ErrNilFuture) {
		t.Errorf("Expected ErrNilFuture, got %v", err)
	}
}

func TestSettleDoesNotShortCircuit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	failure := errors.New("first failed")

	var finished atomic.Int32
	slow := func(ctx context.Context, n int) (int, error) {
		time.Sleep(30 * time.Millisecond)
		finished.Add(1)
		return n, nil
	}

	outcomes := async.Settle(
		async.Async(ctx, 0, func(ctx context.Context, n int) (int, error) { return 0, failure }),
		async.Async(ctx, 1, slow),
		async.Async(ctx, 2, slow),
		nil,
	)

	if len(outcomes) != 4 {
		t.Fatalf("Expected 4 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].OK() || !errors.Is(outcomes[0].Err, failure) {
		t.Errorf("Expected first outcome to fail with %v, got %v", failure, outcomes[0].Err)
	}
	for i := 1; i <= 2; i++ {
		if !outcomes[i].OK() || outcomes[i].Value != i {
			t.Errorf("outcome %d = %+v, want value %d", i, outcomes[i], i)
		}
	}
	if !errors.Is(outcomes[3].Err, async.ErrNilFuture) {
		t.Errorf("Expected ErrNilFuture for nil entry, got %v", outcomes[3].Err)
	}
	if finished.Load() != 2 {
		t.Errorf("Expected both slow futures to finish, got %d", finished.Load())
	}
}

func TestMapRunsConcurrently(t *testing.T) {
	t.Parallel()
	items := []int{1, 2, 3, 4, 5}
	start := time.Now()

	outcomes := async.Map(context.Background(), items, func(ctx context.Context, n int) (int, error) {
		time.Sleep(100 * time.Millisecond)
		if n == 3 {
			return 0, errors.New("three")
		}
		return n * n, nil
	})

	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("Expected concurrent execution, took %v", elapsed)
	}
	for i, o := range outcomes {
		n := items[i]
		if n == 3 {
			if o.OK() {
				t.Error("Expected item 3 to fail")
			}
			continue
		}
		if o.Value != n*n {
			t.Errorf("outcome %d = %d, want %d", i, o.Value, n*n)
		}
	}
}

func TestMapEmpty(t *testing.T) {
	t.Parallel()
	outcomes := async.Map(context.Background(), []string(nil), func(ctx context.Context, s string) (string, error) {
		return s, nil
	})
	if len(outcomes) != 0 {
		t.Errorf("Expected no outcomes, got %d", len(outcomes))
	}
}
