package fetchq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDo_SpacingBetweenCalls(t *testing.T) {
	const base = 60 * time.Millisecond
	q := New(base, 0, 0, nil)
	ctx := context.Background()

	var starts []time.Time
	var mu sync.Mutex
	call := func(context.Context) error {
		mu.Lock()
		starts = append(starts, time.Now())
		mu.Unlock()
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = q.Do(ctx, 1, call)
	}()
	// small head start so the first call is the first in the queue
	time.Sleep(10 * time.Millisecond)
	_ = q.Do(ctx, 1, call)
	wg.Wait()

	if len(starts) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(starts))
	}
	if gap := starts[1].Sub(starts[0]); gap < base {
		t.Fatalf("second call started %v after the first, want >= %v", gap, base)
	}
}

func TestDo_BatchTooLarge_RejectedSynchronously(t *testing.T) {
	q := New(time.Hour, 0, 10, nil) // delay would hang if the call were enqueued
	err := q.Do(context.Background(), 11, func(context.Context) error {
		t.Fatal("oversized batch must not run")
		return nil
	})
	if !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("got %v, want ErrBatchTooLarge", err)
	}
	if q.Len() != 0 {
		t.Fatalf("oversized batch was enqueued: len=%d", q.Len())
	}
}

func TestDo_FailureDoesNotBlockNextCall(t *testing.T) {
	q := New(time.Millisecond, 0, 0, nil)
	ctx := context.Background()

	boom := errors.New("boom")
	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = q.Do(ctx, 1, func(context.Context) error { return boom })
	}()
	time.Sleep(5 * time.Millisecond)

	ran := false
	if err := q.Do(ctx, 1, func(context.Context) error { ran = true; return nil }); err != nil {
		t.Fatalf("second call: %v", err)
	}
	wg.Wait()

	if !errors.Is(firstErr, boom) {
		t.Fatalf("first caller got %v, want its own error", firstErr)
	}
	if !ran {
		t.Fatal("second call never ran")
	}
}

func TestDo_FIFOOrder(t *testing.T) {
	q := New(time.Millisecond, 0, 0, nil)
	ctx := context.Background()

	var order []int
	var mu sync.Mutex

	// hold the worker on a first slow call so the rest queue up in sequence
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = q.Do(ctx, 1, func(context.Context) error { <-release; return nil })
	}()
	time.Sleep(5 * time.Millisecond)

	for i := 1; i <= 3; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(ctx, 1, func(context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
		time.Sleep(5 * time.Millisecond) // fix enqueue order
	}
	close(release)
	wg.Wait()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("execution order %v, want [1 2 3]", order)
	}
}

func TestDo_CanceledWaiterDoesNotStallQueue(t *testing.T) {
	q := New(time.Millisecond, 0, 0, nil)

	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = q.Do(context.Background(), 1, func(context.Context) error { <-release; return nil })
	}()
	time.Sleep(5 * time.Millisecond)

	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Do(cctx, 1, func(context.Context) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}

	close(release)
	wg.Wait()

	// the queue keeps working after the abandoned waiter
	if err := q.Do(context.Background(), 1, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("queue stalled: %v", err)
	}
}
