package fetchq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// ErrBatchTooLarge is returned synchronously, before anything is enqueued.
var ErrBatchTooLarge = errors.New("fetchq: batch exceeds upstream maximum")

// Queue serializes outbound calls so that no two are issued closer together
// than baseDelay plus a random jitter. The jitter keeps this client from
// locking step with other consumers hammering the same upstream.
//
// Callers do not coordinate: a single drain worker runs pending calls in
// insertion order, and each caller gets its own call's result. A failed call
// never blocks the calls behind it.
type Queue struct {
	baseDelay time.Duration
	jitterMax time.Duration
	maxBatch  int
	log       *slog.Logger

	mu      sync.Mutex
	pending []*job
	running bool
	last    time.Time // when the previous call finished (or was attempted)
}

type job struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

func New(baseDelay, jitterMax time.Duration, maxBatch int, log *slog.Logger) *Queue {
	if log == nil {
		log = slog.Default()
	}
	return &Queue{baseDelay: baseDelay, jitterMax: jitterMax, maxBatch: maxBatch, log: log}
}

// Do enqueues fn and blocks until it has run (or ctx is canceled while
// waiting). batchSize is validated against the upstream maximum before
// enqueueing. The returned error is fn's own; it is not shared with other
// queued calls.
func (q *Queue) Do(ctx context.Context, batchSize int, fn func(context.Context) error) error {
	if q.maxBatch > 0 && batchSize > q.maxBatch {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, batchSize, q.maxBatch)
	}

	j := &job{ctx: ctx, fn: fn, done: make(chan error, 1)}

	q.mu.Lock()
	q.pending = append(q.pending, j)
	start := !q.running
	if start {
		q.running = true
	}
	q.mu.Unlock()

	if start {
		go q.drain()
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len reports how many calls are waiting. Informational only.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// drain is the single worker. It exits when the queue is empty; Do restarts
// it on the next enqueue. Starting while one is active never happens because
// running flips inside the same critical section as the append.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		j := q.pending[0]
		q.pending = q.pending[1:]
		last := q.last
		q.mu.Unlock()

		if !last.IsZero() {
			if wait := q.requiredDelay() - time.Since(last); wait > 0 {
				time.Sleep(wait)
			}
		}

		err := j.fn(j.ctx)

		q.mu.Lock()
		q.last = time.Now()
		q.mu.Unlock()

		if err != nil {
			q.log.Debug("queued call failed", "err", err)
		}
		j.done <- err
	}
}

func (q *Queue) requiredDelay() time.Duration {
	d := q.baseDelay
	if q.jitterMax > 0 {
		d += rand.N(q.jitterMax)
	}
	return d
}
