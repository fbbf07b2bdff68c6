package pipeline

import (
	"context"
	"sync"

	"github.com/pitstopgolf/server/pkg/types"
)

// ProcessFunc handles one dequeued submission. It must not panic; any
// failure bookkeeping is its own responsibility.
type ProcessFunc func(ctx context.Context, sub *types.Submission)

// Queue serializes submission processing: items are drained in strict
// enqueue order by at most one worker. The WhatsApp client cannot handle
// overlapping sends, so the single worker is a hard requirement, not an
// optimization.
type Queue struct {
	process ProcessFunc

	mu       sync.Mutex
	items    []*types.Submission
	draining bool
	closed   bool
	wg       sync.WaitGroup
}

func NewQueue(process ProcessFunc) *Queue {
	return &Queue{process: process}
}

// Enqueue appends sub to the tail. Items are buffered even while a drain is
// running; the running drain will pick them up.
func (q *Queue) Enqueue(sub *types.Submission) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, sub)
}

// Len returns the number of items waiting (not counting one in flight).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain starts the worker if one is not already running. Calling Drain while
// a drain is in progress is a no-op: the running worker re-checks the queue
// after each item, so nothing is lost.
func (q *Queue) Drain(ctx context.Context) {
	q.mu.Lock()
	if q.draining || q.closed {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.wg.Add(1)
	q.mu.Unlock()

	go q.drain(ctx)
}

// drain pulls the next item unconditionally until the queue is empty. Close
// must not cut a running drain short: queued items are never dropped.
func (q *Queue) drain(ctx context.Context) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		next := q.items[0]
		q.items = q.items[1:]
		q.mu.Unlock()

		q.process(ctx, next)
	}
}

// Close stops new drains from starting and waits for a running drain to
// finish its backlog. An item mid-processing when the process dies is left
// in processando with no automatic recovery.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wg.Wait()
}
