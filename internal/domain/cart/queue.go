// internal/domain/cart/queue.go
package cart

import (
	"context"
	"sync"
)

type queueKey struct {
	owner     string
	productID int64
}

// MutationQueues serializes in-flight cart mutations per (owner, product).
// The platform models "set quantity" as absolute, so two overlapping updates
// for the same product must reach it in issue order: a second mutation waits
// behind the first rather than racing it or being dropped. Mutations for
// different products are independent keys and run concurrently.
type MutationQueues struct {
	mu    sync.Mutex
	tails map[queueKey]chan struct{}
}

// NewMutationQueues creates an empty queue registry, shared process-wide
func NewMutationQueues() *MutationQueues {
	return &MutationQueues{
		tails: make(map[queueKey]chan struct{}),
	}
}

// Run executes fn once every earlier mutation for the same key has finished.
// Waiting is bounded by ctx. A caller that gives up waiting still keeps the
// chain intact: its slot is released only after its predecessor finishes, so
// later mutations can never overtake an earlier one.
func (q *MutationQueues) Run(ctx context.Context, owner string, productID int64, fn func() error) error {
	key := queueKey{owner: owner, productID: productID}

	q.mu.Lock()
	prev := q.tails[key]
	done := make(chan struct{})
	q.tails[key] = done
	q.mu.Unlock()

	release := func() {
		close(done)
		q.mu.Lock()
		if q.tails[key] == done {
			delete(q.tails, key)
		}
		q.mu.Unlock()
	}

	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			go func() {
				<-prev
				release()
			}()
			return ctx.Err()
		}
	}

	defer release()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn()
}
