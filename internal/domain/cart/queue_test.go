// internal/domain/cart/queue_test.go
package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationQueuesSerializesSameProduct(t *testing.T) {
	queues := NewMutationQueues()

	const workers = 20
	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			<-start
			// Stagger entry so registration order matches i
			time.Sleep(time.Duration(i) * 2 * time.Millisecond)
			_ = queues.Run(context.Background(), "user:1", 42, func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				time.Sleep(time.Millisecond)
				return nil
			})
		}()
	}
	close(start)
	wg.Wait()

	require.Len(t, order, workers)
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1], order[i],
			"mutations for one product must run in arrival order")
	}
}

func TestMutationQueuesIndependentProductsDoNotBlock(t *testing.T) {
	queues := NewMutationQueues()

	blockerEntered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = queues.Run(context.Background(), "user:1", 1, func() error {
			close(blockerEntered)
			<-release
			return nil
		})
	}()

	<-blockerEntered
	go func() {
		_ = queues.Run(context.Background(), "user:1", 2, func() error {
			return nil
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("mutation for a different product was blocked")
	}
	close(release)
}

func TestMutationQueuesPropagatesError(t *testing.T) {
	queues := NewMutationQueues()

	wantErr := assert.AnError
	err := queues.Run(context.Background(), "user:1", 1, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// The queue must stay usable after a failed mutation
	err = queues.Run(context.Background(), "user:1", 1, func() error {
		return nil
	})
	assert.NoError(t, err)
}

func TestMutationQueuesCancelledWaiterDoesNotRun(t *testing.T) {
	queues := NewMutationQueues()

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = queues.Run(context.Background(), "user:1", 1, func() error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	err := queues.Run(ctx, "user:1", 1, func() error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran, "a cancelled waiter must not execute its mutation")

	close(release)

	// Later mutations still go through once the holder finishes
	err = queues.Run(context.Background(), "user:1", 1, func() error {
		return nil
	})
	assert.NoError(t, err)
}

func TestMutationQueuesSeparateOwners(t *testing.T) {
	queues := NewMutationQueues()

	blockerEntered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = queues.Run(context.Background(), "session:abc", 1, func() error {
			close(blockerEntered)
			<-release
			return nil
		})
	}()

	<-blockerEntered
	go func() {
		_ = queues.Run(context.Background(), "user:9", 1, func() error {
			return nil
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("same product under a different owner was blocked")
	}
	close(release)
}
