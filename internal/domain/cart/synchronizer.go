// internal/domain/cart/synchronizer.go
package cart

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/pkg/session"
)

// Synchronizer keeps the in-memory store consistent with the session's cart
// backend. Every mutation goes to the backend first and is mirrored into the
// store only on success, so on a failure the local state is untouched and
// the error is surfaced exactly once; nothing is retried behind the user's
// back. For the anonymous backend the "network" is a local Redis write; for
// the authenticated backend it is the platform's cart API.
type Synchronizer struct {
	sess    *session.Session
	store   *Store
	backend Backend
	queues  *MutationQueues
	logger  *logrus.Logger
}

// NewSynchronizer creates a synchronizer bound to one session
func NewSynchronizer(sess *session.Session, store *Store, backend Backend, queues *MutationQueues, logger *logrus.Logger) *Synchronizer {
	return &Synchronizer{
		sess:    sess,
		store:   store,
		backend: backend,
		queues:  queues,
		logger:  logger,
	}
}

// Store exposes the read-through cache of the cart
func (s *Synchronizer) Store() *Store {
	return s.store
}

// Items returns the current line items in display order
func (s *Synchronizer) Items() []LineItem {
	return s.store.Items()
}

// Refresh replaces the local store with a full backend read
func (s *Synchronizer) Refresh(ctx context.Context) error {
	items, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	s.store.ReplaceAll(items)
	return nil
}

// Add inserts a product or increments its quantity by qty
func (s *Synchronizer) Add(ctx context.Context, item LineItem, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	return s.queues.Run(ctx, s.owner(), item.ProductID, func() error {
		if err := s.backend.Add(ctx, item, qty); err != nil {
			return err
		}
		return s.store.Add(item, qty)
	})
}

// SetQuantity overwrites the quantity of an existing line. Quantities below
// 1 are rejected locally, before any network call is made.
func (s *Synchronizer) SetQuantity(ctx context.Context, productID int64, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if _, ok := s.store.Get(productID); !ok {
		return ErrItemNotFound
	}

	return s.queues.Run(ctx, s.owner(), productID, func() error {
		if err := s.backend.SetQuantity(ctx, productID, qty); err != nil {
			return err
		}
		return s.store.SetQuantity(productID, qty)
	})
}

// Remove deletes a line; removing an absent product is a no-op
func (s *Synchronizer) Remove(ctx context.Context, productID int64) error {
	return s.queues.Run(ctx, s.owner(), productID, func() error {
		if err := s.backend.Remove(ctx, productID); err != nil {
			return err
		}
		s.store.Remove(productID)
		return nil
	})
}

// Clear empties the cart in the backend and then locally
func (s *Synchronizer) Clear(ctx context.Context) error {
	if err := s.backend.Clear(ctx); err != nil {
		return err
	}

	s.store.Clear()
	return nil
}

// Login completes the anonymous-to-authenticated transition: the anonymous
// cart is discarded and the server cart replaces the local state wholesale.
// The server always wins; no cross-device merge is attempted.
func (s *Synchronizer) Login(ctx context.Context, anonymous Backend) error {
	if !s.sess.IsAuthenticated() {
		return fmt.Errorf("login sync requires an authenticated session")
	}

	if anonymous != nil {
		if err := anonymous.Clear(ctx); err != nil {
			// The abandoned session cart expires on its own; losing the
			// delete does not affect correctness
			s.logger.WithError(err).Warn("Failed to discard anonymous cart")
		}
	}

	return s.Refresh(ctx)
}

// Logout clears the local store. The anonymous cart is not restored.
func (s *Synchronizer) Logout() {
	s.store.Clear()
}

// owner identifies whose mutation queue this session serializes on
func (s *Synchronizer) owner() string {
	if s.sess.IsAuthenticated() {
		return fmt.Sprintf("user:%d", s.sess.UserID)
	}
	return fmt.Sprintf("session:%s", s.sess.SessionID)
}
