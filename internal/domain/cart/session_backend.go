// internal/domain/cart/session_backend.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionCart is the Redis document holding an anonymous cart
type sessionCart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SessionBackend persists an anonymous cart as a JSON document in Redis,
// keyed by the visitor's session ID. It is the pre-authentication home of
// the cart and is discarded, never merged, when the user logs in.
type SessionBackend struct {
	redisClient *redis.Client
	sessionID   string
	ttl         time.Duration
}

// NewSessionBackend creates a Redis-backed anonymous cart
func NewSessionBackend(redisClient *redis.Client, sessionID string, ttl time.Duration) (*SessionBackend, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	return &SessionBackend{
		redisClient: redisClient,
		sessionID:   sessionID,
		ttl:         ttl,
	}, nil
}

func (b *SessionBackend) key() string {
	return fmt.Sprintf("cart:session:%s", b.sessionID)
}

// Load reads the anonymous cart; a missing key is an empty cart
func (b *SessionBackend) Load(ctx context.Context) ([]LineItem, error) {
	doc, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// Add inserts a line or increments an existing one by qty
func (b *SessionBackend) Add(ctx context.Context, item LineItem, qty int) error {
	doc, err := b.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range doc.Items {
		if doc.Items[i].ProductID == item.ProductID {
			doc.Items[i].Quantity += qty
			found = true
			break
		}
	}

	if !found {
		item.Quantity = qty
		doc.Items = append(doc.Items, item)
	}

	return b.save(ctx, doc)
}

// SetQuantity sets the absolute quantity of an existing line
func (b *SessionBackend) SetQuantity(ctx context.Context, productID int64, qty int) error {
	doc, err := b.load(ctx)
	if err != nil {
		return err
	}

	for i := range doc.Items {
		if doc.Items[i].ProductID == productID {
			doc.Items[i].Quantity = qty
			return b.save(ctx, doc)
		}
	}

	return ErrItemNotFound
}

// Remove deletes a line; removing an absent product is a no-op
func (b *SessionBackend) Remove(ctx context.Context, productID int64) error {
	doc, err := b.load(ctx)
	if err != nil {
		return err
	}

	for i := range doc.Items {
		if doc.Items[i].ProductID == productID {
			doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
			return b.save(ctx, doc)
		}
	}

	return nil
}

// Clear deletes the whole session cart document
func (b *SessionBackend) Clear(ctx context.Context) error {
	return b.redisClient.Del(ctx, b.key()).Err()
}

func (b *SessionBackend) load(ctx context.Context) (*sessionCart, error) {
	data, err := b.redisClient.Get(ctx, b.key()).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &sessionCart{
			SessionID: b.sessionID,
			Items:     []LineItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read session cart: %w", err)
	}

	var doc sessionCart
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode session cart: %w", err)
	}

	return &doc, nil
}

func (b *SessionBackend) save(ctx context.Context, doc *sessionCart) error {
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode session cart: %w", err)
	}

	if err := b.redisClient.Set(ctx, b.key(), data, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session cart: %w", err)
	}

	return nil
}
