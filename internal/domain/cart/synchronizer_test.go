// internal/domain/cart/synchronizer_test.go
package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-client/internal/pkg/session"
)

// scriptedBackend fails on demand so tests can watch the store stay put
type scriptedBackend struct {
	items []LineItem
	fail  error
	calls []string
}

func (b *scriptedBackend) Load(ctx context.Context) ([]LineItem, error) {
	b.calls = append(b.calls, "load")
	if b.fail != nil {
		return nil, b.fail
	}
	return b.items, nil
}

func (b *scriptedBackend) Add(ctx context.Context, item LineItem, qty int) error {
	b.calls = append(b.calls, "add")
	return b.fail
}

func (b *scriptedBackend) SetQuantity(ctx context.Context, productID int64, qty int) error {
	b.calls = append(b.calls, "setQuantity")
	return b.fail
}

func (b *scriptedBackend) Remove(ctx context.Context, productID int64) error {
	b.calls = append(b.calls, "remove")
	return b.fail
}

func (b *scriptedBackend) Clear(ctx context.Context) error {
	b.calls = append(b.calls, "clear")
	return b.fail
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestSynchronizer(backend Backend) *Synchronizer {
	sess := session.Authenticated(7, "user@example.com", "token")
	return NewSynchronizer(sess, NewStore(), backend, NewMutationQueues(), testLogger())
}

func TestSynchronizerAddMirrorsOnSuccess(t *testing.T) {
	backend := &scriptedBackend{}
	sync := newTestSynchronizer(backend)

	require.NoError(t, sync.Add(context.Background(), testItem(1, "25", 1), 2))

	items := sync.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, []string{"add"}, backend.calls)
}

func TestSynchronizerAddFailureLeavesStoreUnchanged(t *testing.T) {
	backend := &scriptedBackend{fail: errors.New("network down")}
	sync := newTestSynchronizer(backend)

	err := sync.Add(context.Background(), testItem(1, "25", 1), 2)
	require.Error(t, err)
	assert.Empty(t, sync.Items(), "failed mutation must not touch local state")
}

func TestSynchronizerInvalidQuantityNeverReachesBackend(t *testing.T) {
	backend := &scriptedBackend{}
	sync := newTestSynchronizer(backend)

	require.ErrorIs(t, sync.Add(context.Background(), testItem(1, "25", 1), 0), ErrInvalidQuantity)
	require.ErrorIs(t, sync.SetQuantity(context.Background(), 1, 0), ErrInvalidQuantity)
	assert.Empty(t, backend.calls, "local validation must short-circuit the call")
}

func TestSynchronizerSetQuantityMissingItem(t *testing.T) {
	backend := &scriptedBackend{}
	sync := newTestSynchronizer(backend)

	require.ErrorIs(t, sync.SetQuantity(context.Background(), 404, 3), ErrItemNotFound)
	assert.Empty(t, backend.calls)
}

func TestSynchronizerSetQuantityFailureLeavesStoreUnchanged(t *testing.T) {
	backend := &scriptedBackend{}
	sync := newTestSynchronizer(backend)
	require.NoError(t, sync.Add(context.Background(), testItem(1, "25", 1), 2))

	backend.fail = errors.New("network down")
	require.Error(t, sync.SetQuantity(context.Background(), 1, 5))

	got, _ := sync.Store().Get(1)
	assert.Equal(t, 2, got.Quantity)
}

func TestSynchronizerRefreshReplacesStore(t *testing.T) {
	backend := &scriptedBackend{items: []LineItem{testItem(9, "10", 1)}}
	sync := newTestSynchronizer(backend)

	require.NoError(t, sync.Refresh(context.Background()))

	items := sync.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(9), items[0].ProductID)
}

func TestSynchronizerLoginServerWins(t *testing.T) {
	// Anonymous cart holds 3 items, the server cart holds 1 different item.
	// After the login sync the cart shows exactly the server's item.
	anonymous := &scriptedBackend{items: []LineItem{
		testItem(1, "10", 1), testItem(2, "20", 1), testItem(3, "30", 1),
	}}
	server := &scriptedBackend{items: []LineItem{testItem(99, "5", 1)}}

	sync := newTestSynchronizer(server)
	require.NoError(t, sync.Login(context.Background(), anonymous))

	items := sync.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(99), items[0].ProductID)
	assert.Contains(t, anonymous.calls, "clear", "anonymous cart must be discarded")
}

func TestSynchronizerLoginSurvivesAnonymousClearFailure(t *testing.T) {
	anonymous := &scriptedBackend{fail: errors.New("redis down")}
	server := &scriptedBackend{items: []LineItem{testItem(99, "5", 1)}}

	sync := newTestSynchronizer(server)
	require.NoError(t, sync.Login(context.Background(), anonymous))
	assert.Len(t, sync.Items(), 1)
}

func TestSynchronizerLoginRequiresAuthenticatedSession(t *testing.T) {
	sess := session.Anonymous("sess-1")
	sync := NewSynchronizer(sess, NewStore(), &scriptedBackend{}, NewMutationQueues(), testLogger())

	assert.Error(t, sync.Login(context.Background(), nil))
}

func TestSynchronizerLogoutClearsLocalOnly(t *testing.T) {
	backend := &scriptedBackend{}
	sync := newTestSynchronizer(backend)
	require.NoError(t, sync.Add(context.Background(), testItem(1, "25", 1), 1))
	backend.calls = nil

	sync.Logout()
	assert.Empty(t, sync.Items())
	assert.Empty(t, backend.calls, "logout must not reach the backend")
}

func TestSynchronizerClear(t *testing.T) {
	backend := &scriptedBackend{}
	sync := newTestSynchronizer(backend)
	require.NoError(t, sync.Add(context.Background(), testItem(1, "25", 1), 1))

	require.NoError(t, sync.Clear(context.Background()))
	assert.Empty(t, sync.Items())
}
