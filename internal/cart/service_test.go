package cart

import (
	"context"
	"testing"
	"time"

	"labelia/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory Store for tests.
type memoryStore struct {
	slots map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{slots: make(map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *memoryStore) Put(_ context.Context, key string, value []byte) error {
	m.slots[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	delete(m.slots, key)
	return nil
}

func (m *memoryStore) Close() error { return nil }

func TestService_AddItemPersistsAndMerges(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()
	p := testProduct("P001", 25000)

	_, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)

	assert.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Contains(t, store.slots, "session-1")
}

func TestService_AddItemRejectsUnknownVariant(t *testing.T) {
	svc := NewService(newMemoryStore(), zerolog.Nop())
	p := testProduct("P001", 25000)

	_, err := svc.AddItem(context.Background(), "session-1", p, "pink", "M")
	assert.ErrorIs(t, err, model.ErrInvalidVariant)

	_, err = svc.AddItem(context.Background(), "session-1", p, "gold", "XXL")
	assert.ErrorIs(t, err, model.ErrInvalidVariant)
}

func TestService_CartSurvivesRestart(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	p := testProduct("P001", 25000)

	svc := NewService(store, zerolog.Nop())
	_, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)

	// A fresh service over the same store sees the same items.
	restarted := NewService(store, zerolog.Nop())
	view := restarted.Get(ctx, "session-1")

	assert.Len(t, view.Items, 1)
	assert.Equal(t, int64(25000), view.TotalPrice)
}

func TestService_EmptyCartDeletesSlot(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()
	p := testProduct("P001", 25000)

	_, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)
	require.Contains(t, store.slots, "session-1")

	_, err = svc.RemoveItem(ctx, "session-1", "P001", "gold", "M")
	require.NoError(t, err)

	assert.NotContains(t, store.slots, "session-1")
}

func TestService_UpdateQuantityZeroRemovesLine(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()
	p := testProduct("P001", 25000)

	_, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, "session-1", "P001", "gold", "M", 0)
	require.NoError(t, err)

	assert.Empty(t, view.Items)
	assert.NotContains(t, store.slots, "session-1")
}

func TestService_CorruptSlotStartsEmpty(t *testing.T) {
	store := newMemoryStore()
	store.slots["session-1"] = []byte("{not json")

	svc := NewService(store, zerolog.Nop())
	view := svc.Get(context.Background(), "session-1")

	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Total)
}

func TestService_PromotionIsSessionScoped(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()
	p := testProduct("P001", 125000)

	_, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)

	view := svc.ApplyPromotion(ctx, "session-1", &AppliedPromotion{
		Code:         "WELCOME10",
		Discount:     10,
		IsPercentage: true,
	})

	assert.Equal(t, int64(250000), view.TotalPrice)
	assert.Equal(t, int64(25000), view.Discount)
	assert.Equal(t, int64(225000), view.Total)

	// The promotion never reaches the durable slot: a restarted service
	// sees the items but no discount.
	restarted := NewService(store, zerolog.Nop())
	view = restarted.Get(ctx, "session-1")

	assert.Equal(t, int64(250000), view.TotalPrice)
	assert.Equal(t, int64(0), view.Discount)
	assert.Nil(t, view.Promotion)
}

func TestService_PromotionExpiresAfterIdleWindow(t *testing.T) {
	svc := NewService(newMemoryStore(), zerolog.Nop())
	ctx := context.Background()
	p := testProduct("P001", 100000)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	svc.now = func() time.Time { return now }

	_, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)
	view := svc.ApplyPromotion(ctx, "session-1", &AppliedPromotion{Code: "TEN", Discount: 10, IsPercentage: true})
	require.Equal(t, int64(10000), view.Discount)

	// Activity inside the window keeps the promotion alive.
	now = start.Add(promotionTTL - time.Minute)
	view = svc.Get(ctx, "session-1")
	assert.Equal(t, int64(10000), view.Discount)

	// The refresh above restarted the idle window; going past it from
	// there drops the promotion but leaves the items untouched.
	now = now.Add(promotionTTL + time.Minute)
	view = svc.Get(ctx, "session-1")
	assert.Equal(t, int64(0), view.Discount)
	assert.Nil(t, view.Promotion)
	assert.Equal(t, int64(100000), view.TotalPrice)
	assert.NotContains(t, svc.promotions, "session-1")
}

func TestService_ApplyPromotionSweepsIdleSessions(t *testing.T) {
	svc := NewService(newMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	svc.now = func() time.Time { return now }

	_, err := svc.AddItem(ctx, "abandoned", testProduct("P001", 25000), "gold", "M")
	require.NoError(t, err)
	svc.ApplyPromotion(ctx, "abandoned", &AppliedPromotion{Code: "TEN", Discount: 10, IsPercentage: true})

	// A later apply on another session evicts the stale entry.
	now = start.Add(promotionTTL + time.Minute)
	_, err = svc.AddItem(ctx, "active", testProduct("P002", 40000), "silver", "S")
	require.NoError(t, err)
	svc.ApplyPromotion(ctx, "active", &AppliedPromotion{Code: "FIVE", Discount: 5, IsPercentage: true})

	assert.NotContains(t, svc.promotions, "abandoned")
	assert.Contains(t, svc.promotions, "active")
}

func TestService_RemovePromotion(t *testing.T) {
	svc := NewService(newMemoryStore(), zerolog.Nop())
	ctx := context.Background()
	p := testProduct("P001", 100000)

	_, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)

	svc.ApplyPromotion(ctx, "session-1", &AppliedPromotion{Code: "TEN", Discount: 10, IsPercentage: true})
	view := svc.ApplyPromotion(ctx, "session-1", nil)

	assert.Equal(t, int64(0), view.Discount)
	assert.Nil(t, view.Promotion)
}

func TestService_ClearDropsEverything(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()
	p := testProduct("P001", 100000)

	_, err := svc.AddItem(ctx, "session-1", p, "gold", "M")
	require.NoError(t, err)
	svc.ApplyPromotion(ctx, "session-1", &AppliedPromotion{Code: "TEN", Discount: 10, IsPercentage: true})

	require.NoError(t, svc.Clear(ctx, "session-1"))

	view := svc.Get(ctx, "session-1")
	assert.Empty(t, view.Items)
	assert.Nil(t, view.Promotion)
	assert.NotContains(t, store.slots, "session-1")
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc := NewService(newMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-1", testProduct("P001", 25000), "gold", "M")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "session-2", testProduct("P002", 40000), "silver", "S")
	require.NoError(t, err)

	one := svc.Get(ctx, "session-1")
	two := svc.Get(ctx, "session-2")

	assert.Equal(t, int64(25000), one.TotalPrice)
	assert.Equal(t, int64(40000), two.TotalPrice)
}
