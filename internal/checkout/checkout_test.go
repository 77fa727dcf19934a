package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"labelia/internal/cart"
	"labelia/internal/model"
	"labelia/internal/receipt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderPlacer is a mock implementation of OrderPlacer.
type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockRenderer is a mock implementation of receipt.Renderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, s *receipt.Snapshot) ([]byte, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderToFile(ctx context.Context, s *receipt.Snapshot) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

// memoryStore is an in-memory cart.Store for tests.
type memoryStore struct {
	slots map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{slots: make(map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.slots[key]
	if !ok {
		return nil, cart.ErrNotFound
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

func validContact() Contact {
	return Contact{
		Name:    "Awa Diallo",
		Email:   "awa@example.com",
		Phone:   "+221770000000",
		Address: "12 Rue des Bijoutiers, Dakar",
	}
}

func cartWithItems(t *testing.T, store cart.Store) *cart.Service {
	t.Helper()
	carts := cart.NewService(store, zerolog.Nop())
	p := model.Product{
		ID:       "P001",
		Name:     "Bague Or",
		Price:    125000,
		Category: model.CategoryRing,
		Colors:   []string{"gold"},
		Sizes:    []string{"M"},
	}
	_, err := carts.AddItem(context.Background(), "session-1", p, "gold", "M")
	require.NoError(t, err)
	_, err = carts.AddItem(context.Background(), "session-1", p, "gold", "M")
	require.NoError(t, err)
	return carts
}

func TestOrchestrator_SubmitSuccess(t *testing.T) {
	store := newMemoryStore()
	carts := cartWithItems(t, store)
	carts.ApplyPromotion(context.Background(), "session-1", &cart.AppliedPromotion{
		Code:         "WELCOME10",
		Discount:     10,
		IsPercentage: true,
	})

	orderID := uuid.New()
	placer := new(MockOrderPlacer)
	placer.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *model.OrderRequest) bool {
		return req.Total == 225000 &&
			req.CustomerName == "Awa Diallo" &&
			len(req.Items) == 1 &&
			req.Items[0].Quantity == 2
	})).Return(&model.Order{
		ID:        orderID,
		Total:     225000,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}, nil)

	renderer := new(MockRenderer)
	renderer.On("RenderToFile", mock.Anything, mock.MatchedBy(func(s *receipt.Snapshot) bool {
		return s.Subtotal == 250000 && s.Discount == 25000 && s.Total == 225000 && s.DiscountLabel == "-10%"
	})).Return("/tmp/receipts/Recu_Labelia_000001.pdf", nil)

	o := NewOrchestrator(carts, placer, renderer, zerolog.Nop())
	result, err := o.Submit(context.Background(), "session-1", validContact())

	require.NoError(t, err)
	assert.Equal(t, orderID, result.Order.ID)
	assert.Len(t, result.OrderNumber, 6)
	assert.NotEmpty(t, result.Message)

	// The cart slot is gone after a successful checkout.
	assert.NotContains(t, store.slots, "session-1")

	placer.AssertExpectations(t)
	renderer.AssertExpectations(t)
}

func TestOrchestrator_SubmitEmptyCart(t *testing.T) {
	carts := cart.NewService(newMemoryStore(), zerolog.Nop())
	placer := new(MockOrderPlacer)
	renderer := new(MockRenderer)

	o := NewOrchestrator(carts, placer, renderer, zerolog.Nop())
	_, err := o.Submit(context.Background(), "session-1", validContact())

	assert.ErrorIs(t, err, model.ErrEmptyCart)
	placer.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrchestrator_SubmitMissingContactFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Contact)
		message string
	}{
		{name: "missing name", mutate: func(c *Contact) { c.Name = "" }, message: "name is required"},
		{name: "missing email", mutate: func(c *Contact) { c.Email = "" }, message: "email is required"},
		{name: "missing address", mutate: func(c *Contact) { c.Address = "" }, message: "address is required"},
		{name: "missing phone", mutate: func(c *Contact) { c.Phone = "" }, message: "phone is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			carts := cartWithItems(t, store)
			placer := new(MockOrderPlacer)

			o := NewOrchestrator(carts, placer, new(MockRenderer), zerolog.Nop())

			contact := validContact()
			tt.mutate(&contact)

			_, err := o.Submit(context.Background(), "session-1", contact)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.message, validationErr.Error())

			// Nothing was submitted and the cart is untouched.
			placer.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			assert.Contains(t, store.slots, "session-1")
		})
	}
}

func TestOrchestrator_SubmitStoreFailureRetainsCart(t *testing.T) {
	store := newMemoryStore()
	carts := cartWithItems(t, store)

	placer := new(MockOrderPlacer)
	placer.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errors.New("database unreachable"))

	renderer := new(MockRenderer)

	o := NewOrchestrator(carts, placer, renderer, zerolog.Nop())
	_, err := o.Submit(context.Background(), "session-1", validContact())

	require.Error(t, err)
	assert.Contains(t, store.slots, "session-1")
	renderer.AssertNotCalled(t, "RenderToFile", mock.Anything, mock.Anything)

	// The session is idle again and a retry can go through.
	placer.ExpectedCalls = nil
	placer.On("CreateOrder", mock.Anything, mock.Anything).Return(&model.Order{
		ID:        uuid.New(),
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}, nil)
	renderer.On("RenderToFile", mock.Anything, mock.Anything).Return("receipt.pdf", nil)

	_, err = o.Submit(context.Background(), "session-1", validContact())
	assert.NoError(t, err)
}

func TestOrchestrator_ReceiptFailureDoesNotFailCheckout(t *testing.T) {
	store := newMemoryStore()
	carts := cartWithItems(t, store)

	placer := new(MockOrderPlacer)
	placer.On("CreateOrder", mock.Anything, mock.Anything).Return(&model.Order{
		ID:        uuid.New(),
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}, nil)

	renderer := new(MockRenderer)
	renderer.On("RenderToFile", mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	o := NewOrchestrator(carts, placer, renderer, zerolog.Nop())
	result, err := o.Submit(context.Background(), "session-1", validContact())

	require.NoError(t, err)
	assert.Empty(t, result.ReceiptPath)
	assert.NotContains(t, store.slots, "session-1")
}
