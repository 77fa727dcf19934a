package promotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"labelia/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPromotionRepository is a mock implementation of PromotionRepository.
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) GetAll(ctx context.Context) ([]model.Promotion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) Create(ctx context.Context, p *model.Promotion) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPromotionRepository) Update(ctx context.Context, id uuid.UUID, upd *model.PromotionUpdate) (*model.Promotion, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPromotionRepository) FindValidByCode(ctx context.Context, code string, now time.Time) (*model.Promotion, error) {
	args := m.Called(ctx, code, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Promotion), args.Error(1)
}

func TestResolver_ValidateCode_Match(t *testing.T) {
	repo := new(MockPromotionRepository)
	promoID := uuid.New()
	repo.On("FindValidByCode", mock.Anything, "WELCOME10", mock.Anything).Return(&model.Promotion{
		ID:           promoID,
		Code:         "WELCOME10",
		Description:  "Offre de bienvenue",
		Discount:     10,
		IsPercentage: true,
		Active:       true,
	}, nil)

	r := NewResolver(repo, zerolog.Nop())
	result, err := r.ValidateCode(context.Background(), "WELCOME10")

	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.NotNil(t, result.Promotion)
	assert.Equal(t, promoID, result.Promotion.ID)
	assert.Equal(t, float64(10), result.Promotion.Discount)
	assert.True(t, result.Promotion.IsPercentage)
}

func TestResolver_ValidateCode_NoMatchIsNotAnError(t *testing.T) {
	repo := new(MockPromotionRepository)
	repo.On("FindValidByCode", mock.Anything, "EXPIRED", mock.Anything).Return(nil, nil)

	r := NewResolver(repo, zerolog.Nop())
	result, err := r.ValidateCode(context.Background(), "EXPIRED")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Nil(t, result.Promotion)
	assert.NotEmpty(t, result.Message)
}

func TestResolver_ValidateCode_ExactMatchOnly(t *testing.T) {
	// The code is passed to the store exactly as entered; no trimming or
	// case folding happens in the resolver.
	repo := new(MockPromotionRepository)
	repo.On("FindValidByCode", mock.Anything, "welcome10", mock.Anything).Return(nil, nil)

	r := NewResolver(repo, zerolog.Nop())
	result, err := r.ValidateCode(context.Background(), "welcome10")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	repo.AssertCalled(t, "FindValidByCode", mock.Anything, "welcome10", mock.Anything)
}

func TestResolver_ValidateCode_RepositoryError(t *testing.T) {
	repo := new(MockPromotionRepository)
	repo.On("FindValidByCode", mock.Anything, "WELCOME10", mock.Anything).Return(nil, errors.New("database error"))

	r := NewResolver(repo, zerolog.Nop())
	result, err := r.ValidateCode(context.Background(), "WELCOME10")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestResolver_ValidateCode_UsesClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(MockPromotionRepository)
	repo.On("FindValidByCode", mock.Anything, "SUMMER", fixed).Return(nil, nil)

	r := NewResolver(repo, zerolog.Nop())
	r.now = func() time.Time { return fixed }

	_, err := r.ValidateCode(context.Background(), "SUMMER")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
