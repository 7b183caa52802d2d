package inventory

import (
	"context"
	"database/sql"
	"testing"

	"gomitas-be/internal/policy"
	"gomitas-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]Stock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Stock), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Stock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stock), args.Error(1)
}

func (m *MockRepository) GetByProductID(ctx context.Context, productID uint) (*Stock, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stock), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, productID uint, quantity int) (*Stock, error) {
	args := m.Called(ctx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stock), args.Error(1)
}

func (m *MockRepository) SetQuantity(ctx context.Context, id uint, quantity int) (*Stock, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stock), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) LockForUpdate(ctx context.Context, tx *sql.Tx, productID uint) (*LockedStock, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LockedStock), args.Error(1)
}

func (m *MockRepository) AdjustLocked(ctx context.Context, tx *sql.Tx, productID uint, delta int) error {
	args := m.Called(ctx, tx, productID, delta)
	return args.Error(0)
}

func adminCtx() context.Context {
	return utils.SetUserContext(context.Background(), 1, "admin@example.com", policy.RoleAdmin)
}

func customerCtx() context.Context {
	return utils.SetUserContext(context.Background(), 2, "user@example.com", policy.RoleCustomer)
}

func TestService_GetAll(t *testing.T) {
	t.Run("AuthenticatedUser", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())
		ctx := customerCtx()

		repo.On("GetAll", ctx).Return([]Stock{{ID: 1, Quantity: 50}}, nil)

		stocks, err := svc.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, stocks, 1)
	})

	t.Run("Anonymous", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())

		_, err := svc.GetAll(context.Background())
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "GetAll")
	})
}

func TestService_GetByProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())
		ctx := customerCtx()

		repo.On("GetByProductID", ctx, uint(3)).Return(&Stock{ID: 9, ProductID: 3, Quantity: 50}, nil)

		s, err := svc.GetByProduct(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, uint(3), s.ProductID)
	})

	t.Run("Anonymous", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())

		_, err := svc.GetByProduct(context.Background(), 3)
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "GetByProductID")
	})
}

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())
		ctx := adminCtx()

		repo.On("Create", ctx, uint(1), 50).Return(&Stock{ID: 7, ProductID: 1, Quantity: 50}, nil)

		s, err := svc.Create(ctx, 1, 50)
		require.NoError(t, err)
		assert.Equal(t, uint(7), s.ID)
	})

	t.Run("ForbiddenForCustomer", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())

		_, err := svc.Create(customerCtx(), 1, 50)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())

		_, err := svc.Create(adminCtx(), 1, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Duplicate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())
		ctx := adminCtx()

		repo.On("Create", ctx, uint(1), 50).Return(nil, ErrStockExists)

		_, err := svc.Create(ctx, 1, 50)
		assert.ErrorIs(t, err, ErrStockExists)
	})
}

func TestService_SetQuantity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())
		ctx := adminCtx()

		repo.On("SetQuantity", ctx, uint(1), 75).Return(&Stock{ID: 1, Quantity: 75}, nil)

		s, err := svc.SetQuantity(ctx, 1, 75)
		require.NoError(t, err)
		assert.Equal(t, 75, s.Quantity)
	})

	t.Run("Negative", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())

		_, err := svc.SetQuantity(adminCtx(), 1, -5)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Forbidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())

		_, err := svc.SetQuantity(customerCtx(), 1, 75)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())
		ctx := adminCtx()

		repo.On("Delete", ctx, uint(1)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 1))
	})

	t.Run("Forbidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, policy.NewRolePolicy())

		assert.ErrorIs(t, svc.Delete(customerCtx(), 1), ErrForbidden)
	})
}
