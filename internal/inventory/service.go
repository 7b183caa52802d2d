package inventory

import (
	"context"

	"gomitas-be/internal/logger"
	"gomitas-be/internal/policy"

	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context) ([]Stock, error)
	GetByID(ctx context.Context, id uint) (*Stock, error)
	GetByProduct(ctx context.Context, productID uint) (*Stock, error)
	Create(ctx context.Context, productID uint, quantity int) (*Stock, error)
	SetQuantity(ctx context.Context, id uint, quantity int) (*Stock, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   Repository
	policy policy.Policy
}

func NewService(repo Repository, pol policy.Policy) Service {
	return &service{repo: repo, policy: pol}
}

func (s *service) GetAll(ctx context.Context) ([]Stock, error) {
	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanViewInventory(actor) {
		return nil, ErrForbidden
	}

	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Stock, error) {
	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanViewInventory(actor) {
		return nil, ErrForbidden
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByProduct(ctx context.Context, productID uint) (*Stock, error) {
	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanViewInventory(actor) {
		return nil, ErrForbidden
	}

	return s.repo.GetByProductID(ctx, productID)
}

func (s *service) Create(ctx context.Context, productID uint, quantity int) (*Stock, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateStock"),
		zap.Uint("product_id", productID),
	)

	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanManageInventory(actor) {
		return nil, ErrForbidden
	}

	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	stock, err := s.repo.Create(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	log.Info("stock record created", zap.Uint("stock_id", stock.ID))
	return stock, nil
}

func (s *service) SetQuantity(ctx context.Context, id uint, quantity int) (*Stock, error) {
	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanManageInventory(actor) {
		return nil, ErrForbidden
	}

	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	return s.repo.SetQuantity(ctx, id, quantity)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanManageInventory(actor) {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}
