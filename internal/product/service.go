package product

import (
	"context"
	"strings"

	"gomitas-be/internal/logger"
	"gomitas-be/internal/policy"

	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, id uint, input UpdateProduct) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   Repository
	policy policy.Policy
}

func NewService(repo Repository, pol policy.Policy) Service {
	return &service{repo: repo, policy: pol}
}

func (s *service) GetAll(ctx context.Context) ([]Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input NewProduct) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanManageProducts(actor) {
		return nil, ErrForbidden
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if !input.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if input.InitialQuantity != nil && *input.InitialQuantity < 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	log.Info("product created",
		zap.Uint("product_id", p.ID),
		zap.String("name", p.Name),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateProduct) (*Product, error) {
	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanManageProducts(actor) {
		return nil, ErrForbidden
	}

	if input.Empty() {
		return nil, ErrNothingToUpdate
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price != nil && !input.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanManageProducts(actor) {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}
