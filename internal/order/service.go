package order

import (
	"context"
	"errors"

	"gomitas-be/internal/logger"
	"gomitas-be/internal/metrics"
	"gomitas-be/internal/policy"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, status Status, lines []LineRequest) (*Order, error)
	Get(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, page, perPage int) ([]Order, int, error)
	UpdateStatus(ctx context.Context, id uint, status Status) (*Order, error)
	Cancel(ctx context.Context, id uint) (*Order, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo    Repository
	policy  policy.Policy
	metrics *metrics.OrderMetrics
}

func NewService(repo Repository, pol policy.Policy, m *metrics.OrderMetrics) Service {
	return &service{repo: repo, policy: pol, metrics: m}
}

func (s *service) Create(ctx context.Context, status Status, lines []LineRequest) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Int("line_count", len(lines)),
	)

	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanCreateOrder(actor) {
		return nil, ErrForbidden
	}

	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	timer := metrics.StartTimer()

	o, err := s.repo.CreateOrder(ctx, actor.ID, status, lines)
	if err != nil {
		var insufficient *InsufficientStockError
		if errors.As(err, &insufficient) {
			s.metrics.StockRejections.Inc()
		}
		return nil, err
	}

	s.metrics.OrdersCreated.Inc()
	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.String("total", o.Total.String()),
		zap.Duration("elapsed", timer.Duration()),
	)
	return o, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanViewOrder(actor, o.UserID) {
		return nil, ErrForbidden
	}

	return o, nil
}

func (s *service) List(ctx context.Context, page, perPage int) ([]Order, int, error) {
	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanListAllOrders(actor) {
		return nil, 0, ErrForbidden
	}

	return s.repo.List(ctx, page, perPage)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanUpdateOrder(actor, o.UserID) {
		return nil, ErrForbidden
	}

	if o.Status.Terminal() {
		return nil, ErrOrderFinalized
	}

	// Cancelling through a status update takes the full reversion path.
	if status == StatusCancelled {
		return s.cancel(ctx, o)
	}

	if !o.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status

	return o, nil
}

func (s *service) Cancel(ctx context.Context, id uint) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanCancelOrder(actor, o.UserID) {
		return nil, ErrForbidden
	}

	if o.Status.Terminal() {
		return nil, ErrOrderFinalized
	}

	return s.cancel(ctx, o)
}

func (s *service) cancel(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.Uint("order_id", o.ID),
	)

	if err := s.repo.CancelOrder(ctx, o); err != nil {
		return nil, err
	}
	o.Status = StatusCancelled

	s.metrics.OrdersCancelled.Inc()
	log.Info("order cancelled")
	return o, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteOrder"),
		zap.Uint("order_id", id),
	)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	actor := policy.ActorFromContext(ctx)
	if !s.policy.CanDeleteOrder(actor, o.UserID) {
		return ErrForbidden
	}

	if o.Status.Terminal() {
		return ErrOrderFinalized
	}

	if err := s.repo.DeleteOrder(ctx, o); err != nil {
		return err
	}

	s.metrics.OrdersDeleted.Inc()
	log.Info("order deleted")
	return nil
}
