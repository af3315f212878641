package usecase

import (
	"context"

	"go.uber.org/zap"

	"chaospizza/internal/domain"
)

type TransitionService interface {
	Transition(ctx context.Context, slug string, target domain.State, cancelReason *string) (*domain.Order, error)
}

// TransitionOrderUseCase exposes the four lifecycle operations. Edge
// legality is enforced inside the transition service's transaction; the
// cancellation reason is validated here, before any transaction is opened.
type TransitionOrderUseCase struct {
	transitionSvc TransitionService
	logger        *zap.Logger
}

func NewTransitionOrderUseCase(transitionSvc TransitionService, logger *zap.Logger) *TransitionOrderUseCase {
	return &TransitionOrderUseCase{
		transitionSvc: transitionSvc,
		logger:        logger,
	}
}

// Ordering moves a preparing order to ordering, freezing its items.
func (uc *TransitionOrderUseCase) Ordering(ctx context.Context, slug string) (*domain.Order, error) {
	return uc.transitionSvc.Transition(ctx, slug, domain.StateOrdering, nil)
}

// Ordered marks the order as placed with the restaurant.
func (uc *TransitionOrderUseCase) Ordered(ctx context.Context, slug string) (*domain.Order, error) {
	return uc.transitionSvc.Transition(ctx, slug, domain.StateOrdered, nil)
}

// Delivered marks the order as delivered, the terminal success state.
func (uc *TransitionOrderUseCase) Delivered(ctx context.Context, slug string) (*domain.Order, error) {
	return uc.transitionSvc.Transition(ctx, slug, domain.StateDelivered, nil)
}

// Cancel cancels the order with a mandatory reason. Allowed from any state
// except delivered and canceled.
func (uc *TransitionOrderUseCase) Cancel(ctx context.Context, slug string, reason string) (*domain.Order, error) {
	if err := domain.ValidateCancelReason(reason); err != nil {
		return nil, err
	}

	return uc.transitionSvc.Transition(ctx, slug, domain.StateCanceled, &reason)
}
