package usecase

import (
	"context"

	"go.uber.org/zap"

	"chaospizza/internal/domain"
)

type OrderItemReader interface {
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

type TransitionReader interface {
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.Transition, error)
}

type GetOrderUseCase struct {
	orderRepo      OrderRepository
	itemRepo       OrderItemReader
	transitionRepo TransitionReader
	logger         *zap.Logger
}

func NewGetOrderUseCase(
	orderRepo OrderRepository,
	itemRepo OrderItemReader,
	transitionRepo TransitionReader,
	logger *zap.Logger,
) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		transitionRepo: transitionRepo,
		logger:         logger,
	}
}

// GetOrder loads an order with its items so the derived total price can be
// computed.
func (uc *GetOrderUseCase) GetOrder(ctx context.Context, slug string) (*domain.Order, error) {
	order, err := uc.orderRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	order.Items = items
	return order, nil
}

func (uc *GetOrderUseCase) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return uc.orderRepo.FindAll(ctx)
}

// GetHistory returns the order's transition records oldest first.
func (uc *GetOrderUseCase) GetHistory(ctx context.Context, slug string) ([]domain.Transition, error) {
	order, err := uc.orderRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return uc.transitionRepo.FindByOrderID(ctx, order.ID)
}
