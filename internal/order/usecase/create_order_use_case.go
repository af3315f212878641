package usecase

import (
	"context"

	"go.uber.org/zap"

	"chaospizza/internal/domain"
	"chaospizza/internal/dto"
)

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindBySlug(ctx context.Context, slug string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
}

type CreateOrderUseCase struct {
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewCreateOrderUseCase(orderRepo OrderRepository, logger *zap.Logger) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// CreateOrder opens a new order in the preparing state. The slug is derived
// once from coordinator and restaurant name; the (coordinator, restaurant)
// uniqueness invariant is carried by the storage layer and surfaces as a
// UniquenessError.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	order, err := domain.NewOrder(req.Coordinator, req.RestaurantName, req.RestaurantURL)
	if err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Insert(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("orderSlug", order.Slug),
		zap.String("coordinator", order.Coordinator),
		zap.String("restaurant", order.RestaurantName),
	)

	return order, nil
}
