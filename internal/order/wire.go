package order

import (
	"database/sql"

	"go.uber.org/zap"

	"chaospizza/internal/config"
	"chaospizza/internal/order/controller"
	"chaospizza/internal/order/repository"
	"chaospizza/internal/order/service"
	"chaospizza/internal/order/usecase"
)

// Module bundles the HTTP controllers of the order domain.
type Module struct {
	Orders *controller.OrderController
	Items  *controller.OrderItemController
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	orderRepo := repository.NewMySQLOrderRepository(db)
	itemRepo := repository.NewMySQLOrderItemRepository(db)
	transitionRepo := repository.NewMySQLTransitionRepository(db)

	transitionSvc := service.NewTransitionService(db, orderRepo, transitionRepo, logger, cfg.Order.TxTimeout)
	itemSvc := service.NewItemService(db, orderRepo, itemRepo, logger, cfg.Order.TxTimeout)

	createUC := usecase.NewCreateOrderUseCase(orderRepo, logger)
	getUC := usecase.NewGetOrderUseCase(orderRepo, itemRepo, transitionRepo, logger)
	transitionUC := usecase.NewTransitionOrderUseCase(transitionSvc, logger)
	itemUC := usecase.NewItemUseCase(itemSvc, logger, cfg.Order.MaxRetryAttempts)

	return &Module{
		Orders: controller.NewOrderController(createUC, getUC, transitionUC, logger),
		Items:  controller.NewOrderItemController(itemUC, logger),
	}
}
