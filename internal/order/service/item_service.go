package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"chaospizza/internal/domain"
	"chaospizza/internal/dto"
	"chaospizza/internal/errors"
)

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	FindBySlug(ctx context.Context, tx *sql.Tx, orderID uint, slug string) (*domain.OrderItem, error)
	Update(ctx context.Context, tx *sql.Tx, item domain.OrderItem) error
	Delete(ctx context.Context, tx *sql.Tx, id uint) error
}

// ItemService performs all item writes. Each write re-reads the owning
// order's state under a row lock inside the same transaction and rejects
// with a StateError unless the order is still preparing, closing the
// check-then-act race against concurrent transitions.
type ItemService struct {
	db        TransactionManager
	orderRepo OrderRepository
	itemRepo  OrderItemRepository
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewItemService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *ItemService {
	return &ItemService{
		db:        db,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

func (s *ItemService) AddItem(ctx context.Context, orderSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
	var created *domain.OrderItem

	err := s.withWritableOrder(ctx, orderSlug, func(txCtx context.Context, tx *sql.Tx, order *domain.Order) error {
		item, err := domain.NewOrderItem(order.ID, fields.Participant, fields.Description, fields.Price, fields.Amount)
		if err != nil {
			return err
		}

		id, err := s.itemRepo.Insert(txCtx, tx, *item)
		if err != nil {
			return err
		}

		item.ID = id
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order item added",
		zap.String("orderSlug", orderSlug),
		zap.String("itemSlug", created.Slug),
		zap.String("participant", created.Participant),
	)
	return created, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, orderSlug, itemSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
	var updated *domain.OrderItem

	err := s.withWritableOrder(ctx, orderSlug, func(txCtx context.Context, tx *sql.Tx, order *domain.Order) error {
		if err := domain.ValidateItemFields(fields.Participant, fields.Description, fields.Price, fields.Amount); err != nil {
			return err
		}

		item, err := s.itemRepo.FindBySlug(txCtx, tx, order.ID, itemSlug)
		if err != nil {
			return err
		}

		item.Participant = fields.Participant
		item.Description = fields.Description
		item.Price = fields.Price
		item.Amount = fields.Amount

		if err := s.itemRepo.Update(txCtx, tx, *item); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order item updated", zap.String("orderSlug", orderSlug), zap.String("itemSlug", itemSlug))
	return updated, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, orderSlug, itemSlug string) error {
	err := s.withWritableOrder(ctx, orderSlug, func(txCtx context.Context, tx *sql.Tx, order *domain.Order) error {
		item, err := s.itemRepo.FindBySlug(txCtx, tx, order.ID, itemSlug)
		if err != nil {
			return err
		}

		return s.itemRepo.Delete(txCtx, tx, item.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("order item deleted", zap.String("orderSlug", orderSlug), zap.String("itemSlug", itemSlug))
	return nil
}

// withWritableOrder runs fn inside one transaction after locking the order
// row and confirming it is still preparing.
func (s *ItemService) withWritableOrder(
	ctx context.Context,
	orderSlug string,
	fn func(txCtx context.Context, tx *sql.Tx, order *domain.Order) error,
) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	order, err := s.orderRepo.FindBySlugForUpdate(txCtx, tx, orderSlug)
	if err != nil {
		return err
	}

	if !order.IsPreparing() {
		s.logger.Warn("item write rejected",
			zap.String("orderSlug", orderSlug),
			zap.String("state", order.State.String()),
		)
		return errors.NewStateError(order.State.String())
	}

	if err := fn(txCtx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("orderSlug", orderSlug), zap.Error(err))
		return err
	}

	return nil
}
