package usecase

import (
	"context"
	stderrors "errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"chaospizza/internal/domain"
	"chaospizza/internal/dto"
	"chaospizza/internal/errors"
)

type ItemService interface {
	AddItem(ctx context.Context, orderSlug string, fields dto.ItemFields) (*domain.OrderItem, error)
	UpdateItem(ctx context.Context, orderSlug, itemSlug string, fields dto.ItemFields) (*domain.OrderItem, error)
	DeleteItem(ctx context.Context, orderSlug, itemSlug string) error
}

// ItemUseCase wraps the gated item writes with a deadlock retry. Multiple
// participants hammering the same order can deadlock on the order row lock;
// those attempts are retried with jittered backoff before giving up.
type ItemUseCase struct {
	itemSvc          ItemService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewItemUseCase(itemSvc ItemService, logger *zap.Logger, maxRetryAttempts int) *ItemUseCase {
	return &ItemUseCase{
		itemSvc:          itemSvc,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *ItemUseCase) AddItem(ctx context.Context, orderSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
	var item *domain.OrderItem
	err := uc.withDeadlockRetry(orderSlug, func() error {
		var err error
		item, err = uc.itemSvc.AddItem(ctx, orderSlug, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *ItemUseCase) UpdateItem(ctx context.Context, orderSlug, itemSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
	var item *domain.OrderItem
	err := uc.withDeadlockRetry(orderSlug, func() error {
		var err error
		item, err = uc.itemSvc.UpdateItem(ctx, orderSlug, itemSlug, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *ItemUseCase) DeleteItem(ctx context.Context, orderSlug, itemSlug string) error {
	return uc.withDeadlockRetry(orderSlug, func() error {
		return uc.itemSvc.DeleteItem(ctx, orderSlug, itemSlug)
	})
}

func (uc *ItemUseCase) withDeadlockRetry(orderSlug string, fn func() error) error {
	// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms).
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !isDeadlockError(err) {
			return err
		}

		if attempt < uc.maxRetryAttempts {
			backoff := backoffs[len(backoffs)-1]
			if attempt-1 < len(backoffs) {
				backoff = backoffs[attempt-1]
			}
			// Jitter: ±20% of the backoff base.
			jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
			time.Sleep(jitter)
			uc.logger.Warn("deadlock detected, retrying",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", uc.maxRetryAttempts),
				zap.String("orderSlug", orderSlug),
			)
		}
	}

	return errors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
