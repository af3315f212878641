package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"chaospizza/internal/domain"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	FindBySlugForUpdate(ctx context.Context, tx *sql.Tx, slug string) (*domain.Order, error)
	UpdateState(ctx context.Context, tx *sql.Tx, id uint, state domain.State, cancelReason *string) error
}

type TransitionRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, transition domain.Transition) error
}

// TransitionService performs lifecycle transitions atomically: the current
// state is re-read under a row lock, the edge is validated, the new state is
// written and a history record appended, all in one transaction. There is no
// other way to change an order's state.
type TransitionService struct {
	db             TransactionManager
	orderRepo      OrderRepository
	transitionRepo TransitionRepository
	logger         *zap.Logger
	txTimeout      time.Duration
}

func NewTransitionService(
	db TransactionManager,
	orderRepo OrderRepository,
	transitionRepo TransitionRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *TransitionService {
	return &TransitionService{
		db:             db,
		orderRepo:      orderRepo,
		transitionRepo: transitionRepo,
		logger:         logger,
		txTimeout:      txTimeout,
	}
}

// Transition moves the order identified by slug to the target state.
// cancelReason must be non-nil exactly when target is canceled; validating
// the reason's content is the caller's job.
func (s *TransitionService) Transition(ctx context.Context, slug string, target domain.State, cancelReason *string) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	order, err := s.orderRepo.FindBySlugForUpdate(txCtx, tx, slug)
	if err != nil {
		return nil, err
	}

	if err := order.State.ValidateTransition(target); err != nil {
		s.logger.Warn("transition rejected",
			zap.String("orderSlug", slug),
			zap.String("from", order.State.String()),
			zap.String("to", target.String()),
		)
		return nil, err
	}

	if err := s.orderRepo.UpdateState(txCtx, tx, order.ID, target, cancelReason); err != nil {
		s.logger.Error("failed to update order state", zap.String("orderSlug", slug), zap.Error(err))
		return nil, err
	}

	transition := domain.Transition{
		OrderID:   order.ID,
		FromState: order.State,
		ToState:   target,
	}
	if err := s.transitionRepo.Insert(txCtx, tx, transition); err != nil {
		s.logger.Error("failed to append transition history", zap.String("orderSlug", slug), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("orderSlug", slug), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order transitioned",
		zap.String("orderSlug", slug),
		zap.String("from", order.State.String()),
		zap.String("to", target.String()),
	)

	order.State = target
	order.CancelReason = cancelReason
	return order, nil
}
