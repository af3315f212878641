package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chaospizza/internal/domain"
)

// MySQLTransitionRepository persists the append-only transition history.
// There are deliberately no update or delete methods.
type MySQLTransitionRepository struct {
	db *sql.DB
}

func NewMySQLTransitionRepository(db *sql.DB) *MySQLTransitionRepository {
	return &MySQLTransitionRepository{db: db}
}

func (r *MySQLTransitionRepository) Insert(ctx context.Context, tx *sql.Tx, transition domain.Transition) error {
	query := `INSERT INTO OrderTransitions (orderId, fromState, toState) VALUES (?, ?, ?)`

	_, err := tx.ExecContext(ctx, query, transition.OrderID, transition.FromState, transition.ToState)
	if err != nil {
		return fmt.Errorf("inserting transition: %w", err)
	}

	return nil
}

func (r *MySQLTransitionRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.Transition, error) {
	query := `
		SELECT id, orderId, fromState, toState, createdAt
		FROM OrderTransitions
		WHERE orderId = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying transitions: %w", err)
	}
	defer rows.Close()

	var transitions []domain.Transition
	for rows.Next() {
		var t domain.Transition
		err := rows.Scan(&t.ID, &t.OrderID, &t.FromState, &t.ToState, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning transition: %w", err)
		}
		transitions = append(transitions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transitions: %w", err)
	}

	return transitions, nil
}
