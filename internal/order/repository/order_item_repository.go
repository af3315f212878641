package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chaospizza/internal/domain"
	"chaospizza/internal/errors"
)

const orderItemColumns = `id, orderId, participant, description, price, amount, slug, createdAt, updatedAt`

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error) {
	query := `
		INSERT INTO OrderItems (orderId, participant, description, price, amount, slug)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		item.OrderID, item.Participant, item.Description, item.Price, item.Amount, item.Slug,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, errors.NewUniquenessError(fmt.Sprintf(
				"an item described as %q already exists on this order", item.Description,
			))
		}
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM OrderItems WHERE orderId = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.Participant, &item.Description,
			&item.Price, &item.Amount, &item.Slug, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}

func (r *MySQLOrderItemRepository) FindBySlug(ctx context.Context, tx *sql.Tx, orderID uint, slug string) (*domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM OrderItems WHERE orderId = ? AND slug = ?`

	var item domain.OrderItem
	err := tx.QueryRowContext(ctx, query, orderID, slug).Scan(
		&item.ID, &item.OrderID, &item.Participant, &item.Description,
		&item.Price, &item.Amount, &item.Slug, &item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order item %s not found", slug))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order item by slug: %w", err)
	}

	return &item, nil
}

func (r *MySQLOrderItemRepository) Update(ctx context.Context, tx *sql.Tx, item domain.OrderItem) error {
	query := `
		UPDATE OrderItems
		SET participant = ?, description = ?, price = ?, amount = ?
		WHERE id = ?
	`

	_, err := tx.ExecContext(ctx, query,
		item.Participant, item.Description, item.Price, item.Amount, item.ID,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return errors.NewUniquenessError(fmt.Sprintf(
				"an item described as %q already exists on this order", item.Description,
			))
		}
		return fmt.Errorf("updating order item: %w", err)
	}

	return nil
}

func (r *MySQLOrderItemRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	query := `DELETE FROM OrderItems WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting order item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order item with id %d not found", id))
	}

	return nil
}
