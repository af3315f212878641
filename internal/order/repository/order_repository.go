package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"chaospizza/internal/domain"
	"chaospizza/internal/errors"
)

const orderColumns = `id, coordinator, restaurantName, restaurantUrl, slug, state, cancelReason, createdAt, updatedAt`

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO Orders (coordinator, restaurantName, restaurantUrl, slug, state)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.Coordinator, order.RestaurantName, order.RestaurantURL, order.Slug, order.State,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return errors.NewUniquenessError(fmt.Sprintf(
				"an order by %s for %s already exists", order.Coordinator, order.RestaurantName,
			))
		}
		return fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	order.ID = uint(lastInsertID)
	return nil
}

func (r *MySQLOrderRepository) FindBySlug(ctx context.Context, slug string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE slug = ?`
	return scanOrder(r.db.QueryRowContext(ctx, query, slug), slug)
}

// FindBySlugForUpdate reads the order inside the given transaction with a
// row lock. Every gated write re-reads the authoritative state through this
// method so the state check and the write happen in one transaction.
func (r *MySQLOrderRepository) FindBySlugForUpdate(ctx context.Context, tx *sql.Tx, slug string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE slug = ? FOR UPDATE`
	return scanOrder(tx.QueryRowContext(ctx, query, slug), slug)
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders ORDER BY createdAt DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.Coordinator, &order.RestaurantName, &order.RestaurantURL,
			&order.Slug, &order.State, &order.CancelReason, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) UpdateState(ctx context.Context, tx *sql.Tx, id uint, state domain.State, cancelReason *string) error {
	query := `UPDATE Orders SET state = ?, cancelReason = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, state, cancelReason, id)
	if err != nil {
		return fmt.Errorf("updating order state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func scanOrder(row *sql.Row, slug string) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.Coordinator, &order.RestaurantName, &order.RestaurantURL,
		&order.Slug, &order.State, &order.CancelReason, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", slug))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by slug: %w", err)
	}

	return &order, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
