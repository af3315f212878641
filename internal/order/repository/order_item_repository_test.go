package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaospizza/internal/domain"
	"chaospizza/internal/errors"
	"chaospizza/internal/testutil"
)

// Unit Tests

func TestNewMySQLOrderItemRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderItemRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func insertTestOrder(t *testing.T, db *sql.DB, coordinator, restaurant string) *domain.Order {
	order, err := domain.NewOrder(coordinator, restaurant, "")
	require.NoError(t, err)
	require.NoError(t, NewMySQLOrderRepository(db).Insert(context.Background(), order))
	return order
}

func mustNewItem(t *testing.T, orderID uint, participant, description, price string, amount int) *domain.OrderItem {
	item, err := domain.NewOrderItem(orderID, participant, description, decimal.RequireFromString(price), amount)
	require.NoError(t, err)
	return item
}

func inTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	require.NoError(t, tx.Commit())
	return nil
}

func TestOrderItemRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderItemRepository(db)
	order := insertTestOrder(t, db, "Bernd", "Hallo Pizza")
	ctx := context.Background()

	item := mustNewItem(t, order.ID, "Kevin", "Test", "7.20", 3)
	err := inTx(t, db, func(tx *sql.Tx) error {
		id, err := repo.Insert(ctx, tx, *item)
		if err != nil {
			return err
		}
		item.ID = id
		return nil
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	items, err := repo.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Kevin", items[0].Participant)
	assert.Equal(t, "kevin-test", items[0].Slug)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("7.20")))
	assert.Equal(t, 3, items[0].Amount)
	assert.True(t, items[0].TotalPrice().Equal(decimal.RequireFromString("21.60")))
}

func TestOrderItemRepository_DuplicateDescriptionSameOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderItemRepository(db)
	order := insertTestOrder(t, db, "Bernd", "Hallo Pizza")
	ctx := context.Background()

	err := inTx(t, db, func(tx *sql.Tx) error {
		_, err := repo.Insert(ctx, tx, *mustNewItem(t, order.ID, "Bernd", "Pizza Salami", "5.60", 1))
		return err
	})
	require.NoError(t, err)

	err = inTx(t, db, func(tx *sql.Tx) error {
		_, err := repo.Insert(ctx, tx, *mustNewItem(t, order.ID, "Kevin", "Pizza Salami", "5.60", 1))
		return err
	})
	_, ok := errors.IsUniquenessError(err)
	assert.True(t, ok)
}

func TestOrderItemRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderItemRepository(db)
	order := insertTestOrder(t, db, "Bernd", "Hallo Pizza")
	ctx := context.Background()

	item := mustNewItem(t, order.ID, "Kevin", "Test", "7.20", 1)
	err := inTx(t, db, func(tx *sql.Tx) error {
		id, err := repo.Insert(ctx, tx, *item)
		item.ID = id
		return err
	})
	require.NoError(t, err)

	item.Description = "Pizza Funghi"
	item.Amount = 2
	err = inTx(t, db, func(tx *sql.Tx) error {
		return repo.Update(ctx, tx, *item)
	})
	require.NoError(t, err)

	items, err := repo.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pizza Funghi", items[0].Description)
	assert.Equal(t, 2, items[0].Amount)
	assert.Equal(t, "kevin-test", items[0].Slug, "slug unchanged by update")

	err = inTx(t, db, func(tx *sql.Tx) error {
		return repo.Delete(ctx, tx, item.ID)
	})
	require.NoError(t, err)

	items, err = repo.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderItemRepository_FindBySlug_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderItemRepository(db)
	order := insertTestOrder(t, db, "Bernd", "Hallo Pizza")
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = repo.FindBySlug(ctx, tx, order.ID, "does-not-exist")
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
