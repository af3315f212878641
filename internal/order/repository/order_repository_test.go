package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaospizza/internal/domain"
	"chaospizza/internal/errors"
	"chaospizza/internal/testutil"
)

// Unit Tests

func TestNewMySQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func mustNewOrder(t *testing.T, coordinator, restaurant, url string) *domain.Order {
	order, err := domain.NewOrder(coordinator, restaurant, url)
	require.NoError(t, err)
	return order
}

func TestOrderRepository_InsertAndFindBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	order := mustNewOrder(t, "Bernd", "Hallo Pizza", "http://www.hallopizza.de/")
	require.NoError(t, repo.Insert(ctx, order))
	assert.NotZero(t, order.ID)

	found, err := repo.FindBySlug(ctx, "bernd-hallo-pizza")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, "Bernd", found.Coordinator)
	assert.Equal(t, "Hallo Pizza", found.RestaurantName)
	require.NotNil(t, found.RestaurantURL)
	assert.Equal(t, "http://www.hallopizza.de/", *found.RestaurantURL)
	assert.Equal(t, domain.StatePreparing, found.State)
	assert.Nil(t, found.CancelReason)
	assert.False(t, found.CreatedAt.IsZero())
}

func TestOrderRepository_SlugStableAcrossReloads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	order := mustNewOrder(t, "Bernd", "Hallo Pizza", "")
	require.NoError(t, repo.Insert(ctx, order))

	first, err := repo.FindBySlug(ctx, order.Slug)
	require.NoError(t, err)
	second, err := repo.FindBySlug(ctx, order.Slug)
	require.NoError(t, err)

	assert.Equal(t, first.Slug, second.Slug)
	assert.Equal(t, "bernd-hallo-pizza", first.Slug)
}

func TestOrderRepository_DuplicateCoordinatorRestaurant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, mustNewOrder(t, "Bernd", "Hallo Pizza", "")))

	err := repo.Insert(ctx, mustNewOrder(t, "Bernd", "Hallo Pizza", ""))
	ue, ok := errors.IsUniquenessError(err)
	require.True(t, ok)
	assert.Contains(t, ue.Message, "Bernd")

	// same restaurant under a different coordinator is fine
	require.NoError(t, repo.Insert(ctx, mustNewOrder(t, "Kevin", "Hallo Pizza", "")))
}

func TestOrderRepository_FindBySlug_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	order, err := repo.FindBySlug(context.Background(), "does-not-exist")
	assert.Nil(t, order)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_UpdateState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	order := mustNewOrder(t, "Bernd", "Hallo Pizza", "")
	require.NoError(t, repo.Insert(ctx, order))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	locked, err := repo.FindBySlugForUpdate(ctx, tx, order.Slug)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePreparing, locked.State)

	reason := "restaurant is closed"
	require.NoError(t, repo.UpdateState(ctx, tx, order.ID, domain.StateCanceled, &reason))
	require.NoError(t, tx.Commit())

	found, err := repo.FindBySlug(ctx, order.Slug)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCanceled, found.State)
	require.NotNil(t, found.CancelReason)
	assert.Equal(t, reason, *found.CancelReason)
}

func TestOrderRepository_UpdateState_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.UpdateState(ctx, tx, 9999, domain.StateOrdering, nil)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_FindAll_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, mustNewOrder(t, "Bernd", "Hallo Pizza", "")))
	require.NoError(t, repo.Insert(ctx, mustNewOrder(t, "Kevin", "Pizza Express", "")))

	orders, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "kevin-pizza-express", orders[0].Slug)
	assert.Equal(t, "bernd-hallo-pizza", orders[1].Slug)
}
