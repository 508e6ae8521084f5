package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	items := `
CREATE TABLE IF NOT EXISTS inventory_items (
  product_id TEXT NOT NULL,
  warehouse_id TEXT NOT NULL,
  on_hand_qty NUMERIC NOT NULL DEFAULT 0,
  reserved_qty NUMERIC NOT NULL DEFAULT 0,
  updated_at DATETIME,
  PRIMARY KEY (product_id, warehouse_id)
);`
	moves := `
CREATE TABLE IF NOT EXISTS inventory_moves (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  warehouse_id TEXT NOT NULL,
  quantity NUMERIC NOT NULL,
  reason TEXT NOT NULL,
  reference_id TEXT,
  notes TEXT,
  created_by TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(items).Error)
	require.NoError(t, db.Exec(moves).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM inventory_items")
		db.Exec("DELETE FROM inventory_moves")
	})
	return db
}

func TestApplyDeltaInsertsMissingRow(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()

	require.NoError(t, repo.ApplyDelta(ctx, productID, warehouseID, decimal.NewFromInt(10), decimal.Zero))

	item, err := repo.FindItem(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.True(t, item.OnHandQty.Equal(decimal.NewFromInt(10)))
	assert.True(t, item.ReservedQty.IsZero())
}

func TestApplyDeltaAccumulates(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()

	require.NoError(t, repo.ApplyDelta(ctx, productID, warehouseID, decimal.NewFromInt(10), decimal.Zero))
	require.NoError(t, repo.ApplyDelta(ctx, productID, warehouseID, decimal.NewFromInt(-4), decimal.NewFromInt(2)))

	item, err := repo.FindItem(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.True(t, item.OnHandQty.Equal(decimal.NewFromInt(6)))
	assert.True(t, item.ReservedQty.Equal(decimal.NewFromInt(2)))
}

func TestApplyDeltaRejectsNegativeResult(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()

	require.NoError(t, repo.ApplyDelta(ctx, productID, warehouseID, decimal.NewFromInt(5), decimal.Zero))

	err := repo.ApplyDelta(ctx, productID, warehouseID, decimal.NewFromInt(-6), decimal.Zero)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	item, err := repo.FindItem(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.True(t, item.OnHandQty.Equal(decimal.NewFromInt(5)))
}

func TestApplyDeltaRejectsNegativeInsert(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	err := repo.ApplyDelta(ctx, uuid.New(), uuid.New(), decimal.NewFromInt(-1), decimal.Zero)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}
