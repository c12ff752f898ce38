package persistence

import (
	"testing"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// TableRepository 整合測試
// ===========================

// Test 1: Save + FindByID 往返（含 JSON 序列化的進行中訂單）
func TestTableRepository_SaveAndFindByID_RoundTripWithOpenOrder(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTableRepository(db)

	productID := catalog.NewProductID()
	catalogLine, err := tables.NewOrderLine(&productID, "Es Kopi Susu", 2, decimal.RequireFromString("25000"))
	require.NoError(t, err)
	manualLine, err := tables.NewOrderLine(nil, "Biaya layanan", 1, decimal.RequireFromString("5000"))
	require.NoError(t, err)

	table, err := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, err)
	require.NoError(t, table.OpenOrder([]tables.OrderLine{catalogLine, manualLine}))

	// Act
	require.NoError(t, repo.Save(nil, table))
	found, err := repo.FindByID(nil, table.TableID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tables.StatusOccupied, found.Status())
	require.NotNil(t, found.CurrentOrder())

	lines := found.CurrentOrder().Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, productID.String(), lines[0].ProductID().String())
	assert.Equal(t, "25000", lines[0].UnitPrice().String())
	assert.Nil(t, lines[1].ProductID())
	assert.Equal(t, "55000", found.CurrentOrder().RunningTotal().String())
}

// Test 2: Update 落地清桌效果
func TestTableRepository_Update_PersistsClearedOrder(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTableRepository(db)

	line, _ := tables.NewOrderLine(nil, "Es Kopi Susu", 1, decimal.NewFromInt(25000))
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, table.OpenOrder([]tables.OrderLine{line}))
	require.NoError(t, repo.Save(nil, table))

	loaded, err := repo.FindByID(nil, table.TableID())
	require.NoError(t, err)
	_, err = loaded.ClearForSettlement()
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Update(nil, loaded))

	// Assert
	reloaded, err := repo.FindByID(nil, table.TableID())
	require.NoError(t, err)
	assert.Equal(t, tables.StatusAvailable, reloaded.Status())
	assert.Nil(t, reloaded.CurrentOrder())
	assert.Equal(t, loaded.Version()+1, reloaded.Version())
}

// Test 3: Update 過期版本返回衝突（清桌 vs 開單互斥）
func TestTableRepository_Update_StaleVersion_ReturnsConflict(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTableRepository(db)

	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, repo.Save(nil, table))

	// 清桌者與開單者載入同一版本
	settler, err := repo.FindByID(nil, table.TableID())
	require.NoError(t, err)
	opener, err := repo.FindByID(nil, table.TableID())
	require.NoError(t, err)

	line, _ := tables.NewOrderLine(nil, "Es Kopi Susu", 1, decimal.NewFromInt(25000))
	require.NoError(t, opener.OpenOrder([]tables.OrderLine{line}))
	require.NoError(t, repo.Update(nil, opener))

	// Act - 落後者帶著過期版本提交
	require.NoError(t, settler.Reserve())
	err = repo.Update(nil, settler)

	// Assert
	assert.ErrorIs(t, err, shared.ErrConflict)
}

// Test 4: Delete 成功與 NotFound 映射
func TestTableRepository_Delete(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTableRepository(db)

	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, repo.Save(nil, table))

	// Act
	require.NoError(t, repo.Delete(nil, table.TableID()))

	// Assert
	_, err := repo.FindByID(nil, table.TableID())
	assert.ErrorIs(t, err, tables.ErrTableNotFound)

	// 再次刪除 → NotFound
	assert.ErrorIs(t, repo.Delete(nil, table.TableID()), tables.ErrTableNotFound)
}
