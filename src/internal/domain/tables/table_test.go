package tables_test

import (
	"testing"

	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrderLines(t *testing.T) []tables.OrderLine {
	t.Helper()
	line1, err := tables.NewOrderLine(nil, "Es Kopi Susu", 2, decimal.NewFromInt(25000))
	require.NoError(t, err)
	line2, err := tables.NewOrderLine(nil, "Roti Bakar", 1, decimal.NewFromInt(15000))
	require.NoError(t, err)
	return []tables.OrderLine{line1, line2}
}

// ===========================
// Table 建構測試
// ===========================

// Test 1: NewTable 初始狀態 Available
func TestNewTable_StartsAvailable(t *testing.T) {
	// Act
	table, err := tables.NewTable(store.NewStoreID(), 5, 4)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tables.StatusAvailable, table.Status())
	assert.Nil(t, table.CurrentOrder())
	assert.Equal(t, 5, table.Number())
	assert.Equal(t, 4, table.Capacity())
}

// Test 2: NewTable 非正數桌號 / 容量
func TestNewTable_InvalidNumberOrCapacity_ReturnsError(t *testing.T) {
	_, err := tables.NewTable(store.NewStoreID(), 0, 4)
	assert.ErrorIs(t, err, tables.ErrInvalidTableNumber)

	_, err = tables.NewTable(store.NewStoreID(), 5, 0)
	assert.ErrorIs(t, err, tables.ErrInvalidTableCapacity)
}

// ===========================
// 狀態機測試
// ===========================

// Test 3: Reserve 只允許 Available → Reserved
func TestTable_Reserve_FromAvailable_Success(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)

	// Act
	err := table.Reserve()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, tables.StatusReserved, table.Status())

	// Reserved 不能再 Reserve
	assert.ErrorIs(t, table.Reserve(), tables.ErrInvalidTransition)
}

// Test 4: OpenOrder 從 Available 與 Reserved 皆可開單
func TestTable_OpenOrder_FromAvailableOrReserved_Success(t *testing.T) {
	for _, reserve := range []bool{false, true} {
		// Arrange
		table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
		if reserve {
			require.NoError(t, table.Reserve())
		}

		// Act
		err := table.OpenOrder(buildOrderLines(t))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, tables.StatusOccupied, table.Status())
		require.NotNil(t, table.CurrentOrder())
		assert.Equal(t, "65000", table.CurrentOrder().RunningTotal().String())
	}
}

// Test 5: OpenOrder 在 Occupied 桌位拒絕
func TestTable_OpenOrder_AlreadyOccupied_ReturnsError(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, table.OpenOrder(buildOrderLines(t)))

	// Act
	err := table.OpenOrder(buildOrderLines(t))

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, tables.ErrInvalidTransition)
}

// Test 6: AddToOrder 追加行項目
func TestTable_AddToOrder_AppendsLines(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, table.OpenOrder(buildOrderLines(t)))

	extra, _ := tables.NewOrderLine(nil, "Teh Manis", 1, decimal.NewFromInt(8000))

	// Act
	err := table.AddToOrder([]tables.OrderLine{extra})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, table.CurrentOrder().Lines(), 3)
	assert.Equal(t, "73000", table.CurrentOrder().RunningTotal().String())
}

// Test 7: AddToOrder 無訂單時拒絕
func TestTable_AddToOrder_NotOccupied_ReturnsError(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)

	// Act
	err := table.AddToOrder(buildOrderLines(t))

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, tables.ErrTableNotOccupied)
}

// ===========================
// 清桌測試
// ===========================

// Test 8: ClearForSettlement 返回訂單並釋放桌位
func TestTable_ClearForSettlement_ReturnsOrderAndFreesTable(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, table.OpenOrder(buildOrderLines(t)))

	// Act
	order, err := table.ClearForSettlement()

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, order)
	assert.Len(t, order.Lines(), 2)
	assert.Equal(t, tables.StatusAvailable, table.Status())
	assert.Nil(t, table.CurrentOrder())
}

// Test 9: ClearForSettlement 無訂單時返回衝突（終態錯誤）
func TestTable_ClearForSettlement_NoOpenOrder_ReturnsConflict(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)

	// Act
	order, err := table.ClearForSettlement()

	// Assert
	assert.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, tables.ErrTableConflict)
}

// ===========================
// 管理員覆寫測試
// ===========================

// Test 10: SetStatus 有訂單時拒絕（必須走結帳清桌）
func TestTable_SetStatus_WithOpenOrder_ReturnsError(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, table.OpenOrder(buildOrderLines(t)))

	// Act
	err := table.SetStatus(tables.StatusAvailable)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, tables.ErrTableHasOpenOrder)
	assert.Equal(t, tables.StatusOccupied, table.Status())
}

// Test 11: SetStatus 不允許直接設為 Occupied
func TestTable_SetStatus_ToOccupied_ReturnsError(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)

	// Act
	err := table.SetStatus(tables.StatusOccupied)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, tables.ErrInvalidTransition)
}

// Test 12: SetStatus 空桌允許 Available ↔ Reserved
func TestTable_SetStatus_EmptyTable_Success(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)

	// Act & Assert
	assert.NoError(t, table.SetStatus(tables.StatusReserved))
	assert.Equal(t, tables.StatusReserved, table.Status())
	assert.NoError(t, table.SetStatus(tables.StatusAvailable))
	assert.Equal(t, tables.StatusAvailable, table.Status())
}

// Test 13: EnsureDeletable 有訂單時拒絕
func TestTable_EnsureDeletable_WithOpenOrder_ReturnsError(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)
	require.NoError(t, table.OpenOrder(buildOrderLines(t)))

	// Act & Assert
	assert.ErrorIs(t, table.EnsureDeletable(), tables.ErrTableHasOpenOrder)

	// 清桌後可刪除
	_, err := table.ClearForSettlement()
	require.NoError(t, err)
	assert.NoError(t, table.EnsureDeletable())
}

// ===========================
// 聚合重建測試
// ===========================

// Test 14: ReconstructTable 驗證「有訂單必為 Occupied」不變條件
func TestReconstructTable_OrderOnNonOccupiedTable_ReturnsError(t *testing.T) {
	// Arrange
	table, _ := tables.NewTable(store.NewStoreID(), 5, 4)

	// Act
	rebuilt, err := tables.ReconstructTable(
		table.TableID(), table.StoreID(), 5, 4,
		tables.StatusAvailable, buildOrderLines(t), true,
		table.CreatedAt(), table.UpdatedAt(), 0,
	)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, rebuilt)
	assert.ErrorIs(t, err, tables.ErrInvalidTableStatus)
}
