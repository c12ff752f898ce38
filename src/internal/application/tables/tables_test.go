package tables_test

import (
	"context"
	"testing"

	appcheckout "github.com/jackyeh168/pos_core/src/internal/application/checkout"
	apptables "github.com/jackyeh168/pos_core/src/internal/application/tables"
	"github.com/jackyeh168/pos_core/src/internal/domain/checkout"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/jackyeh168/pos_core/src/internal/infrastructure/eventlog"
	"github.com/jackyeh168/pos_core/src/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// Tables Use Case 整合測試
// ===========================

type tablesFixture struct {
	storeRepo store.StoreRepository
	tableRepo tables.TableRepository
	openUC    apptables.OpenTableOrderUseCase
	statusUC  apptables.SetTableStatusUseCase
	deleteUC  apptables.DeleteTableUseCase
	clearUC   apptables.ClearTableUseCase
}

func setupTables(t *testing.T) (*tablesFixture, func()) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&persistence.StoreModel{},
		&persistence.ProductModel{},
		&persistence.CustomerModel{},
		&persistence.TransactionModel{},
		&persistence.TransactionLineModel{},
		&persistence.TableModel{},
	))

	log := zap.NewNop()
	atomic := persistence.NewGORMAtomicManager(log, db)
	tableRepo := persistence.NewTableRepository(db)
	checkoutUC := appcheckout.NewProcessCheckoutUseCase(
		log,
		atomic,
		persistence.NewStoreRepository(db),
		persistence.NewProductRepository(db),
		persistence.NewCustomerRepository(db),
		tableRepo,
		persistence.NewTransactionRepository(db),
		eventlog.NewZapEventPublisher(log),
	)

	f := &tablesFixture{
		storeRepo: persistence.NewStoreRepository(db),
		tableRepo: tableRepo,
		openUC:    apptables.NewOpenTableOrderUseCase(log, atomic, tableRepo),
		statusUC:  apptables.NewSetTableStatusUseCase(log, atomic, tableRepo),
		deleteUC:  apptables.NewDeleteTableUseCase(log, atomic, tableRepo),
		clearUC:   apptables.NewClearTableUseCase(log, checkoutUC),
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}
	return f, cleanup
}

func (f *tablesFixture) seedTable(t *testing.T) (*store.Store, *tables.Table) {
	t.Helper()
	s, err := store.NewStore("Warung Kopi")
	require.NoError(t, err)
	require.NoError(t, f.storeRepo.Save(nil, s))
	s.PullEvents()

	table, err := tables.NewTable(s.StoreID(), 5, 4)
	require.NoError(t, err)
	require.NoError(t, f.tableRepo.Save(nil, table))
	return s, table
}

func orderLine(name string, quantity int, price int64) apptables.OrderLineInput {
	return apptables.OrderLineInput{Name: name, Quantity: quantity, UnitPrice: decimal.NewFromInt(price)}
}

// Test 1: 空桌開單 → Occupied，累計總額
func TestOpenTableOrder_AvailableTable_OpensOrder(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	_, table := f.seedTable(t)

	// Act
	result, err := f.openUC.Execute(context.Background(), apptables.OpenTableOrderCommand{
		TableID: table.TableID().String(),
		Lines:   []apptables.OrderLineInput{orderLine("Es Kopi Susu", 2, 25000)},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(tables.StatusOccupied), result.Status)
	assert.Equal(t, "50000", result.RunningTotal.String())

	reloaded, err := f.tableRepo.FindByID(nil, table.TableID())
	require.NoError(t, err)
	assert.Equal(t, tables.StatusOccupied, reloaded.Status())
}

// Test 2: 已佔用的桌位 → 向進行中訂單追加行項目
func TestOpenTableOrder_OccupiedTable_AppendsToOrder(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	_, table := f.seedTable(t)

	cmd := apptables.OpenTableOrderCommand{
		TableID: table.TableID().String(),
		Lines:   []apptables.OrderLineInput{orderLine("Es Kopi Susu", 2, 25000)},
	}
	_, err := f.openUC.Execute(context.Background(), cmd)
	require.NoError(t, err)

	// Act - 加點
	cmd.Lines = []apptables.OrderLineInput{orderLine("Pisang Goreng", 1, 15000)}
	result, err := f.openUC.Execute(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "65000", result.RunningTotal.String())

	reloaded, _ := f.tableRepo.FindByID(nil, table.TableID())
	require.NotNil(t, reloaded.CurrentOrder())
	assert.Len(t, reloaded.CurrentOrder().Lines(), 2)
}

// Test 3: 空行項目拒絕
func TestOpenTableOrder_EmptyLines_Rejected(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	_, table := f.seedTable(t)

	// Act
	_, err := f.openUC.Execute(context.Background(), apptables.OpenTableOrderCommand{
		TableID: table.TableID().String(),
	})

	// Assert
	assert.ErrorIs(t, err, tables.ErrEmptyOrder)
}

// Test 4: 桌位不存在 → NotFound
func TestOpenTableOrder_TableNotFound(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()

	// Act
	_, err := f.openUC.Execute(context.Background(), apptables.OpenTableOrderCommand{
		TableID: tables.NewTableID().String(),
		Lines:   []apptables.OrderLineInput{orderLine("Es Kopi Susu", 1, 25000)},
	})

	// Assert
	assert.ErrorIs(t, err, tables.ErrTableNotFound)
}

// Test 5: 管理員覆寫狀態：Available ↔ Reserved
func TestSetTableStatus_OverrideWithoutOrder(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	_, table := f.seedTable(t)

	// Act
	result, err := f.statusUC.Execute(context.Background(), apptables.SetTableStatusCommand{
		TableID: table.TableID().String(),
		Status:  string(tables.StatusReserved),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(tables.StatusReserved), result.Status)

	reloaded, _ := f.tableRepo.FindByID(nil, table.TableID())
	assert.Equal(t, tables.StatusReserved, reloaded.Status())
}

// Test 6: 有進行中訂單的桌位不可覆寫狀態（必須走結帳清桌）
func TestSetTableStatus_TableWithOpenOrder_Rejected(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	_, table := f.seedTable(t)
	_, err := f.openUC.Execute(context.Background(), apptables.OpenTableOrderCommand{
		TableID: table.TableID().String(),
		Lines:   []apptables.OrderLineInput{orderLine("Es Kopi Susu", 1, 25000)},
	})
	require.NoError(t, err)

	// Act
	_, err = f.statusUC.Execute(context.Background(), apptables.SetTableStatusCommand{
		TableID: table.TableID().String(),
		Status:  string(tables.StatusAvailable),
	})

	// Assert
	assert.ErrorIs(t, err, tables.ErrTableHasOpenOrder)
}

// Test 7: 不允許直接設為 Occupied
func TestSetTableStatus_DirectOccupied_Rejected(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	_, table := f.seedTable(t)

	// Act
	_, err := f.statusUC.Execute(context.Background(), apptables.SetTableStatusCommand{
		TableID: table.TableID().String(),
		Status:  string(tables.StatusOccupied),
	})

	// Assert
	assert.ErrorIs(t, err, tables.ErrInvalidTransition)
}

// Test 8: 刪除空桌成功；有進行中訂單的桌位拒絕刪除
func TestDeleteTable_GuardedByOpenOrder(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	_, empty := f.seedTable(t)
	_, occupied := f.seedTable(t)
	_, err := f.openUC.Execute(context.Background(), apptables.OpenTableOrderCommand{
		TableID: occupied.TableID().String(),
		Lines:   []apptables.OrderLineInput{orderLine("Es Kopi Susu", 1, 25000)},
	})
	require.NoError(t, err)

	// Act & Assert - 空桌刪除成功
	require.NoError(t, f.deleteUC.Execute(context.Background(), apptables.DeleteTableCommand{
		TableID: empty.TableID().String(),
	}))
	_, err = f.tableRepo.FindByID(nil, empty.TableID())
	assert.ErrorIs(t, err, tables.ErrTableNotFound)

	// Act & Assert - 有訂單的桌位拒絕刪除
	err = f.deleteUC.Execute(context.Background(), apptables.DeleteTableCommand{
		TableID: occupied.TableID().String(),
	})
	assert.ErrorIs(t, err, tables.ErrTableHasOpenOrder)
}

// Test 9: 清桌結帳委派：訂單內容 + 追加項，桌位釋放
func TestClearTable_DelegatesToCheckout(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	s, table := f.seedTable(t)
	_, err := f.openUC.Execute(context.Background(), apptables.OpenTableOrderCommand{
		TableID: table.TableID().String(),
		Lines:   []apptables.OrderLineInput{orderLine("Es Kopi Susu", 2, 25000)},
	})
	require.NoError(t, err)

	// Act
	result, err := f.clearUC.Execute(context.Background(), apptables.ClearTableCommand{
		StoreID: s.StoreID().String(),
		StaffID: checkout.NewStaffID().String(),
		TableID: table.TableID().String(),
		ExtraLines: []appcheckout.CartLineInput{
			{Name: "Biaya layanan", Quantity: 1, UnitPrice: decimal.NewFromInt(5000)},
		},
		PaymentMethod: "cash",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "55000", result.TotalAmount.String())
	assert.Equal(t, string(checkout.StatusPaidAndCleared), result.Status)

	reloaded, err := f.tableRepo.FindByID(nil, table.TableID())
	require.NoError(t, err)
	assert.Equal(t, tables.StatusAvailable, reloaded.Status())
	assert.Nil(t, reloaded.CurrentOrder())
}

// Test 10: 清桌後同一桌位可以重新開單
func TestClearTable_TableReusableAfterSettlement(t *testing.T) {
	// Arrange
	f, cleanup := setupTables(t)
	defer cleanup()
	s, table := f.seedTable(t)
	open := apptables.OpenTableOrderCommand{
		TableID: table.TableID().String(),
		Lines:   []apptables.OrderLineInput{orderLine("Es Kopi Susu", 1, 25000)},
	}
	_, err := f.openUC.Execute(context.Background(), open)
	require.NoError(t, err)
	_, err = f.clearUC.Execute(context.Background(), apptables.ClearTableCommand{
		StoreID:       s.StoreID().String(),
		StaffID:       checkout.NewStaffID().String(),
		TableID:       table.TableID().String(),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	// Act - 第二輪客人
	result, err := f.openUC.Execute(context.Background(), open)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(tables.StatusOccupied), result.Status)
	assert.Equal(t, "25000", result.RunningTotal.String())
}
