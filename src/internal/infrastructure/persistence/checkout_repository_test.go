package persistence

import (
	"testing"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/checkout"
	"github.com/jackyeh168/pos_core/src/internal/domain/loyalty"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// TransactionRepository 整合測試
// ===========================

func buildTestTransaction(t *testing.T, storeID store.StoreID) *checkout.Transaction {
	t.Helper()

	productID := catalog.NewProductID()
	catalogLine, err := checkout.NewCatalogLine(productID, "Es Kopi Susu", 2, decimal.NewFromInt(25000))
	require.NoError(t, err)
	manualLine, err := checkout.NewManualLine("Biaya layanan", 1, decimal.NewFromInt(5000))
	require.NoError(t, err)
	cart, err := checkout.NewCart([]checkout.CartLine{catalogLine, manualLine})
	require.NoError(t, err)

	tx, err := checkout.NewTransaction(
		storeID, checkout.NewStaffID(), cart, checkout.NoDiscount(),
		checkout.PaymentCash, nil, mustPointsAmount(t, 5), mustPointsAmount(t, 0), 1, nil,
	)
	require.NoError(t, err)
	require.NoError(t, tx.MarkCompleted())
	return tx
}

// Test 1: Append + FindByID 往返（含行項目順序）
func TestTransactionRepository_AppendAndFindByID_RoundTrip(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTransactionRepository(db)

	storeID := store.NewStoreID()
	tx := buildTestTransaction(t, storeID)

	// Act
	require.NoError(t, repo.Append(nil, tx))
	found, err := repo.FindByID(nil, tx.TransactionID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tx.TransactionID().String(), found.TransactionID().String())
	assert.Equal(t, checkout.StatusCompleted, found.Status())
	assert.Equal(t, 1, found.ReceiptNumber())
	assert.Equal(t, "55000", found.TotalAmount().String())
	assert.Equal(t, 5, found.PointsEarned().Value())

	// 行項目順序與快照保留
	lines := found.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Es Kopi Susu", lines[0].Name())
	assert.NotNil(t, lines[0].ProductID())
	assert.Equal(t, "Biaya layanan", lines[1].Name())
	assert.Nil(t, lines[1].ProductID())
}

// Test 2: FindByID NotFound 映射
func TestTransactionRepository_FindByID_NotFound_MapsToDomainError(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTransactionRepository(db)

	// Act
	found, err := repo.FindByID(nil, checkout.NewTransactionID())

	// Assert
	assert.Nil(t, found)
	assert.ErrorIs(t, err, checkout.ErrTransactionNotFound)
}

// Test 3: Append 重複 ID 映射到 ErrTransactionAlreadyExists
func TestTransactionRepository_Append_DuplicateID_MapsToAlreadyExists(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTransactionRepository(db)

	tx := buildTestTransaction(t, store.NewStoreID())
	require.NoError(t, repo.Append(nil, tx))

	// Act
	err := repo.Append(nil, tx)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrTransactionAlreadyExists)
}

// Test 4: FindByStore 只返回該店家的交易，limit 生效
func TestTransactionRepository_FindByStore_FiltersAndLimits(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewTransactionRepository(db)

	storeID := store.NewStoreID()
	otherStoreID := store.NewStoreID()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(nil, buildTestTransaction(t, storeID)))
	}
	require.NoError(t, repo.Append(nil, buildTestTransaction(t, otherStoreID)))

	// Act
	all, err := repo.FindByStore(nil, storeID, 0)
	require.NoError(t, err)
	limited, err := repo.FindByStore(nil, storeID, 2)
	require.NoError(t, err)

	// Assert
	assert.Len(t, all, 3)
	assert.Len(t, limited, 2)
	for _, tx := range all {
		assert.Equal(t, storeID.String(), tx.StoreID().String())
	}
}

func mustPointsAmount(t *testing.T, value int) loyalty.PointsAmount {
	t.Helper()
	amount, err := loyalty.NewPointsAmount(value)
	require.NoError(t, err)
	return amount
}
