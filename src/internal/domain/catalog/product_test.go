package catalog_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// Product 建構測試
// ===========================

// Test 1: NewProduct 成功建立
func TestNewProduct_ValidInput_Success(t *testing.T) {
	// Arrange
	storeID := store.NewStoreID()

	// Act
	product, err := catalog.NewProduct(storeID, "Es Kopi Susu", decimal.NewFromInt(25000), decimal.NewFromInt(9000), 10)

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, storeID, product.StoreID())
	assert.Equal(t, 10, product.Stock().Value())
}

// Test 2: NewProduct 負數售價
func TestNewProduct_NegativePrice_ReturnsError(t *testing.T) {
	// Act
	product, err := catalog.NewProduct(store.NewStoreID(), "Es Kopi Susu", decimal.NewFromInt(-1), decimal.Zero, 10)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, catalog.ErrInvalidPrice)
}

// Test 3: NewProduct 負數初始庫存
func TestNewProduct_NegativeInitialStock_ReturnsError(t *testing.T) {
	// Act
	product, err := catalog.NewProduct(store.NewStoreID(), "Es Kopi Susu", decimal.NewFromInt(25000), decimal.Zero, -1)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, product)
}

// ===========================
// 庫存扣減測試
// ===========================

// Test 4: DecreaseStock 庫存充足
func TestProduct_DecreaseStock_SufficientStock_Success(t *testing.T) {
	// Arrange
	product, _ := catalog.NewProduct(store.NewStoreID(), "Es Kopi Susu", decimal.NewFromInt(25000), decimal.Zero, 10)

	// Act
	err := product.DecreaseStock(3)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 7, product.Stock().Value())
}

// Test 5: DecreaseStock 庫存不足（終態錯誤，附帶商品 ID 與可用量）
func TestProduct_DecreaseStock_InsufficientStock_ReturnsError(t *testing.T) {
	// Arrange
	product, _ := catalog.NewProduct(store.NewStoreID(), "Es Kopi Susu", decimal.NewFromInt(25000), decimal.Zero, 7)

	// Act
	err := product.DecreaseStock(8)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
	// 庫存保持原狀
	assert.Equal(t, 7, product.Stock().Value())

	// 錯誤上下文攜帶商品 ID 與可用量
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, product.ProductID().String(), domainErr.Context["product_id"])
	assert.Equal(t, 7, domainErr.Context["available"])
}

// Test 6: DecreaseStock 扣到零
func TestProduct_DecreaseStock_ExactStock_ReachesZero(t *testing.T) {
	// Arrange
	product, _ := catalog.NewProduct(store.NewStoreID(), "Es Kopi Susu", decimal.NewFromInt(25000), decimal.Zero, 5)

	// Act
	err := product.DecreaseStock(5)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 0, product.Stock().Value())
}

// Test 7: IncreaseStock 進貨
func TestProduct_IncreaseStock_Success(t *testing.T) {
	// Arrange
	product, _ := catalog.NewProduct(store.NewStoreID(), "Es Kopi Susu", decimal.NewFromInt(25000), decimal.Zero, 5)

	// Act
	err := product.IncreaseStock(10)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 15, product.Stock().Value())
}

// ===========================
// 聚合重建測試
// ===========================

// Test 8: ReconstructProduct 負數庫存（損壞資料）
func TestReconstructProduct_NegativeStock_ReturnsError(t *testing.T) {
	// Arrange
	now := time.Now()

	// Act
	product, err := catalog.ReconstructProduct(
		catalog.NewProductID(), store.NewStoreID(), "Es Kopi Susu",
		decimal.NewFromInt(25000), decimal.Zero, -3, now, now, 0,
	)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, catalog.ErrNegativeStock)
}
