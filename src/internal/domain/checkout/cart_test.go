package checkout_test

import (
	"testing"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/checkout"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// CartLine 測試
// ===========================

// Test 1: NewCatalogLine 成功建立
func TestNewCatalogLine_ValidInput_Success(t *testing.T) {
	// Arrange
	productID := catalog.NewProductID()

	// Act
	line, err := checkout.NewCatalogLine(productID, "Es Kopi Susu", 2, decimal.NewFromInt(25000))

	// Assert
	assert.NoError(t, err)
	assert.True(t, line.IsCatalogItem())
	assert.Equal(t, productID, *line.ProductID())
	assert.Equal(t, "50000", line.LineTotal().String())
}

// Test 2: NewManualLine 不關聯商品
func TestNewManualLine_HasNoProductID(t *testing.T) {
	// Act
	line, err := checkout.NewManualLine("Biaya layanan", 1, decimal.NewFromInt(5000))

	// Assert
	assert.NoError(t, err)
	assert.False(t, line.IsCatalogItem())
	assert.Nil(t, line.ProductID())
}

// Test 3: 非正數數量拒絕
func TestNewCartLine_NonPositiveQuantity_ReturnsError(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		_, err := checkout.NewManualLine("Es Kopi Susu", quantity, decimal.NewFromInt(25000))
		assert.Error(t, err)
		assert.ErrorIs(t, err, checkout.ErrInvalidQuantity)
	}
}

// Test 4: 負數單價拒絕
func TestNewCartLine_NegativeUnitPrice_ReturnsError(t *testing.T) {
	// Act
	_, err := checkout.NewManualLine("Es Kopi Susu", 1, decimal.NewFromInt(-1))

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrInvalidUnitPrice)
}

// ===========================
// Cart 測試
// ===========================

// Test 5: NewCart 空購物車拒絕
func TestNewCart_EmptyLines_ReturnsError(t *testing.T) {
	// Act
	_, err := checkout.NewCart(nil)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
}

// Test 6: Subtotal = Σ 數量 × 單價
func TestCart_Subtotal_SumsLineTotals(t *testing.T) {
	// Arrange
	line1, _ := checkout.NewManualLine("Es Kopi Susu", 3, decimal.NewFromInt(25000))
	line2, _ := checkout.NewManualLine("Roti Bakar", 2, decimal.NewFromInt(15000))
	cart, err := checkout.NewCart([]checkout.CartLine{line1, line2})
	require.NoError(t, err)

	// Act & Assert - 75000 + 30000
	assert.Equal(t, "105000", cart.Subtotal().String())
}

// Test 7: Lines 返回副本
func TestCart_Lines_ReturnsCopy(t *testing.T) {
	// Arrange
	line, _ := checkout.NewManualLine("Es Kopi Susu", 1, decimal.NewFromInt(25000))
	cart, _ := checkout.NewCart([]checkout.CartLine{line})

	// Act
	lines := cart.Lines()
	lines[0] = checkout.CartLine{}

	// Assert
	assert.Equal(t, "Es Kopi Susu", cart.Lines()[0].Name())
}
