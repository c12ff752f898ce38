package checkout_test

import (
	"testing"

	"github.com/jackyeh168/pos_core/src/internal/domain/checkout"
	"github.com/jackyeh168/pos_core/src/internal/domain/loyalty"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCart(t *testing.T) checkout.Cart {
	t.Helper()
	line, err := checkout.NewManualLine("Es Kopi Susu", 3, decimal.NewFromInt(50000))
	require.NoError(t, err)
	cart, err := checkout.NewCart([]checkout.CartLine{line})
	require.NoError(t, err)
	return cart
}

// ===========================
// Transaction 建構測試
// ===========================

// Test 1: NewTransaction 集中計算金額
func TestNewTransaction_ComputesAmounts(t *testing.T) {
	// Arrange
	discount, _ := checkout.NewNominalDiscount(decimal.NewFromInt(10000))

	// Act
	tx, err := checkout.NewTransaction(
		store.NewStoreID(), checkout.NewStaffID(), buildCart(t), discount,
		checkout.PaymentCash, nil, loyalty.ZeroPoints(), loyalty.ZeroPoints(), 1, nil,
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "150000", tx.Subtotal().String())
	assert.Equal(t, "10000", tx.DiscountAmount().String())
	assert.Equal(t, "140000", tx.TotalAmount().String())
	assert.Equal(t, checkout.StatusProcessing, tx.Status())
	assert.Equal(t, 1, tx.ReceiptNumber())
}

// Test 2: NewTransaction 無效付款方式
func TestNewTransaction_InvalidPaymentMethod_ReturnsError(t *testing.T) {
	// Act
	tx, err := checkout.NewTransaction(
		store.NewStoreID(), checkout.NewStaffID(), buildCart(t), checkout.NoDiscount(),
		checkout.PaymentMethod("crypto"), nil, loyalty.ZeroPoints(), loyalty.ZeroPoints(), 1, nil,
	)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, tx)
	assert.ErrorIs(t, err, checkout.ErrInvalidPaymentMethod)
}

// ===========================
// 狀態轉換測試
// ===========================

// Test 3: MarkCompleted 發布結帳完成事件
func TestTransaction_MarkCompleted_PublishesEvent(t *testing.T) {
	// Arrange
	tx, _ := checkout.NewTransaction(
		store.NewStoreID(), checkout.NewStaffID(), buildCart(t), checkout.NoDiscount(),
		checkout.PaymentCash, nil, loyalty.ZeroPoints(), loyalty.ZeroPoints(), 1, nil,
	)

	// Act
	err := tx.MarkCompleted()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, checkout.StatusCompleted, tx.Status())

	events := tx.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "checkout.completed", events[0].EventType())
}

// Test 4: 終態後不允許再次轉換
func TestTransaction_TerminalStatus_RejectsFurtherTransitions(t *testing.T) {
	// Arrange
	tx, _ := checkout.NewTransaction(
		store.NewStoreID(), checkout.NewStaffID(), buildCart(t), checkout.NoDiscount(),
		checkout.PaymentCash, nil, loyalty.ZeroPoints(), loyalty.ZeroPoints(), 1, nil,
	)
	require.NoError(t, tx.MarkCompleted())

	// Act
	err := tx.MarkCompleted()

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrInvalidStatusTransition)
}

// Test 5: MarkPaidAndCleared 必須關聯桌位
func TestTransaction_MarkPaidAndCleared_WithoutTable_ReturnsError(t *testing.T) {
	// Arrange
	tx, _ := checkout.NewTransaction(
		store.NewStoreID(), checkout.NewStaffID(), buildCart(t), checkout.NoDiscount(),
		checkout.PaymentCash, nil, loyalty.ZeroPoints(), loyalty.ZeroPoints(), 1, nil,
	)

	// Act
	err := tx.MarkPaidAndCleared()

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrInvalidStatusTransition)
}

// Test 6: MarkPaidAndCleared 桌位結帳終態
func TestTransaction_MarkPaidAndCleared_WithTable_Success(t *testing.T) {
	// Arrange
	tableID := tables.NewTableID()
	tx, _ := checkout.NewTransaction(
		store.NewStoreID(), checkout.NewStaffID(), buildCart(t), checkout.NoDiscount(),
		checkout.PaymentCash, nil, loyalty.ZeroPoints(), loyalty.ZeroPoints(), 1, &tableID,
	)

	// Act
	err := tx.MarkPaidAndCleared()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, checkout.StatusPaidAndCleared, tx.Status())
	assert.True(t, tx.Status().IsTerminal())
}

// ===========================
// 聚合重建測試
// ===========================

// Test 7: ReconstructTransaction 負數總額（損壞資料）
func TestReconstructTransaction_NegativeTotal_ReturnsError(t *testing.T) {
	// Arrange
	tx, _ := checkout.NewTransaction(
		store.NewStoreID(), checkout.NewStaffID(), buildCart(t), checkout.NoDiscount(),
		checkout.PaymentCash, nil, loyalty.ZeroPoints(), loyalty.ZeroPoints(), 1, nil,
	)

	// Act
	rebuilt, err := checkout.ReconstructTransaction(
		tx.TransactionID(), tx.StoreID(), nil, tx.StaffID(), nil,
		tx.ReceiptNumber(), tx.Lines(), tx.Subtotal(), tx.DiscountAmount(),
		decimal.NewFromInt(-1), tx.PaymentMethod(), 0, 0,
		checkout.StatusCompleted, tx.CreatedAt(),
	)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, rebuilt)
	assert.ErrorIs(t, err, checkout.ErrCorruptedTransaction)
}
