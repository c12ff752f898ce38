package loyalty_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/loyalty"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// Customer 建構測試
// ===========================

// Test 1: NewCustomer 成功建立
func TestNewCustomer_ValidName_Success(t *testing.T) {
	// Act
	customer, err := loyalty.NewCustomer("Budi")

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, customer)
	assert.False(t, customer.CustomerID().IsEmpty())
	assert.Equal(t, 0, customer.AvailablePoints().Value())
	assert.Equal(t, loyalty.TierBronze, customer.Tier())
}

// Test 2: NewCustomer 空名稱
func TestNewCustomer_EmptyName_ReturnsError(t *testing.T) {
	// Act
	customer, err := loyalty.NewCustomer("")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, customer)
	assert.ErrorIs(t, err, loyalty.ErrInvalidCustomerName)
}

// ===========================
// 積分測試
// ===========================

// Test 3: EarnPoints 增加可用積分
func TestCustomer_EarnPoints_IncreasesAvailablePoints(t *testing.T) {
	// Arrange
	customer, _ := loyalty.NewCustomer("Budi")

	// Act
	customer.EarnPoints(mustPoints(t, 15), "tx-1")

	// Assert
	assert.Equal(t, 15, customer.EarnedPoints().Value())
	assert.Equal(t, 15, customer.AvailablePoints().Value())
}

// Test 4: EarnPoints 零積分為 no-op（不發布事件）
func TestCustomer_EarnPoints_ZeroAmount_NoOp(t *testing.T) {
	// Arrange
	customer, _ := loyalty.NewCustomer("Budi")

	// Act
	customer.EarnPoints(loyalty.ZeroPoints(), "tx-1")

	// Assert
	assert.Equal(t, 0, customer.EarnedPoints().Value())
	assert.Empty(t, customer.PullEvents())
}

// Test 5: RedeemPoints 可用積分充足
func TestCustomer_RedeemPoints_SufficientPoints_Success(t *testing.T) {
	// Arrange
	customer, _ := loyalty.NewCustomer("Budi")
	customer.EarnPoints(mustPoints(t, 100), "tx-1")

	// Act
	err := customer.RedeemPoints(mustPoints(t, 40), "checkout")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 100, customer.EarnedPoints().Value())
	assert.Equal(t, 40, customer.UsedPoints().Value())
	assert.Equal(t, 60, customer.AvailablePoints().Value())
}

// Test 6: RedeemPoints 可用積分不足（附帶 available 上下文）
func TestCustomer_RedeemPoints_InsufficientPoints_ReturnsError(t *testing.T) {
	// Arrange
	customer, _ := loyalty.NewCustomer("Budi")
	customer.EarnPoints(mustPoints(t, 10), "tx-1")

	// Act
	err := customer.RedeemPoints(mustPoints(t, 20), "checkout")

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, loyalty.ErrInsufficientPoints)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 10, domainErr.Context["available"])

	// 積分保持原狀
	assert.Equal(t, 10, customer.AvailablePoints().Value())
}

// Test 7: 同一筆結帳先兌換後獲得（netting 行為）
func TestCustomer_RedeemThenEarn_NetsCorrectly(t *testing.T) {
	// Arrange
	customer, _ := loyalty.NewCustomer("Budi")
	customer.EarnPoints(mustPoints(t, 50), "tx-1")

	// Act - 結帳流程先兌換、後按總額獲得
	err := customer.RedeemPoints(mustPoints(t, 30), "checkout")
	require.NoError(t, err)
	customer.EarnPoints(mustPoints(t, 15), "tx-2")

	// Assert - available = 50 - 30 + 15
	assert.Equal(t, 35, customer.AvailablePoints().Value())
}

// ===========================
// 會員等級測試（派生值）
// ===========================

// Test 8: Tier 以累積獲得積分推導
func TestCustomer_Tier_DerivedFromEarnedPoints(t *testing.T) {
	tests := []struct {
		name   string
		earned int
		want   loyalty.MemberTier
	}{
		{"below silver threshold", 499, loyalty.TierBronze},
		{"at silver threshold", 500, loyalty.TierSilver},
		{"below gold threshold", 1999, loyalty.TierSilver},
		{"at gold threshold", 2000, loyalty.TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			customer, _ := loyalty.NewCustomer("Budi")
			customer.EarnPoints(mustPoints(t, tt.earned), "tx-1")

			// Assert - 兌換不影響等級（以累積獲得計）
			require.NoError(t, customer.RedeemPoints(mustPoints(t, tt.earned/2), "checkout"))
			assert.Equal(t, tt.want, customer.Tier())
		})
	}
}

// ===========================
// 聚合重建測試
// ===========================

// Test 9: ReconstructCustomer 驗證 used <= earned 不變條件
func TestReconstructCustomer_UsedExceedsEarned_ReturnsError(t *testing.T) {
	// Arrange
	now := time.Now()

	// Act
	customer, err := loyalty.ReconstructCustomer(
		loyalty.NewCustomerID(), "Budi", 10, 20, now, now, 0,
	)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, customer)
	assert.ErrorIs(t, err, loyalty.ErrInvariantViolation)
}

// Test 10: ReconstructCustomer 負數積分（損壞資料）
func TestReconstructCustomer_NegativeEarnedPoints_ReturnsError(t *testing.T) {
	// Arrange
	now := time.Now()

	// Act
	customer, err := loyalty.ReconstructCustomer(
		loyalty.NewCustomerID(), "Budi", -5, 0, now, now, 0,
	)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, customer)
	assert.ErrorIs(t, err, loyalty.ErrCorruptedEarnedPoints)
}

func mustPoints(t *testing.T, value int) loyalty.PointsAmount {
	t.Helper()
	amount, err := loyalty.NewPointsAmount(value)
	require.NoError(t, err)
	return amount
}
