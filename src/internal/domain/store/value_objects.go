package store

import (
	"github.com/shopspring/decimal"
)

// ===========================
// TokenAmount 代幣數量值對象
// ===========================

// TokenAmount 代幣數量值對象（預付餘額與收費金額共用）
//
// 設計原則：值對象不可變、自我驗證
//
// 使用 decimal 定點數表示，避免貨幣運算的浮點漂移。
// 建構約束：數量必須 >= 0（補償信用也用正數，方向另行表達）
type TokenAmount struct {
	value decimal.Decimal
}

// NewTokenAmount 建構函數（checked 版本）
func NewTokenAmount(value decimal.Decimal) (TokenAmount, error) {
	if value.IsNegative() {
		return TokenAmount{}, ErrNegativeTokenAmount.WithContext(
			"value", value.String(),
		)
	}
	return TokenAmount{value: value}, nil
}

// NewTokenAmountFromInt 從整數建構代幣數量
func NewTokenAmountFromInt(value int64) (TokenAmount, error) {
	return NewTokenAmount(decimal.NewFromInt(value))
}

// ZeroTokenAmount 零代幣
func ZeroTokenAmount() TokenAmount {
	return TokenAmount{value: decimal.Zero}
}

// newTokenAmountUnchecked 內部建構函數（unchecked 版本）
// 僅供內部使用，當我們確定值有效時使用
//
// 前提條件：調用者必須保證 value >= 0
func newTokenAmountUnchecked(value decimal.Decimal) TokenAmount {
	return TokenAmount{value: value}
}

// Value 獲取代幣數量
func (t TokenAmount) Value() decimal.Decimal {
	return t.value
}

// Add 相加（返回新的 TokenAmount，保持不變性）
func (t TokenAmount) Add(other TokenAmount) TokenAmount {
	return newTokenAmountUnchecked(t.value.Add(other.value))
}

// Subtract 相減（返回新的 TokenAmount）
// 業務規則：不能扣除超過當前數量的代幣
func (t TokenAmount) Subtract(other TokenAmount) (TokenAmount, error) {
	if t.value.LessThan(other.value) {
		return TokenAmount{}, ErrInsufficientTokenBalance.WithContext(
			"available", t.value.String(),
			"requested", other.value.String(),
		)
	}
	return newTokenAmountUnchecked(t.value.Sub(other.value)), nil
}

// Equals 比較兩個 TokenAmount 是否相等
func (t TokenAmount) Equals(other TokenAmount) bool {
	return t.value.Equal(other.value)
}

// GreaterThanOrEqual 判斷是否大於等於另一個 TokenAmount
func (t TokenAmount) GreaterThanOrEqual(other TokenAmount) bool {
	return t.value.GreaterThanOrEqual(other.value)
}

// IsZero 判斷是否為零
func (t TokenAmount) IsZero() bool {
	return t.value.IsZero()
}

// String 字串表示
func (t TokenAmount) String() string {
	return t.value.String()
}
