package checkout

import (
	"github.com/shopspring/decimal"
)

// ===========================
// Discount 值對象
// ===========================

// DiscountKind 折扣類型
type DiscountKind string

const (
	// DiscountPercent 百分比折扣（值為 0-100）
	DiscountPercent DiscountKind = "percent"
	// DiscountNominal 固定金額折扣
	DiscountNominal DiscountKind = "nominal"
)

var oneHundred = decimal.NewFromInt(100)

// Discount 折扣值對象
//
// 業務規則：
// - value >= 0（負數折扣為驗證錯誤，在任何原子提交之前拒絕）
// - 折扣金額在總額計算時被 clamp：totalAmount = max(0, subtotal - discountAmount)
type Discount struct {
	kind  DiscountKind
	value decimal.Decimal
}

// NoDiscount 無折扣
func NoDiscount() Discount {
	return Discount{kind: DiscountNominal, value: decimal.Zero}
}

// NewPercentDiscount 創建百分比折扣
func NewPercentDiscount(value decimal.Decimal) (Discount, error) {
	if value.IsNegative() {
		return Discount{}, ErrNegativeDiscount.WithContext("value", value.String())
	}
	if value.GreaterThan(oneHundred) {
		return Discount{}, ErrInvalidDiscountPercent.WithContext("value", value.String())
	}
	return Discount{kind: DiscountPercent, value: value}, nil
}

// NewNominalDiscount 創建固定金額折扣
func NewNominalDiscount(value decimal.Decimal) (Discount, error) {
	if value.IsNegative() {
		return Discount{}, ErrNegativeDiscount.WithContext("value", value.String())
	}
	return Discount{kind: DiscountNominal, value: value}, nil
}

// Kind 獲取折扣類型
func (d Discount) Kind() DiscountKind {
	return d.kind
}

// Value 獲取折扣值
func (d Discount) Value() decimal.Decimal {
	return d.value
}

// AmountFor 計算對指定小計的折扣金額
//
// 業務規則：
// - percent：小計 × 百分比 / 100
// - nominal：固定金額，但不超過小計（clamp，保證 totalAmount >= 0）
func (d Discount) AmountFor(subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.kind {
	case DiscountPercent:
		amount = subtotal.Mul(d.value).Div(oneHundred)
	default:
		amount = d.value
	}

	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}
