package catalog

// ===========================
// StockQuantity 庫存數量值對象
// ===========================

// StockQuantity 庫存數量值對象
// 建構約束：庫存必須 >= 0（不存在負庫存的概念）
type StockQuantity struct {
	value int
}

// NewStockQuantity 建構函數（checked 版本）
func NewStockQuantity(value int) (StockQuantity, error) {
	if value < 0 {
		return StockQuantity{}, ErrNegativeStock.WithContext("value", value)
	}
	return StockQuantity{value: value}, nil
}

// newStockQuantityUnchecked 內部建構函數
// 前提條件：調用者必須保證 value >= 0
func newStockQuantityUnchecked(value int) StockQuantity {
	return StockQuantity{value: value}
}

// Value 獲取庫存數量
func (q StockQuantity) Value() int {
	return q.value
}

// Decrease 減少庫存（返回新的 StockQuantity）
// 業務規則：不足時返回 ErrInsufficientStock，附帶可用數量
func (q StockQuantity) Decrease(amount int) (StockQuantity, error) {
	if amount <= 0 {
		return StockQuantity{}, ErrInvalidStockQuantity.WithContext("amount", amount)
	}
	if q.value < amount {
		return StockQuantity{}, ErrInsufficientStock.WithContext(
			"available", q.value,
			"requested", amount,
		)
	}
	return newStockQuantityUnchecked(q.value - amount), nil
}

// Increase 增加庫存（進貨 / 退貨回補）
func (q StockQuantity) Increase(amount int) (StockQuantity, error) {
	if amount <= 0 {
		return StockQuantity{}, ErrInvalidStockQuantity.WithContext("amount", amount)
	}
	return newStockQuantityUnchecked(q.value + amount), nil
}

// Equals 比較兩個 StockQuantity 是否相等
func (q StockQuantity) Equals(other StockQuantity) bool {
	return q.value == other.value
}
