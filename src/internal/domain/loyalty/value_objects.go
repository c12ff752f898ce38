package loyalty

// ===========================
// PointsAmount 積分數量值對象
// ===========================

// PointsAmount 積分數量值對象
// 設計原則：值對象不可變、自我驗證
type PointsAmount struct {
	value int
}

// NewPointsAmount 建構函數（checked 版本）
//
// 建構約束：積分數量必須 >= 0（不存在負數積分的概念）
func NewPointsAmount(value int) (PointsAmount, error) {
	if value < 0 {
		return PointsAmount{}, ErrNegativePointsAmount.WithContext("value", value)
	}
	return PointsAmount{value: value}, nil
}

// newPointsAmountUnchecked 內部建構函數（unchecked 版本）
// 僅供內部使用，當我們確定值有效時使用
//
// 前提條件：調用者必須保證 value >= 0
func newPointsAmountUnchecked(value int) PointsAmount {
	return PointsAmount{value: value}
}

// ZeroPoints 零積分
func ZeroPoints() PointsAmount {
	return PointsAmount{}
}

// Value 獲取積分數量
func (p PointsAmount) Value() int {
	return p.value
}

// Add 相加（返回新的 PointsAmount，保持不變性）
//
// 設計假設：單一顧客的積分受業務規則限制，
// 整數溢位在實際業務場景中不會發生
func (p PointsAmount) Add(other PointsAmount) PointsAmount {
	return newPointsAmountUnchecked(p.value + other.value)
}

// Subtract 相減（返回新的 PointsAmount）
// 業務規則：不能扣除超過當前數量的積分
func (p PointsAmount) Subtract(other PointsAmount) (PointsAmount, error) {
	if p.value < other.value {
		return PointsAmount{}, ErrInsufficientPoints.WithContext(
			"available", p.value,
			"requested", other.value,
		)
	}
	return newPointsAmountUnchecked(p.value - other.value), nil
}

// Equals 比較兩個 PointsAmount 是否相等
func (p PointsAmount) Equals(other PointsAmount) bool {
	return p.value == other.value
}

// GreaterThan 判斷是否大於另一個 PointsAmount
func (p PointsAmount) GreaterThan(other PointsAmount) bool {
	return p.value > other.value
}

// LessThan 判斷是否小於另一個 PointsAmount
func (p PointsAmount) LessThan(other PointsAmount) bool {
	return p.value < other.value
}

// IsZero 判斷是否為零
func (p PointsAmount) IsZero() bool {
	return p.value == 0
}

// ===========================
// ConversionRate 轉換率值對象
// ===========================

// ConversionRate 積分轉換率值對象（每 N 元獲得 1 點）
//
// 每店單一轉換率，作為版本化配置值隨每次結帳命令注入，
// 不做任何 ambient 讀取：同一筆結帳從頭到尾使用同一個費率。
type ConversionRate struct {
	value int
}

// NewConversionRate 建構函數
// 建構約束：轉換率必須為正數（除數不能為 0）
func NewConversionRate(value int) (ConversionRate, error) {
	if value <= 0 {
		return ConversionRate{}, ErrInvalidConversionRate.WithContext("value", value)
	}
	return ConversionRate{value: value}, nil
}

// Value 獲取轉換率
func (r ConversionRate) Value() int {
	return r.value
}
