package loyalty

import (
	"github.com/shopspring/decimal"
)

// ===========================
// PointsCalculationService 領域服務
// ===========================

// PointsCalculationService 積分計算領域服務
//
// 設計原則：
// 1. Domain Service 封裝不屬於任何單一實體/值對象的業務邏輯
// 2. 協調多個值對象（ConversionRate + 金額 → PointsAmount）
// 3. 無狀態（stateless）- 所有數據通過參數傳入，可安全共享
type PointsCalculationService struct{}

// NewPointsCalculationService 建構函數
func NewPointsCalculationService() *PointsCalculationService {
	return &PointsCalculationService{}
}

// CalculateFromAmount 根據消費金額和轉換率計算積分
//
// 業務規則：
// - 積分 = floor(金額 / 轉換率)
// - 使用向下取整（消費 9999 元、轉換率 10000 時得 0 點）
// - 負數金額返回 0 積分（防禦性編程）
//
// 使用 decimal 確保金額運算精確，最終積分為整數。
func (s *PointsCalculationService) CalculateFromAmount(
	amount decimal.Decimal,
	rate ConversionRate,
) (PointsAmount, error) {
	rateValue := decimal.NewFromInt(int64(rate.Value()))

	pointsValue := amount.Div(rateValue).Floor().IntPart()
	if pointsValue < 0 {
		pointsValue = 0
	}

	return NewPointsAmount(int(pointsValue))
}
