package tables

import (
	"context"

	appcheckout "github.com/jackyeh168/pos_core/src/internal/application/checkout"
	"go.uber.org/zap"
)

// ===========================
// UC-203: ClearTable Use Case
// ===========================

// ClearTableCommand 清桌結帳指令（Input DTO）
//
// 清桌就是結帳：被清除訂單的行項目構成交易內容，
// ExtraLines 允許在結帳時追加項目（如服務費）。
type ClearTableCommand struct {
	StoreID        string
	StaffID        string
	TableID        string
	ExtraLines     []appcheckout.CartLineInput
	Discount       appcheckout.DiscountInput
	PaymentMethod  string
	CustomerID     string // 可選
	PointsToRedeem int
	ConversionRate int
}

// ClearTableUseCase 清桌結帳 Use Case 接口
//
// 委派給結帳流程：清桌（Occupied → Available、清除訂單）與
// 庫存扣減、積分結算、交易記錄創建在同一個原子提交內完成，
// 交易終態為 PaidAndCleared。這是清除進行中訂單的唯一路徑。
type ClearTableUseCase interface {
	Execute(ctx context.Context, cmd ClearTableCommand) (*appcheckout.ProcessCheckoutResult, error)
}

// ClearTableUseCaseImpl 清桌結帳 Use Case 實作
type ClearTableUseCaseImpl struct {
	logger   *zap.Logger
	checkout appcheckout.ProcessCheckoutUseCase
}

// NewClearTableUseCase 創建 ClearTableUseCase 實例
func NewClearTableUseCase(
	logger *zap.Logger,
	checkoutUC appcheckout.ProcessCheckoutUseCase,
) ClearTableUseCase {
	return &ClearTableUseCaseImpl{
		logger:   logger,
		checkout: checkoutUC,
	}
}

// Execute 執行清桌結帳 Use Case
func (uc *ClearTableUseCaseImpl) Execute(ctx context.Context, cmd ClearTableCommand) (*appcheckout.ProcessCheckoutResult, error) {
	result, err := uc.checkout.Execute(ctx, appcheckout.ProcessCheckoutCommand{
		StoreID:        cmd.StoreID,
		StaffID:        cmd.StaffID,
		Lines:          cmd.ExtraLines,
		Discount:       cmd.Discount,
		PaymentMethod:  cmd.PaymentMethod,
		CustomerID:     cmd.CustomerID,
		PointsToRedeem: cmd.PointsToRedeem,
		TableID:        cmd.TableID,
		ConversionRate: cmd.ConversionRate,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("table cleared through checkout",
		zap.String("table_id", cmd.TableID),
		zap.String("transaction_id", result.TransactionID),
	)
	return result, nil
}
