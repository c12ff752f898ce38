package tables

import (
	"context"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ===========================
// UC-201: OpenTableOrder Use Case
// ===========================

// OrderLineInput 訂單行項目輸入（Input DTO）
// ProductID 為空字串表示手動（非目錄）項目
type OrderLineInput struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// OpenTableOrderCommand 桌位開單 / 加點指令（Input DTO）
type OpenTableOrderCommand struct {
	TableID string
	Lines   []OrderLineInput
}

// OpenTableOrderResult 桌位開單結果（Output DTO）
type OpenTableOrderResult struct {
	TableID      string
	Status       string
	RunningTotal decimal.Decimal
}

// OpenTableOrderUseCase 桌位開單 Use Case 接口
//
// 業務規則：
// - 桌位無訂單時：開單（Available | Reserved → Occupied）
// - 桌位已 Occupied 時：向進行中訂單追加行項目
// - 行項目不能為空
//
// 開單期間不扣庫存：庫存與積分在清桌結帳時一次性結清。
// 同一桌位的開單 / 加點與並發清桌通過樂觀鎖互斥。
type OpenTableOrderUseCase interface {
	Execute(ctx context.Context, cmd OpenTableOrderCommand) (*OpenTableOrderResult, error)
}

// OpenTableOrderUseCaseImpl 桌位開單 Use Case 實作
type OpenTableOrderUseCaseImpl struct {
	logger    *zap.Logger
	atomic    shared.AtomicManager
	tableRepo tables.TableRepository
}

// NewOpenTableOrderUseCase 創建 OpenTableOrderUseCase 實例
func NewOpenTableOrderUseCase(
	logger *zap.Logger,
	atomic shared.AtomicManager,
	tableRepo tables.TableRepository,
) OpenTableOrderUseCase {
	return &OpenTableOrderUseCaseImpl{
		logger:    logger,
		atomic:    atomic,
		tableRepo: tableRepo,
	}
}

// Execute 執行桌位開單 Use Case
func (uc *OpenTableOrderUseCaseImpl) Execute(ctx context.Context, cmd OpenTableOrderCommand) (*OpenTableOrderResult, error) {
	// Step 1: 驗證輸入並轉換為 Value Object
	tableID, err := tables.TableIDFromString(cmd.TableID)
	if err != nil {
		return nil, err
	}
	if len(cmd.Lines) == 0 {
		return nil, tables.ErrEmptyOrder
	}

	lines := make([]tables.OrderLine, 0, len(cmd.Lines))
	for _, li := range cmd.Lines {
		var productID *catalog.ProductID
		if li.ProductID != "" {
			id, err := catalog.ProductIDFromString(li.ProductID)
			if err != nil {
				return nil, err
			}
			productID = &id
		}
		line, err := tables.NewOrderLine(productID, li.Name, li.Quantity, li.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	// Step 2: 在原子提交中開單或加點
	var theTable *tables.Table
	err = uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		t, err := uc.tableRepo.FindByID(tc, tableID)
		if err != nil {
			return err
		}

		if t.Status() == tables.StatusOccupied {
			err = t.AddToOrder(lines)
		} else {
			err = t.OpenOrder(lines)
		}
		if err != nil {
			return err
		}

		theTable = t
		return uc.tableRepo.Update(tc, t)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("table order updated",
		zap.String("table_id", cmd.TableID),
		zap.String("status", string(theTable.Status())),
		zap.Int("lines_added", len(lines)),
	)

	return &OpenTableOrderResult{
		TableID:      theTable.TableID().String(),
		Status:       string(theTable.Status()),
		RunningTotal: theTable.CurrentOrder().RunningTotal(),
	}, nil
}
