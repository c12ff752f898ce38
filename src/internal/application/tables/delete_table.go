package tables

import (
	"context"

	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"go.uber.org/zap"
)

// ===========================
// UC-204: DeleteTable Use Case
// ===========================

// DeleteTableCommand 刪除桌位指令（Input DTO）
type DeleteTableCommand struct {
	TableID string
}

// DeleteTableUseCase 刪除桌位 Use Case 接口
// 業務規則：只允許刪除沒有進行中訂單的桌位
type DeleteTableUseCase interface {
	Execute(ctx context.Context, cmd DeleteTableCommand) error
}

// DeleteTableUseCaseImpl 刪除桌位 Use Case 實作
type DeleteTableUseCaseImpl struct {
	logger    *zap.Logger
	atomic    shared.AtomicManager
	tableRepo tables.TableRepository
}

// NewDeleteTableUseCase 創建 DeleteTableUseCase 實例
func NewDeleteTableUseCase(
	logger *zap.Logger,
	atomic shared.AtomicManager,
	tableRepo tables.TableRepository,
) DeleteTableUseCase {
	return &DeleteTableUseCaseImpl{
		logger:    logger,
		atomic:    atomic,
		tableRepo: tableRepo,
	}
}

// Execute 執行刪除桌位 Use Case
//
// 檢查與刪除在同一原子提交內：並發開單會推進版本號，
// 使「檢查後刪除」不可能刪掉剛開單的桌位。
func (uc *DeleteTableUseCaseImpl) Execute(ctx context.Context, cmd DeleteTableCommand) error {
	tableID, err := tables.TableIDFromString(cmd.TableID)
	if err != nil {
		return err
	}

	err = uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		t, err := uc.tableRepo.FindByID(tc, tableID)
		if err != nil {
			return err
		}
		if err := t.EnsureDeletable(); err != nil {
			return err
		}
		// 刪除前空寫一次：版本 CAS 把刪除與並發開單序列化
		if err := uc.tableRepo.Update(tc, t); err != nil {
			return err
		}
		return uc.tableRepo.Delete(tc, tableID)
	})
	if err != nil {
		return err
	}

	uc.logger.Info("table deleted", zap.String("table_id", cmd.TableID))
	return nil
}
