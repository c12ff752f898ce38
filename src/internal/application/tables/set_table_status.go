package tables

import (
	"context"

	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"go.uber.org/zap"
)

// ===========================
// UC-202: SetTableStatus Use Case
// ===========================

// SetTableStatusCommand 管理員覆寫桌位狀態指令（Input DTO）
type SetTableStatusCommand struct {
	TableID string
	Status  string // "Available" | "Reserved"
}

// SetTableStatusResult 覆寫桌位狀態結果（Output DTO）
type SetTableStatusResult struct {
	TableID string
	Status  string
}

// SetTableStatusUseCase 管理員覆寫桌位狀態 Use Case 接口
//
// 業務規則：
// - 只允許在桌位沒有進行中訂單時覆寫（有訂單必須走結帳清桌，
//   那是唯一同時結清庫存與積分的路徑）
// - 不允許直接設為 Occupied（佔用必須通過開單）
type SetTableStatusUseCase interface {
	Execute(ctx context.Context, cmd SetTableStatusCommand) (*SetTableStatusResult, error)
}

// SetTableStatusUseCaseImpl 覆寫桌位狀態 Use Case 實作
type SetTableStatusUseCaseImpl struct {
	logger    *zap.Logger
	atomic    shared.AtomicManager
	tableRepo tables.TableRepository
}

// NewSetTableStatusUseCase 創建 SetTableStatusUseCase 實例
func NewSetTableStatusUseCase(
	logger *zap.Logger,
	atomic shared.AtomicManager,
	tableRepo tables.TableRepository,
) SetTableStatusUseCase {
	return &SetTableStatusUseCaseImpl{
		logger:    logger,
		atomic:    atomic,
		tableRepo: tableRepo,
	}
}

// Execute 執行覆寫桌位狀態 Use Case
func (uc *SetTableStatusUseCaseImpl) Execute(ctx context.Context, cmd SetTableStatusCommand) (*SetTableStatusResult, error) {
	tableID, err := tables.TableIDFromString(cmd.TableID)
	if err != nil {
		return nil, err
	}
	status, err := tables.NewTableStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	err = uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		t, err := uc.tableRepo.FindByID(tc, tableID)
		if err != nil {
			return err
		}
		if err := t.SetStatus(status); err != nil {
			return err
		}
		return uc.tableRepo.Update(tc, t)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("table status overridden",
		zap.String("table_id", cmd.TableID),
		zap.String("status", cmd.Status),
	)

	return &SetTableStatusResult{
		TableID: cmd.TableID,
		Status:  string(status),
	}, nil
}
