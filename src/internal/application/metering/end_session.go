package metering

import (
	"context"

	"github.com/jackyeh168/pos_core/src/internal/domain/metering"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"go.uber.org/zap"
)

// ===========================
// UC-303: EndSession Use Case
// ===========================

// EndSessionCommand 結束時段指令（Input DTO）
type EndSessionCommand struct {
	StoreID string
	Feature string
}

// EndSessionUseCase 結束時段 Use Case 接口
// 主動結束計費時段，不退款；下一次 EnsureSession 將重新付費
type EndSessionUseCase interface {
	Execute(ctx context.Context, cmd EndSessionCommand) error
}

// EndSessionUseCaseImpl 結束時段 Use Case 實作
type EndSessionUseCaseImpl struct {
	logger      *zap.Logger
	atomic      shared.AtomicManager
	sessionRepo metering.SessionRepository
}

// NewEndSessionUseCase 創建 EndSessionUseCase 實例
func NewEndSessionUseCase(
	logger *zap.Logger,
	atomic shared.AtomicManager,
	sessionRepo metering.SessionRepository,
) EndSessionUseCase {
	return &EndSessionUseCaseImpl{
		logger:      logger,
		atomic:      atomic,
		sessionRepo: sessionRepo,
	}
}

// Execute 執行結束時段 Use Case
func (uc *EndSessionUseCaseImpl) Execute(ctx context.Context, cmd EndSessionCommand) error {
	storeID, err := store.StoreIDFromString(cmd.StoreID)
	if err != nil {
		return err
	}
	if cmd.Feature == "" {
		return metering.ErrInvalidFeature
	}

	err = uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		session, err := uc.sessionRepo.FindByStoreAndFeature(tc, storeID, cmd.Feature)
		if err != nil {
			return err
		}
		session.End()
		return uc.sessionRepo.Update(tc, session)
	})
	if err != nil {
		return err
	}

	uc.logger.Info("session ended",
		zap.String("store_id", cmd.StoreID),
		zap.String("feature", cmd.Feature),
	)
	return nil
}
