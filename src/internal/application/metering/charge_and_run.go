package metering

import (
	"context"
	"errors"

	"github.com/jackyeh168/pos_core/src/internal/domain/metering"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ===========================
// UC-301: ChargeAndRun Use Case
// ===========================

// ChargeAndRunCommand 按次計費指令（Input DTO）
//
// CorrelationID 可選：空字串時生成新的關聯 ID。
// 調用端重試同一次計費時應帶上原本的關聯 ID：
// 已提交的扣款會被重用（不重複扣款），補償也保持恰好一次。
type ChargeAndRunCommand struct {
	StoreID       string
	Feature       string
	Fee           decimal.Decimal
	CorrelationID string
}

// ChargeAndRunResult 按次計費結果（Output DTO）
type ChargeAndRunResult struct {
	CorrelationID string
	Compensated   bool // 被計費操作失敗、已退款
}

// MeteredOperation 被計費的 AI 操作
// AI 流程本身（prompt、模型選擇）是範圍外的外部協作者，以函數注入
type MeteredOperation func(ctx context.Context) error

// ChargeAndRunUseCase 按次計費 Use Case 接口
//
// 語義：
// 1. 原子地檢查 tokenBalance >= fee 並扣款（附帶扣款帳目）
// 2. 執行被計費操作
// 3. 操作失敗（錯誤 / 超時 / 取消）時恰好一次補償退款，
//    然後原樣浮出操作的錯誤
//
// 失敗語義：
// - 餘額不足：終態錯誤，不執行操作、不重試
// - 操作失敗：補償退款恰好一次：絕不為零（資金靜默流失），
//   也絕不超過一次（免費代幣）；冪等性由 (correlation_id, direction)
//   唯一約束保證
// - 扣款已提交後的取消：補償路徑仍然執行（不繼承調用者的取消）
type ChargeAndRunUseCase interface {
	Execute(ctx context.Context, cmd ChargeAndRunCommand, op MeteredOperation) (*ChargeAndRunResult, error)
}

// ===========================
// ChargeAndRunUseCaseImpl
// ===========================

// ChargeAndRunUseCaseImpl 按次計費 Use Case 實作
type ChargeAndRunUseCaseImpl struct {
	logger     *zap.Logger
	atomic     shared.AtomicManager
	storeRepo  store.StoreRepository
	ledgerRepo metering.UsageLedgerRepository
	publisher  shared.EventPublisher
}

// NewChargeAndRunUseCase 創建 ChargeAndRunUseCase 實例
func NewChargeAndRunUseCase(
	logger *zap.Logger,
	atomic shared.AtomicManager,
	storeRepo store.StoreRepository,
	ledgerRepo metering.UsageLedgerRepository,
	publisher shared.EventPublisher,
) ChargeAndRunUseCase {
	return &ChargeAndRunUseCaseImpl{
		logger:     logger,
		atomic:     atomic,
		storeRepo:  storeRepo,
		ledgerRepo: ledgerRepo,
		publisher:  publisher,
	}
}

// Execute 執行按次計費 Use Case
func (uc *ChargeAndRunUseCaseImpl) Execute(ctx context.Context, cmd ChargeAndRunCommand, op MeteredOperation) (*ChargeAndRunResult, error) {
	// Step 1: 驗證輸入
	storeID, err := store.StoreIDFromString(cmd.StoreID)
	if err != nil {
		return nil, err
	}
	fee, err := store.NewTokenAmount(cmd.Fee)
	if err != nil {
		return nil, err
	}
	if cmd.Feature == "" {
		return nil, metering.ErrInvalidFeature
	}

	correlationID := metering.NewCorrelationID()
	if cmd.CorrelationID != "" {
		correlationID, err = metering.CorrelationIDFromString(cmd.CorrelationID)
		if err != nil {
			return nil, err
		}
	}

	// Step 2: 原子扣款（check-and-debit + 扣款帳目）
	// 同一關聯 ID 的扣款已存在時直接重用（調用端重試安全）
	var theStore *store.Store
	err = uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		theStore = nil

		if _, err := uc.ledgerRepo.FindByCorrelation(tc, correlationID, metering.DirectionDebit); err == nil {
			return nil // 扣款已提交過，跳過
		} else if !errors.Is(err, metering.ErrEntryNotFound) {
			return err
		}

		s, err := uc.storeRepo.FindByID(tc, storeID)
		if err != nil {
			return err
		}
		if err := s.DebitTokens(fee, "metered call: "+cmd.Feature); err != nil {
			return err
		}

		entry, err := metering.NewDebitEntry(storeID, cmd.Feature, correlationID, fee, "per-call fee")
		if err != nil {
			return err
		}
		if err := uc.ledgerRepo.Append(tc, entry); err != nil {
			return err
		}

		theStore = s
		return uc.storeRepo.Update(tc, s)
	})
	if err != nil {
		return nil, err
	}
	uc.publishStoreEvents(theStore)

	// Step 3: 執行被計費操作
	opErr := op(ctx)
	if opErr == nil {
		return &ChargeAndRunResult{
			CorrelationID: correlationID.String(),
			Compensated:   false,
		}, nil
	}

	// Step 4: 補償退款（恰好一次），然後浮出操作的原始錯誤
	// 取消的調用也必須補償：不繼承調用者的取消
	if err := uc.compensate(context.WithoutCancel(ctx), storeID, cmd.Feature, correlationID, fee); err != nil {
		// 退款未落地：帳目缺口可由同一關聯 ID 的補償重放補上
		uc.logger.Error("compensation failed after metered operation error",
			zap.String("store_id", cmd.StoreID),
			zap.String("correlation_id", correlationID.String()),
			zap.NamedError("operation_error", opErr),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("metered operation failed, fee compensated",
		zap.String("store_id", cmd.StoreID),
		zap.String("feature", cmd.Feature),
		zap.String("correlation_id", correlationID.String()),
		zap.Error(opErr),
	)
	return &ChargeAndRunResult{
		CorrelationID: correlationID.String(),
		Compensated:   true,
	}, opErr
}

// compensate 補償退款
//
// 冪等：同一關聯 ID 的退款帳目已存在時跳過（提交內檢查 +
// (correlation_id, direction) 唯一約束雙重保證），重放不可能重複退款。
func (uc *ChargeAndRunUseCaseImpl) compensate(
	ctx context.Context,
	storeID store.StoreID,
	feature string,
	correlationID metering.CorrelationID,
	fee store.TokenAmount,
) error {
	var theStore *store.Store
	err := uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		theStore = nil

		if _, err := uc.ledgerRepo.FindByCorrelation(tc, correlationID, metering.DirectionCredit); err == nil {
			return nil // 已補償過
		} else if !errors.Is(err, metering.ErrEntryNotFound) {
			return err
		}

		s, err := uc.storeRepo.FindByID(tc, storeID)
		if err != nil {
			return err
		}
		s.CreditTokens(fee, "compensation: "+feature)

		entry, err := metering.NewCreditEntry(storeID, feature, correlationID, fee, "operation failed")
		if err != nil {
			return err
		}
		if err := uc.ledgerRepo.Append(tc, entry); err != nil {
			return err
		}

		theStore = s
		return uc.storeRepo.Update(tc, s)
	})
	if err != nil {
		return err
	}
	uc.publishStoreEvents(theStore)
	return nil
}

func (uc *ChargeAndRunUseCaseImpl) publishStoreEvents(s *store.Store) {
	if s == nil {
		return
	}
	if err := uc.publisher.PublishBatch(s.PullEvents()); err != nil {
		uc.logger.Warn("failed to publish token events", zap.Error(err))
	}
}
