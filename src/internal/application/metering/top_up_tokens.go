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
// UC-304: TopUpTokens Use Case
// ===========================

// 充值帳目的 feature 欄位固定值（充值不屬於任何 AI 功能）
const topUpFeature = "top_up"

// TopUpTokensCommand 代幣充值指令（Input DTO）
//
// CorrelationID 可選：空字串時生成新的關聯 ID。
// 調用端重試同一筆充值時帶上原本的關聯 ID，重複充值會被
// (correlation_id, direction) 唯一約束擋下（冪等）。
type TopUpTokensCommand struct {
	StoreID       string
	Amount        decimal.Decimal
	CorrelationID string
}

// TopUpTokensResult 代幣充值結果（Output DTO）
type TopUpTokensResult struct {
	CorrelationID string
	NewBalance    decimal.Decimal
}

// TopUpTokensUseCase 代幣充值 Use Case 接口
// 充值走與計費相同的原子路徑：餘額增加與充值帳目同一提交落地
type TopUpTokensUseCase interface {
	Execute(ctx context.Context, cmd TopUpTokensCommand) (*TopUpTokensResult, error)
}

// TopUpTokensUseCaseImpl 代幣充值 Use Case 實作
type TopUpTokensUseCaseImpl struct {
	logger     *zap.Logger
	atomic     shared.AtomicManager
	storeRepo  store.StoreRepository
	ledgerRepo metering.UsageLedgerRepository
	publisher  shared.EventPublisher
}

// NewTopUpTokensUseCase 創建 TopUpTokensUseCase 實例
func NewTopUpTokensUseCase(
	logger *zap.Logger,
	atomic shared.AtomicManager,
	storeRepo store.StoreRepository,
	ledgerRepo metering.UsageLedgerRepository,
	publisher shared.EventPublisher,
) TopUpTokensUseCase {
	return &TopUpTokensUseCaseImpl{
		logger:     logger,
		atomic:     atomic,
		storeRepo:  storeRepo,
		ledgerRepo: ledgerRepo,
		publisher:  publisher,
	}
}

// Execute 執行代幣充值 Use Case
func (uc *TopUpTokensUseCaseImpl) Execute(ctx context.Context, cmd TopUpTokensCommand) (*TopUpTokensResult, error) {
	storeID, err := store.StoreIDFromString(cmd.StoreID)
	if err != nil {
		return nil, err
	}
	amount, err := store.NewTokenAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	correlationID := metering.NewCorrelationID()
	if cmd.CorrelationID != "" {
		correlationID, err = metering.CorrelationIDFromString(cmd.CorrelationID)
		if err != nil {
			return nil, err
		}
	}

	var theStore *store.Store
	err = uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		s, err := uc.storeRepo.FindByID(tc, storeID)
		if err != nil {
			return err
		}

		// 冪等性：同一關聯 ID 的充值帳目已存在即跳過（重試安全）
		_, err = uc.ledgerRepo.FindByCorrelation(tc, correlationID, metering.DirectionCredit)
		if err == nil {
			theStore = s
			return nil
		}
		if !errors.Is(err, metering.ErrEntryNotFound) {
			return err
		}

		s.CreditTokens(amount, "top up")

		entry, err := metering.NewCreditEntry(storeID, topUpFeature, correlationID, amount, "top up")
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

	if err := uc.publisher.PublishBatch(theStore.PullEvents()); err != nil {
		uc.logger.Warn("failed to publish token events", zap.Error(err))
	}

	uc.logger.Info("tokens topped up",
		zap.String("store_id", cmd.StoreID),
		zap.String("amount", amount.String()),
		zap.String("new_balance", theStore.TokenBalance().String()),
	)

	return &TopUpTokensResult{
		CorrelationID: correlationID.String(),
		NewBalance:    theStore.TokenBalance().Value(),
	}, nil
}
