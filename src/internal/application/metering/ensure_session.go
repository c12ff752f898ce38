package metering

import (
	"context"
	"errors"
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/metering"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ===========================
// UC-302: EnsureSession Use Case
// ===========================

// EnsureSessionCommand 時段計費指令（Input DTO）
type EnsureSessionCommand struct {
	StoreID         string
	Feature         string
	Fee             decimal.Decimal
	DurationMinutes int
}

// EnsureSessionResult 時段計費結果（Output DTO）
type EnsureSessionResult struct {
	SessionID string
	ExpiresAt time.Time
	Reused    bool // 重用既有的有效時段（未扣款）
	Renewed   bool // 過期時段已續期（新扣款）
}

// EnsureSessionUseCase 時段計費 Use Case 接口
//
// 語義：(store, feature) 無有效時段時扣款並創建時段
// （expiresAt = now + duration）；有則直接重用，不扣款。
//
// 並發保證：「查時段並扣款」是單一原子提交：兩個並發調用
// 恰好產生一次扣款。落敗方的唯一約束衝突由 AtomicManager
// 透明重試，重讀後發現勝出方的時段並重用。
//
// 過期時段以新扣款原地續期；調用端也可改為 EndSession 結束。
type EnsureSessionUseCase interface {
	Execute(ctx context.Context, cmd EnsureSessionCommand) (*EnsureSessionResult, error)
}

// ===========================
// EnsureSessionUseCaseImpl
// ===========================

// EnsureSessionUseCaseImpl 時段計費 Use Case 實作
type EnsureSessionUseCaseImpl struct {
	logger      *zap.Logger
	atomic      shared.AtomicManager
	storeRepo   store.StoreRepository
	sessionRepo metering.SessionRepository
	ledgerRepo  metering.UsageLedgerRepository
	publisher   shared.EventPublisher
}

// NewEnsureSessionUseCase 創建 EnsureSessionUseCase 實例
func NewEnsureSessionUseCase(
	logger *zap.Logger,
	atomic shared.AtomicManager,
	storeRepo store.StoreRepository,
	sessionRepo metering.SessionRepository,
	ledgerRepo metering.UsageLedgerRepository,
	publisher shared.EventPublisher,
) EnsureSessionUseCase {
	return &EnsureSessionUseCaseImpl{
		logger:      logger,
		atomic:      atomic,
		storeRepo:   storeRepo,
		sessionRepo: sessionRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
	}
}

// Execute 執行時段計費 Use Case
func (uc *EnsureSessionUseCaseImpl) Execute(ctx context.Context, cmd EnsureSessionCommand) (*EnsureSessionResult, error) {
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
	duration := time.Duration(cmd.DurationMinutes) * time.Minute
	if duration <= 0 {
		return nil, metering.ErrInvalidSessionDuration.WithContext(
			"duration_minutes", cmd.DurationMinutes,
		)
	}

	// Step 2: check-session-and-debit 單一原子提交
	var (
		theStore   *store.Store
		theSession *metering.Session
		reused     bool
		renewed    bool
	)
	err = uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		theStore, theSession = nil, nil
		reused, renewed = false, false

		existing, err := uc.sessionRepo.FindByStoreAndFeature(tc, storeID, cmd.Feature)
		switch {
		case err == nil && existing.IsActive(time.Now()):
			// 有效時段：直接重用，不扣款
			theSession = existing
			reused = true
			return nil

		case err == nil:
			// 過期時段：新扣款、原地續期
			s, err := uc.debit(tc, storeID, cmd.Feature, fee, "session renewal")
			if err != nil {
				return err
			}
			if err := existing.Renew(fee, duration); err != nil {
				return err
			}
			if err := uc.sessionRepo.Update(tc, existing); err != nil {
				return err
			}
			theStore, theSession = s, existing
			renewed = true
			return nil

		case errors.Is(err, metering.ErrSessionNotFound):
			// 無時段：扣款並創建
			s, err := uc.debit(tc, storeID, cmd.Feature, fee, "session fee")
			if err != nil {
				return err
			}
			session, err := metering.NewSession(storeID, cmd.Feature, fee, duration)
			if err != nil {
				return err
			}
			// (store_id, feature) 唯一約束：並發創建的落敗方在此
			// 得到 ErrConflict，重試後重讀發現勝出方的時段並重用
			if err := uc.sessionRepo.Save(tc, session); err != nil {
				return err
			}
			theStore, theSession = s, session
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	if theStore != nil {
		if err := uc.publisher.PublishBatch(theStore.PullEvents()); err != nil {
			uc.logger.Warn("failed to publish token events", zap.Error(err))
		}
	}

	uc.logger.Info("session ensured",
		zap.String("store_id", cmd.StoreID),
		zap.String("feature", cmd.Feature),
		zap.String("session_id", theSession.SessionID().String()),
		zap.Bool("reused", reused),
		zap.Bool("renewed", renewed),
	)

	return &EnsureSessionResult{
		SessionID: theSession.SessionID().String(),
		ExpiresAt: theSession.ExpiresAt(),
		Reused:    reused,
		Renewed:   renewed,
	}, nil
}

// debit 扣款並追加扣款帳目，返回被修改的店家聚合
func (uc *EnsureSessionUseCaseImpl) debit(
	tc shared.TransactionContext,
	storeID store.StoreID,
	feature string,
	fee store.TokenAmount,
	reason string,
) (*store.Store, error) {
	s, err := uc.storeRepo.FindByID(tc, storeID)
	if err != nil {
		return nil, err
	}
	if err := s.DebitTokens(fee, "session fee: "+feature); err != nil {
		return nil, err
	}

	entry, err := metering.NewDebitEntry(storeID, feature, metering.NewCorrelationID(), fee, reason)
	if err != nil {
		return nil, err
	}
	if err := uc.ledgerRepo.Append(tc, entry); err != nil {
		return nil, err
	}
	if err := uc.storeRepo.Update(tc, s); err != nil {
		return nil, err
	}
	return s, nil
}
