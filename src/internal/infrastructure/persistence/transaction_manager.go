package persistence

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================
// GORM AtomicManager 實作
// ===========================

// 衝突重試參數
//
// 退避使用抖動（jitter）避免多個衝突者同步重試再次相撞；
// 次數有上限，耗盡後把衝突以 ErrBusy 浮出給調用端。
const (
	maxAttempts      = 5
	baseBackoff      = 4 * time.Millisecond
	backoffJitterCap = 8 * time.Millisecond
)

// GORMAtomicManager GORM 實作的原子提交管理器
//
// 實現 shared.AtomicManager 的契約：
// - 全有或全無：fn 在單一資料庫事務中執行，錯誤 / panic 時回滾
//   （GORM 的 Transaction 在 panic 時回滾後讓 panic 繼續傳播）
// - 衝突透明重試：fn 返回 ErrConflict（樂觀鎖 CAS 失敗或唯一約束
//   競爭）時，以抖動退避重新執行整個 fn，最多 maxAttempts 次
// - 領域錯誤直接中止：非 Conflict 錯誤回滾後原樣返回，不重試
// - 取消與超時：事務綁定 ctx（GORM WithContext），重試間隙也檢查 ctx
type GORMAtomicManager struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGORMAtomicManager 創建 GORM 原子提交管理器
func NewGORMAtomicManager(logger *zap.Logger, db *gorm.DB) shared.AtomicManager {
	return &GORMAtomicManager{db: db, logger: logger}
}

// InAtomic 在單一原子提交中執行 fn，衝突時透明重試
func (m *GORMAtomicManager) InAtomic(ctx context.Context, fn func(tc shared.TransactionContext) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&gormTransactionContext{db: tx})
		})
		if err == nil {
			return nil
		}

		if !isConflict(err) {
			return err
		}
		lastErr = err

		if attempt < maxAttempts {
			backoff := time.Duration(attempt)*baseBackoff + time.Duration(rand.Int63n(int64(backoffJitterCap)))
			m.logger.Debug("atomic commit conflict, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	m.logger.Warn("atomic commit retries exhausted", zap.Error(lastErr))
	return shared.ErrBusy.WithContext("attempts", maxAttempts)
}

// isConflict 判斷錯誤是否為可重試的並發衝突
//
// 兩類來源：
// - Repository 的樂觀鎖 CAS 失敗 / 唯一約束競爭（shared.ErrConflict）
// - SQLite 的鎖競爭（"database is locked" / SQLITE_BUSY）：
//   語義上同樣是並發寫入者相撞，整體重試即可
func isConflict(err error) bool {
	if errors.Is(err, shared.ErrConflict) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
