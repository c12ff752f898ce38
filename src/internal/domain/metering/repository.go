package metering

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
)

// UsageLedgerRepository 用量帳目倉儲介面（append-only）
//
// 冪等契約：(correlation_id, direction) 唯一。
// 唯一約束違反映射為 shared.ErrConflict：AtomicManager 重試後
// 補償流程會在提交內先查到既有帳目並跳過，不可能重複退款。
type UsageLedgerRepository interface {
	// Append 追加一筆帳目
	Append(ctx shared.TransactionContext, entry *UsageLedgerEntry) error

	// FindByCorrelation 根據關聯 ID 與方向查找帳目
	// 返回：找到的帳目，或 ErrEntryNotFound
	FindByCorrelation(ctx shared.TransactionContext, correlationID CorrelationID, direction EntryDirection) (*UsageLedgerEntry, error)

	// FindByStore 查找店家的帳目（按創建時間降序，limit <= 0 表示不限制）
	FindByStore(ctx shared.TransactionContext, storeID store.StoreID, limit int) ([]*UsageLedgerEntry, error)
}

// SessionRepository 計費時段倉儲介面
//
// 唯一契約：(store_id, feature) 唯一（一個店家對一個功能最多一個時段列）。
// Save 的唯一約束違反與 Update 的版本不匹配都映射為 shared.ErrConflict。
type SessionRepository interface {
	// Save 保存新計費時段
	Save(ctx shared.TransactionContext, session *Session) error

	// FindByStoreAndFeature 查找店家對指定功能的時段（不論是否過期）
	// 返回：找到的時段，或 ErrSessionNotFound
	FindByStoreAndFeature(ctx shared.TransactionContext, storeID store.StoreID, feature string) (*Session, error)

	// Update 更新計費時段（CAS：版本不匹配返回 shared.ErrConflict）
	Update(ctx shared.TransactionContext, session *Session) error
}
