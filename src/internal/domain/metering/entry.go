package metering

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/store"
)

// ===========================
// UsageLedgerEntry 用量帳目
// ===========================

// EntryDirection 帳目方向
type EntryDirection string

const (
	// DirectionDebit 扣款（AI 功能計費）
	DirectionDebit EntryDirection = "debit"
	// DirectionCredit 退款（失敗補償 / 充值）
	DirectionCredit EntryDirection = "credit"
)

// UsageLedgerEntry 用量帳目（append-only）
//
// 每筆對 tokenBalance 的扣款/退款對應一筆帳目。
//
// 冪等性設計：
// 一次計費調用的扣款與其補償共用同一個 correlationID；
// (correlation_id, direction) 的唯一約束保證：
// - 同一筆扣款的補償最多退款一次（重試安全）
// - 補償流程先查帳目是否存在，存在即跳過（在同一原子提交內檢查）
//
// 退款必須走帶方向的帳目，不允許以負數金額調用扣款路徑。
type UsageLedgerEntry struct {
	entryID       EntryID
	storeID       store.StoreID
	feature       string
	correlationID CorrelationID
	direction     EntryDirection
	amount        store.TokenAmount
	reason        string
	createdAt     time.Time
}

// NewDebitEntry 創建扣款帳目
func NewDebitEntry(
	storeID store.StoreID,
	feature string,
	correlationID CorrelationID,
	amount store.TokenAmount,
	reason string,
) (*UsageLedgerEntry, error) {
	return newEntry(storeID, feature, correlationID, DirectionDebit, amount, reason)
}

// NewCreditEntry 創建退款帳目（補償或充值）
func NewCreditEntry(
	storeID store.StoreID,
	feature string,
	correlationID CorrelationID,
	amount store.TokenAmount,
	reason string,
) (*UsageLedgerEntry, error) {
	return newEntry(storeID, feature, correlationID, DirectionCredit, amount, reason)
}

func newEntry(
	storeID store.StoreID,
	feature string,
	correlationID CorrelationID,
	direction EntryDirection,
	amount store.TokenAmount,
	reason string,
) (*UsageLedgerEntry, error) {
	if storeID.IsEmpty() {
		return nil, store.ErrInvalidStoreID.WithContext(
			"reason", "storeID cannot be empty",
		)
	}
	if feature == "" {
		return nil, ErrInvalidFeature
	}
	if correlationID.IsEmpty() {
		return nil, ErrInvalidCorrelationID.WithContext(
			"reason", "correlationID cannot be empty",
		)
	}

	return &UsageLedgerEntry{
		entryID:       NewEntryID(),
		storeID:       storeID,
		feature:       feature,
		correlationID: correlationID,
		direction:     direction,
		amount:        amount,
		reason:        reason,
		createdAt:     time.Now(),
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// EntryID 獲取帳目 ID
func (e *UsageLedgerEntry) EntryID() EntryID { return e.entryID }

// StoreID 獲取店家 ID
func (e *UsageLedgerEntry) StoreID() store.StoreID { return e.storeID }

// Feature 獲取 AI 功能名稱
func (e *UsageLedgerEntry) Feature() string { return e.feature }

// CorrelationID 獲取計費關聯 ID
func (e *UsageLedgerEntry) CorrelationID() CorrelationID { return e.correlationID }

// Direction 獲取帳目方向
func (e *UsageLedgerEntry) Direction() EntryDirection { return e.direction }

// Amount 獲取金額（永遠為正數，方向由 Direction 表達）
func (e *UsageLedgerEntry) Amount() store.TokenAmount { return e.amount }

// Reason 獲取原因
func (e *UsageLedgerEntry) Reason() string { return e.reason }

// CreatedAt 獲取創建時間
func (e *UsageLedgerEntry) CreatedAt() time.Time { return e.createdAt }

// ReconstructUsageLedgerEntry 從持久化存儲重建帳目（僅供 Infrastructure Layer 使用）
func ReconstructUsageLedgerEntry(
	entryID EntryID,
	storeID store.StoreID,
	feature string,
	correlationID CorrelationID,
	direction EntryDirection,
	amount store.TokenAmount,
	reason string,
	createdAt time.Time,
) *UsageLedgerEntry {
	return &UsageLedgerEntry{
		entryID:       entryID,
		storeID:       storeID,
		feature:       feature,
		correlationID: correlationID,
		direction:     direction,
		amount:        amount,
		reason:        reason,
		createdAt:     createdAt,
	}
}
