package store

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
)

// ===========================
// Store 聚合根
// ===========================

// Store 店家聚合根
//
// 每個租戶一個 Store 單例，持有該店所有跨請求共享的計數器：
// - tokenBalance：預付代幣餘額（AI 功能計費用，定點數）
// - receiptCounter：單調遞增的收據序號
// - firstTransactionAt：第一筆交易時間（可為空）
//
// 不變條件：
// - tokenBalance >= 0（由 TokenAmount 值對象保證）
// - receiptCounter 單調遞增，只能通過 AllocateReceiptNumber 推進
//
// 並發約束：
// - 只能在 AtomicManager.InAtomic 內修改（樂觀鎖版本號由 Repository 檢查）
// - 任何組件不得在原子提交之外 read-then-write 這些計數器
type Store struct {
	storeID StoreID
	name    string

	tokenBalance       TokenAmount
	receiptCounter     int
	firstTransactionAt *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號（Optimistic Locking）

	events []shared.DomainEvent
}

// NewStore 創建新店家
//
// 業務規則：
// - 初始代幣餘額為 0（通過 TopUp 充值）
// - 收據序號從 0 開始，第一筆交易取得序號 1
func NewStore(name string) (*Store, error) {
	if name == "" {
		return nil, ErrInvalidStoreName
	}

	now := time.Now()
	return &Store{
		storeID:      NewStoreID(),
		name:         name,
		tokenBalance: ZeroTokenAmount(),
		createdAt:    now,
		updatedAt:    now,
		events:       make([]shared.DomainEvent, 0),
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// StoreID 獲取店家 ID
func (s *Store) StoreID() StoreID {
	return s.storeID
}

// Name 獲取店家名稱
func (s *Store) Name() string {
	return s.name
}

// TokenBalance 獲取當前代幣餘額
func (s *Store) TokenBalance() TokenAmount {
	return s.tokenBalance
}

// ReceiptCounter 獲取當前收據序號（最後一次分配的值）
func (s *Store) ReceiptCounter() int {
	return s.receiptCounter
}

// FirstTransactionAt 獲取第一筆交易時間（未有交易時為 nil）
func (s *Store) FirstTransactionAt() *time.Time {
	return s.firstTransactionAt
}

// CreatedAt 獲取創建時間
func (s *Store) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt 獲取最後更新時間
func (s *Store) UpdatedAt() time.Time {
	return s.updatedAt
}

// Version 獲取樂觀鎖版本號（供 Repository CAS 更新使用）
func (s *Store) Version() int {
	return s.version
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// DebitTokens 扣減代幣（AI 功能計費）
//
// 前置條件：tokenBalance >= amount，否則返回 ErrInsufficientTokenBalance
// （終態錯誤，調用端不應重試）
//
// 注意：check-and-debit 的原子性由外層 InAtomic + 樂觀鎖保證，
// 此方法只負責單機語義。
func (s *Store) DebitTokens(amount TokenAmount, reason string) error {
	newBalance, err := s.tokenBalance.Subtract(amount)
	if err != nil {
		return err
	}

	s.tokenBalance = newBalance
	s.updatedAt = time.Now()
	s.addEvent(NewTokensDebitedEvent(s.storeID, amount, reason))
	return nil
}

// CreditTokens 增加代幣（充值或失敗補償）
func (s *Store) CreditTokens(amount TokenAmount, reason string) {
	s.tokenBalance = s.tokenBalance.Add(amount)
	s.updatedAt = time.Now()
	s.addEvent(NewTokensCreditedEvent(s.storeID, amount, reason))
}

// AllocateReceiptNumber 分配下一個收據序號
//
// 業務規則：序號單調遞增、不重複、不留空洞
// （在同一原子提交內分配並落地，提交失敗則序號回滾）
func (s *Store) AllocateReceiptNumber() int {
	s.receiptCounter++
	s.updatedAt = time.Now()
	return s.receiptCounter
}

// RecordTransactionAt 記錄交易時間
// 第一筆交易時設置 firstTransactionAt，之後為 no-op
func (s *Store) RecordTransactionAt(at time.Time) {
	if s.firstTransactionAt == nil {
		t := at
		s.firstTransactionAt = &t
		s.updatedAt = time.Now()
	}
}

// ===========================
// 事件管理
// ===========================

func (s *Store) addEvent(event shared.DomainEvent) {
	s.events = append(s.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
// Repository 持久化成功後由調用者取出發布（只讀取一次）
func (s *Store) PullEvents() []shared.DomainEvent {
	events := s.events
	s.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructStore 從持久化存儲重建聚合根
//
// 與 NewStore 的區別：重建已存在的聚合，不發布事件，保留版本號。
// 即使是從資料庫重建，也必須驗證不變條件，防止損壞資料污染領域層。
func ReconstructStore(
	storeID StoreID,
	name string,
	tokenBalance TokenAmount,
	receiptCounter int,
	firstTransactionAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Store, error) {
	if storeID.IsEmpty() {
		return nil, ErrInvalidStoreID.WithContext(
			"reason", "invalid store ID in database",
		)
	}
	if receiptCounter < 0 {
		return nil, ErrCorruptedTokenBalance.WithContext(
			"reason", "negative receipt counter",
			"receipt_counter", receiptCounter,
		)
	}

	return &Store{
		storeID:            storeID,
		name:               name,
		tokenBalance:       tokenBalance,
		receiptCounter:     receiptCounter,
		firstTransactionAt: firstTransactionAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		version:            version,
		events:             make([]shared.DomainEvent, 0),
	}, nil
}
