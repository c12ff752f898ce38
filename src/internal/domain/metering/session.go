package metering

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/store"
)

// ===========================
// Session 計費時段聚合根
// ===========================

// Session 計費時段（session fee 模式）
//
// 一次性付費覆蓋到期前的多次功能調用。
//
// 業務不變條件：
// - 每個 (store, feature) 同時最多一個有效時段
//   （由資料庫唯一約束 + 原子提交保證，過期時段原地續期而非新增）
// - 並發的 ensureSession 恰好產生一次扣款：
//   「查時段並扣款」是單一原子提交，落敗方衝突重試後
//   重讀發現勝出方創建的時段並直接重用
type Session struct {
	sessionID SessionID
	storeID   store.StoreID
	feature   string
	fee       store.TokenAmount

	startedAt time.Time
	expiresAt time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號
}

// NewSession 創建新計費時段
//
// expiresAt = now + duration；duration 必須為正數
func NewSession(
	storeID store.StoreID,
	feature string,
	fee store.TokenAmount,
	duration time.Duration,
) (*Session, error) {
	if storeID.IsEmpty() {
		return nil, store.ErrInvalidStoreID.WithContext(
			"reason", "storeID cannot be empty",
		)
	}
	if feature == "" {
		return nil, ErrInvalidFeature
	}
	if duration <= 0 {
		return nil, ErrInvalidSessionDuration.WithContext(
			"duration", duration.String(),
		)
	}

	now := time.Now()
	return &Session{
		sessionID: NewSessionID(),
		storeID:   storeID,
		feature:   feature,
		fee:       fee,
		startedAt: now,
		expiresAt: now.Add(duration),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// SessionID 獲取時段 ID
func (s *Session) SessionID() SessionID { return s.sessionID }

// StoreID 獲取店家 ID
func (s *Session) StoreID() store.StoreID { return s.storeID }

// Feature 獲取 AI 功能名稱
func (s *Session) Feature() string { return s.feature }

// Fee 獲取時段費用
func (s *Session) Fee() store.TokenAmount { return s.fee }

// StartedAt 獲取開始時間
func (s *Session) StartedAt() time.Time { return s.startedAt }

// ExpiresAt 獲取到期時間
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// CreatedAt 獲取創建時間
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt 獲取最後更新時間
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// Version 獲取樂觀鎖版本號
func (s *Session) Version() int { return s.version }

// IsActive 判斷在指定時間點是否有效（未到期）
func (s *Session) IsActive(now time.Time) bool {
	return now.Before(s.expiresAt)
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// Renew 續期（到期後重新付費）
//
// 原地續期而非新增：保持 (store, feature) 唯一約束為普通唯一索引。
// 調用者必須在同一原子提交內完成新的扣款。
func (s *Session) Renew(fee store.TokenAmount, duration time.Duration) error {
	if duration <= 0 {
		return ErrInvalidSessionDuration.WithContext(
			"duration", duration.String(),
		)
	}

	now := time.Now()
	s.fee = fee
	s.startedAt = now
	s.expiresAt = now.Add(duration)
	s.updatedAt = now
	return nil
}

// End 主動結束時段（不退款）
// 效果：立即到期；下一次 ensureSession 將重新付費續期
func (s *Session) End() {
	now := time.Now()
	s.expiresAt = now
	s.updatedAt = now
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructSession 從持久化存儲重建聚合根
func ReconstructSession(
	sessionID SessionID,
	storeID store.StoreID,
	feature string,
	fee store.TokenAmount,
	startedAt time.Time,
	expiresAt time.Time,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Session, error) {
	if sessionID.IsEmpty() {
		return nil, ErrInvalidSessionID.WithContext(
			"reason", "invalid session ID in database",
		)
	}
	if feature == "" {
		return nil, ErrInvalidFeature
	}

	return &Session{
		sessionID: sessionID,
		storeID:   storeID,
		feature:   feature,
		fee:       fee,
		startedAt: startedAt,
		expiresAt: expiresAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
	}, nil
}
