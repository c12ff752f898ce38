package persistence

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/metering"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
)

// ===========================
// Metering GORM Models 與轉換函數
// ===========================

// UsageEntryModel GORM 用量帳目模型（append-only）
// (correlation_id, direction) 唯一約束是補償冪等性的落地點：
// 同一筆扣款的退款在資料庫層面最多成立一次
type UsageEntryModel struct {
	ID            string          `gorm:"type:uuid;primary_key"`
	StoreID       string          `gorm:"type:uuid;index;not null"`
	Feature       string          `gorm:"not null"`
	CorrelationID string          `gorm:"type:uuid;not null;uniqueIndex:idx_usage_correlation_direction"`
	Direction     string          `gorm:"not null;uniqueIndex:idx_usage_correlation_direction"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null"`
	Reason        string          `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"not null;index"`
}

// TableName 指定表名
func (UsageEntryModel) TableName() string {
	return "usage_ledger_entries"
}

// usageEntryToDomain 將 GORM Model 轉換為 Domain 帳目
func usageEntryToDomain(model *UsageEntryModel) (*metering.UsageLedgerEntry, error) {
	entryID, err := metering.EntryIDFromString(model.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := store.StoreIDFromString(model.StoreID)
	if err != nil {
		return nil, err
	}
	correlationID, err := metering.CorrelationIDFromString(model.CorrelationID)
	if err != nil {
		return nil, err
	}
	amount, err := store.NewTokenAmount(model.Amount)
	if err != nil {
		return nil, err
	}

	return metering.ReconstructUsageLedgerEntry(
		entryID,
		storeID,
		model.Feature,
		correlationID,
		metering.EntryDirection(model.Direction),
		amount,
		model.Reason,
		model.CreatedAt,
	), nil
}

// usageEntryToGORM 將 Domain 帳目轉換為 GORM Model
func usageEntryToGORM(e *metering.UsageLedgerEntry) *UsageEntryModel {
	return &UsageEntryModel{
		ID:            e.EntryID().String(),
		StoreID:       e.StoreID().String(),
		Feature:       e.Feature(),
		CorrelationID: e.CorrelationID().String(),
		Direction:     string(e.Direction()),
		Amount:        e.Amount().Value(),
		Reason:        e.Reason(),
		CreatedAt:     e.CreatedAt(),
	}
}

// SessionModel GORM 計費時段模型
// (store_id, feature) 唯一：一個店家對一個功能最多一個時段列，
// 到期後原地續期而非新增
type SessionModel struct {
	ID        string          `gorm:"type:uuid;primary_key"`
	StoreID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_session_store_feature"`
	Feature   string          `gorm:"not null;uniqueIndex:idx_session_store_feature"`
	Fee       decimal.Decimal `gorm:"type:numeric;not null"`
	StartedAt time.Time       `gorm:"not null"`
	ExpiresAt time.Time       `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	Version   int             `gorm:"not null;default:0"`
}

// TableName 指定表名
func (SessionModel) TableName() string {
	return "metering_sessions"
}

// sessionToDomain 將 GORM Model 轉換為 Domain 聚合根
func sessionToDomain(model *SessionModel) (*metering.Session, error) {
	sessionID, err := metering.SessionIDFromString(model.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := store.StoreIDFromString(model.StoreID)
	if err != nil {
		return nil, err
	}
	fee, err := store.NewTokenAmount(model.Fee)
	if err != nil {
		return nil, err
	}

	return metering.ReconstructSession(
		sessionID,
		storeID,
		model.Feature,
		fee,
		model.StartedAt,
		model.ExpiresAt,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
}

// sessionToGORM 將 Domain 聚合根轉換為 GORM Model
func sessionToGORM(s *metering.Session) *SessionModel {
	return &SessionModel{
		ID:        s.SessionID().String(),
		StoreID:   s.StoreID().String(),
		Feature:   s.Feature(),
		Fee:       s.Fee().Value(),
		StartedAt: s.StartedAt(),
		ExpiresAt: s.ExpiresAt(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
		Version:   s.Version(),
	}
}
