package persistence

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
)

// ===========================
// Store GORM Model 與轉換函數
// ===========================

// StoreModel GORM 店家模型
//
// Version 是樂觀鎖版本號：所有共享計數器（代幣餘額、收據序號）
// 的更新都以 WHERE version = ? 做 CAS，衝突由 AtomicManager 重試
type StoreModel struct {
	ID                 string          `gorm:"type:uuid;primary_key"`
	Name               string          `gorm:"not null"`
	TokenBalance       decimal.Decimal `gorm:"type:numeric;not null"`
	ReceiptCounter     int             `gorm:"not null;default:0"`
	FirstTransactionAt *time.Time
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
	Version            int       `gorm:"not null;default:0"`
}

// TableName 指定表名
func (StoreModel) TableName() string {
	return "stores"
}

// storeToDomain 將 GORM Model 轉換為 Domain 聚合根
// 防禦性編程：即使來自資料庫的數據也要通過 Reconstruct 的不變條件驗證
func storeToDomain(model *StoreModel) (*store.Store, error) {
	storeID, err := store.StoreIDFromString(model.ID)
	if err != nil {
		return nil, err
	}
	balance, err := store.NewTokenAmount(model.TokenBalance)
	if err != nil {
		return nil, store.ErrCorruptedTokenBalance.WithContext(
			"store_id", model.ID,
			"value", model.TokenBalance.String(),
		)
	}

	return store.ReconstructStore(
		storeID,
		model.Name,
		balance,
		model.ReceiptCounter,
		model.FirstTransactionAt,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
}

// storeToGORM 將 Domain 聚合根轉換為 GORM Model
// 無驗證：Domain 聚合已保證數據有效性
func storeToGORM(s *store.Store) *StoreModel {
	return &StoreModel{
		ID:                 s.StoreID().String(),
		Name:               s.Name(),
		TokenBalance:       s.TokenBalance().Value(),
		ReceiptCounter:     s.ReceiptCounter(),
		FirstTransactionAt: s.FirstTransactionAt(),
		CreatedAt:          s.CreatedAt(),
		UpdatedAt:          s.UpdatedAt(),
		Version:            s.Version(),
	}
}
