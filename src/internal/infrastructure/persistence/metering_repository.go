package persistence

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/metering"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"gorm.io/gorm"
)

// ===========================
// GORM UsageLedgerRepository 實作
// ===========================

// GORMUsageLedgerRepository GORM 實作的用量帳目倉儲（append-only）
type GORMUsageLedgerRepository struct {
	db *gorm.DB
}

// NewUsageLedgerRepository 創建 GORM UsageLedgerRepository 實例
func NewUsageLedgerRepository(db *gorm.DB) metering.UsageLedgerRepository {
	return &GORMUsageLedgerRepository{db: db}
}

// Append 追加一筆帳目
// (correlation_id, direction) 唯一約束違反映射為 shared.ErrConflict：
// AtomicManager 重試後，調用端在提交內先查到既有帳目並跳過
func (r *GORMUsageLedgerRepository) Append(ctx shared.TransactionContext, entry *metering.UsageLedgerEntry) error {
	db := getDB(ctx, r.db)

	result := db.Create(usageEntryToGORM(entry))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return shared.ErrConflict.WithContext(
				"aggregate", "usage_ledger_entry",
				"correlation_id", entry.CorrelationID().String(),
				"direction", string(entry.Direction()),
			)
		}
		return mapUnknown(result.Error)
	}
	return nil
}

// FindByCorrelation 根據關聯 ID 與方向查找帳目
func (r *GORMUsageLedgerRepository) FindByCorrelation(ctx shared.TransactionContext, correlationID metering.CorrelationID, direction metering.EntryDirection) (*metering.UsageLedgerEntry, error) {
	db := getDB(ctx, r.db)

	var model UsageEntryModel
	result := db.First(&model, "correlation_id = ? AND direction = ?",
		correlationID.String(), string(direction))
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, metering.ErrEntryNotFound.WithContext(
				"correlation_id", correlationID.String(),
				"direction", string(direction),
			)
		}
		return nil, mapUnknown(result.Error)
	}
	return usageEntryToDomain(&model)
}

// FindByStore 查找店家的帳目（按創建時間降序）
func (r *GORMUsageLedgerRepository) FindByStore(ctx shared.TransactionContext, storeID store.StoreID, limit int) ([]*metering.UsageLedgerEntry, error) {
	db := getDB(ctx, r.db)

	query := db.Where("store_id = ?", storeID.String()).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []UsageEntryModel
	if result := query.Find(&models); result.Error != nil {
		return nil, mapUnknown(result.Error)
	}

	entries := make([]*metering.UsageLedgerEntry, 0, len(models))
	for i := range models {
		e, err := usageEntryToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ===========================
// GORM SessionRepository 實作
// ===========================

// GORMSessionRepository GORM 實作的計費時段倉儲
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 創建 GORM SessionRepository 實例
func NewSessionRepository(db *gorm.DB) metering.SessionRepository {
	return &GORMSessionRepository{db: db}
}

// Save 保存新計費時段
// (store_id, feature) 唯一約束違反映射為 shared.ErrConflict：
// 並發創建的落敗方重試後重讀即看見勝出方的時段並直接重用
func (r *GORMSessionRepository) Save(ctx shared.TransactionContext, session *metering.Session) error {
	db := getDB(ctx, r.db)

	result := db.Create(sessionToGORM(session))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return shared.ErrConflict.WithContext(
				"aggregate", "metering_session",
				"store_id", session.StoreID().String(),
				"feature", session.Feature(),
			)
		}
		return mapUnknown(result.Error)
	}
	return nil
}

// FindByStoreAndFeature 查找店家對指定功能的時段（不論是否過期）
func (r *GORMSessionRepository) FindByStoreAndFeature(ctx shared.TransactionContext, storeID store.StoreID, feature string) (*metering.Session, error) {
	db := getDB(ctx, r.db)

	var model SessionModel
	result := db.First(&model, "store_id = ? AND feature = ?", storeID.String(), feature)
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, metering.ErrSessionNotFound.WithContext(
				"store_id", storeID.String(),
				"feature", feature,
			)
		}
		return nil, mapUnknown(result.Error)
	}
	return sessionToDomain(&model)
}

// Update 更新計費時段（樂觀鎖 CAS）
func (r *GORMSessionRepository) Update(ctx shared.TransactionContext, session *metering.Session) error {
	db := getDB(ctx, r.db)

	model := sessionToGORM(session)
	result := db.Model(&SessionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"fee":        model.Fee,
			"started_at": model.StartedAt,
			"expires_at": model.ExpiresAt,
			"updated_at": model.UpdatedAt,
			"version":    model.Version + 1,
		})
	if result.Error != nil {
		return mapUnknown(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConflict.WithContext(
			"aggregate", "metering_session",
			"session_id", model.ID,
			"expected_version", model.Version,
		)
	}
	return nil
}
