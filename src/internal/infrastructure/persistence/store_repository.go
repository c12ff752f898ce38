package persistence

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"gorm.io/gorm"
)

// ===========================
// GORM StoreRepository 實作
// ===========================

// GORMStoreRepository GORM 實作的店家倉儲
//
// 設計原則：
// 1. 單一職責：只負責 Domain ↔ GORM 的轉換和錯誤映射
// 2. 依賴倒置：實作 Domain Layer 定義的介面
// 3. 業務邏輯在 Domain Layer，此處不做任何業務判斷
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 創建 GORM StoreRepository 實例
func NewStoreRepository(db *gorm.DB) store.StoreRepository {
	return &GORMStoreRepository{db: db}
}

// Save 保存新店家
// 錯誤：ErrStoreAlreadyExists（ID 重複）
func (r *GORMStoreRepository) Save(ctx shared.TransactionContext, s *store.Store) error {
	db := getDB(ctx, r.db)

	result := db.Create(storeToGORM(s))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return store.ErrStoreAlreadyExists.WithContext(
				"store_id", s.StoreID().String(),
			)
		}
		return mapUnknown(result.Error)
	}
	return nil
}

// FindByID 根據店家 ID 查找
func (r *GORMStoreRepository) FindByID(ctx shared.TransactionContext, storeID store.StoreID) (*store.Store, error) {
	db := getDB(ctx, r.db)

	var model StoreModel
	result := db.First(&model, "id = ?", storeID.String())
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, store.ErrStoreNotFound.WithContext(
				"store_id", storeID.String(),
			)
		}
		return nil, mapUnknown(result.Error)
	}
	return storeToDomain(&model)
}

// Update 更新店家（樂觀鎖 CAS）
//
// UPDATE ... WHERE id = ? AND version = <載入時版本>，寫入 version+1。
// 零行受影響表示並發寫入者先提交 → shared.ErrConflict，
// 由 AtomicManager 回滾整個提交並重試。
func (r *GORMStoreRepository) Update(ctx shared.TransactionContext, s *store.Store) error {
	db := getDB(ctx, r.db)

	model := storeToGORM(s)
	result := db.Model(&StoreModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"name":                 model.Name,
			"token_balance":        model.TokenBalance,
			"receipt_counter":      model.ReceiptCounter,
			"first_transaction_at": model.FirstTransactionAt,
			"updated_at":           model.UpdatedAt,
			"version":              model.Version + 1,
		})
	if result.Error != nil {
		return mapUnknown(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConflict.WithContext(
			"aggregate", "store",
			"store_id", model.ID,
			"expected_version", model.Version,
		)
	}
	return nil
}
