package persistence

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/checkout"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionRepository 實作
// ===========================

// GORMTransactionRepository GORM 實作的交易記錄倉儲
// append-only：只有 Append 與查詢，不存在 Update / Delete 路徑
type GORMTransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 創建 GORM TransactionRepository 實例
func NewTransactionRepository(db *gorm.DB) checkout.TransactionRepository {
	return &GORMTransactionRepository{db: db}
}

// Append 追加一筆交易記錄（含行項目，同一提交）
func (r *GORMTransactionRepository) Append(ctx shared.TransactionContext, transaction *checkout.Transaction) error {
	db := getDB(ctx, r.db)

	result := db.Create(transactionToGORM(transaction))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return checkout.ErrTransactionAlreadyExists.WithContext(
				"transaction_id", transaction.TransactionID().String(),
			)
		}
		return mapUnknown(result.Error)
	}
	return nil
}

// FindByID 根據交易 ID 查找（含行項目）
func (r *GORMTransactionRepository) FindByID(ctx shared.TransactionContext, transactionID checkout.TransactionID) (*checkout.Transaction, error) {
	db := getDB(ctx, r.db)

	var model TransactionModel
	result := db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_no ASC")
	}).First(&model, "id = ?", transactionID.String())
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, checkout.ErrTransactionNotFound.WithContext(
				"transaction_id", transactionID.String(),
			)
		}
		return nil, mapUnknown(result.Error)
	}
	return transactionToDomain(&model)
}

// FindByStore 查找店家的交易記錄（按創建時間降序）
// 報表 / 匯出等範圍外讀取方的查詢入口
func (r *GORMTransactionRepository) FindByStore(ctx shared.TransactionContext, storeID store.StoreID, limit int) ([]*checkout.Transaction, error) {
	db := getDB(ctx, r.db)

	query := db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_no ASC")
	}).Where("store_id = ?", storeID.String()).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []TransactionModel
	if result := query.Find(&models); result.Error != nil {
		return nil, mapUnknown(result.Error)
	}

	transactions := make([]*checkout.Transaction, 0, len(models))
	for i := range models {
		t, err := transactionToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}
