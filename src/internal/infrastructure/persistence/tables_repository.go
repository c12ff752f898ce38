package persistence

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"gorm.io/gorm"
)

// ===========================
// GORM TableRepository 實作
// ===========================

// GORMTableRepository GORM 實作的桌位倉儲
type GORMTableRepository struct {
	db *gorm.DB
}

// NewTableRepository 創建 GORM TableRepository 實例
func NewTableRepository(db *gorm.DB) tables.TableRepository {
	return &GORMTableRepository{db: db}
}

// Save 保存新桌位
func (r *GORMTableRepository) Save(ctx shared.TransactionContext, table *tables.Table) error {
	db := getDB(ctx, r.db)

	result := db.Create(tableToGORM(table))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return tables.ErrTableAlreadyExists.WithContext(
				"table_id", table.TableID().String(),
			)
		}
		return mapUnknown(result.Error)
	}
	return nil
}

// FindByID 根據桌位 ID 查找
func (r *GORMTableRepository) FindByID(ctx shared.TransactionContext, tableID tables.TableID) (*tables.Table, error) {
	db := getDB(ctx, r.db)

	var model TableModel
	result := db.First(&model, "id = ?", tableID.String())
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, tables.ErrTableNotFound.WithContext(
				"table_id", tableID.String(),
			)
		}
		return nil, mapUnknown(result.Error)
	}
	return tableToDomain(&model)
}

// Update 更新桌位（樂觀鎖 CAS）
// 同一桌位的清桌與新開單在此互斥：後提交者版本不匹配，
// 重試後重讀即看見對方已改變的狀態
func (r *GORMTableRepository) Update(ctx shared.TransactionContext, table *tables.Table) error {
	db := getDB(ctx, r.db)

	model := tableToGORM(table)
	result := db.Model(&TableModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"number":      model.Number,
			"capacity":    model.Capacity,
			"status":      model.Status,
			"has_order":   model.HasOrder,
			"order_lines": model.OrderLines,
			"updated_at":  model.UpdatedAt,
			"version":     model.Version + 1,
		})
	if result.Error != nil {
		return mapUnknown(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConflict.WithContext(
			"aggregate", "table",
			"table_id", model.ID,
			"expected_version", model.Version,
		)
	}
	return nil
}

// Delete 刪除桌位
// 前置條件由調用者保證：EnsureDeletable 已通過，且刪除前的
// 空寫入（CAS）已在同一提交內排除並發開單
func (r *GORMTableRepository) Delete(ctx shared.TransactionContext, tableID tables.TableID) error {
	db := getDB(ctx, r.db)

	result := db.Delete(&TableModel{}, "id = ?", tableID.String())
	if result.Error != nil {
		return mapUnknown(result.Error)
	}
	if result.RowsAffected == 0 {
		return tables.ErrTableNotFound.WithContext(
			"table_id", tableID.String(),
		)
	}
	return nil
}
