package persistence

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM ProductRepository 實作
// ===========================

// GORMProductRepository GORM 實作的商品倉儲
type GORMProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 創建 GORM ProductRepository 實例
func NewProductRepository(db *gorm.DB) catalog.ProductRepository {
	return &GORMProductRepository{db: db}
}

// Save 保存新商品
func (r *GORMProductRepository) Save(ctx shared.TransactionContext, product *catalog.Product) error {
	db := getDB(ctx, r.db)

	result := db.Create(productToGORM(product))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return catalog.ErrProductAlreadyExists.WithContext(
				"product_id", product.ProductID().String(),
			)
		}
		return mapUnknown(result.Error)
	}
	return nil
}

// FindByID 根據商品 ID 查找
func (r *GORMProductRepository) FindByID(ctx shared.TransactionContext, productID catalog.ProductID) (*catalog.Product, error) {
	db := getDB(ctx, r.db)

	var model ProductModel
	result := db.First(&model, "id = ?", productID.String())
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, catalog.ErrProductNotFound.WithContext(
				"product_id", productID.String(),
			)
		}
		return nil, mapUnknown(result.Error)
	}
	return productToDomain(&model)
}

// Update 更新商品（樂觀鎖 CAS）
// 零行受影響 → shared.ErrConflict：兩筆並發結帳對同一商品的
// 庫存扣減在此序列化，第二個提交者重試後看見第一個的扣減
func (r *GORMProductRepository) Update(ctx shared.TransactionContext, product *catalog.Product) error {
	db := getDB(ctx, r.db)

	model := productToGORM(product)
	result := db.Model(&ProductModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"price":      model.Price,
			"cost_price": model.CostPrice,
			"stock":      model.Stock,
			"updated_at": model.UpdatedAt,
			"version":    model.Version + 1,
		})
	if result.Error != nil {
		return mapUnknown(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConflict.WithContext(
			"aggregate", "product",
			"product_id", model.ID,
			"expected_version", model.Version,
		)
	}
	return nil
}
