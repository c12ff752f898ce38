package persistence

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
)

// ===========================
// Product GORM Model 與轉換函數
// ===========================

// ProductModel GORM 商品模型
// 庫存範圍為單一店家（(store_id, id) 查詢走 store_id 索引）
type ProductModel struct {
	ID        string          `gorm:"type:uuid;primary_key"`
	StoreID   string          `gorm:"type:uuid;index;not null"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
	CostPrice decimal.Decimal `gorm:"type:numeric;not null"`
	Stock     int             `gorm:"not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	Version   int             `gorm:"not null;default:0"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// productToDomain 將 GORM Model 轉換為 Domain 聚合根
func productToDomain(model *ProductModel) (*catalog.Product, error) {
	productID, err := catalog.ProductIDFromString(model.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := store.StoreIDFromString(model.StoreID)
	if err != nil {
		return nil, err
	}

	return catalog.ReconstructProduct(
		productID,
		storeID,
		model.Name,
		model.Price,
		model.CostPrice,
		model.Stock,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
}

// productToGORM 將 Domain 聚合根轉換為 GORM Model
func productToGORM(p *catalog.Product) *ProductModel {
	return &ProductModel{
		ID:        p.ProductID().String(),
		StoreID:   p.StoreID().String(),
		Name:      p.Name(),
		Price:     p.Price(),
		CostPrice: p.CostPrice(),
		Stock:     p.Stock().Value(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
		Version:   p.Version(),
	}
}
