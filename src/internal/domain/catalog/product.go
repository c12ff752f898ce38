package catalog

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
)

// ===========================
// Product 聚合根
// ===========================

// Product 商品聚合根（庫存範圍為單一店家）
//
// 業務不變條件：
// - stock >= 0（由 StockQuantity 值對象保證）
// - price >= 0、costPrice >= 0
//
// 並發約束：
// - 庫存只能由結帳流程在 AtomicManager.InAtomic 內扣減；
//   兩筆針對同一商品的並發結帳在庫存 key 粒度上序列化
//   （樂觀鎖版本號衝突 → 整體重試 → 第二個提交者看見第一個的扣減）
type Product struct {
	productID ProductID
	storeID   store.StoreID
	name      string

	price     decimal.Decimal
	costPrice decimal.Decimal
	stock     StockQuantity

	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號
}

// NewProduct 創建新商品
func NewProduct(
	storeID store.StoreID,
	name string,
	price decimal.Decimal,
	costPrice decimal.Decimal,
	initialStock int,
) (*Product, error) {
	if storeID.IsEmpty() {
		return nil, store.ErrInvalidStoreID.WithContext(
			"reason", "storeID cannot be empty",
		)
	}
	if name == "" {
		return nil, ErrInvalidProductName
	}
	if price.IsNegative() || costPrice.IsNegative() {
		return nil, ErrInvalidPrice.WithContext(
			"price", price.String(),
			"cost_price", costPrice.String(),
		)
	}

	stock, err := NewStockQuantity(initialStock)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Product{
		productID: NewProductID(),
		storeID:   storeID,
		name:      name,
		price:     price,
		costPrice: costPrice,
		stock:     stock,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// ProductID 獲取商品 ID
func (p *Product) ProductID() ProductID {
	return p.productID
}

// StoreID 獲取所屬店家 ID
func (p *Product) StoreID() store.StoreID {
	return p.storeID
}

// Name 獲取商品名稱
func (p *Product) Name() string {
	return p.name
}

// Price 獲取售價
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// CostPrice 獲取成本價
func (p *Product) CostPrice() decimal.Decimal {
	return p.costPrice
}

// Stock 獲取當前庫存
func (p *Product) Stock() StockQuantity {
	return p.stock
}

// CreatedAt 獲取創建時間
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt 獲取最後更新時間
func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version 獲取樂觀鎖版本號
func (p *Product) Version() int {
	return p.version
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// DecreaseStock 扣減庫存（結帳專用）
//
// 前置條件：stock >= quantity，不足時返回 ErrInsufficientStock
// （附帶 product_id 與 available，終態錯誤，整筆結帳失敗）
func (p *Product) DecreaseStock(quantity int) error {
	newStock, err := p.stock.Decrease(quantity)
	if err != nil {
		if de, ok := err.(*shared.DomainError); ok && de.Code == ErrCodeInsufficientStock {
			return de.WithContext("product_id", p.productID.String())
		}
		return err
	}

	p.stock = newStock
	p.updatedAt = time.Now()
	return nil
}

// IncreaseStock 增加庫存（進貨）
func (p *Product) IncreaseStock(quantity int) error {
	newStock, err := p.stock.Increase(quantity)
	if err != nil {
		return err
	}

	p.stock = newStock
	p.updatedAt = time.Now()
	return nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructProduct 從持久化存儲重建聚合根
// 即使是從資料庫重建，也必須驗證不變條件（防止損壞資料污染領域層）
func ReconstructProduct(
	productID ProductID,
	storeID store.StoreID,
	name string,
	price decimal.Decimal,
	costPrice decimal.Decimal,
	stock int,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Product, error) {
	if productID.IsEmpty() {
		return nil, ErrInvalidProductID.WithContext(
			"reason", "invalid product ID in database",
		)
	}
	if storeID.IsEmpty() {
		return nil, store.ErrInvalidStoreID.WithContext(
			"reason", "invalid store ID in database",
		)
	}

	stockQty, err := NewStockQuantity(stock)
	if err != nil {
		return nil, ErrNegativeStock.WithContext(
			"product_id", productID.String(),
			"value", stock,
		)
	}

	return &Product{
		productID: productID,
		storeID:   storeID,
		name:      name,
		price:     price,
		costPrice: costPrice,
		stock:     stockQty,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
	}, nil
}
