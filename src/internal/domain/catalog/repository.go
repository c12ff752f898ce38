package catalog

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// ProductRepository 商品倉儲介面
//
// 並發契約：Update 以載入時的版本號做 CAS 更新；
// 版本不匹配時返回 shared.ErrConflict，由 AtomicManager 整體重試
type ProductRepository interface {
	// Save 保存新商品
	// 錯誤：ErrProductAlreadyExists（ID 重複）
	Save(ctx shared.TransactionContext, product *Product) error

	// FindByID 根據商品 ID 查找
	// 返回：找到的商品，或 ErrProductNotFound
	FindByID(ctx shared.TransactionContext, productID ProductID) (*Product, error)

	// Update 更新商品（CAS：版本不匹配返回 shared.ErrConflict）
	Update(ctx shared.TransactionContext, product *Product) error
}
