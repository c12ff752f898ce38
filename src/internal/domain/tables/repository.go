package tables

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// TableRepository 桌位倉儲介面
//
// 並發契約：Update 以載入時的版本號做 CAS 更新；
// 版本不匹配時返回 shared.ErrConflict，由 AtomicManager 整體重試。
// 同一桌位的清桌與新開單因此互斥（後提交者重讀後發現狀態已變）。
type TableRepository interface {
	// Save 保存新桌位
	// 錯誤：ErrTableAlreadyExists（ID 重複）
	Save(ctx shared.TransactionContext, table *Table) error

	// FindByID 根據桌位 ID 查找
	// 返回：找到的桌位，或 ErrTableNotFound
	FindByID(ctx shared.TransactionContext, tableID TableID) (*Table, error)

	// Update 更新桌位（CAS：版本不匹配返回 shared.ErrConflict）
	Update(ctx shared.TransactionContext, table *Table) error

	// Delete 刪除桌位
	// 前置條件：調用者已通過 EnsureDeletable 檢查（currentOrder 為空）
	Delete(ctx shared.TransactionContext, tableID TableID) error
}
