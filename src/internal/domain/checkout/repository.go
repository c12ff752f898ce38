package checkout

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
)

// TransactionRepository 交易記錄倉儲介面（append-only）
//
// 設計原則：
// - 交易記錄是不可變的審計日誌：只有 Append，沒有 Update / Delete
// - 報表 / 匯出等讀取方（範圍外協作者）通過 FindByStore 消費
type TransactionRepository interface {
	// Append 追加一筆交易記錄
	// 前置條件：記錄已到達終態（Completed / PaidAndCleared）
	// 錯誤：ErrTransactionAlreadyExists（ID 重複）
	Append(ctx shared.TransactionContext, transaction *Transaction) error

	// FindByID 根據交易 ID 查找
	// 返回：找到的交易，或 ErrTransactionNotFound
	FindByID(ctx shared.TransactionContext, transactionID TransactionID) (*Transaction, error)

	// FindByStore 查找店家的交易記錄（按創建時間降序，limit <= 0 表示不限制）
	FindByStore(ctx shared.TransactionContext, storeID store.StoreID, limit int) ([]*Transaction, error)
}
