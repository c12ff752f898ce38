package shared

import "context"

// ===========================
// 原子提交原語
// ===========================

// TransactionContext 事務上下文介面
//
// 行為約定：
// - ctx != nil: 在調用者的原子提交中執行（事務傳播）
// - ctx == nil: auto-commit 模式（僅適用於單一讀操作）
//
// Repository 方法約束：
// - 寫操作（Save / Update / Append）必須在原子提交中執行（ctx 不可為 nil）
// - 讀操作可選事務參與：獨立查詢傳 nil，提交內讀取傳調用者的 ctx
//
// 架構原則：
// - 標記介面（Marker Interface），不暴露任何方法
// - Infrastructure Layer 負責實作具體的事務封裝（GORM）
// - Domain / Application Layer 只依賴此介面，不依賴具體實作
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// AtomicManager 原子提交管理器介面
//
// 這是整個引擎唯一的跨請求協調原語：所有共享計數器
// （庫存、積分、代幣餘額、收據序號）的寫入都必須經過 InAtomic。
// 多個服務實例可能同時運行，因此協調依賴持久化存儲，而非進程內鎖。
//
// 契約：
//
// 1. 全有或全無：fn 內的所有寫入要麼全部落地，要麼全部回滾，
//    不存在外部可觀察的中間狀態。
//
// 2. 衝突偵測與透明重試：fn 讀取過的任一 key 在讀取與提交之間
//    被並發寫入者修改時（Repository 返回 ErrConflict），
//    整個 fn 回滾後以抖動退避重新執行，次數有上限；
//    耗盡後返回 ErrBusy。
//
// 3. 領域錯誤直接中止：fn 返回非 Conflict 錯誤（如庫存不足）時
//    立即回滾並原樣返回，不重試：這類錯誤代表真實的狀態限制，
//    重試不會改變結果。
//
// 4. 取消與超時：ctx 取消時中止執行；已取消的提交保證沒有任何
//    部分寫入落地（回滾語義涵蓋取消場景）。
//
// 使用範例：
//
//	err := manager.InAtomic(ctx, func(tc shared.TransactionContext) error {
//	    product, err := productRepo.FindByID(tc, productID)
//	    if err != nil {
//	        return err
//	    }
//	    if err := product.DecreaseStock(qty); err != nil {
//	        return err // 領域錯誤：整體回滾，零副作用
//	    }
//	    return productRepo.Update(tc, product) // CAS 失敗 → ErrConflict → 重試
//	})
type AtomicManager interface {
	InAtomic(ctx context.Context, fn func(tc TransactionContext) error) error
}
