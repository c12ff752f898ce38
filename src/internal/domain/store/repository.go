package store

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// ===========================
// Store Repository 介面
// ===========================

// StoreRepository 店家倉儲介面
//
// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 事務支持：使用 TransactionContext 封裝事務，避免基礎設施洩漏
//
// 並發契約：
// - Update 必須以聚合載入時的版本號做 CAS 更新；
//   版本不匹配（並發寫入者先提交）時返回 shared.ErrConflict，
//   由 AtomicManager 整體重試
type StoreRepository interface {
	// Save 保存新店家
	// 錯誤：ErrStoreAlreadyExists（如果 ID 已存在）
	Save(ctx shared.TransactionContext, s *Store) error

	// FindByID 根據店家 ID 查找
	// 返回：找到的店家，或 ErrStoreNotFound
	FindByID(ctx shared.TransactionContext, storeID StoreID) (*Store, error)

	// Update 更新店家（CAS：版本不匹配返回 shared.ErrConflict）
	Update(ctx shared.TransactionContext, s *Store) error
}
