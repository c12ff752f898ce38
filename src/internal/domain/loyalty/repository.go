package loyalty

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// CustomerRepository 顧客倉儲介面
//
// 並發契約：Update 以載入時的版本號做 CAS 更新；
// 版本不匹配時返回 shared.ErrConflict，由 AtomicManager 整體重試
type CustomerRepository interface {
	// Save 保存新顧客
	// 錯誤：ErrCustomerAlreadyExists（ID 重複）
	Save(ctx shared.TransactionContext, customer *Customer) error

	// FindByID 根據顧客 ID 查找
	// 返回：找到的顧客，或 ErrCustomerNotFound
	FindByID(ctx shared.TransactionContext, customerID CustomerID) (*Customer, error)

	// Update 更新顧客（CAS：版本不匹配返回 shared.ErrConflict）
	Update(ctx shared.TransactionContext, customer *Customer) error
}
