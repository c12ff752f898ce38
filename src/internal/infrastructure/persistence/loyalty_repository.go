package persistence

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/loyalty"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM CustomerRepository 實作
// ===========================

// GORMCustomerRepository GORM 實作的顧客倉儲
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 創建 GORM CustomerRepository 實例
func NewCustomerRepository(db *gorm.DB) loyalty.CustomerRepository {
	return &GORMCustomerRepository{db: db}
}

// Save 保存新顧客
func (r *GORMCustomerRepository) Save(ctx shared.TransactionContext, customer *loyalty.Customer) error {
	db := getDB(ctx, r.db)

	result := db.Create(customerToGORM(customer))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return loyalty.ErrCustomerAlreadyExists.WithContext(
				"customer_id", customer.CustomerID().String(),
			)
		}
		return mapUnknown(result.Error)
	}
	return nil
}

// FindByID 根據顧客 ID 查找
func (r *GORMCustomerRepository) FindByID(ctx shared.TransactionContext, customerID loyalty.CustomerID) (*loyalty.Customer, error) {
	db := getDB(ctx, r.db)

	var model CustomerModel
	result := db.First(&model, "id = ?", customerID.String())
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, loyalty.ErrCustomerNotFound.WithContext(
				"customer_id", customerID.String(),
			)
		}
		return nil, mapUnknown(result.Error)
	}
	return customerToDomain(&model)
}

// Update 更新顧客（樂觀鎖 CAS）
// 積分的獲得與兌換和產生它們的結帳在同一提交內落地
func (r *GORMCustomerRepository) Update(ctx shared.TransactionContext, customer *loyalty.Customer) error {
	db := getDB(ctx, r.db)

	model := customerToGORM(customer)
	result := db.Model(&CustomerModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"earned_points": model.EarnedPoints,
			"used_points":   model.UsedPoints,
			"updated_at":    model.UpdatedAt,
			"version":       model.Version + 1,
		})
	if result.Error != nil {
		return mapUnknown(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConflict.WithContext(
			"aggregate", "customer",
			"customer_id", model.ID,
			"expected_version", model.Version,
		)
	}
	return nil
}
