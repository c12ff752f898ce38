package persistence

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/loyalty"
)

// ===========================
// Customer GORM Model 與轉換函數
// ===========================

// CustomerModel GORM 顧客模型
// 積分存為 earned / used 兩個累積計數，可用積分為派生值
type CustomerModel struct {
	ID           string    `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	EarnedPoints int       `gorm:"not null;default:0"`
	UsedPoints   int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Version      int       `gorm:"not null;default:0"`
}

// TableName 指定表名
func (CustomerModel) TableName() string {
	return "customers"
}

// customerToDomain 將 GORM Model 轉換為 Domain 聚合根
// ReconstructCustomer 會驗證 usedPoints <= earnedPoints 不變條件
func customerToDomain(model *CustomerModel) (*loyalty.Customer, error) {
	customerID, err := loyalty.CustomerIDFromString(model.ID)
	if err != nil {
		return nil, err
	}

	return loyalty.ReconstructCustomer(
		customerID,
		model.Name,
		model.EarnedPoints,
		model.UsedPoints,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
}

// customerToGORM 將 Domain 聚合根轉換為 GORM Model
func customerToGORM(c *loyalty.Customer) *CustomerModel {
	return &CustomerModel{
		ID:           c.CustomerID().String(),
		Name:         c.Name(),
		EarnedPoints: c.EarnedPoints().Value(),
		UsedPoints:   c.UsedPoints().Value(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
		Version:      c.Version(),
	}
}
