package persistence

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/checkout"
	"github.com/jackyeh168/pos_core/src/internal/domain/loyalty"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/shopspring/decimal"
)

// ===========================
// Transaction GORM Model 與轉換函數
// ===========================

// TransactionModel GORM 交易記錄模型（append-only 審計日誌）
// 到達終態後整列不可變：沒有任何 Update 路徑
type TransactionModel struct {
	ID             string  `gorm:"type:uuid;primary_key"`
	StoreID        string  `gorm:"type:uuid;index;not null"`
	CustomerID     *string `gorm:"type:uuid"`
	StaffID        string  `gorm:"type:uuid;not null"`
	TableID        *string `gorm:"type:uuid"`
	ReceiptNumber  int     `gorm:"not null"`
	Subtotal       decimal.Decimal `gorm:"type:numeric;not null"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric;not null"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric;not null"`
	PaymentMethod  string          `gorm:"not null"`
	PointsEarned   int             `gorm:"not null;default:0"`
	PointsRedeemed int             `gorm:"not null;default:0"`
	Status         string          `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"not null;index"`

	Lines []TransactionLineModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName 指定表名
func (TransactionModel) TableName() string {
	return "transactions"
}

// TransactionLineModel GORM 交易行項目模型
// 不可變快照：保留結帳當下的名稱與單價
type TransactionLineModel struct {
	ID            uint    `gorm:"primary_key;autoIncrement"`
	TransactionID string  `gorm:"type:uuid;index;not null"`
	LineNo        int     `gorm:"not null"`
	ProductID     *string `gorm:"type:uuid"`
	Name          string  `gorm:"not null"`
	Quantity      int     `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric;not null"`
}

// TableName 指定表名
func (TransactionLineModel) TableName() string {
	return "transaction_lines"
}

// transactionToDomain 將 GORM Model 轉換為 Domain 聚合根
func transactionToDomain(model *TransactionModel) (*checkout.Transaction, error) {
	transactionID, err := checkout.TransactionIDFromString(model.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := store.StoreIDFromString(model.StoreID)
	if err != nil {
		return nil, err
	}
	staffID, err := checkout.StaffIDFromString(model.StaffID)
	if err != nil {
		return nil, err
	}

	var customerID *loyalty.CustomerID
	if model.CustomerID != nil {
		id, err := loyalty.CustomerIDFromString(*model.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = &id
	}

	var tableID *tables.TableID
	if model.TableID != nil {
		id, err := tables.TableIDFromString(*model.TableID)
		if err != nil {
			return nil, err
		}
		tableID = &id
	}

	lines := make([]checkout.TransactionLine, 0, len(model.Lines))
	for _, lm := range model.Lines {
		var productID *catalog.ProductID
		if lm.ProductID != nil {
			id, err := catalog.ProductIDFromString(*lm.ProductID)
			if err != nil {
				return nil, err
			}
			productID = &id
		}
		lines = append(lines, checkout.ReconstructTransactionLine(
			productID, lm.Name, lm.Quantity, lm.UnitPrice,
		))
	}

	return checkout.ReconstructTransaction(
		transactionID,
		storeID,
		customerID,
		staffID,
		tableID,
		model.ReceiptNumber,
		lines,
		model.Subtotal,
		model.DiscountAmount,
		model.TotalAmount,
		checkout.PaymentMethod(model.PaymentMethod),
		model.PointsEarned,
		model.PointsRedeemed,
		checkout.TransactionStatus(model.Status),
		model.CreatedAt,
	)
}

// transactionToGORM 將 Domain 聚合根轉換為 GORM Model（含行項目）
func transactionToGORM(t *checkout.Transaction) *TransactionModel {
	var customerID *string
	if t.CustomerID() != nil {
		s := t.CustomerID().String()
		customerID = &s
	}
	var tableID *string
	if t.TableID() != nil {
		s := t.TableID().String()
		tableID = &s
	}

	lines := make([]TransactionLineModel, 0, len(t.Lines()))
	for i, line := range t.Lines() {
		var productID *string
		if line.ProductID() != nil {
			s := line.ProductID().String()
			productID = &s
		}
		lines = append(lines, TransactionLineModel{
			TransactionID: t.TransactionID().String(),
			LineNo:        i + 1,
			ProductID:     productID,
			Name:          line.Name(),
			Quantity:      line.Quantity(),
			UnitPrice:     line.UnitPrice(),
		})
	}

	return &TransactionModel{
		ID:             t.TransactionID().String(),
		StoreID:        t.StoreID().String(),
		CustomerID:     customerID,
		StaffID:        t.StaffID().String(),
		TableID:        tableID,
		ReceiptNumber:  t.ReceiptNumber(),
		Subtotal:       t.Subtotal(),
		DiscountAmount: t.DiscountAmount(),
		TotalAmount:    t.TotalAmount(),
		PaymentMethod:  string(t.PaymentMethod()),
		PointsEarned:   t.PointsEarned().Value(),
		PointsRedeemed: t.PointsRedeemed().Value(),
		Status:         string(t.Status()),
		CreatedAt:      t.CreatedAt(),
		Lines:          lines,
	}
}
