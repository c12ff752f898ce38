package persistence

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/shopspring/decimal"
)

// ===========================
// Table GORM Model 與轉換函數
// ===========================

// OrderLineJSON 進行中訂單行項目的 JSON 表示
// 訂單行項目與桌位是同生命週期的整體，存為 JSON 欄位而非子表
type OrderLineJSON struct {
	ProductID *string `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice string  `json:"unit_price"`
}

// TableModel GORM 桌位模型
type TableModel struct {
	ID       string `gorm:"type:uuid;primary_key"`
	StoreID  string `gorm:"type:uuid;index;not null"`
	Number   int    `gorm:"not null"`
	Capacity int    `gorm:"not null"`
	Status   string `gorm:"not null"`

	HasOrder   bool            `gorm:"not null;default:false"`
	OrderLines []OrderLineJSON `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:0"`
}

// TableName 指定表名
func (TableModel) TableName() string {
	return "tables"
}

// tableToDomain 將 GORM Model 轉換為 Domain 聚合根
func tableToDomain(model *TableModel) (*tables.Table, error) {
	tableID, err := tables.TableIDFromString(model.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := store.StoreIDFromString(model.StoreID)
	if err != nil {
		return nil, err
	}

	orderLines := make([]tables.OrderLine, 0, len(model.OrderLines))
	for _, lj := range model.OrderLines {
		var productID *catalog.ProductID
		if lj.ProductID != nil {
			id, err := catalog.ProductIDFromString(*lj.ProductID)
			if err != nil {
				return nil, err
			}
			productID = &id
		}
		unitPrice, err := decimal.NewFromString(lj.UnitPrice)
		if err != nil {
			return nil, tables.ErrInvalidOrderLine.WithContext(
				"table_id", model.ID,
				"unit_price", lj.UnitPrice,
			)
		}
		line, err := tables.NewOrderLine(productID, lj.Name, lj.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		orderLines = append(orderLines, line)
	}

	return tables.ReconstructTable(
		tableID,
		storeID,
		model.Number,
		model.Capacity,
		tables.TableStatus(model.Status),
		orderLines,
		model.HasOrder,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
}

// tableToGORM 將 Domain 聚合根轉換為 GORM Model
func tableToGORM(t *tables.Table) *TableModel {
	hasOrder := t.CurrentOrder() != nil
	var orderLines []OrderLineJSON
	if hasOrder {
		lines := t.CurrentOrder().Lines()
		orderLines = make([]OrderLineJSON, 0, len(lines))
		for _, line := range lines {
			var productID *string
			if line.ProductID() != nil {
				s := line.ProductID().String()
				productID = &s
			}
			orderLines = append(orderLines, OrderLineJSON{
				ProductID: productID,
				Name:      line.Name(),
				Quantity:  line.Quantity(),
				UnitPrice: line.UnitPrice().String(),
			})
		}
	}

	return &TableModel{
		ID:         t.TableID().String(),
		StoreID:    t.StoreID().String(),
		Number:     t.Number(),
		Capacity:   t.Capacity(),
		Status:     string(t.Status()),
		HasOrder:   hasOrder,
		OrderLines: orderLines,
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
		Version:    t.Version(),
	}
}
