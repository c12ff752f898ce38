package tables

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
)

// ===========================
// TableStatus 桌位狀態
// ===========================

// TableStatus 桌位狀態
//
// 狀態機：
//
//	Available → Reserved              （管理員標記預訂）
//	Available | Reserved → Occupied   （開單，訂單開始累積）
//	Occupied → Available              （僅通過結帳流程的清桌效果）
//
// 管理員直接覆寫（SetStatus）只允許在 currentOrder 為空時進行：
// 清除訂單必須走結帳流程，因為那是唯一同時結清庫存與積分的路徑。
type TableStatus string

const (
	StatusAvailable TableStatus = "Available"
	StatusReserved  TableStatus = "Reserved"
	StatusOccupied  TableStatus = "Occupied"
)

// NewTableStatus 從字串解析桌位狀態
func NewTableStatus(s string) (TableStatus, error) {
	switch TableStatus(s) {
	case StatusAvailable, StatusReserved, StatusOccupied:
		return TableStatus(s), nil
	default:
		return "", ErrInvalidTableStatus.WithContext("value", s)
	}
}

// ===========================
// OpenOrder 進行中訂單
// ===========================

// OrderLine 訂單行項目（累積在桌位上的消費項目）
type OrderLine struct {
	productID *catalog.ProductID
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// NewOrderLine 創建訂單行項目
func NewOrderLine(productID *catalog.ProductID, name string, quantity int, unitPrice decimal.Decimal) (OrderLine, error) {
	if quantity <= 0 {
		return OrderLine{}, ErrInvalidOrderLine.WithContext(
			"reason", "quantity must be positive",
			"quantity", quantity,
		)
	}
	if unitPrice.IsNegative() {
		return OrderLine{}, ErrInvalidOrderLine.WithContext(
			"reason", "unit price cannot be negative",
			"unit_price", unitPrice.String(),
		)
	}
	return OrderLine{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID 獲取商品 ID（手動項目返回 nil）
func (l OrderLine) ProductID() *catalog.ProductID { return l.productID }

// Name 獲取行項目名稱
func (l OrderLine) Name() string { return l.name }

// Quantity 獲取數量
func (l OrderLine) Quantity() int { return l.quantity }

// UnitPrice 獲取單價
func (l OrderLine) UnitPrice() decimal.Decimal { return l.unitPrice }

// OpenOrder 進行中訂單（桌位的 currentOrder）
type OpenOrder struct {
	lines []OrderLine
}

// Lines 獲取行項目（副本）
func (o *OpenOrder) Lines() []OrderLine {
	copied := make([]OrderLine, len(o.lines))
	copy(copied, o.lines)
	return copied
}

// RunningTotal 獲取目前累積總額
func (o *OpenOrder) RunningTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.lines {
		total = total.Add(line.unitPrice.Mul(decimal.NewFromInt(int64(line.quantity))))
	}
	return total
}

// ===========================
// Table 聚合根
// ===========================

// Table 桌位聚合根
//
// 業務不變條件：
// - 一張桌位同時最多只有一個進行中訂單（currentOrder）
// - currentOrder != nil 時 status 必為 Occupied
// - 清桌（Occupied → Available + 清除訂單）只能由結帳流程在
//   原子提交內執行；同一桌位的清桌與新開單通過樂觀鎖互斥
type Table struct {
	tableID  TableID
	storeID  store.StoreID
	number   int
	capacity int

	status       TableStatus
	currentOrder *OpenOrder

	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號
}

// NewTable 創建新桌位（初始狀態 Available）
func NewTable(storeID store.StoreID, number int, capacity int) (*Table, error) {
	if storeID.IsEmpty() {
		return nil, store.ErrInvalidStoreID.WithContext(
			"reason", "storeID cannot be empty",
		)
	}
	if number <= 0 {
		return nil, ErrInvalidTableNumber.WithContext("number", number)
	}
	if capacity <= 0 {
		return nil, ErrInvalidTableCapacity.WithContext("capacity", capacity)
	}

	now := time.Now()
	return &Table{
		tableID:   NewTableID(),
		storeID:   storeID,
		number:    number,
		capacity:  capacity,
		status:    StatusAvailable,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// TableID 獲取桌位 ID
func (t *Table) TableID() TableID { return t.tableID }

// StoreID 獲取所屬店家 ID
func (t *Table) StoreID() store.StoreID { return t.storeID }

// Number 獲取桌號
func (t *Table) Number() int { return t.number }

// Capacity 獲取容量
func (t *Table) Capacity() int { return t.capacity }

// Status 獲取桌位狀態
func (t *Table) Status() TableStatus { return t.status }

// CurrentOrder 獲取進行中訂單（無訂單時返回 nil）
func (t *Table) CurrentOrder() *OpenOrder { return t.currentOrder }

// CreatedAt 獲取創建時間
func (t *Table) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt 獲取最後更新時間
func (t *Table) UpdatedAt() time.Time { return t.updatedAt }

// Version 獲取樂觀鎖版本號
func (t *Table) Version() int { return t.version }

// ===========================
// 命令方法（狀態變更）
// ===========================

// Reserve 標記為已預訂（管理員操作）
// 只允許 Available → Reserved
func (t *Table) Reserve() error {
	if t.status != StatusAvailable {
		return ErrInvalidTransition.WithContext(
			"from", string(t.status),
			"to", string(StatusReserved),
		)
	}
	t.status = StatusReserved
	t.updatedAt = time.Now()
	return nil
}

// OpenOrder 開單（訂單開始在桌位上累積）
// 只允許 Available | Reserved → Occupied
func (t *Table) OpenOrder(lines []OrderLine) error {
	if t.status == StatusOccupied {
		return ErrInvalidTransition.WithContext(
			"from", string(t.status),
			"to", string(StatusOccupied),
			"reason", "table already has an open order",
		)
	}

	order := &OpenOrder{lines: make([]OrderLine, len(lines))}
	copy(order.lines, lines)

	t.status = StatusOccupied
	t.currentOrder = order
	t.updatedAt = time.Now()
	return nil
}

// AddToOrder 向進行中訂單追加行項目
// 前置條件：桌位必須為 Occupied 且有進行中訂單
func (t *Table) AddToOrder(lines []OrderLine) error {
	if t.status != StatusOccupied || t.currentOrder == nil {
		return ErrTableNotOccupied.WithContext(
			"table_id", t.tableID.String(),
			"status", string(t.status),
		)
	}
	t.currentOrder.lines = append(t.currentOrder.lines, lines...)
	t.updatedAt = time.Now()
	return nil
}

// ClearForSettlement 清桌（僅供結帳流程調用）
//
// 效果：status → Available、清除 currentOrder，返回被清除的訂單。
//
// 約束：此方法只能在結帳流程的原子提交內調用：那是唯一
// 同時扣減庫存、結算積分並創建交易記錄的路徑。桌位已被並發
// 請求清桌時返回 ErrTableConflict（終態錯誤，調用端不重試）。
func (t *Table) ClearForSettlement() (*OpenOrder, error) {
	if t.status != StatusOccupied || t.currentOrder == nil {
		return nil, ErrTableConflict.WithContext(
			"table_id", t.tableID.String(),
			"status", string(t.status),
		)
	}

	order := t.currentOrder
	t.status = StatusAvailable
	t.currentOrder = nil
	t.updatedAt = time.Now()
	return order, nil
}

// SetStatus 管理員直接覆寫狀態
//
// 業務規則：
// - 只允許在 currentOrder 為空時進行（有訂單必須走結帳清桌）
// - 不允許直接設為 Occupied（佔用必須通過 OpenOrder）
func (t *Table) SetStatus(status TableStatus) error {
	if t.currentOrder != nil {
		return ErrTableHasOpenOrder.WithContext(
			"table_id", t.tableID.String(),
		)
	}
	if status == StatusOccupied {
		return ErrInvalidTransition.WithContext(
			"from", string(t.status),
			"to", string(status),
			"reason", "occupied status requires an open order",
		)
	}
	t.status = status
	t.updatedAt = time.Now()
	return nil
}

// EnsureDeletable 檢查桌位是否可刪除
// 業務規則：只允許在 currentOrder 為空時刪除
func (t *Table) EnsureDeletable() error {
	if t.currentOrder != nil {
		return ErrTableHasOpenOrder.WithContext(
			"table_id", t.tableID.String(),
		)
	}
	return nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructTable 從持久化存儲重建聚合根
func ReconstructTable(
	tableID TableID,
	storeID store.StoreID,
	number int,
	capacity int,
	status TableStatus,
	orderLines []OrderLine,
	hasOrder bool,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Table, error) {
	if tableID.IsEmpty() {
		return nil, ErrInvalidTableID.WithContext(
			"reason", "invalid table ID in database",
		)
	}
	if _, err := NewTableStatus(string(status)); err != nil {
		return nil, err
	}
	// 不變條件：有訂單必為 Occupied
	if hasOrder && status != StatusOccupied {
		return nil, ErrInvalidTableStatus.WithContext(
			"table_id", tableID.String(),
			"status", string(status),
			"reason", "open order on a non-occupied table",
		)
	}

	var order *OpenOrder
	if hasOrder {
		order = &OpenOrder{lines: make([]OrderLine, len(orderLines))}
		copy(order.lines, orderLines)
	}

	return &Table{
		tableID:      tableID,
		storeID:      storeID,
		number:       number,
		capacity:     capacity,
		status:       status,
		currentOrder: order,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}, nil
}
