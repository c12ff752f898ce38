package checkout

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/loyalty"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/shopspring/decimal"
)

// ===========================
// PaymentMethod 付款方式
// ===========================

// PaymentMethod 付款方式值對象
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentQRIS    PaymentMethod = "qris"
	PaymentEWallet PaymentMethod = "ewallet"
)

// NewPaymentMethod 從字串解析付款方式
func NewPaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentQRIS, PaymentEWallet:
		return PaymentMethod(s), nil
	default:
		return "", ErrInvalidPaymentMethod.WithContext("value", s)
	}
}

// ===========================
// TransactionStatus 交易狀態
// ===========================

// TransactionStatus 交易狀態
//
// 狀態機：
//
//	Processing → Completed        （一般結帳）
//	Processing → PaidAndCleared   （桌位清桌結帳）
//
// 到達終態後交易記錄完全不可變。
type TransactionStatus string

const (
	StatusProcessing     TransactionStatus = "Processing"
	StatusCompleted      TransactionStatus = "Completed"
	StatusPaidAndCleared TransactionStatus = "PaidAndCleared"
)

// IsTerminal 判斷是否為終態
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusPaidAndCleared
}

// ===========================
// TransactionLine 交易行項目
// ===========================

// TransactionLine 交易行項目（不可變快照）
// 保留結帳當下的名稱與單價，之後商品資料變更不影響歷史交易
type TransactionLine struct {
	productID *catalog.ProductID
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// ProductID 獲取商品 ID（手動項目返回 nil）
func (l TransactionLine) ProductID() *catalog.ProductID { return l.productID }

// Name 獲取行項目名稱
func (l TransactionLine) Name() string { return l.name }

// Quantity 獲取數量
func (l TransactionLine) Quantity() int { return l.quantity }

// UnitPrice 獲取單價
func (l TransactionLine) UnitPrice() decimal.Decimal { return l.unitPrice }

// LineTotal 行項目小計
func (l TransactionLine) LineTotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// ReconstructTransactionLine 從持久化存儲重建行項目（僅供 Infrastructure Layer 使用）
func ReconstructTransactionLine(productID *catalog.ProductID, name string, quantity int, unitPrice decimal.Decimal) TransactionLine {
	return TransactionLine{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}
}

// ===========================
// Transaction 聚合根
// ===========================

// Transaction 交易記錄聚合根（append-only、不可變）
//
// 業務不變條件：
// - totalAmount = max(0, subtotal - discountAmount) >= 0
// - 每筆成功結帳恰好創建一筆交易記錄
// - 除狀態轉換（Processing → 終態）外完全不可變
// - 收據序號由所屬店家的單調計數器在同一原子提交內分配
type Transaction struct {
	transactionID TransactionID
	storeID       store.StoreID
	customerID    *loyalty.CustomerID
	staffID       StaffID
	tableID       *tables.TableID

	receiptNumber  int
	lines          []TransactionLine
	subtotal       decimal.Decimal
	discountAmount decimal.Decimal
	totalAmount    decimal.Decimal
	paymentMethod  PaymentMethod

	pointsEarned   loyalty.PointsAmount
	pointsRedeemed loyalty.PointsAmount

	status    TransactionStatus
	createdAt time.Time

	events []shared.DomainEvent
}

// NewTransaction 創建新交易記錄（初始狀態 Processing）
//
// 金額計算在此集中進行：
// - subtotal = Σ 數量 × 單價
// - discountAmount = 折扣對小計的金額（已 clamp）
// - totalAmount = subtotal - discountAmount（保證 >= 0）
//
// 前置條件（由調用者的原子提交保證）：
// - 庫存、積分、收據序號的檢查與扣減和本記錄的創建在同一提交內
func NewTransaction(
	storeID store.StoreID,
	staffID StaffID,
	cart Cart,
	discount Discount,
	paymentMethod PaymentMethod,
	customerID *loyalty.CustomerID,
	pointsEarned loyalty.PointsAmount,
	pointsRedeemed loyalty.PointsAmount,
	receiptNumber int,
	tableID *tables.TableID,
) (*Transaction, error) {
	if storeID.IsEmpty() {
		return nil, store.ErrInvalidStoreID.WithContext(
			"reason", "storeID cannot be empty",
		)
	}
	if staffID.IsEmpty() {
		return nil, ErrInvalidStaffID.WithContext(
			"reason", "staffID cannot be empty",
		)
	}
	if _, err := NewPaymentMethod(string(paymentMethod)); err != nil {
		return nil, err
	}

	subtotal := cart.Subtotal()
	discountAmount := discount.AmountFor(subtotal)
	totalAmount := subtotal.Sub(discountAmount)

	lines := make([]TransactionLine, 0, len(cart.Lines()))
	for _, cl := range cart.Lines() {
		lines = append(lines, TransactionLine{
			productID: cl.ProductID(),
			name:      cl.Name(),
			quantity:  cl.Quantity(),
			unitPrice: cl.UnitPrice(),
		})
	}

	return &Transaction{
		transactionID:  NewTransactionID(),
		storeID:        storeID,
		customerID:     customerID,
		staffID:        staffID,
		tableID:        tableID,
		receiptNumber:  receiptNumber,
		lines:          lines,
		subtotal:       subtotal,
		discountAmount: discountAmount,
		totalAmount:    totalAmount,
		paymentMethod:  paymentMethod,
		pointsEarned:   pointsEarned,
		pointsRedeemed: pointsRedeemed,
		status:         StatusProcessing,
		createdAt:      time.Now(),
		events:         make([]shared.DomainEvent, 0),
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// TransactionID 獲取交易 ID
func (t *Transaction) TransactionID() TransactionID { return t.transactionID }

// StoreID 獲取店家 ID
func (t *Transaction) StoreID() store.StoreID { return t.storeID }

// CustomerID 獲取顧客 ID（匿名交易返回 nil）
func (t *Transaction) CustomerID() *loyalty.CustomerID { return t.customerID }

// StaffID 獲取收銀員 ID
func (t *Transaction) StaffID() StaffID { return t.staffID }

// TableID 獲取桌位 ID（非桌位交易返回 nil）
func (t *Transaction) TableID() *tables.TableID { return t.tableID }

// ReceiptNumber 獲取收據序號
func (t *Transaction) ReceiptNumber() int { return t.receiptNumber }

// Lines 獲取行項目（副本，保持不可變性）
func (t *Transaction) Lines() []TransactionLine {
	copied := make([]TransactionLine, len(t.lines))
	copy(copied, t.lines)
	return copied
}

// Subtotal 獲取小計
func (t *Transaction) Subtotal() decimal.Decimal { return t.subtotal }

// DiscountAmount 獲取折扣金額
func (t *Transaction) DiscountAmount() decimal.Decimal { return t.discountAmount }

// TotalAmount 獲取總額
func (t *Transaction) TotalAmount() decimal.Decimal { return t.totalAmount }

// PaymentMethod 獲取付款方式
func (t *Transaction) PaymentMethod() PaymentMethod { return t.paymentMethod }

// PointsEarned 獲取本筆交易獲得的積分
func (t *Transaction) PointsEarned() loyalty.PointsAmount { return t.pointsEarned }

// PointsRedeemed 獲取本筆交易兌換的積分
func (t *Transaction) PointsRedeemed() loyalty.PointsAmount { return t.pointsRedeemed }

// Status 獲取交易狀態
func (t *Transaction) Status() TransactionStatus { return t.status }

// CreatedAt 獲取創建時間
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

// ===========================
// 命令方法（狀態變換）
// ===========================

// MarkCompleted 標記為已完成（一般結帳終態）
// 只允許 Processing → Completed
func (t *Transaction) MarkCompleted() error {
	if t.status != StatusProcessing {
		return ErrInvalidStatusTransition.WithContext(
			"from", string(t.status),
			"to", string(StatusCompleted),
		)
	}
	t.status = StatusCompleted
	t.addEvent(NewCheckoutCompletedEvent(t.transactionID, t.storeID, t.totalAmount, t.status))
	return nil
}

// MarkPaidAndCleared 標記為已付款並清桌（桌位結帳終態）
// 只允許 Processing → PaidAndCleared，且必須關聯桌位
func (t *Transaction) MarkPaidAndCleared() error {
	if t.status != StatusProcessing {
		return ErrInvalidStatusTransition.WithContext(
			"from", string(t.status),
			"to", string(StatusPaidAndCleared),
		)
	}
	if t.tableID == nil {
		return ErrInvalidStatusTransition.WithContext(
			"from", string(t.status),
			"to", string(StatusPaidAndCleared),
			"reason", "transaction is not bound to a table",
		)
	}
	t.status = StatusPaidAndCleared
	t.addEvent(NewCheckoutCompletedEvent(t.transactionID, t.storeID, t.totalAmount, t.status))
	return nil
}

// ===========================
// 事件管理
// ===========================

func (t *Transaction) addEvent(event shared.DomainEvent) {
	t.events = append(t.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表（只讀取一次）
func (t *Transaction) PullEvents() []shared.DomainEvent {
	events := t.events
	t.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructTransaction 從持久化存儲重建交易記錄
func ReconstructTransaction(
	transactionID TransactionID,
	storeID store.StoreID,
	customerID *loyalty.CustomerID,
	staffID StaffID,
	tableID *tables.TableID,
	receiptNumber int,
	lines []TransactionLine,
	subtotal decimal.Decimal,
	discountAmount decimal.Decimal,
	totalAmount decimal.Decimal,
	paymentMethod PaymentMethod,
	pointsEarned int,
	pointsRedeemed int,
	status TransactionStatus,
	createdAt time.Time,
) (*Transaction, error) {
	if transactionID.IsEmpty() {
		return nil, ErrInvalidTransactionID.WithContext(
			"reason", "invalid transaction ID in database",
		)
	}
	if totalAmount.IsNegative() {
		return nil, ErrCorruptedTransaction.WithContext(
			"transaction_id", transactionID.String(),
			"total_amount", totalAmount.String(),
		)
	}

	earned, err := loyalty.NewPointsAmount(pointsEarned)
	if err != nil {
		return nil, ErrCorruptedTransaction.WithContext(
			"transaction_id", transactionID.String(),
			"points_earned", pointsEarned,
		)
	}
	redeemed, err := loyalty.NewPointsAmount(pointsRedeemed)
	if err != nil {
		return nil, ErrCorruptedTransaction.WithContext(
			"transaction_id", transactionID.String(),
			"points_redeemed", pointsRedeemed,
		)
	}

	return &Transaction{
		transactionID:  transactionID,
		storeID:        storeID,
		customerID:     customerID,
		staffID:        staffID,
		tableID:        tableID,
		receiptNumber:  receiptNumber,
		lines:          lines,
		subtotal:       subtotal,
		discountAmount: discountAmount,
		totalAmount:    totalAmount,
		paymentMethod:  paymentMethod,
		pointsEarned:   earned,
		pointsRedeemed: redeemed,
		status:         status,
		createdAt:      createdAt,
		events:         make([]shared.DomainEvent, 0),
	}, nil
}
