package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/shopspring/decimal"
)

// CheckoutCompletedEvent 結帳已完成事件
type CheckoutCompletedEvent struct {
	eventID       string
	transactionID TransactionID
	storeID       store.StoreID
	totalAmount   decimal.Decimal
	status        TransactionStatus
	occurredAt    time.Time
}

// NewCheckoutCompletedEvent 創建結帳已完成事件
func NewCheckoutCompletedEvent(
	transactionID TransactionID,
	storeID store.StoreID,
	totalAmount decimal.Decimal,
	status TransactionStatus,
) *CheckoutCompletedEvent {
	return &CheckoutCompletedEvent{
		eventID:       uuid.New().String(),
		transactionID: transactionID,
		storeID:       storeID,
		totalAmount:   totalAmount,
		status:        status,
		occurredAt:    time.Now(),
	}
}

func (e *CheckoutCompletedEvent) EventID() string       { return e.eventID }
func (e *CheckoutCompletedEvent) EventType() string     { return "checkout.completed" }
func (e *CheckoutCompletedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *CheckoutCompletedEvent) AggregateID() string   { return e.transactionID.String() }

// StoreID 獲取店家 ID
func (e *CheckoutCompletedEvent) StoreID() store.StoreID { return e.storeID }

// TotalAmount 獲取交易總額
func (e *CheckoutCompletedEvent) TotalAmount() decimal.Decimal { return e.totalAmount }

// Status 獲取交易終態
func (e *CheckoutCompletedEvent) Status() TransactionStatus { return e.status }
