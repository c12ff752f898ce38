package loyalty

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// Customer 領域事件
// ===========================

// PointsEarnedEvent 積分已獲得事件
type PointsEarnedEvent struct {
	eventID    string
	customerID CustomerID
	amount     PointsAmount
	sourceID   string
	occurredAt time.Time
}

// NewPointsEarnedEvent 創建積分已獲得事件
func NewPointsEarnedEvent(customerID CustomerID, amount PointsAmount, sourceID string) *PointsEarnedEvent {
	return &PointsEarnedEvent{
		eventID:    uuid.New().String(),
		customerID: customerID,
		amount:     amount,
		sourceID:   sourceID,
		occurredAt: time.Now(),
	}
}

func (e *PointsEarnedEvent) EventID() string       { return e.eventID }
func (e *PointsEarnedEvent) EventType() string     { return "loyalty.points_earned" }
func (e *PointsEarnedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *PointsEarnedEvent) AggregateID() string   { return e.customerID.String() }

// Amount 獲取獲得數量
func (e *PointsEarnedEvent) Amount() PointsAmount { return e.amount }

// SourceID 獲取來源標識符（交易 ID）
func (e *PointsEarnedEvent) SourceID() string { return e.sourceID }

// PointsRedeemedEvent 積分已兌換事件
type PointsRedeemedEvent struct {
	eventID    string
	customerID CustomerID
	amount     PointsAmount
	reason     string
	occurredAt time.Time
}

// NewPointsRedeemedEvent 創建積分已兌換事件
func NewPointsRedeemedEvent(customerID CustomerID, amount PointsAmount, reason string) *PointsRedeemedEvent {
	return &PointsRedeemedEvent{
		eventID:    uuid.New().String(),
		customerID: customerID,
		amount:     amount,
		reason:     reason,
		occurredAt: time.Now(),
	}
}

func (e *PointsRedeemedEvent) EventID() string       { return e.eventID }
func (e *PointsRedeemedEvent) EventType() string     { return "loyalty.points_redeemed" }
func (e *PointsRedeemedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *PointsRedeemedEvent) AggregateID() string   { return e.customerID.String() }

// Amount 獲取兌換數量
func (e *PointsRedeemedEvent) Amount() PointsAmount { return e.amount }

// Reason 獲取兌換原因
func (e *PointsRedeemedEvent) Reason() string { return e.reason }
