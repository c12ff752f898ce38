package store

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// Store 領域事件
// ===========================

// TokensDebitedEvent 代幣已扣減事件
type TokensDebitedEvent struct {
	eventID    string
	storeID    StoreID
	amount     TokenAmount
	reason     string
	occurredAt time.Time
}

// NewTokensDebitedEvent 創建代幣已扣減事件
func NewTokensDebitedEvent(storeID StoreID, amount TokenAmount, reason string) *TokensDebitedEvent {
	return &TokensDebitedEvent{
		eventID:    uuid.New().String(),
		storeID:    storeID,
		amount:     amount,
		reason:     reason,
		occurredAt: time.Now(),
	}
}

func (e *TokensDebitedEvent) EventID() string       { return e.eventID }
func (e *TokensDebitedEvent) EventType() string     { return "store.tokens_debited" }
func (e *TokensDebitedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *TokensDebitedEvent) AggregateID() string   { return e.storeID.String() }

// Amount 獲取扣減數量
func (e *TokensDebitedEvent) Amount() TokenAmount { return e.amount }

// Reason 獲取扣減原因
func (e *TokensDebitedEvent) Reason() string { return e.reason }

// TokensCreditedEvent 代幣已增加事件（充值或補償）
type TokensCreditedEvent struct {
	eventID    string
	storeID    StoreID
	amount     TokenAmount
	reason     string
	occurredAt time.Time
}

// NewTokensCreditedEvent 創建代幣已增加事件
func NewTokensCreditedEvent(storeID StoreID, amount TokenAmount, reason string) *TokensCreditedEvent {
	return &TokensCreditedEvent{
		eventID:    uuid.New().String(),
		storeID:    storeID,
		amount:     amount,
		reason:     reason,
		occurredAt: time.Now(),
	}
}

func (e *TokensCreditedEvent) EventID() string       { return e.eventID }
func (e *TokensCreditedEvent) EventType() string     { return "store.tokens_credited" }
func (e *TokensCreditedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *TokensCreditedEvent) AggregateID() string   { return e.storeID.String() }

// Amount 獲取增加數量
func (e *TokensCreditedEvent) Amount() TokenAmount { return e.amount }

// Reason 獲取增加原因
func (e *TokensCreditedEvent) Reason() string { return e.reason }
