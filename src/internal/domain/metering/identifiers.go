package metering

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
)

// EntryMarker 是 EntryID 的標記類型
type EntryMarker struct{}

// EntryID 用量帳目的唯一標識符
type EntryID = shared.EntityID[EntryMarker]

// NewEntryID 生成新的帳目 ID（UUID v4）
func NewEntryID() EntryID {
	return shared.NewEntityID[EntryMarker]()
}

// EntryIDFromString 從字串解析帳目 ID
func EntryIDFromString(s string) (EntryID, error) {
	return shared.EntityIDFromString[EntryMarker](s, ErrInvalidEntryID)
}

// SessionMarker 是 SessionID 的標記類型
type SessionMarker struct{}

// SessionID 計費時段的唯一標識符
type SessionID = shared.EntityID[SessionMarker]

// NewSessionID 生成新的時段 ID（UUID v4）
func NewSessionID() SessionID {
	return shared.NewEntityID[SessionMarker]()
}

// SessionIDFromString 從字串解析時段 ID
func SessionIDFromString(s string) (SessionID, error) {
	return shared.EntityIDFromString[SessionMarker](s, ErrInvalidSessionID)
}

// CorrelationMarker 是 CorrelationID 的標記類型
type CorrelationMarker struct{}

// CorrelationID 計費關聯 ID
//
// 一次計費調用的扣款（debit）與其可能的補償（credit）共用同一個
// 關聯 ID；(correlation_id, direction) 的唯一約束使補償操作冪等：
// 重試的補償不可能造成重複退款。
type CorrelationID = shared.EntityID[CorrelationMarker]

// NewCorrelationID 生成新的關聯 ID（UUID v4）
func NewCorrelationID() CorrelationID {
	return shared.NewEntityID[CorrelationMarker]()
}

// CorrelationIDFromString 從字串解析關聯 ID
func CorrelationIDFromString(s string) (CorrelationID, error) {
	return shared.EntityIDFromString[CorrelationMarker](s, ErrInvalidCorrelationID)
}
