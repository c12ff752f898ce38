package store

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
)

// StoreMarker 是 StoreID 的標記類型
type StoreMarker struct{}

// StoreID 店家（租戶）的唯一標識符
type StoreID = shared.EntityID[StoreMarker]

// NewStoreID 生成新的店家 ID（UUID v4）
func NewStoreID() StoreID {
	return shared.NewEntityID[StoreMarker]()
}

// StoreIDFromString 從字串解析店家 ID
func StoreIDFromString(s string) (StoreID, error) {
	return shared.EntityIDFromString[StoreMarker](s, ErrInvalidStoreID)
}
