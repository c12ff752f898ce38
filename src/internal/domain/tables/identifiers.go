package tables

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
)

// TableMarker 是 TableID 的標記類型
type TableMarker struct{}

// TableID 桌位的唯一標識符
type TableID = shared.EntityID[TableMarker]

// NewTableID 生成新的桌位 ID（UUID v4）
func NewTableID() TableID {
	return shared.NewEntityID[TableMarker]()
}

// TableIDFromString 從字串解析桌位 ID
func TableIDFromString(s string) (TableID, error) {
	return shared.EntityIDFromString[TableMarker](s, ErrInvalidTableID)
}
