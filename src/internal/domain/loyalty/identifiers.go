package loyalty

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
)

// CustomerMarker 是 CustomerID 的標記類型
type CustomerMarker struct{}

// CustomerID 顧客的唯一標識符
type CustomerID = shared.EntityID[CustomerMarker]

// NewCustomerID 生成新的顧客 ID（UUID v4）
func NewCustomerID() CustomerID {
	return shared.NewEntityID[CustomerMarker]()
}

// CustomerIDFromString 從字串解析顧客 ID
func CustomerIDFromString(s string) (CustomerID, error) {
	return shared.EntityIDFromString[CustomerMarker](s, ErrInvalidCustomerID)
}
