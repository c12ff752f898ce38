package catalog

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
)

// ProductMarker 是 ProductID 的標記類型
type ProductMarker struct{}

// ProductID 商品的唯一標識符
type ProductID = shared.EntityID[ProductMarker]

// NewProductID 生成新的商品 ID（UUID v4）
func NewProductID() ProductID {
	return shared.NewEntityID[ProductMarker]()
}

// ProductIDFromString 從字串解析商品 ID
func ProductIDFromString(s string) (ProductID, error) {
	return shared.EntityIDFromString[ProductMarker](s, ErrInvalidProductID)
}
