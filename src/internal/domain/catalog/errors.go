package catalog

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidProductID     shared.ErrorCode = "PRODUCT_ID_INVALID"
	ErrCodeInvalidProductName   shared.ErrorCode = "PRODUCT_NAME_INVALID"
	ErrCodeNegativeStock        shared.ErrorCode = "STOCK_NEGATIVE"
	ErrCodeInvalidStockQuantity shared.ErrorCode = "STOCK_QUANTITY_INVALID"
	ErrCodeInsufficientStock    shared.ErrorCode = "STOCK_INSUFFICIENT"
	ErrCodeInvalidPrice         shared.ErrorCode = "PRICE_INVALID"
	ErrCodeProductNotFound      shared.ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeProductAlreadyExists shared.ErrorCode = "PRODUCT_ALREADY_EXISTS"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrInvalidProductID = &shared.DomainError{
		Code:    ErrCodeInvalidProductID,
		Message: "無效的商品 ID",
	}

	ErrInvalidProductName = &shared.DomainError{
		Code:    ErrCodeInvalidProductName,
		Message: "商品名稱不能為空",
	}

	ErrNegativeStock = &shared.DomainError{
		Code:    ErrCodeNegativeStock,
		Message: "庫存數量不能為負數",
	}

	ErrInvalidStockQuantity = &shared.DomainError{
		Code:    ErrCodeInvalidStockQuantity,
		Message: "無效的庫存異動數量",
	}

	// ErrInsufficientStock 庫存不足
	// 終態錯誤：整筆結帳失敗，不允許超賣
	// Context 一定包含 "product_id" 與 "available"（供 UI 渲染具體訊息）
	ErrInsufficientStock = &shared.DomainError{
		Code:    ErrCodeInsufficientStock,
		Message: "庫存不足",
	}

	ErrInvalidPrice = &shared.DomainError{
		Code:    ErrCodeInvalidPrice,
		Message: "價格不能為負數",
	}

	ErrProductNotFound = &shared.DomainError{
		Code:    ErrCodeProductNotFound,
		Message: "商品不存在",
	}

	ErrProductAlreadyExists = &shared.DomainError{
		Code:    ErrCodeProductAlreadyExists,
		Message: "商品已存在",
	}
)
