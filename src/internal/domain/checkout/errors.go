package checkout

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	// 驗證錯誤（在任何原子提交之前拒絕，永不重試）
	ErrCodeEmptyCart              shared.ErrorCode = "CART_EMPTY"
	ErrCodeInvalidQuantity        shared.ErrorCode = "CART_QUANTITY_INVALID"
	ErrCodeInvalidUnitPrice       shared.ErrorCode = "CART_UNIT_PRICE_INVALID"
	ErrCodeNegativeDiscount       shared.ErrorCode = "DISCOUNT_NEGATIVE"
	ErrCodeInvalidDiscountPercent shared.ErrorCode = "DISCOUNT_PERCENT_INVALID"
	ErrCodeInvalidDiscountKind    shared.ErrorCode = "DISCOUNT_KIND_INVALID"
	ErrCodeInvalidPaymentMethod   shared.ErrorCode = "PAYMENT_METHOD_INVALID"
	ErrCodeRedeemWithoutCustomer  shared.ErrorCode = "REDEEM_WITHOUT_CUSTOMER"

	// 識別符相關
	ErrCodeInvalidTransactionID shared.ErrorCode = "TRANSACTION_ID_INVALID"
	ErrCodeInvalidStaffID       shared.ErrorCode = "STAFF_ID_INVALID"

	// 交易記錄相關
	ErrCodeTransactionNotFound      shared.ErrorCode = "TRANSACTION_NOT_FOUND"
	ErrCodeTransactionAlreadyExists shared.ErrorCode = "TRANSACTION_ALREADY_EXISTS"
	ErrCodeInvalidStatusTransition  shared.ErrorCode = "TRANSACTION_STATUS_TRANSITION_INVALID"
	ErrCodeCorruptedTransaction     shared.ErrorCode = "TRANSACTION_CORRUPTED"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrEmptyCart = &shared.DomainError{
		Code:    ErrCodeEmptyCart,
		Message: "購物車不能為空",
	}

	ErrInvalidQuantity = &shared.DomainError{
		Code:    ErrCodeInvalidQuantity,
		Message: "商品數量必須為正數",
	}

	ErrInvalidUnitPrice = &shared.DomainError{
		Code:    ErrCodeInvalidUnitPrice,
		Message: "商品單價不能為負數",
	}

	ErrNegativeDiscount = &shared.DomainError{
		Code:    ErrCodeNegativeDiscount,
		Message: "折扣金額不能為負數",
	}

	ErrInvalidDiscountPercent = &shared.DomainError{
		Code:    ErrCodeInvalidDiscountPercent,
		Message: "百分比折扣必須在 0-100 之間",
	}

	ErrInvalidDiscountKind = &shared.DomainError{
		Code:    ErrCodeInvalidDiscountKind,
		Message: "無效的折扣類型",
	}

	ErrInvalidPaymentMethod = &shared.DomainError{
		Code:    ErrCodeInvalidPaymentMethod,
		Message: "無效的付款方式",
	}

	ErrRedeemWithoutCustomer = &shared.DomainError{
		Code:    ErrCodeRedeemWithoutCustomer,
		Message: "兌換積分需要指定顧客",
	}

	ErrInvalidTransactionID = &shared.DomainError{
		Code:    ErrCodeInvalidTransactionID,
		Message: "無效的交易 ID",
	}

	ErrInvalidStaffID = &shared.DomainError{
		Code:    ErrCodeInvalidStaffID,
		Message: "無效的員工 ID",
	}

	ErrTransactionNotFound = &shared.DomainError{
		Code:    ErrCodeTransactionNotFound,
		Message: "交易記錄不存在",
	}

	ErrTransactionAlreadyExists = &shared.DomainError{
		Code:    ErrCodeTransactionAlreadyExists,
		Message: "交易記錄已存在",
	}

	ErrInvalidStatusTransition = &shared.DomainError{
		Code:    ErrCodeInvalidStatusTransition,
		Message: "不允許的交易狀態轉換",
	}

	ErrCorruptedTransaction = &shared.DomainError{
		Code:    ErrCodeCorruptedTransaction,
		Message: "資料庫中的交易記錄無效",
	}
)
