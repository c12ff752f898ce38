package store

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidStoreID           shared.ErrorCode = "STORE_ID_INVALID"
	ErrCodeInvalidStoreName         shared.ErrorCode = "STORE_NAME_INVALID"
	ErrCodeNegativeTokenAmount      shared.ErrorCode = "TOKEN_AMOUNT_NEGATIVE"
	ErrCodeInsufficientTokenBalance shared.ErrorCode = "TOKEN_BALANCE_INSUFFICIENT"
	ErrCodeCorruptedTokenBalance    shared.ErrorCode = "TOKEN_BALANCE_CORRUPTED"
	ErrCodeStoreNotFound            shared.ErrorCode = "STORE_NOT_FOUND"
	ErrCodeStoreAlreadyExists       shared.ErrorCode = "STORE_ALREADY_EXISTS"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrInvalidStoreID = &shared.DomainError{
		Code:    ErrCodeInvalidStoreID,
		Message: "無效的店家 ID",
	}

	ErrInvalidStoreName = &shared.DomainError{
		Code:    ErrCodeInvalidStoreName,
		Message: "店家名稱不能為空",
	}

	// ErrNegativeTokenAmount 代幣數量不能為負數
	// 補償信用（credit）也使用正數金額，方向由 UsageLedgerEntry 的 direction 表達
	ErrNegativeTokenAmount = &shared.DomainError{
		Code:    ErrCodeNegativeTokenAmount,
		Message: "代幣數量不能為負數",
	}

	// ErrInsufficientTokenBalance 代幣餘額不足
	// 終態錯誤：用戶可見，不重試，保證所有計數器不變
	ErrInsufficientTokenBalance = &shared.DomainError{
		Code:    ErrCodeInsufficientTokenBalance,
		Message: "代幣餘額不足",
	}

	ErrCorruptedTokenBalance = &shared.DomainError{
		Code:    ErrCodeCorruptedTokenBalance,
		Message: "資料庫中的代幣餘額無效",
	}

	ErrStoreNotFound = &shared.DomainError{
		Code:    ErrCodeStoreNotFound,
		Message: "店家不存在",
	}

	ErrStoreAlreadyExists = &shared.DomainError{
		Code:    ErrCodeStoreAlreadyExists,
		Message: "店家已存在",
	}
)
