package loyalty

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	// 積分數量相關
	ErrCodeNegativePointsAmount shared.ErrorCode = "POINTS_NEGATIVE"
	ErrCodeInsufficientPoints   shared.ErrorCode = "POINTS_INSUFFICIENT"

	// 轉換率相關
	ErrCodeInvalidConversionRate shared.ErrorCode = "CONVERSION_RATE_INVALID"

	// 顧客相關
	ErrCodeInvalidCustomerID     shared.ErrorCode = "CUSTOMER_ID_INVALID"
	ErrCodeInvalidCustomerName   shared.ErrorCode = "CUSTOMER_NAME_INVALID"
	ErrCodeCustomerNotFound      shared.ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodeCustomerAlreadyExists shared.ErrorCode = "CUSTOMER_ALREADY_EXISTS"

	// 資料完整性相關
	ErrCodeCorruptedEarnedPoints shared.ErrorCode = "POINTS_EARNED_CORRUPTED"
	ErrCodeCorruptedUsedPoints   shared.ErrorCode = "POINTS_USED_CORRUPTED"
	ErrCodeInvariantViolation    shared.ErrorCode = "POINTS_INVARIANT_VIOLATION"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrNegativePointsAmount = &shared.DomainError{
		Code:    ErrCodeNegativePointsAmount,
		Message: "積分數量不能為負數",
	}

	// ErrInsufficientPoints 積分餘額不足
	// 終態錯誤：要求兌換的積分超過可用積分時整筆結帳失敗（不記錄部分獲得）
	// Context 一定包含 "available"
	ErrInsufficientPoints = &shared.DomainError{
		Code:    ErrCodeInsufficientPoints,
		Message: "積分餘額不足",
	}

	ErrInvalidConversionRate = &shared.DomainError{
		Code:    ErrCodeInvalidConversionRate,
		Message: "轉換率必須為正數",
	}

	ErrInvalidCustomerID = &shared.DomainError{
		Code:    ErrCodeInvalidCustomerID,
		Message: "無效的顧客 ID",
	}

	ErrInvalidCustomerName = &shared.DomainError{
		Code:    ErrCodeInvalidCustomerName,
		Message: "顧客名稱不能為空",
	}

	ErrCustomerNotFound = &shared.DomainError{
		Code:    ErrCodeCustomerNotFound,
		Message: "顧客不存在",
	}

	ErrCustomerAlreadyExists = &shared.DomainError{
		Code:    ErrCodeCustomerAlreadyExists,
		Message: "顧客已存在",
	}

	ErrCorruptedEarnedPoints = &shared.DomainError{
		Code:    ErrCodeCorruptedEarnedPoints,
		Message: "資料庫中的累積獲得積分無效",
	}

	ErrCorruptedUsedPoints = &shared.DomainError{
		Code:    ErrCodeCorruptedUsedPoints,
		Message: "資料庫中的累積使用積分無效",
	}

	ErrInvariantViolation = &shared.DomainError{
		Code:    ErrCodeInvariantViolation,
		Message: "積分不變條件被違反（used > earned）",
	}
)
