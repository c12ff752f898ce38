package tables

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidTableID       shared.ErrorCode = "TABLE_ID_INVALID"
	ErrCodeInvalidTableNumber   shared.ErrorCode = "TABLE_NUMBER_INVALID"
	ErrCodeInvalidTableCapacity shared.ErrorCode = "TABLE_CAPACITY_INVALID"
	ErrCodeInvalidTableStatus   shared.ErrorCode = "TABLE_STATUS_INVALID"
	ErrCodeInvalidOrderLine     shared.ErrorCode = "ORDER_LINE_INVALID"
	ErrCodeEmptyOrder           shared.ErrorCode = "ORDER_EMPTY"
	ErrCodeInvalidTransition    shared.ErrorCode = "TABLE_TRANSITION_INVALID"
	ErrCodeTableNotOccupied     shared.ErrorCode = "TABLE_NOT_OCCUPIED"
	ErrCodeTableHasOpenOrder    shared.ErrorCode = "TABLE_HAS_OPEN_ORDER"
	ErrCodeTableNotFound        shared.ErrorCode = "TABLE_NOT_FOUND"
	ErrCodeTableAlreadyExists   shared.ErrorCode = "TABLE_ALREADY_EXISTS"
	ErrCodeTableConflict        shared.ErrorCode = "TABLE_CONFLICT"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrInvalidTableID = &shared.DomainError{
		Code:    ErrCodeInvalidTableID,
		Message: "無效的桌位 ID",
	}

	ErrInvalidTableNumber = &shared.DomainError{
		Code:    ErrCodeInvalidTableNumber,
		Message: "桌號必須為正數",
	}

	ErrInvalidTableCapacity = &shared.DomainError{
		Code:    ErrCodeInvalidTableCapacity,
		Message: "桌位容量必須為正數",
	}

	ErrInvalidTableStatus = &shared.DomainError{
		Code:    ErrCodeInvalidTableStatus,
		Message: "無效的桌位狀態",
	}

	ErrInvalidOrderLine = &shared.DomainError{
		Code:    ErrCodeInvalidOrderLine,
		Message: "無效的訂單行項目",
	}

	ErrEmptyOrder = &shared.DomainError{
		Code:    ErrCodeEmptyOrder,
		Message: "訂單行項目不能為空",
	}

	ErrInvalidTransition = &shared.DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: "不允許的桌位狀態轉換",
	}

	ErrTableNotOccupied = &shared.DomainError{
		Code:    ErrCodeTableNotOccupied,
		Message: "桌位沒有進行中的訂單",
	}

	// ErrTableHasOpenOrder 桌位有進行中的訂單
	// 清除訂單必須走結帳流程（同一原子提交內結清庫存與積分），
	// 管理員直接改狀態或刪除桌位只允許在 currentOrder 為空時進行
	ErrTableHasOpenOrder = &shared.DomainError{
		Code:    ErrCodeTableHasOpenOrder,
		Message: "桌位有進行中的訂單，必須通過結帳流程清桌",
	}

	ErrTableNotFound = &shared.DomainError{
		Code:    ErrCodeTableNotFound,
		Message: "桌位不存在",
	}

	ErrTableAlreadyExists = &shared.DomainError{
		Code:    ErrCodeTableAlreadyExists,
		Message: "桌位已存在",
	}

	// ErrTableConflict 桌位狀態衝突
	// 終態錯誤：桌位已被並發請求清桌或佔用（真實的狀態衝突，不是暫時性的）
	ErrTableConflict = &shared.DomainError{
		Code:    ErrCodeTableConflict,
		Message: "桌位已被並發請求清桌或佔用",
	}
)
