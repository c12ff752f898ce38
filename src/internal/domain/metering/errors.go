package metering

import "github.com/jackyeh168/pos_core/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidEntryID         shared.ErrorCode = "USAGE_ENTRY_ID_INVALID"
	ErrCodeInvalidSessionID       shared.ErrorCode = "SESSION_ID_INVALID"
	ErrCodeInvalidCorrelationID   shared.ErrorCode = "CORRELATION_ID_INVALID"
	ErrCodeInvalidFeature         shared.ErrorCode = "FEATURE_INVALID"
	ErrCodeInvalidSessionDuration shared.ErrorCode = "SESSION_DURATION_INVALID"
	ErrCodeSessionNotFound        shared.ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionExpired         shared.ErrorCode = "SESSION_EXPIRED"
	ErrCodeEntryAlreadyExists     shared.ErrorCode = "USAGE_ENTRY_ALREADY_EXISTS"
	ErrCodeEntryNotFound          shared.ErrorCode = "USAGE_ENTRY_NOT_FOUND"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	ErrInvalidEntryID = &shared.DomainError{
		Code:    ErrCodeInvalidEntryID,
		Message: "無效的用量帳目 ID",
	}

	ErrInvalidSessionID = &shared.DomainError{
		Code:    ErrCodeInvalidSessionID,
		Message: "無效的計費時段 ID",
	}

	ErrInvalidCorrelationID = &shared.DomainError{
		Code:    ErrCodeInvalidCorrelationID,
		Message: "無效的計費關聯 ID",
	}

	ErrInvalidFeature = &shared.DomainError{
		Code:    ErrCodeInvalidFeature,
		Message: "AI 功能名稱不能為空",
	}

	ErrInvalidSessionDuration = &shared.DomainError{
		Code:    ErrCodeInvalidSessionDuration,
		Message: "計費時段長度必須為正數",
	}

	ErrSessionNotFound = &shared.DomainError{
		Code:    ErrCodeSessionNotFound,
		Message: "計費時段不存在",
	}

	ErrSessionExpired = &shared.DomainError{
		Code:    ErrCodeSessionExpired,
		Message: "計費時段已過期",
	}

	ErrEntryAlreadyExists = &shared.DomainError{
		Code:    ErrCodeEntryAlreadyExists,
		Message: "用量帳目已存在",
	}

	ErrEntryNotFound = &shared.DomainError{
		Code:    ErrCodeEntryNotFound,
		Message: "用量帳目不存在",
	}
)
