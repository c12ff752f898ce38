package persistence

import (
	"errors"
	"strings"

	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM 錯誤映射輔助
// ===========================

// isNotFound 判斷是否為「記錄不存在」
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isUniqueViolation 判斷是否為唯一約束違反
//
// 已知限制：
// - 唯一約束檢測使用字符串匹配（依賴英文錯誤訊息）
// - SQLite: "UNIQUE constraint failed"
// - PostgreSQL: "duplicate key value violates unique constraint"
// - MySQL: "Duplicate entry"
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Duplicate entry")
}

// mapUnknown 映射未分類的資料庫錯誤
//
// 持久化存儲不可達或底層驅動錯誤統一以 ErrUnavailable 浮出：
// 調用端可以安全地從頭重試整個請求（不存在部分效果）。
// 原始錯誤保留在上下文中，不被吞掉。
func mapUnknown(err error) error {
	return shared.ErrUnavailable.WithContext("database_error", err.Error())
}
