package shared

import "fmt"

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 基礎設施層錯誤代碼
//
// 與領域錯誤不同，這幾個代碼描述的是協調層面的狀態，
// 由 AtomicManager 與 Repository 實作產生：
//   - CONFLICT：樂觀鎖版本不匹配 / 唯一約束競爭，可透明重試
//   - BUSY：重試次數耗盡，調用端可稍後重試整個操作
//   - UNAVAILABLE：持久化存儲不可達，終態錯誤
const (
	ErrCodeConflict    ErrorCode = "CONFLICT"
	ErrCodeBusy        ErrorCode = "BUSY"
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
// 設計原則：
// 1. 包含結構化的錯誤代碼（用於 HTTP 狀態碼映射）
// 2. 支持上下文信息（用於調試和日誌）
// 3. 不可變性（創建後不可修改）
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例，保持不可變性）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)

	// 複製現有上下文
	for k, v := range e.Context {
		ctx[k] = v
	}

	// 添加新上下文
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（用於錯誤類型判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ===========================
// 預定義錯誤
// ===========================

// 基礎設施協調錯誤
var (
	// ErrConflict 並發寫入衝突
	// Repository 偵測到樂觀鎖版本不匹配或唯一約束競爭時返回，
	// 由 AtomicManager 捕捉並透明重試整個原子提交
	ErrConflict = &DomainError{
		Code:    ErrCodeConflict,
		Message: "並發寫入衝突",
	}

	// ErrBusy 衝突重試次數耗盡
	// 熱點 key 持續競爭時返回，調用端可稍後重試整個操作
	ErrBusy = &DomainError{
		Code:    ErrCodeBusy,
		Message: "系統繁忙，請稍後重試",
	}

	// ErrUnavailable 持久化存儲不可達
	ErrUnavailable = &DomainError{
		Code:    ErrCodeUnavailable,
		Message: "持久化存儲暫時不可用",
	}
)
