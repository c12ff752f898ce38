package checkout

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
)

// TransactionMarker 是 TransactionID 的標記類型
type TransactionMarker struct{}

// TransactionID 交易記錄的唯一標識符
type TransactionID = shared.EntityID[TransactionMarker]

// NewTransactionID 生成新的交易 ID（UUID v4）
func NewTransactionID() TransactionID {
	return shared.NewEntityID[TransactionMarker]()
}

// TransactionIDFromString 從字串解析交易 ID
func TransactionIDFromString(s string) (TransactionID, error) {
	return shared.EntityIDFromString[TransactionMarker](s, ErrInvalidTransactionID)
}

// StaffMarker 是 StaffID 的標記類型
type StaffMarker struct{}

// StaffID 收銀員的唯一標識符
// 員工的角色/權限模型不在本引擎範圍內，此處只承載結帳授權的身份
type StaffID = shared.EntityID[StaffMarker]

// NewStaffID 生成新的員工 ID（UUID v4）
func NewStaffID() StaffID {
	return shared.NewEntityID[StaffMarker]()
}

// StaffIDFromString 從字串解析員工 ID
func StaffIDFromString(s string) (StaffID, error) {
	return shared.EntityIDFromString[StaffMarker](s, ErrInvalidStaffID)
}
