package loyalty

import (
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
)

// ===========================
// MemberTier 會員等級
// ===========================

// MemberTier 會員等級（派生值，非權威數據）
// 由累積獲得積分推導，不單獨持久化
type MemberTier string

const (
	TierBronze MemberTier = "Bronze"
	TierSilver MemberTier = "Silver"
	TierGold   MemberTier = "Gold"
)

// 等級門檻（以累積獲得積分計）
const (
	silverTierThreshold = 500
	goldTierThreshold   = 2000
)

// ===========================
// Customer 聚合根
// ===========================

// Customer 顧客聚合根
//
// 設計原則：
// 1. 輕量級聚合：不包含無界集合（積分異動明細由 Transaction 記錄承載）
// 2. 不變條件：usedPoints <= earnedPoints（可用積分永不為負）
// 3. Tell, Don't Ask：封裝業務邏輯，不暴露內部狀態供外部判斷
//
// 業務不變條件：
// - earnedPoints >= 0（累積獲得的積分總數）
// - usedPoints >= 0（累積使用的積分總數）
// - usedPoints <= earnedPoints
// - AvailablePoints = earnedPoints - usedPoints（派生值，即 loyaltyPoints）
//
// 並發約束：
// - 積分的獲得與兌換必須和產生它們的結帳在同一個原子提交內落地
type Customer struct {
	customerID CustomerID
	name       string

	earnedPoints PointsAmount // 累積獲得積分
	usedPoints   PointsAmount // 累積使用積分

	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號

	events []shared.DomainEvent
}

// NewCustomer 創建新顧客
//
// 業務規則：新顧客初始積分為 0
func NewCustomer(name string) (*Customer, error) {
	if name == "" {
		return nil, ErrInvalidCustomerName
	}

	now := time.Now()
	return &Customer{
		customerID:   NewCustomerID(),
		name:         name,
		earnedPoints: ZeroPoints(),
		usedPoints:   ZeroPoints(),
		createdAt:    now,
		updatedAt:    now,
		events:       make([]shared.DomainEvent, 0),
	}, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// CustomerID 獲取顧客 ID
func (c *Customer) CustomerID() CustomerID {
	return c.customerID
}

// Name 獲取顧客名稱
func (c *Customer) Name() string {
	return c.name
}

// EarnedPoints 獲取累積獲得積分
func (c *Customer) EarnedPoints() PointsAmount {
	return c.earnedPoints
}

// UsedPoints 獲取累積使用積分
func (c *Customer) UsedPoints() PointsAmount {
	return c.usedPoints
}

// AvailablePoints 獲取可用積分（派生值）
//
// 不變條件保證 earnedPoints >= usedPoints，結果永遠 >= 0
func (c *Customer) AvailablePoints() PointsAmount {
	available, _ := c.earnedPoints.Subtract(c.usedPoints)
	return available
}

// Tier 獲取會員等級（派生值，以累積獲得積分計）
func (c *Customer) Tier() MemberTier {
	switch {
	case c.earnedPoints.Value() >= goldTierThreshold:
		return TierGold
	case c.earnedPoints.Value() >= silverTierThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// CreatedAt 獲取創建時間
func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt 獲取最後更新時間
func (c *Customer) UpdatedAt() time.Time {
	return c.updatedAt
}

// Version 獲取樂觀鎖版本號
func (c *Customer) Version() int {
	return c.version
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// EarnPoints 獲得積分
//
// 參數：
//   amount - 獲得的積分數量（PointsAmount 已保證 >= 0）
//   sourceID - 來源標識符（交易 ID）
//
// 業務規則：零積分也接受（低於轉換率門檻的消費）
//
// 不變條件維護：只增加 earnedPoints，永遠不會違反 usedPoints <= earnedPoints
func (c *Customer) EarnPoints(amount PointsAmount, sourceID string) {
	if amount.IsZero() {
		return
	}

	c.earnedPoints = c.earnedPoints.Add(amount)
	c.updatedAt = time.Now()
	c.addEvent(NewPointsEarnedEvent(c.customerID, amount, sourceID))
}

// RedeemPoints 兌換積分
//
// 前置條件：可用積分 >= amount，否則返回 ErrInsufficientPoints
// （附帶 available，終態錯誤，整筆結帳失敗、不記錄部分獲得）
func (c *Customer) RedeemPoints(amount PointsAmount, reason string) error {
	if amount.IsZero() {
		return nil
	}

	available := c.AvailablePoints()
	if amount.GreaterThan(available) {
		return ErrInsufficientPoints.WithContext(
			"available", available.Value(),
			"requested", amount.Value(),
			"reason", reason,
		)
	}

	c.usedPoints = c.usedPoints.Add(amount)
	c.updatedAt = time.Now()
	c.addEvent(NewPointsRedeemedEvent(c.customerID, amount, reason))
	return nil
}

// ===========================
// 事件管理
// ===========================

func (c *Customer) addEvent(event shared.DomainEvent) {
	c.events = append(c.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表（只讀取一次）
func (c *Customer) PullEvents() []shared.DomainEvent {
	events := c.events
	c.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructCustomer 從持久化存儲重建聚合根
//
// 重要：即使是從資料庫重建，也必須驗證不變條件，
// 防止損壞資料污染領域層。
func ReconstructCustomer(
	customerID CustomerID,
	name string,
	earnedPoints int,
	usedPoints int,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Customer, error) {
	if customerID.IsEmpty() {
		return nil, ErrInvalidCustomerID.WithContext(
			"reason", "invalid customer ID in database",
		)
	}

	earnedAmount, err := NewPointsAmount(earnedPoints)
	if err != nil {
		return nil, ErrCorruptedEarnedPoints.WithContext(
			"value", earnedPoints,
			"underlying_error", err.Error(),
		)
	}

	usedAmount, err := NewPointsAmount(usedPoints)
	if err != nil {
		return nil, ErrCorruptedUsedPoints.WithContext(
			"value", usedPoints,
			"underlying_error", err.Error(),
		)
	}

	if usedAmount.GreaterThan(earnedAmount) {
		return nil, ErrInvariantViolation.WithContext(
			"usedPoints", usedPoints,
			"earnedPoints", earnedPoints,
		)
	}

	return &Customer{
		customerID:   customerID,
		name:         name,
		earnedPoints: earnedAmount,
		usedPoints:   usedAmount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
		events:       make([]shared.DomainEvent, 0),
	}, nil
}
