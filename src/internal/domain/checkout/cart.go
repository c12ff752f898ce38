package checkout

import (
	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ===========================
// Cart 值對象
// ===========================

// CartLine 購物車行項目值對象
//
// 兩種行項目：
// - 目錄商品：productID 非 nil，結帳時在原子提交內驗證並扣減庫存
// - 手動項目（非目錄）：productID 為 nil，跳過庫存驗證
//   （例如臨時加價、客製化服務）
type CartLine struct {
	productID *catalog.ProductID
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// NewCatalogLine 創建目錄商品行項目
func NewCatalogLine(productID catalog.ProductID, name string, quantity int, unitPrice decimal.Decimal) (CartLine, error) {
	if productID.IsEmpty() {
		return CartLine{}, catalog.ErrInvalidProductID
	}
	return newCartLine(&productID, name, quantity, unitPrice)
}

// NewManualLine 創建手動（非目錄）行項目
// 手動項目不關聯任何商品，結帳時不做庫存驗證
func NewManualLine(name string, quantity int, unitPrice decimal.Decimal) (CartLine, error) {
	return newCartLine(nil, name, quantity, unitPrice)
}

func newCartLine(productID *catalog.ProductID, name string, quantity int, unitPrice decimal.Decimal) (CartLine, error) {
	if quantity <= 0 {
		return CartLine{}, ErrInvalidQuantity.WithContext(
			"name", name,
			"quantity", quantity,
		)
	}
	if unitPrice.IsNegative() {
		return CartLine{}, ErrInvalidUnitPrice.WithContext(
			"name", name,
			"unit_price", unitPrice.String(),
		)
	}
	return CartLine{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID 獲取商品 ID（手動項目返回 nil）
func (l CartLine) ProductID() *catalog.ProductID {
	return l.productID
}

// IsCatalogItem 判斷是否為目錄商品（需要庫存驗證）
func (l CartLine) IsCatalogItem() bool {
	return l.productID != nil
}

// Name 獲取行項目名稱
func (l CartLine) Name() string {
	return l.name
}

// Quantity 獲取數量
func (l CartLine) Quantity() int {
	return l.quantity
}

// UnitPrice 獲取單價
func (l CartLine) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// LineTotal 行項目小計 = 數量 × 單價
func (l CartLine) LineTotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Cart 購物車值對象（非空的行項目列表）
type Cart struct {
	lines []CartLine
}

// NewCart 建構函數
// 建構約束：購物車不能為空（驗證錯誤，在任何原子提交之前拒絕）
func NewCart(lines []CartLine) (Cart, error) {
	if len(lines) == 0 {
		return Cart{}, ErrEmptyCart
	}
	copied := make([]CartLine, len(lines))
	copy(copied, lines)
	return Cart{lines: copied}, nil
}

// Lines 獲取所有行項目（副本，保持不可變性）
func (c Cart) Lines() []CartLine {
	copied := make([]CartLine, len(c.lines))
	copy(copied, c.lines)
	return copied
}

// Subtotal 小計 = Σ 數量 × 單價
func (c Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal
}
