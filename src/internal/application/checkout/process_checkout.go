package checkout

import (
	"context"
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/catalog"
	"github.com/jackyeh168/pos_core/src/internal/domain/checkout"
	"github.com/jackyeh168/pos_core/src/internal/domain/loyalty"
	"github.com/jackyeh168/pos_core/src/internal/domain/shared"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/jackyeh168/pos_core/src/internal/domain/tables"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ===========================
// UC-101: ProcessCheckout Use Case
// ===========================

// CartLineInput 購物車行項目輸入（Input DTO）
// ProductID 為空字串表示手動（非目錄）項目，結帳時跳過庫存驗證
type CartLineInput struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// DiscountInput 折扣輸入（Input DTO）
// Kind 為空字串表示無折扣
type DiscountInput struct {
	Kind  string // "percent" | "nominal" | ""
	Value decimal.Decimal
}

// ProcessCheckoutCommand 結帳指令（Input DTO）
//
// 設計原則：
// - 只包含外部輸入數據，使用原始類型，由 Use Case 轉換為 Value Object
// - ConversionRate 是版本化的每店配置值，由調用端隨指令注入，
//   不做任何 ambient 讀取（只在附帶顧客時需要）
type ProcessCheckoutCommand struct {
	StoreID        string
	StaffID        string
	Lines          []CartLineInput
	Discount       DiscountInput
	PaymentMethod  string
	CustomerID     string // 可選：空字串表示匿名交易
	PointsToRedeem int
	TableID        string // 可選：非空表示桌位清桌結帳
	ConversionRate int    // 每 N 元獲得 1 點（附帶顧客時必填）
}

// ProcessCheckoutResult 結帳結果（Output DTO）
type ProcessCheckoutResult struct {
	TransactionID  string
	ReceiptNumber  int
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PointsEarned   int
	PointsRedeemed int
	Status         string
}

// ProcessCheckoutUseCase 結帳 Use Case 接口
//
// 這是整個引擎的核心寫入路徑：一次調用在單一原子提交內完成
// 庫存扣減、積分結算、收據序號分配、交易記錄創建與（可選的）清桌。
//
// 錯誤分類（決定調用端行為）：
// - 驗證錯誤（空購物車、負折扣 ...）：在任何原子提交之前拒絕
// - 不變條件錯誤（庫存 / 積分不足、桌位衝突）：終態，絕不重試，
//   保證所有計數器原封不動
// - 並發衝突：AtomicManager 內部重試，耗盡後以 ErrBusy 浮出
type ProcessCheckoutUseCase interface {
	Execute(ctx context.Context, cmd ProcessCheckoutCommand) (*ProcessCheckoutResult, error)
}

// ===========================
// ProcessCheckoutUseCaseImpl
// ===========================

// ProcessCheckoutUseCaseImpl 結帳 Use Case 實作
//
// 職責：
// 1. 驗證輸入（轉換為 Value Object，任何原子提交之前）
// 2. 在 InAtomic 內編排所有前置條件檢查與效果
// 3. 提交成功後發布領域事件（失敗的提交不發布任何事件）
//
// 業務邏輯在 Domain Layer（各聚合），此處只做流程編排。
type ProcessCheckoutUseCaseImpl struct {
	logger       *zap.Logger
	atomic       shared.AtomicManager
	storeRepo    store.StoreRepository
	productRepo  catalog.ProductRepository
	customerRepo loyalty.CustomerRepository
	tableRepo    tables.TableRepository
	txRepo       checkout.TransactionRepository
	pointsCalc   *loyalty.PointsCalculationService
	publisher    shared.EventPublisher
}

// NewProcessCheckoutUseCase 創建 ProcessCheckoutUseCase 實例
func NewProcessCheckoutUseCase(
	logger *zap.Logger,
	atomic shared.AtomicManager,
	storeRepo store.StoreRepository,
	productRepo catalog.ProductRepository,
	customerRepo loyalty.CustomerRepository,
	tableRepo tables.TableRepository,
	txRepo checkout.TransactionRepository,
	publisher shared.EventPublisher,
) ProcessCheckoutUseCase {
	return &ProcessCheckoutUseCaseImpl{
		logger:       logger,
		atomic:       atomic,
		storeRepo:    storeRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		tableRepo:    tableRepo,
		txRepo:       txRepo,
		pointsCalc:   loyalty.NewPointsCalculationService(),
		publisher:    publisher,
	}
}

// checkoutInput 驗證完成後的結帳輸入（全部為 Value Object）
type checkoutInput struct {
	storeID        store.StoreID
	staffID        checkout.StaffID
	cmdLines       []checkout.CartLine
	discount       checkout.Discount
	paymentMethod  checkout.PaymentMethod
	customerID     *loyalty.CustomerID
	pointsToRedeem loyalty.PointsAmount
	tableID        *tables.TableID
	conversionRate loyalty.ConversionRate
}

// Execute 執行結帳 Use Case
//
// 業務流程：
// 1. 驗證輸入並轉換為 Value Object（失敗即拒絕，零副作用）
// 2. 在原子提交中執行：
//    a. 載入店家
//    b. 桌位結帳：清桌並以訂單行項目構建購物車（指令行項目為追加項）
//    c. 按商品聚合數量、檢查並扣減庫存
//    d. 顧客在場時：兌換積分（檢查餘額）、按總額計算獲得積分
//    e. 分配收據序號、記錄第一筆交易時間
//    f. 創建交易記錄並轉換到終態（Completed / PaidAndCleared）
//    g. 追加交易記錄、更新所有被修改的聚合
// 3. 提交成功後發布領域事件、返回結果
//
// 任一步驟失敗，整個提交回滾：庫存、積分、代幣、桌位、序號
// 全部保持原狀，不存在外部可觀察的部分效果。
func (uc *ProcessCheckoutUseCaseImpl) Execute(ctx context.Context, cmd ProcessCheckoutCommand) (*ProcessCheckoutResult, error) {
	// Step 1: 驗證輸入並轉換為 Value Object
	in, err := uc.validate(cmd)
	if err != nil {
		return nil, err
	}

	// Step 2: 在原子提交中執行業務邏輯
	// 重試時 fn 會整體重新執行，所有聚合在 fn 內重新載入
	var (
		theStore    *store.Store
		theCustomer *loyalty.Customer
		theTx       *checkout.Transaction
	)

	err = uc.atomic.InAtomic(ctx, func(tc shared.TransactionContext) error {
		theCustomer = nil

		// 2a. 載入店家
		s, err := uc.storeRepo.FindByID(tc, in.storeID)
		if err != nil {
			return err
		}
		theStore = s

		// 2b. 桌位結帳：清桌，以被清除訂單的行項目為權威購物車內容
		var theTable *tables.Table
		cartLines := in.cmdLines
		if in.tableID != nil {
			t, err := uc.tableRepo.FindByID(tc, *in.tableID)
			if err != nil {
				return err
			}
			if !t.StoreID().Equals(in.storeID) {
				return tables.ErrTableNotFound.WithContext(
					"table_id", in.tableID.String(),
					"store_id", in.storeID.String(),
				)
			}

			order, err := t.ClearForSettlement()
			if err != nil {
				return err
			}
			theTable = t

			settled, err := orderToCartLines(order)
			if err != nil {
				return err
			}
			cartLines = append(settled, in.cmdLines...)
		}

		cart, err := checkout.NewCart(cartLines)
		if err != nil {
			return err
		}

		// 2c. 按商品聚合數量後檢查並扣減庫存
		// （同一商品的多個行項目合併為一次扣減）
		if err := uc.settleStock(tc, in.storeID, cart); err != nil {
			return err
		}

		// 金額計算集中在交易記錄的建構函數，此處先算出總額供積分使用
		subtotal := cart.Subtotal()
		totalAmount := subtotal.Sub(in.discount.AmountFor(subtotal))

		// 2d. 顧客積分結算
		pointsEarned := loyalty.ZeroPoints()
		if in.customerID != nil {
			c, err := uc.customerRepo.FindByID(tc, *in.customerID)
			if err != nil {
				return err
			}
			theCustomer = c

			if err := c.RedeemPoints(in.pointsToRedeem, "checkout"); err != nil {
				return err
			}

			pointsEarned, err = uc.pointsCalc.CalculateFromAmount(totalAmount, in.conversionRate)
			if err != nil {
				return err
			}
		}

		// 2e. 收據序號與第一筆交易時間
		receiptNumber := s.AllocateReceiptNumber()
		s.RecordTransactionAt(time.Now())

		// 2f. 創建交易記錄並轉換到終態
		tx, err := checkout.NewTransaction(
			in.storeID,
			in.staffID,
			cart,
			in.discount,
			in.paymentMethod,
			in.customerID,
			pointsEarned,
			in.pointsToRedeem,
			receiptNumber,
			in.tableID,
		)
		if err != nil {
			return err
		}

		if theCustomer != nil {
			theCustomer.EarnPoints(pointsEarned, tx.TransactionID().String())
		}

		if theTable != nil {
			err = tx.MarkPaidAndCleared()
		} else {
			err = tx.MarkCompleted()
		}
		if err != nil {
			return err
		}
		theTx = tx

		// 2g. 落地所有效果
		if err := uc.txRepo.Append(tc, tx); err != nil {
			return err
		}
		if theCustomer != nil {
			if err := uc.customerRepo.Update(tc, theCustomer); err != nil {
				return err
			}
		}
		if theTable != nil {
			if err := uc.tableRepo.Update(tc, theTable); err != nil {
				return err
			}
		}
		return uc.storeRepo.Update(tc, s)
	})

	if err != nil {
		return nil, err
	}

	// Step 3: 提交成功，發布事件並返回結果
	uc.publishEvents(theStore, theCustomer, theTx)

	uc.logger.Info("checkout committed",
		zap.String("transaction_id", theTx.TransactionID().String()),
		zap.String("store_id", cmd.StoreID),
		zap.Int("receipt_number", theTx.ReceiptNumber()),
		zap.String("total_amount", theTx.TotalAmount().String()),
		zap.String("status", string(theTx.Status())),
	)

	return &ProcessCheckoutResult{
		TransactionID:  theTx.TransactionID().String(),
		ReceiptNumber:  theTx.ReceiptNumber(),
		Subtotal:       theTx.Subtotal(),
		DiscountAmount: theTx.DiscountAmount(),
		TotalAmount:    theTx.TotalAmount(),
		PointsEarned:   theTx.PointsEarned().Value(),
		PointsRedeemed: theTx.PointsRedeemed().Value(),
		Status:         string(theTx.Status()),
	}, nil
}

// validate 驗證指令並轉換為 Value Object
// 任何失敗都在原子提交之前發生，保證零副作用
func (uc *ProcessCheckoutUseCaseImpl) validate(cmd ProcessCheckoutCommand) (*checkoutInput, error) {
	storeID, err := store.StoreIDFromString(cmd.StoreID)
	if err != nil {
		return nil, err
	}
	staffID, err := checkout.StaffIDFromString(cmd.StaffID)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := checkout.NewPaymentMethod(cmd.PaymentMethod)
	if err != nil {
		return nil, err
	}

	discount, err := toDiscount(cmd.Discount)
	if err != nil {
		return nil, err
	}

	cmdLines := make([]checkout.CartLine, 0, len(cmd.Lines))
	for _, li := range cmd.Lines {
		var line checkout.CartLine
		if li.ProductID != "" {
			productID, err := catalog.ProductIDFromString(li.ProductID)
			if err != nil {
				return nil, err
			}
			line, err = checkout.NewCatalogLine(productID, li.Name, li.Quantity, li.UnitPrice)
			if err != nil {
				return nil, err
			}
		} else {
			line, err = checkout.NewManualLine(li.Name, li.Quantity, li.UnitPrice)
			if err != nil {
				return nil, err
			}
		}
		cmdLines = append(cmdLines, line)
	}

	var tableID *tables.TableID
	if cmd.TableID != "" {
		id, err := tables.TableIDFromString(cmd.TableID)
		if err != nil {
			return nil, err
		}
		tableID = &id
	}

	// 空購物車驗證：桌位結帳的購物車內容來自被清除的訂單，
	// 指令行項目允許為空；一般結帳則必須非空
	if tableID == nil {
		if _, err := checkout.NewCart(cmdLines); err != nil {
			return nil, err
		}
	}

	var customerID *loyalty.CustomerID
	conversionRate := loyalty.ConversionRate{}
	if cmd.CustomerID != "" {
		id, err := loyalty.CustomerIDFromString(cmd.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = &id

		conversionRate, err = loyalty.NewConversionRate(cmd.ConversionRate)
		if err != nil {
			return nil, err
		}
	}

	pointsToRedeem, err := loyalty.NewPointsAmount(cmd.PointsToRedeem)
	if err != nil {
		return nil, err
	}
	if !pointsToRedeem.IsZero() && customerID == nil {
		return nil, checkout.ErrRedeemWithoutCustomer.WithContext(
			"points_to_redeem", cmd.PointsToRedeem,
		)
	}

	return &checkoutInput{
		storeID:        storeID,
		staffID:        staffID,
		cmdLines:       cmdLines,
		discount:       discount,
		paymentMethod:  paymentMethod,
		customerID:     customerID,
		pointsToRedeem: pointsToRedeem,
		tableID:        tableID,
		conversionRate: conversionRate,
	}, nil
}

// settleStock 按商品聚合數量後檢查並扣減庫存
//
// 前置條件在提交內檢查（而非提交前），避免 time-of-check/time-of-use
// 競態：兩筆針對同一商品的並發結帳通過樂觀鎖在庫存 key 粒度上序列化。
func (uc *ProcessCheckoutUseCaseImpl) settleStock(tc shared.TransactionContext, storeID store.StoreID, cart checkout.Cart) error {
	quantities := make(map[catalog.ProductID]int)
	orderedIDs := make([]catalog.ProductID, 0)
	for _, line := range cart.Lines() {
		if !line.IsCatalogItem() {
			continue
		}
		id := *line.ProductID()
		if _, seen := quantities[id]; !seen {
			orderedIDs = append(orderedIDs, id)
		}
		quantities[id] += line.Quantity()
	}

	for _, id := range orderedIDs {
		product, err := uc.productRepo.FindByID(tc, id)
		if err != nil {
			return err
		}
		if !product.StoreID().Equals(storeID) {
			return catalog.ErrProductNotFound.WithContext(
				"product_id", id.String(),
				"store_id", storeID.String(),
			)
		}
		if err := product.DecreaseStock(quantities[id]); err != nil {
			return err
		}
		if err := uc.productRepo.Update(tc, product); err != nil {
			return err
		}
	}
	return nil
}

// publishEvents 提交成功後發布所有聚合的領域事件
// 事件發布失敗只記錄，不影響已提交的結帳
func (uc *ProcessCheckoutUseCaseImpl) publishEvents(s *store.Store, c *loyalty.Customer, tx *checkout.Transaction) {
	events := s.PullEvents()
	if c != nil {
		events = append(events, c.PullEvents()...)
	}
	events = append(events, tx.PullEvents()...)

	if err := uc.publisher.PublishBatch(events); err != nil {
		uc.logger.Warn("failed to publish checkout events",
			zap.String("transaction_id", tx.TransactionID().String()),
			zap.Error(err),
		)
	}
}

func toDiscount(in DiscountInput) (checkout.Discount, error) {
	switch in.Kind {
	case "":
		return checkout.NoDiscount(), nil
	case string(checkout.DiscountPercent):
		return checkout.NewPercentDiscount(in.Value)
	case string(checkout.DiscountNominal):
		return checkout.NewNominalDiscount(in.Value)
	default:
		return checkout.Discount{}, checkout.ErrInvalidDiscountKind.WithContext("kind", in.Kind)
	}
}

func orderToCartLines(order *tables.OpenOrder) ([]checkout.CartLine, error) {
	lines := make([]checkout.CartLine, 0, len(order.Lines()))
	for _, ol := range order.Lines() {
		var (
			line checkout.CartLine
			err  error
		)
		if ol.ProductID() != nil {
			line, err = checkout.NewCatalogLine(*ol.ProductID(), ol.Name(), ol.Quantity(), ol.UnitPrice())
		} else {
			line, err = checkout.NewManualLine(ol.Name(), ol.Quantity(), ol.UnitPrice())
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
