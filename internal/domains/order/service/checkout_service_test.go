package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartModel "souvenir-shop-backend/internal/domains/cart/model"
	"souvenir-shop-backend/internal/domains/order/model"
	promotionModel "souvenir-shop-backend/internal/domains/promotion/model"
)

// fakeOrderRepo stages every write and only applies it on commit, so
// tests can assert that failed checkouts leave no trace.
type fakeOrderRepo struct {
	stock map[uuid.UUID]int

	stagedStock  map[uuid.UUID]int
	stagedOrders []*model.Order
	stagedItems  []*model.OrderItem

	orders    []*model.Order
	items     []*model.OrderItem
	shippings []*model.Shipping
	payments  []*model.Payment

	lastTotals struct {
		subtotal, discount, total decimal.Decimal
		promotionID               *uuid.UUID
	}
	lastPaymentAmount decimal.Decimal

	inTx       bool
	committed  bool
	rolledBack bool
}

func newFakeOrderRepo(stock map[uuid.UUID]int) *fakeOrderRepo {
	return &fakeOrderRepo{stock: stock}
}

func (f *fakeOrderRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	f.inTx = true
	f.stagedStock = make(map[uuid.UUID]int, len(f.stock))
	for k, v := range f.stock {
		f.stagedStock[k] = v
	}
	f.stagedOrders = nil
	f.stagedItems = nil
	return nil, nil
}

func (f *fakeOrderRepo) CommitTx(ctx context.Context, tx pgx.Tx) error {
	f.stock = f.stagedStock
	f.orders = append(f.orders, f.stagedOrders...)
	f.items = append(f.items, f.stagedItems...)
	f.inTx = false
	f.committed = true
	return nil
}

func (f *fakeOrderRepo) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	if f.inTx {
		f.inTx = false
		f.rolledBack = true
	}
	return nil
}

func (f *fakeOrderRepo) CreateOrderTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	order.CreatedAt = time.Now()
	f.stagedOrders = append(f.stagedOrders, order)
	return nil
}

func (f *fakeOrderRepo) CreateShippingTx(ctx context.Context, tx pgx.Tx, shipping *model.Shipping) error {
	f.shippings = append(f.shippings, shipping)
	return nil
}

func (f *fakeOrderRepo) CreatePaymentTx(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeOrderRepo) CreateOrderItemsTx(ctx context.Context, tx pgx.Tx, items []*model.OrderItem) error {
	f.stagedItems = append(f.stagedItems, items...)
	return nil
}

func (f *fakeOrderRepo) UpdateOrderTotalsTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, subtotal, discount, total decimal.Decimal, promotionID *uuid.UUID) error {
	f.lastTotals.subtotal = subtotal
	f.lastTotals.discount = discount
	f.lastTotals.total = total
	f.lastTotals.promotionID = promotionID
	for _, o := range f.stagedOrders {
		if o.ID == orderID {
			o.Subtotal, o.Discount, o.Total, o.PromotionID = subtotal, discount, total, promotionID
		}
	}
	return nil
}

func (f *fakeOrderRepo) UpdatePaymentAmountTx(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, amount decimal.Decimal) error {
	f.lastPaymentAmount = amount
	for _, p := range f.payments {
		if p.ID == paymentID {
			p.Amount = amount
		}
	}
	return nil
}

func (f *fakeOrderRepo) DecrementStockTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) (bool, error) {
	if f.stagedStock[productID] < quantity {
		return false, nil
	}
	f.stagedStock[productID] -= quantity
	return true, nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Order, int, error) {
	return f.orders, len(f.orders), nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	for _, o := range f.orders {
		if o.ID == orderID && o.UserID == userID {
			return o, nil
		}
	}
	return nil, model.ErrOrderNotFound
}

func (f *fakeOrderRepo) GetShippingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Shipping, error) {
	for _, s := range f.shippings {
		if s.OrderID == orderID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	for _, p := range f.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetItems(ctx context.Context, orderID uuid.UUID) ([]*model.OrderItem, error) {
	var out []*model.OrderItem
	for _, item := range f.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeCartRepo struct {
	cart     *cartModel.Cart
	lines    []*cartModel.CartLine
	cleared  bool
	clearErr error
}

func (f *fakeCartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*cartModel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartRepo) GetLines(ctx context.Context, cartID uuid.UUID) ([]*cartModel.CartLine, error) {
	return f.lines, nil
}

func (f *fakeCartRepo) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	return nil
}

func (f *fakeCartRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error {
	return nil
}

func (f *fakeCartRepo) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error { return nil }

func (f *fakeCartRepo) ClearItems(ctx context.Context, cartID uuid.UUID) error { return nil }

func (f *fakeCartRepo) ClearItemsTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	return nil
}

type fakePromoRepo struct {
	promo          *promotionModel.Promotion
	usageIncrement int
}

func (f *fakePromoRepo) FindByID(ctx context.Context, id uuid.UUID) (*promotionModel.Promotion, error) {
	return nil, promotionModel.ErrPromotionNotFound
}

func (f *fakePromoRepo) ListWindowActive(ctx context.Context, now time.Time) ([]*promotionModel.Promotion, error) {
	return nil, nil
}

func (f *fakePromoRepo) List(ctx context.Context, page, limit int) ([]*promotionModel.Promotion, int, error) {
	return nil, 0, nil
}

func (f *fakePromoRepo) Create(ctx context.Context, promo *promotionModel.Promotion) error { return nil }
func (f *fakePromoRepo) Update(ctx context.Context, promo *promotionModel.Promotion) error { return nil }
func (f *fakePromoRepo) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	return nil
}
func (f *fakePromoRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakePromoRepo) FindActiveByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*promotionModel.Promotion, error) {
	if f.promo != nil && f.promo.PromoCode != nil && *f.promo.PromoCode == code {
		return f.promo, nil
	}
	return nil, nil
}

func (f *fakePromoRepo) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	f.usageIncrement++
	return nil
}

func checkoutRequest(promoCode *string) *model.CheckoutRequest {
	return &model.CheckoutRequest{
		City:            "Kharkiv",
		WarehouseNumber: "12",
		RecipientName:   "Olha Bondar",
		RecipientPhone:  "+380501234567",
		PaymentMethod:   model.PaymentCard,
		PromoCode:       promoCode,
	}
}

func cartWith(lines ...*cartModel.CartLine) *fakeCartRepo {
	return &fakeCartRepo{
		cart:  &cartModel.Cart{ID: uuid.New(), UserID: uuid.New()},
		lines: lines,
	}
}

func stockFor(lines []*cartModel.CartLine) map[uuid.UUID]int {
	stock := map[uuid.UUID]int{}
	for _, l := range lines {
		stock[l.ProductID] = l.Stock
	}
	return stock
}

func TestCheckout_HappyPathWithoutPromo(t *testing.T) {
	lines := []*cartModel.CartLine{line(25, 2), line(10, 1)}
	carts := cartWith(lines...)
	orders := newFakeOrderRepo(stockFor(lines))
	svc := NewOrderService(orders, carts, &fakePromoRepo{})

	resp, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(nil))
	require.NoError(t, err)

	assert.Equal(t, model.StatusProcessing, resp.Status)
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "ORD-"))
	assert.Equal(t, "60.00", resp.Subtotal.StringFixed(2))
	assert.True(t, resp.Discount.IsZero())
	assert.Equal(t, "60.00", resp.Total.StringFixed(2))

	require.True(t, orders.committed)
	assert.Equal(t, lines[0].Stock-2, orders.stock[lines[0].ProductID])
	assert.Equal(t, lines[1].Stock-1, orders.stock[lines[1].ProductID])
	assert.True(t, carts.cleared)

	require.Len(t, orders.items, 2)
	for _, item := range orders.items {
		assert.True(t, item.OriginalPrice.Equal(item.FinalPrice))
		assert.True(t, item.DiscountAmount.IsZero())
		assert.Nil(t, item.PromotionID)
	}

	require.Len(t, orders.shippings, 1)
	assert.Equal(t, "Kharkiv", orders.shippings[0].City)
	require.Len(t, orders.payments, 1)
	assert.Equal(t, "60.00", orders.lastPaymentAmount.StringFixed(2))
}

func TestCheckout_PercentagePromoCode(t *testing.T) {
	lines := []*cartModel.CartLine{line(100, 1)}
	carts := cartWith(lines...)
	orders := newFakeOrderRepo(stockFor(lines))

	code := "CAMPUS10"
	promos := &fakePromoRepo{promo: &promotionModel.Promotion{
		ID:        uuid.New(),
		Type:      promotionModel.TypePercentage,
		Value:     decimal.NewFromInt(10),
		Audience:  promotionModel.AudienceAll,
		PromoCode: &code,
		IsActive:  true,
	}}

	svc := NewOrderService(orders, carts, promos)

	resp, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(&code))
	require.NoError(t, err)

	assert.Equal(t, "10.00", resp.Discount.StringFixed(2))
	assert.Equal(t, "90.00", resp.Total.StringFixed(2))
	assert.Equal(t, 1, promos.usageIncrement)
	assert.Equal(t, "90.00", orders.lastPaymentAmount.StringFixed(2))

	require.Len(t, orders.items, 1)
	assert.Equal(t, "10.00", orders.items[0].DiscountAmount.StringFixed(2))
	assert.Equal(t, "90.00", orders.items[0].FinalPrice.StringFixed(2))
	require.NotNil(t, orders.items[0].PromotionID)
}

func TestCheckout_ItemDiscountCoversWholeLine(t *testing.T) {
	// The item snapshot stores the line-total discount, not the per-unit
	// one: 19.99 x 3 at 10% discounts 2.00 per unit but records 6.00.
	lines := []*cartModel.CartLine{line(19.99, 3)}
	carts := cartWith(lines...)
	orders := newFakeOrderRepo(stockFor(lines))

	code := "CAMPUS10"
	promos := &fakePromoRepo{promo: &promotionModel.Promotion{
		ID:        uuid.New(),
		Type:      promotionModel.TypePercentage,
		Value:     decimal.NewFromInt(10),
		Audience:  promotionModel.AudienceAll,
		PromoCode: &code,
		IsActive:  true,
	}}

	svc := NewOrderService(orders, carts, promos)

	resp, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(&code))
	require.NoError(t, err)

	assert.Equal(t, "6.00", resp.Discount.StringFixed(2))
	assert.Equal(t, "53.97", resp.Total.StringFixed(2))

	require.Len(t, orders.items, 1)
	assert.Equal(t, "6.00", orders.items[0].DiscountAmount.StringFixed(2))
	assert.Equal(t, "17.99", orders.items[0].FinalPrice.StringFixed(2))
}

func TestGetOrder_IncludesShippingAndPaymentDetail(t *testing.T) {
	lines := []*cartModel.CartLine{line(25, 2)}
	carts := cartWith(lines...)
	orders := newFakeOrderRepo(stockFor(lines))
	svc := NewOrderService(orders, carts, &fakePromoRepo{})

	resp, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(nil))
	require.NoError(t, err)

	detail, err := svc.GetOrder(context.Background(), resp.OrderID, carts.cart.UserID)
	require.NoError(t, err)

	assert.Equal(t, resp.OrderNumber, detail.Order.OrderNumber)

	require.NotNil(t, detail.Shipping)
	assert.Equal(t, "Kharkiv", detail.Shipping.City)
	assert.Equal(t, "12", detail.Shipping.WarehouseNumber)
	assert.Equal(t, "Olha Bondar", detail.Shipping.RecipientName)
	assert.Nil(t, detail.Shipping.TrackingNumber)

	require.NotNil(t, detail.Payment)
	assert.Equal(t, model.PaymentCard, detail.Payment.Method)
	assert.Equal(t, "Pending", detail.Payment.Status)
	assert.Equal(t, "50.00", detail.Payment.Amount.StringFixed(2))
	assert.Nil(t, detail.Payment.TransactionID)

	require.Len(t, detail.Items, 1)
	assert.Equal(t, lines[0].ProductID, detail.Items[0].ProductID)
}

func TestCheckout_UnknownPromoCodeDegradesSilently(t *testing.T) {
	lines := []*cartModel.CartLine{line(40, 1)}
	carts := cartWith(lines...)
	orders := newFakeOrderRepo(stockFor(lines))
	promos := &fakePromoRepo{}
	svc := NewOrderService(orders, carts, promos)

	code := "NOPE"
	resp, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(&code))
	require.NoError(t, err)

	assert.True(t, resp.Discount.IsZero())
	assert.Equal(t, "40.00", resp.Total.StringFixed(2))
	assert.Equal(t, 0, promos.usageIncrement)
	assert.True(t, orders.committed)
}

func TestCheckout_EmptyCart(t *testing.T) {
	carts := cartWith()
	orders := newFakeOrderRepo(map[uuid.UUID]int{})
	svc := NewOrderService(orders, carts, &fakePromoRepo{})

	_, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(nil))
	assert.ErrorIs(t, err, model.ErrCartEmpty)
	assert.False(t, orders.committed)
}

func TestCheckout_StockRaceRollsBack(t *testing.T) {
	// Stock passes the precheck but another checkout wins the row
	// update: the conditional decrement reports no rows and the whole
	// transaction is rolled back.
	lines := []*cartModel.CartLine{line(15, 2)}
	carts := cartWith(lines...)

	stock := stockFor(lines)
	stock[lines[0].ProductID] = 1 // less than the precheck saw
	lines[0].Stock = 2            // precheck value

	orders := newFakeOrderRepo(stock)
	svc := NewOrderService(orders, carts, &fakePromoRepo{})

	_, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	assert.True(t, orders.rolledBack)
	assert.False(t, orders.committed)
	assert.Equal(t, 1, orders.stock[lines[0].ProductID])
	assert.Empty(t, orders.orders)
	assert.False(t, carts.cleared)
}

func TestCheckout_FailureAfterWritesRollsBackStock(t *testing.T) {
	lines := []*cartModel.CartLine{line(20, 1)}
	carts := cartWith(lines...)
	carts.clearErr = fmt.Errorf("connection reset")

	orders := newFakeOrderRepo(stockFor(lines))
	svc := NewOrderService(orders, carts, &fakePromoRepo{})

	_, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(nil))
	require.Error(t, err)

	assert.True(t, orders.rolledBack)
	assert.False(t, orders.committed)
	assert.Equal(t, lines[0].Stock, orders.stock[lines[0].ProductID])
	assert.Empty(t, orders.orders)
	assert.Empty(t, orders.items)
}

func TestCheckout_InactiveProductRejected(t *testing.T) {
	l := line(10, 1)
	l.IsActive = false
	carts := cartWith(l)
	orders := newFakeOrderRepo(stockFor([]*cartModel.CartLine{l}))
	svc := NewOrderService(orders, carts, &fakePromoRepo{})

	_, err := svc.Checkout(context.Background(), carts.cart.UserID, checkoutRequest(nil))
	assert.ErrorIs(t, err, model.ErrProductInactive)
}
