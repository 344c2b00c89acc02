package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	cartRepository "souvenir-shop-backend/internal/domains/cart/repository"
	"souvenir-shop-backend/internal/domains/order/model"
	"souvenir-shop-backend/internal/domains/order/repository"
	promotionModel "souvenir-shop-backend/internal/domains/promotion/model"
	promotionRepository "souvenir-shop-backend/internal/domains/promotion/repository"
	"souvenir-shop-backend/pkg/logger"
)

type orderService struct {
	orders     repository.OrderRepository
	carts      cartRepository.CartRepository
	promotions promotionRepository.PromotionRepository
}

func NewOrderService(
	orders repository.OrderRepository,
	carts cartRepository.CartRepository,
	promotions promotionRepository.PromotionRepository,
) ServiceInterface {
	return &orderService{
		orders:     orders,
		carts:      carts,
		promotions: promotions,
	}
}

// Checkout turns the user's cart into an order. The order starts in
// Processing status; shipping and payment records are created with it.
// A promo code that does not resolve to a redeemable promotion is
// ignored rather than failing the checkout. Any error inside the
// transaction rolls everything back, stock included.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.GetLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, model.ErrCartEmpty
	}

	for _, line := range lines {
		if !line.IsActive {
			return nil, model.ErrProductInactive
		}
		if line.Stock < line.Quantity {
			return nil, model.ErrInsufficientStock
		}
	}

	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.orders.RollbackTx(ctx, tx); rbErr != nil {
				logger.Error("checkout rollback failed", rbErr)
			}
		}
	}()

	order := &model.Order{
		ID:          uuid.New(),
		OrderNumber: generateOrderNumber(),
		UserID:      userID,
		Status:      model.StatusProcessing,
		Subtotal:    decimal.Zero,
		Discount:    decimal.Zero,
		Total:       decimal.Zero,
	}
	if err := s.orders.CreateOrderTx(ctx, tx, order); err != nil {
		return nil, err
	}

	shipping := &model.Shipping{
		ID:              uuid.New(),
		OrderID:         order.ID,
		City:            req.City,
		WarehouseNumber: req.WarehouseNumber,
		RecipientName:   req.RecipientName,
		RecipientPhone:  req.RecipientPhone,
	}
	if err := s.orders.CreateShippingTx(ctx, tx, shipping); err != nil {
		return nil, err
	}

	payment := &model.Payment{
		ID:      uuid.New(),
		OrderID: order.ID,
		Method:  req.PaymentMethod,
		Amount:  decimal.Zero,
		Status:  "Pending",
	}
	if err := s.orders.CreatePaymentTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	promo, err := s.resolvePromoCode(ctx, tx, req.PromoCode)
	if err != nil {
		return nil, err
	}

	alloc := Allocate(lines, promo)

	var promotionID *uuid.UUID
	if promo != nil {
		promotionID = &promo.ID
	}

	if err := s.orders.UpdateOrderTotalsTx(ctx, tx, order.ID, alloc.Subtotal, alloc.TotalDiscount, alloc.Total, promotionID); err != nil {
		return nil, err
	}
	if err := s.orders.UpdatePaymentAmountTx(ctx, tx, payment.ID, alloc.Total); err != nil {
		return nil, err
	}

	if promo != nil {
		if err := s.promotions.IncrementUsage(ctx, tx, promo.ID); err != nil {
			return nil, err
		}
	}

	items := make([]*model.OrderItem, 0, len(alloc.Lines))
	for _, line := range alloc.Lines {
		items = append(items, &model.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      line.ProductID,
			ProductName:    line.Name,
			Quantity:       line.Quantity,
			OriginalPrice:  line.UnitPrice,
			DiscountAmount: line.LineDiscount,
			FinalPrice:     line.FinalPrice,
			PromotionID:    promotionID,
		})
	}
	if err := s.orders.CreateOrderItemsTx(ctx, tx, items); err != nil {
		return nil, err
	}

	for _, line := range alloc.Lines {
		ok, err := s.orders.DecrementStockTx(ctx, tx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, model.ErrInsufficientStock)
		}
	}

	if err := s.carts.ClearItemsTx(ctx, tx, cart.ID); err != nil {
		return nil, err
	}

	if err := s.orders.CommitTx(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	logger.Info("order placed", map[string]interface{}{
		"order_number": order.OrderNumber,
		"user_id":      userID.String(),
		"total":        alloc.Total.StringFixed(2),
	})

	return &model.CheckoutResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Subtotal:    alloc.Subtotal,
		Discount:    alloc.TotalDiscount,
		Total:       alloc.Total,
		CreatedAt:   order.CreatedAt,
	}, nil
}

// resolvePromoCode looks the code up with a row lock so concurrent
// checkouts cannot oversubscribe a usage-limited promotion. A missing,
// expired or exhausted code resolves to nil, never to an error.
func (s *orderService) resolvePromoCode(ctx context.Context, tx pgx.Tx, code *string) (*promotionModel.Promotion, error) {
	if code == nil || *code == "" {
		return nil, nil
	}

	promo, err := s.promotions.FindActiveByCodeForUpdate(ctx, tx, *code, time.Now())
	if err != nil {
		return nil, fmt.Errorf("resolve promo code: %w", err)
	}
	if promo == nil {
		logger.Info("promo code not applicable", map[string]interface{}{"code": *code})
	}
	return promo, nil
}

// generateOrderNumber builds a human-readable unique order number:
// ORD-<unix timestamp>-<6 random hex chars>. A unique index on
// order_number backstops the vanishingly unlikely collision.
func generateOrderNumber() string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back
		// to the timestamp alone rather than panic mid-checkout.
		return fmt.Sprintf("ORD-%d-%06x", time.Now().Unix(), time.Now().UnixNano()%0xffffff)
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().Unix(), hex.EncodeToString(suffix))
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.orders.ListByUser(ctx, userID, page, limit)
}

// GetOrder returns one of the caller's orders with its shipping,
// payment and line detail.
func (s *orderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderDetailResponse, error) {
	order, err := s.orders.GetByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	shipping, err := s.orders.GetShippingByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payment, err := s.orders.GetPaymentByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.orders.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &model.OrderDetailResponse{
		Order:    order,
		Shipping: shipping,
		Payment:  payment,
		Items:    items,
	}, nil
}
