package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"souvenir-shop-backend/internal/domains/order/model"
)

// OrderRepository defines order data access. The Tx methods run inside
// the checkout transaction owned by the service.
type OrderRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	CreateOrderTx(ctx context.Context, tx pgx.Tx, order *model.Order) error
	CreateShippingTx(ctx context.Context, tx pgx.Tx, shipping *model.Shipping) error
	CreatePaymentTx(ctx context.Context, tx pgx.Tx, payment *model.Payment) error
	CreateOrderItemsTx(ctx context.Context, tx pgx.Tx, items []*model.OrderItem) error
	UpdateOrderTotalsTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, subtotal, discount, total decimal.Decimal, promotionID *uuid.UUID) error
	UpdatePaymentAmountTx(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, amount decimal.Decimal) error

	// DecrementStockTx subtracts quantity from the product's stock only
	// if enough stock remains, and reports whether a row was updated.
	DecrementStockTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) (bool, error)

	// Read operations. GetShippingByOrder and GetPaymentByOrder return
	// (nil, nil) when the order has no such record.
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Order, int, error)
	GetByID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]*model.OrderItem, error)
	GetShippingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Shipping, error)
	GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
}
