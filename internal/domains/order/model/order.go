package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses
const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Payment methods
const (
	PaymentCard           = "CARD"
	PaymentCashOnDelivery = "COD"
)

// Order is a placed order. Totals are in the shop currency with two
// decimal places.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderNumber string          `json:"order_number" db:"order_number"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	Status      string          `json:"status" db:"status"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
	Discount    decimal.Decimal `json:"discount" db:"discount"`
	Total       decimal.Decimal `json:"total" db:"total"`
	PromotionID *uuid.UUID      `json:"promotion_id,omitempty" db:"promotion_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItem snapshots one cart line at checkout time. OriginalPrice and
// FinalPrice are per unit; DiscountAmount is the promo-code discount
// for the whole line (per-unit discount times quantity).
type OrderItem struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	OrderID        uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID      uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName    string          `json:"product_name" db:"product_name"`
	Quantity       int             `json:"quantity" db:"quantity"`
	OriginalPrice  decimal.Decimal `json:"original_price" db:"original_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	FinalPrice     decimal.Decimal `json:"final_price" db:"final_price"`
	PromotionID    *uuid.UUID      `json:"promotion_id,omitempty" db:"promotion_id"`
}

// Shipping is the delivery record created with the order.
// TrackingNumber stays empty until the carrier assigns one.
type Shipping struct {
	ID              uuid.UUID `json:"id" db:"id"`
	OrderID         uuid.UUID `json:"order_id" db:"order_id"`
	City            string    `json:"city" db:"city"`
	WarehouseNumber string    `json:"warehouse_number" db:"warehouse_number"`
	RecipientName   string    `json:"recipient_name" db:"recipient_name"`
	RecipientPhone  string    `json:"recipient_phone" db:"recipient_phone"`
	TrackingNumber  *string   `json:"tracking_number,omitempty" db:"tracking_number"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Payment is the payment record created with the order. Amount is
// finalized after the promo-code discount is allocated; TransactionID
// stays empty until a gateway settles the payment.
type Payment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	OrderID       uuid.UUID       `json:"order_id" db:"order_id"`
	Method        string          `json:"method" db:"method"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Status        string          `json:"status" db:"status"`
	TransactionID *string         `json:"transaction_id,omitempty" db:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
