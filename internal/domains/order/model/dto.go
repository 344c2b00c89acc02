package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest places an order from the caller's cart. PromoCode is
// optional; an unknown or exhausted code does not fail the checkout.
type CheckoutRequest struct {
	City            string  `json:"city"`
	WarehouseNumber string  `json:"warehouse_number"`
	RecipientName   string  `json:"recipient_name"`
	RecipientPhone  string  `json:"recipient_phone"`
	PaymentMethod   string  `json:"payment_method"`
	PromoCode       *string `json:"promo_code,omitempty"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.City,
			validation.Required.Error("city is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.WarehouseNumber,
			validation.Required.Error("warehouse_number is required"),
			validation.Length(1, 20),
		),
		validation.Field(&r.RecipientName,
			validation.Required.Error("recipient_name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.RecipientPhone,
			validation.Required.Error("recipient_phone is required"),
			validation.Length(6, 20),
		),
		validation.Field(&r.PaymentMethod,
			validation.Required,
			validation.In(PaymentCard, PaymentCashOnDelivery).Error("payment_method must be CARD or COD"),
		),
	)
}

// CheckoutResponse is returned after a successful checkout.
type CheckoutResponse struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderDetailResponse is an order with its shipping and payment
// records and its lines.
type OrderDetailResponse struct {
	Order    *Order       `json:"order"`
	Shipping *Shipping    `json:"shipping,omitempty"`
	Payment  *Payment     `json:"payment,omitempty"`
	Items    []*OrderItem `json:"items"`
}
