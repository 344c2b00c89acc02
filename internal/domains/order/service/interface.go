package service

import (
	"context"

	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/order/model"
)

type ServiceInterface interface {
	// Checkout places an order from the user's cart: order, shipping and
	// payment records, discount allocation, stock decrement and cart
	// clearing happen in one transaction.
	Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	ListOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Order, int, error)
	GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderDetailResponse, error)
}
