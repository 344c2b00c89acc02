package service

import (
	"context"

	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/cart/model"
)

type ServiceInterface interface {
	// GetCart returns the user's cart with audience-aware display prices.
	GetCart(ctx context.Context, userID uuid.UUID, audienceTag string) (*model.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *model.AddItemRequest) error
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, req *model.UpdateItemRequest) error
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
