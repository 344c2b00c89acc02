package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"souvenir-shop-backend/internal/domains/cart/model"
)

// CartRepository defines cart data access.
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating it on first access.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	// GetLines returns the cart's items joined with their products.
	GetLines(ctx context.Context, cartID uuid.UUID) ([]*model.CartLine, error)

	// AddItem inserts a line or adds to the quantity of an existing one.
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// ClearItemsTx empties the cart inside the checkout transaction.
	ClearItemsTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}
