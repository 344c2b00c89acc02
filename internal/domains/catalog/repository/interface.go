package repository

import (
	"context"

	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/catalog/model"
)

// ProductRepository defines catalog data access.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, req *model.ListProductsRequest) ([]*model.Product, int, error)

	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	// Delete removes the product and any cart lines referencing it in a
	// single transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines category data access.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	ListAll(ctx context.Context) ([]*model.Category, error)

	Create(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
