package service

import (
	"context"

	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/catalog/model"
)

type ServiceInterface interface {
	// Public read path. The audience tag selects which promotions shape
	// the display prices.
	ListProducts(ctx context.Context, req *model.ListProductsRequest, audienceTag string) ([]*model.ProductResponse, int, error)
	GetProduct(ctx context.Context, id uuid.UUID, audienceTag string) (*model.ProductResponse, error)
	ListCategories(ctx context.Context) ([]*model.CategoryResponse, error)

	// Admin methods
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
