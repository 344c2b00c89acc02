package model

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListProductsRequest carries catalog listing filters.
type ListProductsRequest struct {
	Search     string
	CategoryID *uuid.UUID
	Page       int
	Limit      int
}

func (r *ListProductsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// ProductResponse is a catalog item with its promotional display price.
// DisplayPrice equals Price when no percentage promotion matches.
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	DisplayPrice decimal.Decimal `json:"display_price"`
	Stock        int             `json:"stock"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func (c *Category) ToResponse() *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

// CreateProductRequest is the admin payload for creating a product.
type CreateProductRequest struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, validation.Required.Error("category_id is required")),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 200),
		),
		validation.Field(&r.Price,
			validation.Required.Error("price is required"),
			validation.Min(0.01).Error("price must be greater than 0"),
		),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// UpdateProductRequest carries partial updates; nil fields are untouched.
type UpdateProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Stock       *int       `json:"stock,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func (r UpdateProductRequest) Validate() error {
	errs := validation.Errors{}
	if r.Price != nil && *r.Price <= 0 {
		errs["price"] = fmt.Errorf("must be greater than 0")
	}
	if r.Stock != nil && *r.Stock < 0 {
		errs["stock"] = fmt.Errorf("must not be negative")
	}
	if r.Name != nil {
		if err := validation.Validate(*r.Name, validation.Length(2, 200)); err != nil {
			errs["name"] = err
		}
	}
	return errs.Filter()
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100),
		),
	)
}

// Cache keys for catalog reads.
func ProductCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("catalog:product:%s", id)
}

func ProductListCacheKey(search string, categoryID *uuid.UUID, page, limit int) string {
	category := "all"
	if categoryID != nil {
		category = categoryID.String()
	}
	return fmt.Sprintf("catalog:products:%s:%s:%d:%d", search, category, page, limit)
}

const CategoriesCacheKey = "catalog:categories"
