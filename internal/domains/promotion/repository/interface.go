package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"souvenir-shop-backend/internal/domains/promotion/model"
)

// PromotionRepository defines promotion data access.
type PromotionRepository interface {
	// Read operations
	FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
	// ListWindowActive returns promotions that are switched on and inside
	// their activity window at the given instant. Audience filtering is
	// done by the service layer.
	ListWindowActive(ctx context.Context, now time.Time) ([]*model.Promotion, error)
	List(ctx context.Context, page, limit int) ([]*model.Promotion, int, error)

	// Write operations
	Create(ctx context.Context, promo *model.Promotion) error
	Update(ctx context.Context, promo *model.Promotion) error
	UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Checkout support, executed inside the checkout transaction.
	// FindActiveByCodeForUpdate returns (nil, nil) when no redeemable
	// promotion matches the code.
	FindActiveByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*model.Promotion, error)
	IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}
