package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/promotion/model"
)

type ServiceInterface interface {
	// Public read path
	ListActivePromotions(ctx context.Context, audienceTag string) ([]*model.PromotionResponse, error)

	// Admin methods
	CreatePromotion(ctx context.Context, req *model.CreatePromotionRequest) (*model.Promotion, error)
	UpdatePromotion(ctx context.Context, id uuid.UUID, req *model.UpdatePromotionRequest) (*model.Promotion, error)
	GetPromotionByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
	ListPromotions(ctx context.Context, page, limit int) ([]*model.Promotion, int, error)
	UpdatePromotionStatus(ctx context.Context, id uuid.UUID, isActive bool) error
	DeletePromotion(ctx context.Context, id uuid.UUID) error
}

// ResolverInterface is the read-path contract consumed by catalog and
// cart when attaching display prices.
type ResolverInterface interface {
	ActivePromotions(ctx context.Context, audienceTag string, now time.Time) ([]*model.Promotion, error)
}
