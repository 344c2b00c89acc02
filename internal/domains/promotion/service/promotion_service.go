package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"souvenir-shop-backend/internal/domains/promotion/model"
	"souvenir-shop-backend/internal/domains/promotion/repository"
)

// promotionService handles promotion business logic (admin CRUD plus
// the public active-promotion listing).
type promotionService struct {
	repo     repository.PromotionRepository
	resolver *Resolver
}

func NewPromotionService(repo repository.PromotionRepository) ServiceInterface {
	return &promotionService{
		repo:     repo,
		resolver: NewResolver(repo),
	}
}

func (s *promotionService) ListActivePromotions(ctx context.Context, audienceTag string) ([]*model.PromotionResponse, error) {
	promos, err := s.resolver.ActivePromotions(ctx, audienceTag, time.Now())
	if err != nil {
		return nil, err
	}

	responses := make([]*model.PromotionResponse, len(promos))
	for i, p := range promos {
		responses[i] = p.ToResponse()
	}

	return responses, nil
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *model.CreatePromotionRequest) (*model.Promotion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	promo := &model.Promotion{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		Value:        decimal.NewFromFloat(req.Value),
		TargetType:   req.TargetType,
		TargetID:     req.TargetID,
		Audience:     req.Audience,
		Priority:     req.Priority,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		PromoCode:    req.PromoCode,
		UsageLimit:   req.UsageLimit,
		CurrentUsage: 0,
		IsActive:     req.IsActive,
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}

	return promo, nil
}

func (s *promotionService) UpdatePromotion(ctx context.Context, id uuid.UUID, req *model.UpdatePromotionRequest) (*model.Promotion, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		promo.Name = *req.Name
	}
	if req.Description != nil {
		promo.Description = req.Description
	}
	if req.Value != nil {
		value := decimal.NewFromFloat(*req.Value)
		if value.LessThanOrEqual(decimal.Zero) {
			return nil, model.ErrInvalidValue
		}
		if promo.Type == model.TypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
			return nil, model.ErrPercentageOutOfRange
		}
		promo.Value = value
	}
	if req.Priority != nil {
		promo.Priority = *req.Priority
	}
	if req.StartsAt != nil {
		promo.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		promo.EndsAt = req.EndsAt
	}
	if promo.StartsAt != nil && promo.EndsAt != nil && !promo.EndsAt.After(*promo.StartsAt) {
		return nil, model.ErrInvalidWindow
	}
	if req.UsageLimit != nil {
		promo.UsageLimit = req.UsageLimit
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, promo); err != nil {
		return nil, fmt.Errorf("update promotion: %w", err)
	}

	return promo, nil
}

func (s *promotionService) GetPromotionByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *promotionService) ListPromotions(ctx context.Context, page, limit int) ([]*model.Promotion, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.repo.List(ctx, page, limit)
}

func (s *promotionService) UpdatePromotionStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	return s.repo.UpdateStatus(ctx, id, isActive)
}

func (s *promotionService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
