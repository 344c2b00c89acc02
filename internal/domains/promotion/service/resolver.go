package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"souvenir-shop-backend/internal/domains/promotion/model"
	"souvenir-shop-backend/internal/domains/promotion/repository"
)

// Resolver answers "which promotions apply to this caller right now".
// It is a pure read; the repository narrows to the activity window and
// the resolver filters audience and orders by priority.
type Resolver struct {
	repo repository.PromotionRepository
}

func NewResolver(repo repository.PromotionRepository) *Resolver {
	return &Resolver{repo: repo}
}

// ActivePromotions returns the currently active promotions visible to a
// caller with the given audience tag, ordered by priority descending.
// Anonymous callers pass the NONE tag and receive only ALL-audience
// promotions.
func (r *Resolver) ActivePromotions(ctx context.Context, audienceTag string, now time.Time) ([]*model.Promotion, error) {
	promos, err := r.repo.ListWindowActive(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("resolve active promotions: %w", err)
	}

	return OrderByPriority(FilterAudience(promos, audienceTag)), nil
}

// FilterAudience keeps promotions whose audience is ALL or matches the
// caller's tag exactly.
func FilterAudience(promos []*model.Promotion, audienceTag string) []*model.Promotion {
	filtered := make([]*model.Promotion, 0, len(promos))
	for _, p := range promos {
		if p.AppliesToAudience(audienceTag) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// OrderByPriority sorts promotions by priority descending. The sort is
// stable so equal-priority promotions keep their fetch order.
func OrderByPriority(promos []*model.Promotion) []*model.Promotion {
	sort.SliceStable(promos, func(i, j int) bool {
		return promos[i].Priority > promos[j].Priority
	})
	return promos
}
