package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souvenir-shop-backend/internal/domains/promotion/model"
	"souvenir-shop-backend/internal/shared/middleware"
)

// fakePromotionRepo serves canned promotions for resolver tests.
type fakePromotionRepo struct {
	promos []*model.Promotion
}

func (f *fakePromotionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	for _, p := range f.promos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, model.ErrPromotionNotFound
}

func (f *fakePromotionRepo) ListWindowActive(ctx context.Context, now time.Time) ([]*model.Promotion, error) {
	active := make([]*model.Promotion, 0, len(f.promos))
	for _, p := range f.promos {
		if p.IsActiveAt(now) {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakePromotionRepo) List(ctx context.Context, page, limit int) ([]*model.Promotion, int, error) {
	return f.promos, len(f.promos), nil
}

func (f *fakePromotionRepo) Create(ctx context.Context, promo *model.Promotion) error {
	f.promos = append(f.promos, promo)
	return nil
}

func (f *fakePromotionRepo) Update(ctx context.Context, promo *model.Promotion) error { return nil }

func (f *fakePromotionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	return nil
}

func (f *fakePromotionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakePromotionRepo) FindActiveByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*model.Promotion, error) {
	for _, p := range f.promos {
		if p.PromoCode != nil && *p.PromoCode == code && p.IsActiveAt(now) && p.HasUsageLeft() {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePromotionRepo) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return nil
}

func audiencePromo(name, audience string, priority int) *model.Promotion {
	return &model.Promotion{
		ID:         uuid.New(),
		Name:       name,
		Type:       model.TypePercentage,
		Value:      decimal.NewFromInt(10),
		TargetType: model.TargetCart,
		Audience:   audience,
		Priority:   priority,
		IsActive:   true,
	}
}

func TestActivePromotions_AudienceFiltering(t *testing.T) {
	repo := &fakePromotionRepo{promos: []*model.Promotion{
		audiencePromo("everyone", model.AudienceAll, 0),
		audiencePromo("students", "STUDENT", 0),
		audiencePromo("staff", "STAFF", 0),
	}}
	resolver := NewResolver(repo)
	now := time.Now()

	t.Run("anonymous sees only ALL", func(t *testing.T) {
		promos, err := resolver.ActivePromotions(context.Background(), middleware.AudienceNone, now)
		require.NoError(t, err)
		require.Len(t, promos, 1)
		assert.Equal(t, "everyone", promos[0].Name)
	})

	t.Run("student sees ALL plus STUDENT", func(t *testing.T) {
		promos, err := resolver.ActivePromotions(context.Background(), "STUDENT", now)
		require.NoError(t, err)
		require.Len(t, promos, 2)
		for _, p := range promos {
			assert.NotEqual(t, "staff", p.Name)
		}
	})

	t.Run("no partial tag matches", func(t *testing.T) {
		promos, err := resolver.ActivePromotions(context.Background(), "STUD", now)
		require.NoError(t, err)
		require.Len(t, promos, 1)
		assert.Equal(t, "everyone", promos[0].Name)
	})
}

func TestActivePromotions_WindowFiltering(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := audiencePromo("expired", model.AudienceAll, 0)
	expired.EndsAt = &past

	upcoming := audiencePromo("upcoming", model.AudienceAll, 0)
	upcoming.StartsAt = &future

	disabled := audiencePromo("disabled", model.AudienceAll, 0)
	disabled.IsActive = false

	open := audiencePromo("open", model.AudienceAll, 0)

	bounded := audiencePromo("bounded", model.AudienceAll, 0)
	bounded.StartsAt = &past
	bounded.EndsAt = &future

	repo := &fakePromotionRepo{promos: []*model.Promotion{expired, upcoming, disabled, open, bounded}}
	resolver := NewResolver(repo)

	promos, err := resolver.ActivePromotions(context.Background(), model.AudienceAll, now)
	require.NoError(t, err)
	require.Len(t, promos, 2)

	names := []string{promos[0].Name, promos[1].Name}
	assert.Contains(t, names, "open")
	assert.Contains(t, names, "bounded")
}

func TestActivePromotions_PriorityOrdering(t *testing.T) {
	repo := &fakePromotionRepo{promos: []*model.Promotion{
		audiencePromo("low", model.AudienceAll, 1),
		audiencePromo("high", model.AudienceAll, 100),
		audiencePromo("mid", model.AudienceAll, 50),
	}}
	resolver := NewResolver(repo)

	promos, err := resolver.ActivePromotions(context.Background(), middleware.AudienceNone, time.Now())
	require.NoError(t, err)
	require.Len(t, promos, 3)

	assert.Equal(t, "high", promos[0].Name)
	assert.Equal(t, "mid", promos[1].Name)
	assert.Equal(t, "low", promos[2].Name)
}

func TestOrderByPriority_StableForTies(t *testing.T) {
	first := audiencePromo("first", model.AudienceAll, 5)
	second := audiencePromo("second", model.AudienceAll, 5)
	third := audiencePromo("third", model.AudienceAll, 5)

	ordered := OrderByPriority([]*model.Promotion{first, second, third})

	assert.Equal(t, "first", ordered[0].Name)
	assert.Equal(t, "second", ordered[1].Name)
	assert.Equal(t, "third", ordered[2].Name)
}
