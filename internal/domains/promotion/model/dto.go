package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePromotionRequest is the admin payload for creating a promotion.
type CreatePromotionRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Type        string     `json:"type"`
	Value       float64    `json:"value"`
	TargetType  string     `json:"target_type"`
	TargetID    *uuid.UUID `json:"target_id,omitempty"`
	Audience    string     `json:"audience"`
	Priority    int        `json:"priority"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	PromoCode   *string    `json:"promo_code,omitempty"`
	UsageLimit  *int       `json:"usage_limit,omitempty"`
	IsActive    bool       `json:"is_active"`
}

func (r CreatePromotionRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 200),
		),
		validation.Field(&r.Type,
			validation.Required,
			validation.In(TypePercentage, TypeFixedAmount).Error("type must be PERCENTAGE or FIXED_AMOUNT"),
		),
		validation.Field(&r.Value,
			validation.Required.Error("value is required"),
			validation.Min(0.01).Error("value must be greater than 0"),
		),
		validation.Field(&r.TargetType,
			validation.Required,
			validation.In(TargetProduct, TargetCategory, TargetCart).Error("target_type must be PRODUCT, CATEGORY or CART"),
		),
		validation.Field(&r.Audience, validation.Required),
	)
	if err != nil {
		return err
	}

	if r.Type == TypePercentage && r.Value > 100 {
		return ErrPercentageOutOfRange
	}
	if r.TargetType != TargetCart && r.TargetID == nil {
		return ErrTargetIDRequired
	}
	if r.StartsAt != nil && r.EndsAt != nil && !r.EndsAt.After(*r.StartsAt) {
		return ErrInvalidWindow
	}

	return nil
}

// UpdatePromotionRequest carries partial updates; nil fields are untouched.
type UpdatePromotionRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Value       *float64   `json:"value,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	UsageLimit  *int       `json:"usage_limit,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// PromotionResponse is the public shape of a promotion.
type PromotionResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Type         string          `json:"type"`
	Value        decimal.Decimal `json:"value"`
	TargetType   string          `json:"target_type"`
	TargetID     *uuid.UUID      `json:"target_id,omitempty"`
	Audience     string          `json:"audience"`
	Priority     int             `json:"priority"`
	StartsAt     *time.Time      `json:"starts_at,omitempty"`
	EndsAt       *time.Time      `json:"ends_at,omitempty"`
	PromoCode    *string         `json:"promo_code,omitempty"`
	UsageLimit   *int            `json:"usage_limit,omitempty"`
	CurrentUsage int             `json:"current_usage"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToResponse converts a Promotion to its public shape.
func (p *Promotion) ToResponse() *PromotionResponse {
	return &PromotionResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Type:         p.Type,
		Value:        p.Value,
		TargetType:   p.TargetType,
		TargetID:     p.TargetID,
		Audience:     p.Audience,
		Priority:     p.Priority,
		StartsAt:     p.StartsAt,
		EndsAt:       p.EndsAt,
		PromoCode:    p.PromoCode,
		UsageLimit:   p.UsageLimit,
		CurrentUsage: p.CurrentUsage,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}
