package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion types
const (
	TypePercentage  = "PERCENTAGE"
	TypeFixedAmount = "FIXED_AMOUNT"
)

// Promotion target scopes
const (
	TargetProduct  = "PRODUCT"
	TargetCategory = "CATEGORY"
	TargetCart     = "CART"
)

// AudienceAll is the universal audience tag: the promotion is visible
// to every caller regardless of campus status.
const AudienceAll = "ALL"

// Promotion represents a discount campaign or promo code.
type Promotion struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`

	// Discount configuration
	Type  string          `json:"type" db:"type"`
	Value decimal.Decimal `json:"value" db:"value"`

	// Target scope: PRODUCT / CATEGORY promotions carry the target id,
	// CART promotions apply to every product.
	TargetType string     `json:"target_type" db:"target_type"`
	TargetID   *uuid.UUID `json:"target_id,omitempty" db:"target_id"`

	// Audience classification (ALL, STUDENT, STAFF, ALUMNI, ...)
	Audience string `json:"audience" db:"audience"`

	// Higher priority is applied first.
	Priority int `json:"priority" db:"priority"`

	// Activity window; a nil bound means unbounded on that side.
	StartsAt *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt   *time.Time `json:"ends_at,omitempty" db:"ends_at"`

	// Checkout promo code (nil for passive display promotions).
	PromoCode *string `json:"promo_code,omitempty" db:"promo_code"`

	// Usage limits
	UsageLimit   *int `json:"usage_limit,omitempty" db:"usage_limit"`
	CurrentUsage int  `json:"current_usage" db:"current_usage"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsActiveAt reports whether the promotion is switched on and inside
// its activity window at the given instant.
func (p *Promotion) IsActiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && p.StartsAt.After(now) {
		return false
	}
	if p.EndsAt != nil && p.EndsAt.Before(now) {
		return false
	}
	return true
}

// AppliesToAudience reports whether a caller with the given audience
// tag may see this promotion. The ALL audience matches everyone;
// otherwise the tag must match exactly.
func (p *Promotion) AppliesToAudience(audienceTag string) bool {
	return p.Audience == AudienceAll || p.Audience == audienceTag
}

// HasUsageLeft reports whether the promo code can still be redeemed.
func (p *Promotion) HasUsageLeft() bool {
	return p.UsageLimit == nil || p.CurrentUsage < *p.UsageLimit
}

// MatchesProduct reports whether the promotion's scope covers a product
// with the given product and category ids.
func (p *Promotion) MatchesProduct(productID, categoryID uuid.UUID) bool {
	switch p.TargetType {
	case TargetCart:
		return true
	case TargetProduct:
		return p.TargetID != nil && *p.TargetID == productID
	case TargetCategory:
		return p.TargetID != nil && *p.TargetID == categoryID
	default:
		return false
	}
}
