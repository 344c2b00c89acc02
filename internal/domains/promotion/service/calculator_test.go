package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	catalogModel "souvenir-shop-backend/internal/domains/catalog/model"
	"souvenir-shop-backend/internal/domains/promotion/model"
)

func newTestProduct(price float64) *catalogModel.Product {
	return &catalogModel.Product{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Campus Hoodie",
		Price:      decimal.NewFromFloat(price),
		Stock:      10,
		IsActive:   true,
	}
}

func percentPromo(value float64, targetType string, targetID *uuid.UUID) *model.Promotion {
	return &model.Promotion{
		ID:         uuid.New(),
		Type:       model.TypePercentage,
		Value:      decimal.NewFromFloat(value),
		TargetType: targetType,
		TargetID:   targetID,
		Audience:   model.AudienceAll,
		IsActive:   true,
	}
}

func TestDisplayPrice_CompoundsWithPerStepRounding(t *testing.T) {
	calc := NewPriceCalculator()
	product := newTestProduct(200)

	promos := []*model.Promotion{
		percentPromo(10, model.TargetProduct, &product.ID),
		percentPromo(5, model.TargetCategory, &product.CategoryID),
		percentPromo(20, model.TargetCart, nil),
	}

	// 200 -> 180.00 -> 171.00 -> 136.80
	price := calc.DisplayPrice(product, promos)
	assert.Equal(t, "136.80", price.StringFixed(2))
}

func TestDisplayPrice_NoPromotions(t *testing.T) {
	calc := NewPriceCalculator()
	product := newTestProduct(49.99)

	price := calc.DisplayPrice(product, nil)
	assert.True(t, decimal.NewFromFloat(49.99).Equal(price))
}

func TestDisplayPrice_SkipsFixedAmountPromotions(t *testing.T) {
	calc := NewPriceCalculator()
	product := newTestProduct(100)

	fixed := &model.Promotion{
		ID:         uuid.New(),
		Type:       model.TypeFixedAmount,
		Value:      decimal.NewFromFloat(30),
		TargetType: model.TargetCart,
		Audience:   model.AudienceAll,
		IsActive:   true,
	}

	price := calc.DisplayPrice(product, []*model.Promotion{fixed})
	assert.True(t, decimal.NewFromInt(100).Equal(price))
}

func TestDisplayPrice_SkipsNonMatchingScope(t *testing.T) {
	calc := NewPriceCalculator()
	product := newTestProduct(100)

	otherProduct := uuid.New()
	otherCategory := uuid.New()

	promos := []*model.Promotion{
		percentPromo(10, model.TargetProduct, &otherProduct),
		percentPromo(25, model.TargetCategory, &otherCategory),
	}

	price := calc.DisplayPrice(product, promos)
	assert.True(t, decimal.NewFromInt(100).Equal(price))
}

func TestDisplayPrice_ClampsPercentage(t *testing.T) {
	calc := NewPriceCalculator()

	t.Run("above 100 floors at zero", func(t *testing.T) {
		product := newTestProduct(80)
		promos := []*model.Promotion{percentPromo(150, model.TargetCart, nil)}

		price := calc.DisplayPrice(product, promos)
		assert.True(t, price.IsZero())
	})

	t.Run("negative is a no-op", func(t *testing.T) {
		product := newTestProduct(80)
		promos := []*model.Promotion{percentPromo(-10, model.TargetCart, nil)}

		price := calc.DisplayPrice(product, promos)
		assert.True(t, decimal.NewFromInt(80).Equal(price))
	})
}

func TestDisplayPrice_NeverNegative(t *testing.T) {
	calc := NewPriceCalculator()
	product := newTestProduct(0.01)

	promos := []*model.Promotion{
		percentPromo(100, model.TargetCart, nil),
		percentPromo(50, model.TargetCart, nil),
	}

	price := calc.DisplayPrice(product, promos)
	assert.False(t, price.IsNegative())
	assert.True(t, price.IsZero())
}

func TestDisplayPrice_RoundsEachStep(t *testing.T) {
	calc := NewPriceCalculator()
	product := newTestProduct(1.05)

	promos := []*model.Promotion{
		percentPromo(10, model.TargetCart, nil),
		percentPromo(10, model.TargetCart, nil),
	}

	// 1.05 * 0.9 = 0.945 -> 0.95, then 0.95 * 0.9 = 0.855 -> 0.86.
	// Folding without intermediate rounding would give 0.85.
	price := calc.DisplayPrice(product, promos)
	assert.Equal(t, "0.86", price.StringFixed(2))
}
