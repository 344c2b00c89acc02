package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartModel "souvenir-shop-backend/internal/domains/cart/model"
	promotionModel "souvenir-shop-backend/internal/domains/promotion/model"
)

func line(price float64, quantity int) *cartModel.CartLine {
	return &cartModel.CartLine{
		ItemID:    uuid.New(),
		ProductID: uuid.New(),
		Name:      "Souvenir",
		Price:     decimal.NewFromFloat(price),
		Stock:     100,
		IsActive:  true,
		Quantity:  quantity,
	}
}

func codePromo(promoType string, value float64) *promotionModel.Promotion {
	code := "SAVE"
	return &promotionModel.Promotion{
		ID:        uuid.New(),
		Type:      promoType,
		Value:     decimal.NewFromFloat(value),
		Audience:  promotionModel.AudienceAll,
		PromoCode: &code,
		IsActive:  true,
	}
}

func TestAllocate_NoPromo(t *testing.T) {
	lines := []*cartModel.CartLine{line(50, 2), line(30, 1)}

	alloc := Allocate(lines, nil)

	assert.Equal(t, "130.00", alloc.Subtotal.StringFixed(2))
	assert.True(t, alloc.TotalDiscount.IsZero())
	assert.Equal(t, "130.00", alloc.Total.StringFixed(2))
	for _, l := range alloc.Lines {
		assert.True(t, l.UnitDiscount.IsZero())
		assert.True(t, l.UnitPrice.Equal(l.FinalPrice))
	}
}

func TestAllocate_PercentagePerUnit(t *testing.T) {
	lines := []*cartModel.CartLine{line(19.99, 3)}

	alloc := Allocate(lines, codePromo(promotionModel.TypePercentage, 10))

	require.Len(t, alloc.Lines, 1)
	l := alloc.Lines[0]

	// 19.99 * 10% = 1.999 -> 2.00 per unit
	assert.Equal(t, "2.00", l.UnitDiscount.StringFixed(2))
	assert.Equal(t, "17.99", l.FinalPrice.StringFixed(2))
	assert.Equal(t, "6.00", l.LineDiscount.StringFixed(2))
	assert.Equal(t, "6.00", alloc.TotalDiscount.StringFixed(2))
	assert.Equal(t, "53.97", alloc.Total.StringFixed(2))
}

func TestAllocate_FixedProratedByLineShare(t *testing.T) {
	// Subtotal 100: line A contributes 60, line B 40.
	lines := []*cartModel.CartLine{line(30, 2), line(40, 1)}

	alloc := Allocate(lines, codePromo(promotionModel.TypeFixedAmount, 10))

	require.Len(t, alloc.Lines, 2)

	// Line A: 10 * 0.6 = 6.00, per unit 3.00
	assert.Equal(t, "6.00", alloc.Lines[0].LineDiscount.StringFixed(2))
	assert.Equal(t, "3.00", alloc.Lines[0].UnitDiscount.StringFixed(2))
	assert.Equal(t, "27.00", alloc.Lines[0].FinalPrice.StringFixed(2))

	// Line B: 10 * 0.4 = 4.00
	assert.Equal(t, "4.00", alloc.Lines[1].LineDiscount.StringFixed(2))
	assert.Equal(t, "36.00", alloc.Lines[1].FinalPrice.StringFixed(2))

	assert.Equal(t, "10.00", alloc.TotalDiscount.StringFixed(2))
	assert.Equal(t, "90.00", alloc.Total.StringFixed(2))
}

func TestAllocate_FixedClampedToSubtotal(t *testing.T) {
	lines := []*cartModel.CartLine{line(5, 1), line(3, 1)}

	alloc := Allocate(lines, codePromo(promotionModel.TypeFixedAmount, 500))

	assert.Equal(t, "8.00", alloc.Subtotal.StringFixed(2))
	assert.Equal(t, "8.00", alloc.TotalDiscount.StringFixed(2))
	assert.True(t, alloc.Total.IsZero())
	for _, l := range alloc.Lines {
		assert.False(t, l.FinalPrice.IsNegative())
	}
}

func TestAllocate_DiscountNeverExceedsSubtotal(t *testing.T) {
	// Shares that round up per line could overshoot the clamp.
	lines := []*cartModel.CartLine{line(0.01, 1), line(0.01, 1), line(0.01, 1)}

	alloc := Allocate(lines, codePromo(promotionModel.TypeFixedAmount, 1))

	assert.True(t, alloc.TotalDiscount.LessThanOrEqual(alloc.Subtotal))
	assert.False(t, alloc.Total.IsNegative())
}

func TestAllocate_PercentageClamped(t *testing.T) {
	lines := []*cartModel.CartLine{line(20, 1)}

	alloc := Allocate(lines, codePromo(promotionModel.TypePercentage, 250))

	assert.Equal(t, "20.00", alloc.TotalDiscount.StringFixed(2))
	assert.True(t, alloc.Total.IsZero())
	assert.True(t, alloc.Lines[0].FinalPrice.IsZero())
}

func TestAllocate_UnknownTypeIgnored(t *testing.T) {
	lines := []*cartModel.CartLine{line(10, 2)}
	promo := codePromo("BOGOF", 1)

	alloc := Allocate(lines, promo)

	assert.True(t, alloc.TotalDiscount.IsZero())
	assert.Equal(t, "20.00", alloc.Total.StringFixed(2))
}
