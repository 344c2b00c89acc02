package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartModel "souvenir-shop-backend/internal/domains/cart/model"
	promotionModel "souvenir-shop-backend/internal/domains/promotion/model"
)

var hundred = decimal.NewFromInt(100)

// AllocatedLine is a cart line with its promo-code discount applied.
// UnitDiscount and FinalPrice are per unit; LineDiscount covers the
// whole line.
type AllocatedLine struct {
	ItemID       uuid.UUID
	ProductID    uuid.UUID
	Name         string
	Quantity     int
	UnitPrice    decimal.Decimal
	UnitDiscount decimal.Decimal
	FinalPrice   decimal.Decimal
	LineDiscount decimal.Decimal
}

// Allocation is the result of distributing a promo-code discount over
// the cart.
type Allocation struct {
	Lines         []AllocatedLine
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	Total         decimal.Decimal
}

// Allocate distributes the promo-code discount over the cart lines.
// A nil promo yields a zero-discount allocation. The total never drops
// below zero, and the summed line discounts never exceed the subtotal.
//
// PERCENTAGE codes discount each unit independently; FIXED_AMOUNT codes
// are clamped to the subtotal and prorated across lines by each line's
// share of the subtotal, rounding at the line and unit level.
func Allocate(lines []*cartModel.CartLine, promo *promotionModel.Promotion) Allocation {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(lineSubtotal(line))
	}

	alloc := Allocation{
		Lines:         make([]AllocatedLine, 0, len(lines)),
		Subtotal:      subtotal,
		TotalDiscount: decimal.Zero,
	}

	switch {
	case promo == nil:
		for _, line := range lines {
			alloc.Lines = append(alloc.Lines, undiscountedLine(line))
		}
	case promo.Type == promotionModel.TypePercentage:
		allocatePercentage(&alloc, lines, promo.Value)
	case promo.Type == promotionModel.TypeFixedAmount:
		allocateFixed(&alloc, lines, promo.Value, subtotal)
	default:
		for _, line := range lines {
			alloc.Lines = append(alloc.Lines, undiscountedLine(line))
		}
	}

	alloc.Total = subtotal.Sub(alloc.TotalDiscount)
	if alloc.Total.IsNegative() {
		alloc.Total = decimal.Zero
	}
	return alloc
}

// allocatePercentage discounts each unit by round2(price * v/100).
func allocatePercentage(alloc *Allocation, lines []*cartModel.CartLine, value decimal.Decimal) {
	percent := clampPercent(value)
	for _, line := range lines {
		unitDiscount := line.Price.Mul(percent).Div(hundred).Round(2)
		final := line.Price.Sub(unitDiscount)
		if final.IsNegative() {
			final = decimal.Zero
		}
		lineDiscount := unitDiscount.Mul(decimal.NewFromInt(int64(line.Quantity)))

		alloc.Lines = append(alloc.Lines, AllocatedLine{
			ItemID:       line.ItemID,
			ProductID:    line.ProductID,
			Name:         line.Name,
			Quantity:     line.Quantity,
			UnitPrice:    line.Price,
			UnitDiscount: unitDiscount,
			FinalPrice:   final,
			LineDiscount: lineDiscount,
		})
		alloc.TotalDiscount = alloc.TotalDiscount.Add(lineDiscount)
	}
}

// allocateFixed clamps the discount to the subtotal and prorates it by
// each line's share: lineDiscount = round2(applied * lineSubtotal/subtotal),
// perUnit = round2(lineDiscount / quantity).
func allocateFixed(alloc *Allocation, lines []*cartModel.CartLine, value, subtotal decimal.Decimal) {
	applied := value
	if applied.IsNegative() {
		applied = decimal.Zero
	}
	if applied.GreaterThan(subtotal) {
		applied = subtotal
	}

	for _, line := range lines {
		var lineDiscount decimal.Decimal
		if subtotal.IsPositive() {
			share := lineSubtotal(line).Div(subtotal)
			lineDiscount = applied.Mul(share).Round(2)
		}

		unitDiscount := decimal.Zero
		if line.Quantity > 0 {
			unitDiscount = lineDiscount.Div(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		}
		final := line.Price.Sub(unitDiscount)
		if final.IsNegative() {
			final = decimal.Zero
		}

		alloc.Lines = append(alloc.Lines, AllocatedLine{
			ItemID:       line.ItemID,
			ProductID:    line.ProductID,
			Name:         line.Name,
			Quantity:     line.Quantity,
			UnitPrice:    line.Price,
			UnitDiscount: unitDiscount,
			FinalPrice:   final,
			LineDiscount: lineDiscount,
		})
		alloc.TotalDiscount = alloc.TotalDiscount.Add(lineDiscount)
	}

	// Rounding the per-line shares can overshoot the clamp by a cent;
	// cap the reported discount at the subtotal.
	if alloc.TotalDiscount.GreaterThan(subtotal) {
		alloc.TotalDiscount = subtotal
	}
}

func undiscountedLine(line *cartModel.CartLine) AllocatedLine {
	return AllocatedLine{
		ItemID:       line.ItemID,
		ProductID:    line.ProductID,
		Name:         line.Name,
		Quantity:     line.Quantity,
		UnitPrice:    line.Price,
		UnitDiscount: decimal.Zero,
		FinalPrice:   line.Price,
		LineDiscount: decimal.Zero,
	}
}

func lineSubtotal(line *cartModel.CartLine) decimal.Decimal {
	return line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

func clampPercent(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	if value.GreaterThan(hundred) {
		return hundred
	}
	return value
}
