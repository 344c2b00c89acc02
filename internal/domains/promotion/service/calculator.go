package service

import (
	"github.com/shopspring/decimal"

	catalogModel "souvenir-shop-backend/internal/domains/catalog/model"
	"souvenir-shop-backend/internal/domains/promotion/model"
)

var hundred = decimal.NewFromInt(100)

// PriceCalculator computes promotional display prices.
//
// Discounts compound multiplicatively: each matching percentage
// promotion discounts the already-discounted price, and the running
// price is rounded to 2 decimal places after every application. The
// per-step rounding is part of the contract, not an optimization.
type PriceCalculator struct{}

func NewPriceCalculator() *PriceCalculator {
	return &PriceCalculator{}
}

// DisplayPrice folds the resolver-ordered promotions onto the product's
// base price. Only PERCENTAGE promotions participate at display time;
// fixed-amount promotions are checkout promo codes and are skipped.
func (c *PriceCalculator) DisplayPrice(product *catalogModel.Product, promos []*model.Promotion) decimal.Decimal {
	price := product.Price

	for _, promo := range promos {
		if promo.Type != model.TypePercentage {
			continue
		}
		if !promo.MatchesProduct(product.ID, product.CategoryID) {
			continue
		}

		price = applyPercentage(price, promo.Value)
	}

	return price
}

// applyPercentage returns round2(price * (1 - clamp(v,0,100)/100)).
func applyPercentage(price, value decimal.Decimal) decimal.Decimal {
	percent := clampPercent(value)
	factor := decimal.NewFromInt(1).Sub(percent.Div(hundred))
	return price.Mul(factor).Round(2)
}

// clampPercent bounds a percentage value into [0,100].
func clampPercent(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	if value.GreaterThan(hundred) {
		return hundred
	}
	return value
}
