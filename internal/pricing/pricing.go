// Package pricing computes effective prices under promotions.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"photostore/internal/models"
)

// Discounted returns the effective price for base under promo at now.
// Without a promotion, or outside its window, the base price is
// returned unchanged. Otherwise the discount percentage is applied and
// the result rounded to 2 decimal places. The percentage range is
// enforced when the promotion is created, never here.
func Discounted(base float64, promo *models.Promotion, now time.Time) float64 {
	if promo == nil || !promo.ActiveAt(now) {
		return base
	}
	price := decimal.NewFromFloat(base)
	pct := decimal.NewFromFloat(promo.DiscountPercentage)
	discount := price.Mul(pct).Div(decimal.NewFromInt(100))
	out, _ := price.Sub(discount).Round(2).Float64()
	return out
}

// LineTotal is the cart-line total: effective unit price times
// quantity, rounded to 2 decimal places.
func LineTotal(unit float64, promo *models.Promotion, quantity int, now time.Time) float64 {
	eff := decimal.NewFromFloat(Discounted(unit, promo, now))
	out, _ := eff.Mul(decimal.NewFromInt(int64(quantity))).Round(2).Float64()
	return out
}
