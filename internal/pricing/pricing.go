// Package pricing holds the pure price computations shared by the cart
// listing and checkout. Prices are fixed-point decimals with two fractional
// digits; summation is exact and no rounding happens beyond the stored
// precision.
package pricing

import (
	"pixel-kart/internal/model"

	"github.com/shopspring/decimal"
)

// LineTotal computes quantity x unitPrice for a single cart line.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// CartTotal sums the line totals of a cart listing. Lines whose product
// could not be resolved carry a zero unit price and contribute nothing.
func CartTotal(lines []model.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	return total
}
