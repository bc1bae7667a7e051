// Package pricing computes line and order money amounts. All rounding happens
// exactly once, at the VAT amount, half-up to two decimals; totals are then
// plain sums so a line's total always equals subtotal plus VAT exactly.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mkadlec/salonpos/internal/apperr"
)

var hundred = decimal.NewFromInt(100)

type LineTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	Total     decimal.Decimal `json:"total"`
}

// ComputeLine derives the three monetary amounts for one cart or order line.
// decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts allowed here.
func ComputeLine(unitPrice decimal.Decimal, quantity int, vatPercentage decimal.Decimal) (LineTotals, error) {
	if unitPrice.IsNegative() {
		return LineTotals{}, fmt.Errorf("%w: unit price %s is negative", apperr.ErrInvalidPricingInput, unitPrice)
	}
	if quantity <= 0 {
		return LineTotals{}, fmt.Errorf("%w: quantity %d must be positive", apperr.ErrInvalidPricingInput, quantity)
	}
	if vatPercentage.IsNegative() || vatPercentage.GreaterThan(hundred) {
		return LineTotals{}, fmt.Errorf("%w: vat percentage %s outside [0,100]", apperr.ErrInvalidPricingInput, vatPercentage)
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	vatAmount := subtotal.Mul(vatPercentage).Div(hundred).Round(2)

	return LineTotals{
		Subtotal:  subtotal,
		VATAmount: vatAmount,
		Total:     subtotal.Add(vatAmount),
	}, nil
}

// ComputeOrderTotals sums each component independently across lines. VAT is
// never re-derived from the aggregate subtotal, so per-line rounding cannot
// drift against the order totals.
func ComputeOrderTotals(lines []LineTotals) LineTotals {
	totals := LineTotals{
		Subtotal:  decimal.Zero,
		VATAmount: decimal.Zero,
		Total:     decimal.Zero,
	}
	for _, line := range lines {
		totals.Subtotal = totals.Subtotal.Add(line.Subtotal)
		totals.VATAmount = totals.VATAmount.Add(line.VATAmount)
		totals.Total = totals.Total.Add(line.Total)
	}
	return totals
}
