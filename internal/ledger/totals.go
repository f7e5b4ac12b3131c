// Package ledger holds the line-item calculation shared by the
// goods-receiving and sales entry flows. Direction (stock-in vs stock-out)
// is a property of the caller, not of the math.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals carries the derived amounts of one ledger line. All three values
// are rounded to two decimal places; these rounded figures are both what
// the operator sees and what is persisted, so recomputing from the same
// inputs always reproduces a stored row exactly.
type Totals struct {
	TotalRate   decimal.Decimal `json:"total_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ComputeTotals derives the line amounts from quantity, unit rate and tax
// percentage:
//
//	totalRate   = quantity * rate
//	taxAmount   = totalRate * (taxRatePercent / 100)
//	totalAmount = totalRate + taxAmount
//
// taxAmount is computed from the already-rounded totalRate, and totalAmount
// is the exact sum of the two rounded values.
func ComputeTotals(quantity int, rate, taxRatePercent decimal.Decimal) (Totals, error) {
	if quantity < 1 {
		return Totals{}, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	if rate.IsNegative() {
		return Totals{}, fmt.Errorf("rate must not be negative, got %s", rate)
	}
	if taxRatePercent.IsNegative() || taxRatePercent.GreaterThan(hundred) {
		return Totals{}, fmt.Errorf("tax rate must be between 0 and 100, got %s", taxRatePercent)
	}

	totalRate := rate.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	taxAmount := totalRate.Mul(taxRatePercent).Div(hundred).Round(2)
	totalAmount := totalRate.Add(taxAmount)

	return Totals{
		TotalRate:   totalRate,
		TaxAmount:   taxAmount,
		TotalAmount: totalAmount,
	}, nil
}
