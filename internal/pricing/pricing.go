// Package pricing turns a cart snapshot into subtotal, tiered discount, tax
// and grand total.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/delicia-pos/internal/domain/cart"
)

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// TaxRate is the IGV rate applied to the discounted subtotal.
var TaxRate = decimal.RequireFromString("0.18")

// Tier is a discount band. A subtotal at or above Threshold earns Percent.
type Tier struct {
	Threshold decimal.Decimal
	Percent   decimal.Decimal
}

// DefaultTiers lists the discount bands from the highest threshold down.
var DefaultTiers = []Tier{
	{Threshold: decimal.NewFromInt(100), Percent: decimal.NewFromInt(15)},
	{Threshold: decimal.NewFromInt(50), Percent: decimal.NewFromInt(10)},
	{Threshold: decimal.NewFromInt(20), Percent: decimal.NewFromInt(5)},
}

// Totals is the full-precision pricing breakdown of a cart. Amounts are not
// rounded; callers round for display only.
type Totals struct {
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Tax             decimal.Decimal
	GrandTotal      decimal.Decimal
	ItemCount       decimal.Decimal
}

// Taxable returns the subtotal after discount.
func (t Totals) Taxable() decimal.Decimal {
	return t.Subtotal.Sub(t.DiscountAmount)
}

// IsZero reports whether the totals describe an empty cart.
func (t Totals) IsZero() bool {
	return t.ItemCount.IsZero()
}

// Compute calculates the totals for lines. Tax is applied after the
// discount. An empty slice yields zero totals.
func Compute(lines []cart.Line) Totals {
	if len(lines) == 0 {
		return Totals{
			Subtotal:        zero,
			DiscountPercent: zero,
			DiscountAmount:  zero,
			Tax:             zero,
			GrandTotal:      zero,
			ItemCount:       zero,
		}
	}

	subtotal := calcSubtotal(lines)
	pct := DiscountPercent(subtotal)
	discount := subtotal.Mul(pct).Div(hundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(TaxRate)

	return Totals{
		Subtotal:        subtotal,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		Tax:             tax,
		GrandTotal:      taxable.Add(tax),
		ItemCount:       totalQuantity(lines),
	}
}

// DiscountPercent returns the percent of the first tier whose threshold the
// subtotal reaches, or zero.
func DiscountPercent(subtotal decimal.Decimal) decimal.Decimal {
	for _, t := range DefaultTiers {
		if subtotal.GreaterThanOrEqual(t.Threshold) {
			return t.Percent
		}
	}
	return zero
}

// calcSubtotal returns the sum of price * quantity across all lines.
func calcSubtotal(lines []cart.Line) decimal.Decimal {
	sum := zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

// totalQuantity returns the sum of quantities across all lines.
func totalQuantity(lines []cart.Line) decimal.Decimal {
	total := zero
	for _, l := range lines {
		total = total.Add(l.Quantity)
	}
	return total
}
