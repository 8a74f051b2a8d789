// Package pricing turns a cart snapshot into itemized order totals. The
// calculator is a pure function: no clock, no storage, no catalog calls.
package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecofinds/ecofinds-backend/pkg/enums"
)

// TaxRate is the flat sales tax applied to every order subtotal.
var TaxRate = decimal.NewFromFloat(0.08)

// EcoSavingsRate estimates what buying second-hand saved versus new, as a
// fixed ratio of the order total. Rounded to whole dollars.
var EcoSavingsRate = decimal.NewFromFloat(0.40)

// Line is one priced cart line. Quantity is positive and UnitPriceCents is
// non-negative; the cart layer enforces both before lines reach here.
type Line struct {
	ProductID      uuid.UUID
	Quantity       int
	UnitPriceCents int
}

// OrderTotals is the itemized result of pricing a cart. All amounts are
// integer cents except EcoSavingsCents, which is always a whole-dollar
// amount expressed in cents.
type OrderTotals struct {
	SubtotalCents   int `json:"subtotal_cents"`
	ShippingCents   int `json:"shipping_cents"`
	TaxCents        int `json:"tax_cents"`
	TotalCents      int `json:"total_cents"`
	EcoSavingsCents int `json:"eco_savings_cents"`
}

// Calculate prices the given lines under the selected shipping method.
// An empty line set yields all-zero totals.
func Calculate(lines []Line, method enums.ShippingMethod) OrderTotals {
	if len(lines) == 0 {
		return OrderTotals{}
	}

	subtotalCents := 0
	for _, line := range lines {
		subtotalCents += line.Quantity * line.UnitPriceCents
	}

	shippingCents := ShippingFeeCents(method, subtotalCents)

	subtotal := decimal.NewFromInt(int64(subtotalCents)).Shift(-2)
	tax := subtotal.Mul(TaxRate).Round(2)
	taxCents := int(tax.Shift(2).IntPart())

	totalCents := subtotalCents + shippingCents + taxCents

	total := decimal.NewFromInt(int64(totalCents)).Shift(-2)
	ecoSavings := total.Mul(EcoSavingsRate).Round(0)
	ecoSavingsCents := int(ecoSavings.Shift(2).IntPart())

	return OrderTotals{
		SubtotalCents:   subtotalCents,
		ShippingCents:   shippingCents,
		TaxCents:        taxCents,
		TotalCents:      totalCents,
		EcoSavingsCents: ecoSavingsCents,
	}
}
