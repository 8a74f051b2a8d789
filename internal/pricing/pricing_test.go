package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ecofinds/ecofinds-backend/pkg/enums"
)

func TestCalculateEmptyCart(t *testing.T) {
	totals := Calculate(nil, enums.ShippingMethodStandard)
	assert.Equal(t, OrderTotals{}, totals)

	totals = Calculate([]Line{}, enums.ShippingMethodExpress)
	assert.Equal(t, OrderTotals{}, totals)
}

func TestCalculateExpressOrder(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 8500},
		{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 65000},
	}

	totals := Calculate(lines, enums.ShippingMethodExpress)

	assert.Equal(t, 82000, totals.SubtotalCents)
	assert.Equal(t, 1500, totals.ShippingCents)
	assert.Equal(t, 6560, totals.TaxCents)
	assert.Equal(t, 90060, totals.TotalCents)
	assert.Equal(t, 36000, totals.EcoSavingsCents)
}

func TestCalculateStandardWaivedOverThreshold(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 8500},
		{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 65000},
	}

	totals := Calculate(lines, enums.ShippingMethodStandard)

	assert.Equal(t, 82000, totals.SubtotalCents)
	assert.Equal(t, 0, totals.ShippingCents)
	assert.Equal(t, 6560, totals.TaxCents)
	assert.Equal(t, 88560, totals.TotalCents)
	assert.Equal(t, 35400, totals.EcoSavingsCents)
}

func TestCalculateStandardUnderThreshold(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 2500},
		{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 3200},
	}

	totals := Calculate(lines, enums.ShippingMethodStandard)

	assert.Equal(t, 8200, totals.SubtotalCents)
	assert.Equal(t, 800, totals.ShippingCents)
	assert.Equal(t, 656, totals.TaxCents)
	assert.Equal(t, 9656, totals.TotalCents)
	assert.Equal(t, 3900, totals.EcoSavingsCents)
}

func TestCalculatePickupAlwaysFree(t *testing.T) {
	lines := []Line{{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 500}}

	totals := Calculate(lines, enums.ShippingMethodPickup)

	assert.Equal(t, 500, totals.SubtotalCents)
	assert.Equal(t, 0, totals.ShippingCents)
	assert.Equal(t, 40, totals.TaxCents)
	assert.Equal(t, 540, totals.TotalCents)
}

func TestCalculateDeterministic(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), Quantity: 3, UnitPriceCents: 1999},
		{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 12999},
	}

	first := Calculate(lines, enums.ShippingMethodExpress)
	second := Calculate(lines, enums.ShippingMethodExpress)

	assert.Equal(t, first, second)
	assert.Equal(t, first.SubtotalCents+first.ShippingCents+first.TaxCents, first.TotalCents)
}

func TestShippingFeeCents(t *testing.T) {
	tests := []struct {
		name          string
		method        enums.ShippingMethod
		subtotalCents int
		want          int
	}{
		{name: "pickup", method: enums.ShippingMethodPickup, subtotalCents: 50000, want: 0},
		{name: "express", method: enums.ShippingMethodExpress, subtotalCents: 50000, want: 1500},
		{name: "standard below threshold", method: enums.ShippingMethodStandard, subtotalCents: 8200, want: 800},
		{name: "standard at threshold", method: enums.ShippingMethodStandard, subtotalCents: 10000, want: 800},
		{name: "standard above threshold", method: enums.ShippingMethodStandard, subtotalCents: 12000, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShippingFeeCents(tc.method, tc.subtotalCents))
		})
	}
}
