package order

import (
	"github.com/shopspring/decimal"
)

type ShippingFeeCalculator interface {
	CalculateFee(itemsTotal decimal.Decimal) decimal.Decimal
}

// FlatShippingFee charges a flat fee unless the items total reaches the free-shipping threshold.
// A zero threshold disables free shipping.
type FlatShippingFee struct {
	Fee           decimal.Decimal
	FreeThreshold decimal.Decimal
}

func NewFlatShippingFee(fee, freeThreshold decimal.Decimal) *FlatShippingFee {
	return &FlatShippingFee{
		Fee:           fee,
		FreeThreshold: freeThreshold,
	}
}

func (c *FlatShippingFee) CalculateFee(itemsTotal decimal.Decimal) decimal.Decimal {
	if c.FreeThreshold.IsPositive() && itemsTotal.GreaterThanOrEqual(c.FreeThreshold) {
		return decimal.Zero
	}
	if c.Fee.IsNegative() {
		return decimal.Zero
	}
	return c.Fee.Round(2)
}
