package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func lineTotal(unitPrice decimal.Decimal, quantity uint) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// orderTotal computes subtotal + shipping - discount at two decimals.
// Shipping cost and discount come from the caller, so negatives are
// rejected here rather than trusted.
func orderTotal(subtotal, shippingCost, discount decimal.Decimal) (decimal.Decimal, error) {
	if shippingCost.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: shipping cost must be >= 0", ErrValidation)
	}
	if discount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: discount must be >= 0", ErrValidation)
	}

	total := subtotal.Add(shippingCost).Sub(discount).Round(2)
	if total.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: discount exceeds order value", ErrValidation)
	}
	return total, nil
}

// toMinorUnits converts a two-decimal amount to gateway minor units (cents).
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}
