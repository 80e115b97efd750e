package services

import "github.com/shopspring/decimal"

// CommissionCalculator computes the platform's cut of a completed payment:
// a flat rate on the gross amount, clamped between a floor and a ceiling.
// All arithmetic is decimal; the result is rounded half-up to two decimal
// places before clamping.
type CommissionCalculator struct {
	rate    decimal.Decimal
	minimum decimal.Decimal
	maximum decimal.Decimal
}

// NewCommissionCalculator builds a calculator from the configured rate and
// bounds.
func NewCommissionCalculator(rate, minimum, maximum decimal.Decimal) *CommissionCalculator {
	return &CommissionCalculator{rate: rate, minimum: minimum, maximum: maximum}
}

// Calculate returns clamp(gross * rate, minimum, maximum). Zero or negative
// gross amounts are rejected with ErrInvalidAmount.
func (c *CommissionCalculator) Calculate(gross decimal.Decimal) (decimal.Decimal, error) {
	if gross.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	// Round is half away from zero, i.e. half-up for positive amounts.
	commission := gross.Mul(c.rate).Round(2)

	if commission.LessThan(c.minimum) {
		return c.minimum, nil
	}
	if commission.GreaterThan(c.maximum) {
		return c.maximum, nil
	}
	return commission, nil
}
