package shared

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits money columns keep
const MoneyScale int32 = 2

// HasMoneyScale reports whether d fits in a money column without rounding.
// Trailing zeros are fine: 10.500 fits, 10.005 does not.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

// CheckMoneyScale returns a validation error naming field when d carries
// more than MoneyScale fractional digits
func CheckMoneyScale(field string, d decimal.Decimal) error {
	if HasMoneyScale(d) {
		return nil
	}
	return NewValidationError("INVALID_MONEY_SCALE", field+" cannot have more than 2 decimal places")
}
