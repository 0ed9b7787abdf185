package output

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + groupThousands(amount.Neg().StringFixed(2))
	}
	return "$" + groupThousands(amount.StringFixed(2))
}

// FormatPercentage formats a value already expressed in percent
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate (0.065) as a percentage (6.50%)
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// FormatYears renders a sustainability length, "never depletes" when unlimited
func FormatYears(y domain.Years) string {
	if y.IsUnlimited() {
		return "never depletes"
	}
	return decimal.NewFromFloat(float64(y)).StringFixed(1) + " years"
}

func groupThousands(fixed string) string {
	intPart, frac := fixed, ""
	for i := range fixed {
		if fixed[i] == '.' {
			intPart, frac = fixed[:i], fixed[i:]
			break
		}
	}
	if len(intPart) <= 3 {
		return fixed
	}
	out := make([]byte, 0, len(intPart)+len(intPart)/3)
	lead := len(intPart) % 3
	if lead > 0 {
		out = append(out, intPart[:lead]...)
	}
	for i := lead; i < len(intPart); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i:i+3]...)
	}
	return string(out) + frac
}
