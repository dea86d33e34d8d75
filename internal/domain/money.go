package domain

import (
	"github.com/shopspring/decimal"
)

// CentsToReais converts integer centavos to a decimal reais amount for
// external payloads.
func CentsToReais(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

// ReaisToCents converts a decimal reais amount to integer centavos,
// rounding half-up.
func ReaisToCents(reais decimal.Decimal) int64 {
	return reais.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
