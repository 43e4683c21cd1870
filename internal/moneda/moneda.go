// Package moneda centralizes córdoba↔dólar conversion. Every workflow derives
// its dollar figures through these helpers at persist time, using the
// transaction's exchange-rate snapshot; nothing is ever recomputed on read.
package moneda

import "github.com/shopspring/decimal"

const (
	// PrecisionUnitaria applies to unit prices and costs.
	PrecisionUnitaria = 4
	// PrecisionTotal applies to document totals.
	PrecisionTotal = 2
)

// ADolar converts a córdoba amount using the given córdobas-per-dólar rate,
// rounded to unit-price precision.
func ADolar(cordoba, tasa decimal.Decimal) decimal.Decimal {
	if tasa.IsZero() {
		return decimal.Zero
	}
	return cordoba.DivRound(tasa, PrecisionUnitaria)
}

// ACordoba converts a dollar amount back to córdobas, rounded to unit-price
// precision.
func ACordoba(dolar, tasa decimal.Decimal) decimal.Decimal {
	return dolar.Mul(tasa).Round(PrecisionUnitaria)
}

// TotalCordoba rounds a córdoba total to total precision.
func TotalCordoba(monto decimal.Decimal) decimal.Decimal {
	return monto.Round(PrecisionTotal)
}

// TotalDolar converts and rounds a córdoba total to a dollar total.
func TotalDolar(cordoba, tasa decimal.Decimal) decimal.Decimal {
	if tasa.IsZero() {
		return decimal.Zero
	}
	return cordoba.DivRound(tasa, PrecisionTotal)
}
