package calculation

import (
	"github.com/moneylife/benefits/internal/domain"
	"github.com/shopspring/decimal"
)

// Echelle44Brackets is the number of brackets of the full scale.
const Echelle44Brackets = 44

// FullRenteMonthly applies the legal rente formula for a complete
// contribution record. minMonthly is the minimum monthly rente and ramd the
// annual determinant income. The result lies in [min, 2 × min].
//
//	ramd ≤ 36 × min: 0.74 × min + 13/600 × ramd
//	otherwise:       1.04 × min +  8/600 × ramd
func FullRenteMonthly(minMonthly, ramd decimal.Decimal) decimal.Decimal {
	knee := minMonthly.Mul(decimal.NewFromInt(36))
	var r decimal.Decimal
	if ramd.LessThanOrEqual(knee) {
		r = minMonthly.Mul(decimal.NewFromFloat(0.74)).Add(ramd.Mul(decimal.NewFromInt(13)).Div(decimal.NewFromInt(600)))
	} else {
		r = minMonthly.Mul(decimal.NewFromFloat(1.04)).Add(ramd.Mul(decimal.NewFromInt(8)).Div(decimal.NewFromInt(600)))
	}
	r = decimal.Max(r, minMonthly)
	return decimal.Min(r, minMonthly.Mul(decimal.NewFromInt(2)))
}

// BuildEchelle44 derives the 44 brackets from the minimum monthly rente,
// spreading incomes evenly between 12 and 72 times the minimum. Amounts are
// rounded up to the franc as in the published scale.
func BuildEchelle44(minMonthly decimal.Decimal) domain.Echelle44 {
	if !minMonthly.IsPositive() {
		return nil
	}
	low := minMonthly.Mul(decimal.NewFromInt(12))
	high := minMonthly.Mul(decimal.NewFromInt(72))
	step := high.Sub(low).Div(decimal.NewFromInt(Echelle44Brackets - 1))

	scale := make(domain.Echelle44, 0, Echelle44Brackets)
	for i := 0; i < Echelle44Brackets; i++ {
		income := low.Add(step.Mul(decimal.NewFromInt(int64(i)))).Round(0)
		if i == Echelle44Brackets-1 {
			income = high
		}
		base := FullRenteMonthly(minMonthly, income).Ceil()
		child := base.Mul(child40Rate).Ceil()
		scale = append(scale, domain.Echelle44Row{
			IncomeFrom:     income,
			BaseMonthly:    base,
			WidowMonthly:   base.Mul(widowRate).Ceil(),
			Child40Monthly: &child,
		})
	}
	return scale
}
