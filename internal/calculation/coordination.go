package calculation

import (
	"github.com/moneylife/benefits/internal/domain"
	"github.com/shopspring/decimal"
)

// AccidentCapRate is the overinsurance limit for accident events.
var AccidentCapRate = decimal.NewFromFloat(0.90)

// CoordinationInput holds annual figures entering the cascade.
type CoordinationInput struct {
	CapRate decimal.Decimal
	CapBase decimal.Decimal
	// LAACeiling optionally bounds base + LAA below the general cap.
	LAACeiling decimal.Decimal
	Base       decimal.Decimal
	LAANominal decimal.Decimal
	LPPNominal decimal.Decimal
}

// Coordinate applies the accident cascade. The base source is paid in full;
// LAA fills the room left under the cap and absorbs the cut first; LPP tops
// up whatever room remains.
//
//	laa = min(laaNominal, max(0, min(cap, laaCeiling) − base))
//	lpp = min(lppNominal, max(0, cap − base − laa))
func Coordinate(in CoordinationInput) domain.Coordination {
	capAmount := decimal.Max(in.CapRate.Mul(in.CapBase), decimal.Zero)
	base := decimal.Max(in.Base, decimal.Zero)
	laaNominal := decimal.Max(in.LAANominal, decimal.Zero)
	lppNominal := decimal.Max(in.LPPNominal, decimal.Zero)

	laaLimit := capAmount
	if in.LAACeiling.IsPositive() && in.LAACeiling.LessThan(laaLimit) {
		laaLimit = in.LAACeiling
	}

	laaAllowed := decimal.Max(decimal.Zero, laaLimit.Sub(base))
	laa := decimal.Min(laaNominal, laaAllowed)

	lppAllowed := decimal.Max(decimal.Zero, capAmount.Sub(base.Add(laa)))
	lpp := decimal.Min(lppNominal, lppAllowed)

	return domain.Coordination{
		CapRate:    in.CapRate,
		CapBase:    in.CapBase,
		Cap:        capAmount,
		LAACeiling: laaLimit,
		Base:       base,
		LAANominal: laaNominal,
		LAAAllowed: laaAllowed,
		LAA:        laa,
		LPPNominal: lppNominal,
		LPPAllowed: lppAllowed,
		LPP:        lpp,
		Total:      base.Add(laa).Add(lpp),
	}
}
