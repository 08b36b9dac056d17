package riskpricing

import (
	"fmt"
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var perMille = decimal.NewFromInt(1000)

// Context is the risk view of a client at a pricing date.
type Context struct {
	Age          int             `yaml:"age" json:"age"`
	BMI          decimal.Decimal `yaml:"bmi" json:"bmi"`
	Smoker       bool            `yaml:"smoker" json:"smoker"`
	Hypertension bool            `yaml:"hypertension" json:"hypertension"`
	// OccupationClass is nil until the profession is classified.
	OccupationClass *int `yaml:"occupation_class,omitempty" json:"occupation_class,omitempty"`
}

// NewContext derives the pricing context of c at date at.
func NewContext(c *domain.ClientData, at time.Time) Context {
	ctx := Context{
		Age:          dateutil.AgeAt(c.BirthDate, at),
		BMI:          BMI(c.Risk.HeightCm, c.Risk.WeightKg),
		Smoker:       c.Risk.Smoker,
		Hypertension: c.Risk.Hypertension,
	}
	if cls := c.Risk.OccupationClass; cls != nil && *cls > 0 {
		v := *cls
		ctx.OccupationClass = &v
	}
	return ctx
}

// BMI is weight / height² with height in metres, zero when either is unknown.
func BMI(heightCm int, weightKg decimal.Decimal) decimal.Decimal {
	if heightCm <= 0 || !weightKg.IsPositive() {
		return decimal.Zero
	}
	m := decimal.NewFromInt(int64(heightCm)).Div(decimal.NewFromInt(100))
	return weightKg.Div(m.Mul(m))
}

// DisabilityAnnuity is one insured disability annuity.
type DisabilityAnnuity struct {
	AnnualAmount  decimal.Decimal `yaml:"annual_amount" json:"annual_amount"`
	WaitingMonths int             `yaml:"waiting_months" json:"waiting_months"`
}

// PremiumWaiver exonerates the savings premium in case of disability.
type PremiumWaiver struct {
	AnnualPremium decimal.Decimal `yaml:"annual_premium" json:"annual_premium"`
}

// RiderConfig lists the riders to price. Zero or absent riders cost nothing.
type RiderConfig struct {
	FixedDeathCapital      decimal.Decimal     `yaml:"fixed_death_capital,omitempty" json:"fixed_death_capital,omitempty"`
	DecreasingDeathCapital decimal.Decimal     `yaml:"decreasing_death_capital,omitempty" json:"decreasing_death_capital,omitempty"`
	DisabilityAnnuities    []DisabilityAnnuity `yaml:"disability_annuities,omitempty" json:"disability_annuities,omitempty"`
	PremiumWaiver          *PremiumWaiver      `yaml:"premium_waiver,omitempty" json:"premium_waiver,omitempty"`
}

// Breakdown keys.
const (
	FixedDeathKey      = "fixed_death_capital"
	DecreasingDeathKey = "decreasing_death_capital"
	PremiumWaiverKey   = "premium_waiver"
)

// DisabilityKey names the i-th disability annuity in a breakdown (1-based).
func DisabilityKey(i int) string { return fmt.Sprintf("disability_annuity_%d", i) }

// Premiums are annual risk premiums.
type Premiums struct {
	TotalRiskPremium decimal.Decimal            `yaml:"total_risk_premium" json:"total_risk_premium"`
	Breakdown        map[string]decimal.Decimal `yaml:"breakdown" json:"breakdown"`
	TariffVersion    string                     `yaml:"tariff_version,omitempty" json:"tariff_version,omitempty"`
}

// Factors are the multipliers applied to a priced context.
type Factors struct {
	Age          decimal.Decimal `yaml:"age" json:"age"`
	BMI          decimal.Decimal `yaml:"bmi" json:"bmi"`
	Smoker       decimal.Decimal `yaml:"smoker" json:"smoker"`
	Hypertension decimal.Decimal `yaml:"hypertension" json:"hypertension"`
	Occupation   decimal.Decimal `yaml:"occupation" json:"occupation"`
}

// Product multiplies every factor.
func (f Factors) Product() decimal.Decimal {
	return f.Age.Mul(f.BMI).Mul(f.Smoker).Mul(f.Hypertension).Mul(f.Occupation)
}

// Pricer prices riders with one tariff.
type Pricer struct {
	tariff Tariff
}

func NewPricer(t Tariff) *Pricer {
	return &Pricer{tariff: t}
}

// Tariff returns the tariff in use.
func (p *Pricer) Tariff() Tariff { return p.tariff }

func (p *Pricer) factors(ctx Context, smoker decimal.Decimal) Factors {
	one := decimal.NewFromInt(1)
	f := Factors{
		Age:          p.tariff.AgeFactor(ctx.Age),
		BMI:          p.tariff.BMIFactor(ctx.BMI),
		Smoker:       one,
		Hypertension: one,
		Occupation:   one,
	}
	if ctx.Smoker {
		f.Smoker = smoker
	}
	if ctx.Hypertension {
		f.Hypertension = p.tariff.HypertensionFactor
	}
	if ctx.OccupationClass != nil {
		if occ, ok := p.tariff.OccupationFactor(*ctx.OccupationClass); ok {
			f.Occupation = occ
		}
	}
	return f
}

// DeathFactors are the multipliers of death riders.
func (p *Pricer) DeathFactors(ctx Context) Factors {
	return p.factors(ctx, p.tariff.SmokerDeathFactor)
}

// DisabilityFactors are the multipliers of disability riders.
func (p *Pricer) DisabilityFactors(ctx Context) Factors {
	return p.factors(ctx, p.tariff.SmokerDisabilityFactor)
}

// ComputeRiskPremiums prices every configured rider. A client without an
// occupation class is not priced: the product stays pure savings until the
// profession is classified.
func (p *Pricer) ComputeRiskPremiums(cfg RiderConfig, ctx Context) Premiums {
	out := Premiums{TotalRiskPremium: decimal.Zero, Breakdown: map[string]decimal.Decimal{}}
	if ctx.OccupationClass == nil {
		return out
	}
	out.TariffVersion = p.tariff.Version

	death := p.DeathFactors(ctx).Product()
	disability := p.DisabilityFactors(ctx).Product()
	add := func(key string, v decimal.Decimal) {
		if !v.IsPositive() {
			return
		}
		out.Breakdown[key] = v
		out.TotalRiskPremium = out.TotalRiskPremium.Add(v)
	}

	deathRate := p.tariff.DeathPerMille.Div(perMille)
	add(FixedDeathKey, cfg.FixedDeathCapital.Mul(deathRate).Mul(death))
	add(DecreasingDeathKey, cfg.DecreasingDeathCapital.Mul(deathRate).Mul(p.tariff.DecreasingCapitalRatio).Mul(death))

	for i, a := range cfg.DisabilityAnnuities {
		rate := p.tariff.DisabilityPerMille(a.WaitingMonths).Div(perMille)
		add(DisabilityKey(i+1), a.AnnualAmount.Mul(rate).Mul(disability))
	}
	if w := cfg.PremiumWaiver; w != nil {
		add(PremiumWaiverKey, w.AnnualPremium.Mul(p.tariff.PremiumWaiverRate).Mul(disability))
	}
	return out
}
