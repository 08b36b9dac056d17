// Package riskpricing prices third-pillar risk riders from a client's risk
// profile with a versioned tariff.
package riskpricing

import (
	"errors"
	"fmt"

	"github.com/moneylife/benefits/pkg/tables"
	"github.com/shopspring/decimal"
)

// ErrInvalidTariff is wrapped by every Tariff.Validate failure.
var ErrInvalidTariff = errors.New("invalid tariff")

// DefaultTariffVersion identifies DefaultTariff.
const DefaultTariffVersion = "2025.1"

// DisabilityRate is the yearly cost of a disability annuity for one waiting period.
type DisabilityRate struct {
	WaitingMonths int `yaml:"waiting_months" json:"waiting_months"`
	// PerMille is charged on the insured annual annuity.
	PerMille decimal.Decimal `yaml:"per_mille" json:"per_mille"`
}

// BMIBand applies Factor to a BMI below Below. The last band has no bound.
type BMIBand struct {
	Below  *decimal.Decimal `yaml:"below,omitempty" json:"below,omitempty"`
	Factor decimal.Decimal  `yaml:"factor" json:"factor"`
}

// OccupationFactor is the multiplier of one occupation risk class.
type OccupationFactor struct {
	Class  int             `yaml:"class" json:"class"`
	Factor decimal.Decimal `yaml:"factor" json:"factor"`
}

// Tariff holds every pricing coefficient.
type Tariff struct {
	Version string `yaml:"version" json:"version"`

	// DeathPerMille is charged on a fixed death capital at the pivot age.
	DeathPerMille decimal.Decimal `yaml:"death_per_mille" json:"death_per_mille"`
	// DecreasingCapitalRatio prices a linearly decreasing capital as a share
	// of the fixed one.
	DecreasingCapitalRatio decimal.Decimal  `yaml:"decreasing_capital_ratio" json:"decreasing_capital_ratio"`
	Disability             []DisabilityRate `yaml:"disability" json:"disability"`
	// PremiumWaiverRate is charged on the waived annual savings premium.
	PremiumWaiverRate decimal.Decimal `yaml:"premium_waiver_rate" json:"premium_waiver_rate"`

	SmokerDeathFactor      decimal.Decimal    `yaml:"smoker_death_factor" json:"smoker_death_factor"`
	SmokerDisabilityFactor decimal.Decimal    `yaml:"smoker_disability_factor" json:"smoker_disability_factor"`
	HypertensionFactor     decimal.Decimal    `yaml:"hypertension_factor" json:"hypertension_factor"`
	BMIBands               []BMIBand          `yaml:"bmi_bands" json:"bmi_bands"`
	Occupations            []OccupationFactor `yaml:"occupations" json:"occupations"`

	AgePivot int             `yaml:"age_pivot" json:"age_pivot"`
	AgeSlope decimal.Decimal `yaml:"age_slope" json:"age_slope"`
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bound(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// DefaultTariff returns the built-in 2025.1 tariff.
func DefaultTariff() Tariff {
	return Tariff{
		Version:                DefaultTariffVersion,
		DeathPerMille:          d("1.5"),
		DecreasingCapitalRatio: d("0.55"),
		Disability: []DisabilityRate{
			{WaitingMonths: 3, PerMille: d("18")},
			{WaitingMonths: 6, PerMille: d("14")},
			{WaitingMonths: 12, PerMille: d("10")},
			{WaitingMonths: 24, PerMille: d("7")},
		},
		PremiumWaiverRate:      d("0.03"),
		SmokerDeathFactor:      d("2.6"),
		SmokerDisabilityFactor: d("1.165"),
		HypertensionFactor:     d("1.15"),
		BMIBands: []BMIBand{
			{Below: bound("18.5"), Factor: d("1.10")},
			{Below: bound("25"), Factor: d("1.00")},
			{Below: bound("30"), Factor: d("1.10")},
			{Below: bound("35"), Factor: d("1.20")},
			{Factor: d("1.35")},
		},
		Occupations: []OccupationFactor{
			{Class: 1, Factor: d("1.0")},
			{Class: 2, Factor: d("1.0")},
			{Class: 3, Factor: d("1.2")},
			{Class: 4, Factor: d("1.66")},
		},
		AgePivot: 30,
		AgeSlope: d("0.02"),
	}
}

// Validate checks the tariff is usable by a Pricer.
func (t Tariff) Validate() error {
	if t.Version == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidTariff)
	}
	for name, v := range map[string]decimal.Decimal{
		"death_per_mille":          t.DeathPerMille,
		"decreasing_capital_ratio": t.DecreasingCapitalRatio,
		"premium_waiver_rate":      t.PremiumWaiverRate,
		"age_slope":                t.AgeSlope,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidTariff, name)
		}
	}
	for name, v := range map[string]decimal.Decimal{
		"smoker_death_factor":      t.SmokerDeathFactor,
		"smoker_disability_factor": t.SmokerDisabilityFactor,
		"hypertension_factor":      t.HypertensionFactor,
	} {
		if !v.IsPositive() {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidTariff, name)
		}
	}

	if len(t.Disability) == 0 {
		return fmt.Errorf("%w: at least one disability rate is required", ErrInvalidTariff)
	}
	for i, r := range t.Disability {
		if r.PerMille.IsNegative() {
			return fmt.Errorf("%w: disability rate %d is negative", ErrInvalidTariff, i)
		}
		if i > 0 && r.WaitingMonths <= t.Disability[i-1].WaitingMonths {
			return fmt.Errorf("%w: disability rates must be ordered by waiting months", ErrInvalidTariff)
		}
	}

	if len(t.BMIBands) == 0 {
		return fmt.Errorf("%w: at least one BMI band is required", ErrInvalidTariff)
	}
	for i, b := range t.BMIBands {
		last := i == len(t.BMIBands)-1
		if !b.Factor.IsPositive() {
			return fmt.Errorf("%w: BMI band %d factor must be positive", ErrInvalidTariff, i)
		}
		if last != (b.Below == nil) {
			return fmt.Errorf("%w: only the last BMI band is unbounded", ErrInvalidTariff)
		}
		if i > 0 && b.Below != nil && !b.Below.GreaterThan(*t.BMIBands[i-1].Below) {
			return fmt.Errorf("%w: BMI bands must be ascending", ErrInvalidTariff)
		}
	}

	if len(t.Occupations) == 0 {
		return fmt.Errorf("%w: occupation factors are required", ErrInvalidTariff)
	}
	for i, o := range t.Occupations {
		if o.Class < 1 || !o.Factor.IsPositive() {
			return fmt.Errorf("%w: occupation class %d is invalid", ErrInvalidTariff, o.Class)
		}
		if i > 0 && o.Class <= t.Occupations[i-1].Class {
			return fmt.Errorf("%w: occupation classes must be ascending", ErrInvalidTariff)
		}
	}
	return nil
}

// AgeFactor is 1 + max(age − pivot, 0) × slope.
func (t Tariff) AgeFactor(age int) decimal.Decimal {
	over := age - t.AgePivot
	if over < 0 {
		over = 0
	}
	return decimal.NewFromInt(1).Add(t.AgeSlope.Mul(decimal.NewFromInt(int64(over))))
}

// BMIFactor reads the band containing bmi. An unknown BMI (zero) is neutral.
func (t Tariff) BMIFactor(bmi decimal.Decimal) decimal.Decimal {
	if !bmi.IsPositive() {
		return decimal.NewFromInt(1)
	}
	for _, b := range t.BMIBands {
		if b.Below == nil || bmi.LessThan(*b.Below) {
			return b.Factor
		}
	}
	return decimal.NewFromInt(1)
}

// OccupationFactor returns the multiplier of class. Classes above the table
// read the highest row.
func (t Tariff) OccupationFactor(class int) (decimal.Decimal, bool) {
	row, _, ok := tables.FloorInt(t.Occupations, func(o OccupationFactor) int { return o.Class }, class)
	if !ok {
		return decimal.Zero, false
	}
	return row.Factor, true
}

// DisabilityPerMille returns the rate of the longest tariffed waiting period
// not exceeding months. Shorter periods read the first row.
func (t Tariff) DisabilityPerMille(months int) decimal.Decimal {
	if len(t.Disability) == 0 {
		return decimal.Zero
	}
	row, _, ok := tables.FloorInt(t.Disability, func(r DisabilityRate) int { return r.WaitingMonths }, months)
	if !ok {
		return t.Disability[0].PerMille
	}
	return row.PerMille
}
