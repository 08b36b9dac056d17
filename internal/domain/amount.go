package domain

import "github.com/shopspring/decimal"

var (
	monthsPerYear = decimal.NewFromInt(12)
	daysPerYear   = decimal.NewFromInt(365)
)

// MonthlyToAnnual multiplies by 12.
func MonthlyToAnnual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(monthsPerYear)
}

// AnnualToMonthly divides by 12, keeping two more places than annual carries
// so MonthlyToAnnual round-trips at any precision.
func AnnualToMonthly(annual decimal.Decimal) decimal.Decimal {
	places := max(int32(decimal.DivisionPrecision), -annual.Exponent()+2)
	return annual.DivRound(monthsPerYear, places)
}

// DailyToAnnual multiplies by 365.
func DailyToAnnual(daily decimal.Decimal) decimal.Decimal {
	return daily.Mul(daysPerYear)
}

// AnnualToDaily divides by 365.
func AnnualToDaily(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(daysPerYear)
}

// Amount is a periodic benefit. Annual is authoritative; Monthly is always
// Annual/12 so the two never drift apart.
type Amount struct {
	Annual  decimal.Decimal `yaml:"annual" json:"annual"`
	Monthly decimal.Decimal `yaml:"monthly" json:"monthly"`
}

// Annual builds an Amount from a yearly figure. Negative input is floored at zero.
func Annual(annual decimal.Decimal) Amount {
	if annual.IsNegative() {
		annual = decimal.Zero
	}
	return Amount{Annual: annual, Monthly: AnnualToMonthly(annual)}
}

// Monthly builds an Amount from a monthly figure.
func Monthly(monthly decimal.Decimal) Amount {
	return Annual(MonthlyToAnnual(monthly))
}

// Add sums two amounts.
func (a Amount) Add(b Amount) Amount {
	return Annual(a.Annual.Add(b.Annual))
}

// Scale multiplies the amount by f.
func (a Amount) Scale(f decimal.Decimal) Amount {
	return Annual(a.Annual.Mul(f))
}

// IsZero reports a zero amount.
func (a Amount) IsZero() bool { return a.Annual.IsZero() }
