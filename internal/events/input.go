// Package events composes the AVS, LPP and LAA calculators into the benefit
// picture of one life event: disability or death, by illness or accident,
// and ordinary retirement.
package events

import (
	"time"

	"github.com/moneylife/benefits/internal/calculation"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind names a life event.
type Kind string

const (
	IllnessDisability  Kind = "illness_disability"
	AccidentDisability Kind = "accident_disability"
	AccidentDeath      Kind = "accident_death"
	IllnessDeath       Kind = "illness_death"
	Retirement         Kind = "retirement"
)

// AllKinds lists every event in report order.
var AllKinds = []Kind{IllnessDisability, AccidentDisability, AccidentDeath, IllnessDeath, Retirement}

// ParseKind returns the event named s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Input is everything a composer reads. The event date is the reference date
// of every guard and age computation.
type Input struct {
	Client *domain.ClientData
	Legal  domain.Legal
	// EventDate is the date of disability or death. Retirement ignores it
	// unless the birthdate is unknown.
	EventDate time.Time
	// DisabilityDegree is in percent.
	DisabilityDegree decimal.Decimal
}

// Daily-allowance periods, in days.
const (
	accidentAllowanceDays  = 730
	accidentWaitingDays    = 2
	illnessAllowanceDays   = 730
	illnessDefaultWaitDays = 30
)

var illnessDefaultRate = decimal.NewFromFloat(0.80)

// calculators bundles the per-pillar calculators built from one legal year.
type calculators struct {
	avs *calculation.AVSProjector
	lpp *calculation.LPPCalculator
	laa *calculation.LAACalculator
}

func newCalculators(legal domain.Legal) calculators {
	return calculators{
		avs: calculation.NewAVSProjector(legal),
		lpp: calculation.NewLPPCalculator(legal.Settings),
		laa: calculation.NewLAACalculator(legal.Settings),
	}
}

// replacementRate is total annual benefits over annual salary, zero without salary.
func replacementRate(total domain.Amount, salary decimal.Decimal) decimal.Decimal {
	if !salary.IsPositive() {
		return decimal.Zero
	}
	return total.Annual.Div(salary)
}

// accidentCoordination builds the cascade input shared by accident events:
// cap at 90% of salary, with LAA further bounded by 90% of its insured earnings.
func accidentCoordination(c *domain.ClientData, laa *calculation.LAACalculator, base, laaNominal, lppNominal decimal.Decimal) domain.Coordination {
	return calculation.Coordinate(calculation.CoordinationInput{
		CapRate:    calculation.AccidentCapRate,
		CapBase:    decimal.Max(c.AnnualSalary, decimal.Zero),
		LAACeiling: laa.InsuredEarnings(c).Mul(calculation.AccidentCapRate),
		Base:       base,
		LAANominal: laaNominal,
		LPPNominal: lppNominal,
	})
}

func recordCoordination(m *domain.Meta, co domain.Coordination) {
	m.Flag("laa_reduced", co.LAAReduced())
	m.Flag("lpp_reduced", co.LPPReduced())
	m.Flag("avs_exceeds_cap", co.Base.GreaterThan(co.Cap))
	if co.Base.GreaterThan(co.Cap) {
		m.Notef("AVS/AI alone (%s a year) exceeds the %s cap: LAA and LPP pay nothing, the total stays above the cap",
			co.Base.StringFixed(2), co.Cap.StringFixed(2))
	}
}

// recordInsuredSalaries resolves the risk and savings insured salaries of the
// LPP plan and where each came from.
func recordInsuredSalaries(m *domain.Meta, c *domain.ClientData, lpp *calculation.LPPCalculator) {
	for _, purpose := range []domain.SalaryPurpose{domain.PurposeRisk, domain.PurposeSavings} {
		s := lpp.InsuredSalary(c, purpose)
		key := "lpp_insured_salary_" + purpose.String()
		m.Input(key, s.Amount)
		m.Input(key+"_source", s.Source)
	}
}

func recordProjection(m *domain.Meta, proj calculation.AVSProjection) {
	m.Input("avs_ramd", proj.RAMD.StringFixed(2))
	m.Input("avs_scale_income", proj.Row.IncomeFrom)
	m.Input("avs_full_years", proj.Years.Full)
	m.Input("avs_effective_years", proj.Years.Effective)
	m.Flag("avs_eligible", proj.Eligible)
	if !proj.Eligible {
		m.Notef("no AVS/AI contribution years: AVS/AI amounts are zero")
	}
}
