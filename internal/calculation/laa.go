package calculation

import (
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/rules"
	"github.com/shopspring/decimal"
)

// Fixed LAA rates, as fractions of insured earnings.
var (
	LAADisabilityRate     = decimal.NewFromFloat(0.80)
	LAASpouseRate         = decimal.NewFromFloat(0.40)
	LAAChildRate          = decimal.NewFromFloat(0.15)
	LAAFamilyCapRate      = decimal.NewFromFloat(0.70)
	LAADailyAllowanceRate = decimal.NewFromFloat(0.80)
)

// LAASurvivorRentes are the accident-insurance rentes of a deceased client's
// family after the 70% family cap.
type LAASurvivorRentes struct {
	InsuredEarnings  decimal.Decimal `yaml:"insured_earnings" json:"insured_earnings"`
	SpouseNominal    decimal.Decimal `yaml:"spouse_nominal" json:"spouse_nominal"`
	ChildrenNominal  decimal.Decimal `yaml:"children_nominal" json:"children_nominal"`
	Cap              decimal.Decimal `yaml:"cap" json:"cap"`
	FamilyCapApplied bool            `yaml:"family_cap_applied" json:"family_cap_applied"`
	Spouse           domain.Amount   `yaml:"spouse" json:"spouse"`
	Children         domain.Amount   `yaml:"children" json:"children"`
	Total            domain.Amount   `yaml:"total" json:"total"`
}

// LAACalculator computes accident-insurance benefits.
type LAACalculator struct {
	settings domain.LegalSettings
}

func NewLAACalculator(settings domain.LegalSettings) *LAACalculator {
	return &LAACalculator{settings: settings}
}

// InsuredEarnings is the salary up to the LAA maximum.
func (l *LAACalculator) InsuredEarnings(c *domain.ClientData) decimal.Decimal {
	salary := decimal.Max(c.AnnualSalary, decimal.Zero)
	if ceiling := l.settings.LAAMaxInsuredEarnings; ceiling.IsPositive() && salary.GreaterThan(ceiling) {
		return ceiling
	}
	return salary
}

// DisabilityRente is 80% of insured earnings times the degree (percent).
func (l *LAACalculator) DisabilityRente(c *domain.ClientData, degree decimal.Decimal) domain.Amount {
	degree = ClampDegree(degree)
	return domain.Annual(l.InsuredEarnings(c).Mul(LAADisabilityRate).Mul(degree).Div(hundred))
}

// SurvivorRentes computes the spouse (40%) and per-child (15%) rentes. When
// their sum exceeds 70% of insured earnings every component is reduced by
// the same ratio.
func (l *LAACalculator) SurvivorRentes(c *domain.ClientData, deathDate time.Time, spouseDue bool) LAASurvivorRentes {
	ie := l.InsuredEarnings(c)
	out := LAASurvivorRentes{InsuredEarnings: ie, Cap: ie.Mul(LAAFamilyCapRate)}
	if spouseDue {
		out.SpouseNominal = ie.Mul(LAASpouseRate)
	}
	n := decimal.NewFromInt(int64(len(rules.MinorChildrenAt(c, deathDate))))
	out.ChildrenNominal = ie.Mul(LAAChildRate).Mul(n)

	spouse, children := out.SpouseNominal, out.ChildrenNominal
	sum := spouse.Add(children)
	if sum.GreaterThan(out.Cap) && sum.IsPositive() {
		out.FamilyCapApplied = true
		spouse = spouse.Mul(out.Cap).Div(sum)
		children = children.Mul(out.Cap).Div(sum)
	}
	out.Spouse = domain.Annual(spouse)
	out.Children = domain.Annual(children)
	out.Total = out.Spouse.Add(out.Children)
	return out
}

// LumpSumCapital is paid to a partner not entitled to the LAA spouse rente:
// the spouse reference rente times the legal multiplier.
func (l *LAACalculator) LumpSumCapital(c *domain.ClientData) decimal.Decimal {
	return l.InsuredEarnings(c).Mul(LAASpouseRate).Mul(l.settings.LAACapitalMultiplier())
}

// DailyAllowanceRate is the contractual rate or the legal 80%.
func (l *LAACalculator) DailyAllowanceRate(c *domain.ClientData) decimal.Decimal {
	if r := c.Accident.DailyAllowanceRate; r != nil && r.IsPositive() {
		return *r
	}
	return LAADailyAllowanceRate
}

// DailyAllowance is rate × insured earnings / 365.
func (l *LAACalculator) DailyAllowance(c *domain.ClientData) decimal.Decimal {
	return domain.AnnualToDaily(l.InsuredEarnings(c).Mul(l.DailyAllowanceRate(c)))
}

// AllowancePhase pays the daily allowance over days minus the waiting days.
func (l *LAACalculator) AllowancePhase(c *domain.ClientData, days, waitingDays int) domain.DailyAllowancePhase {
	return NewAllowancePhase("LAA", l.InsuredEarnings(c), l.DailyAllowanceRate(c), days, waitingDays)
}

// NewAllowancePhase builds a flat-rate daily allowance period. The allowance
// is not coordinated with other insurers.
func NewAllowancePhase(insurer string, baseAnnual, rate decimal.Decimal, days, waitingDays int) domain.DailyAllowancePhase {
	if waitingDays < 0 {
		waitingDays = 0
	}
	paid := days - waitingDays
	if paid < 0 {
		paid = 0
	}
	annual := decimal.Max(baseAnnual, decimal.Zero).Mul(rate)
	daily := domain.AnnualToDaily(annual)
	return domain.DailyAllowancePhase{
		Insurer:     insurer,
		Rate:        rate,
		BaseAnnual:  baseAnnual,
		Daily:       daily,
		Days:        days,
		WaitingDays: waitingDays,
		PaidDays:    paid,
		Total:       daily.Mul(decimal.NewFromInt(int64(paid))),
		Equivalent:  domain.Annual(annual),
	}
}

// ClampDegree bounds a disability degree to [0, 100].
func ClampDegree(degree decimal.Decimal) decimal.Decimal {
	if degree.IsNegative() {
		return decimal.Zero
	}
	if degree.GreaterThan(hundred) {
		return hundred
	}
	return degree
}
