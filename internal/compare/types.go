package compare

import (
	"fmt"
	"time"

	"github.com/moneylife/benefits/internal/events"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Scenario is one what-if variation of the base input.
type Scenario struct {
	Name      string          `json:"name"`
	EventDate time.Time       `json:"eventDate"`
	Degree    decimal.Decimal `json:"degree"`
}

// EventTotals summarises one event of a scenario.
type EventTotals struct {
	Event   events.Kind     `json:"event"`
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
	Capital decimal.Decimal `json:"capital"`
	// Replacement is the annual rente over the annual salary.
	Replacement decimal.Decimal `json:"replacement"`

	// Comparison to base
	AnnualDiffFromBase  decimal.Decimal `json:"annualDiffFromBase"`
	AnnualPctFromBase   decimal.Decimal `json:"annualPctFromBase"`
	CapitalDiffFromBase decimal.Decimal `json:"capitalDiffFromBase"`
}

// ComparisonResult holds the event totals of one scenario.
type ComparisonResult struct {
	Scenario Scenario      `json:"scenario"`
	Events   []EventTotals `json:"events"`
}

// Event returns the totals of k, if computed.
func (r ComparisonResult) Event(k events.Kind) (EventTotals, bool) {
	for _, e := range r.Events {
		if e.Event == k {
			return e, true
		}
	}
	return EventTotals{}, false
}

// ComparisonSet is a base scenario with its alternatives.
type ComparisonSet struct {
	ClientID           string             `json:"clientId"`
	AnnualSalary       decimal.Decimal    `json:"annualSalary"`
	BaseResult         ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Findings           []string           `json:"findings"`
}

// totalsFromReport extracts the per-event totals of a report in event order.
func totalsFromReport(r *events.Report) []EventTotals {
	var out []EventTotals
	add := func(k events.Kind, annual, monthly, capital decimal.Decimal) {
		t := EventTotals{Event: k, Annual: annual, Monthly: monthly, Capital: capital}
		if r.AnnualSalary.IsPositive() {
			t.Replacement = annual.Div(r.AnnualSalary)
		}
		out = append(out, t)
	}
	if x := r.IllnessDisability; x != nil {
		add(events.IllnessDisability, x.Rente.Total.Annual, x.Rente.Total.Monthly, x.Capitals.Total)
	}
	if x := r.AccidentDisability; x != nil {
		add(events.AccidentDisability, x.Rente.Total.Annual, x.Rente.Total.Monthly, x.Capitals.Total)
	}
	if x := r.AccidentDeath; x != nil {
		add(events.AccidentDeath, x.Rente.Total.Annual, x.Rente.Total.Monthly, x.Capitals.Total)
	}
	if x := r.IllnessDeath; x != nil {
		add(events.IllnessDeath, x.Rente.Total.Annual, x.Rente.Total.Monthly, x.Capitals.Total)
	}
	if x := r.Retirement; x != nil {
		add(events.Retirement, x.Rente.Total.Annual, x.Rente.Total.Monthly, x.Capitals.Total)
	}
	return out
}

// CalculateComparison fills the deltas of alt against base.
func CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	for i := range alt.Events {
		e := &alt.Events[i]
		b, ok := base.Event(e.Event)
		if !ok {
			continue
		}
		e.AnnualDiffFromBase = e.Annual.Sub(b.Annual)
		e.CapitalDiffFromBase = e.Capital.Sub(b.Capital)
		if !b.Annual.IsZero() {
			e.AnnualPctFromBase = e.AnnualDiffFromBase.Div(b.Annual).Mul(hundred)
		}
	}
	return alt
}

// GenerateFindings reports, per event, the scenario with the widest income gap.
func GenerateFindings(cs *ComparisonSet) []string {
	findings := []string{}
	if !cs.AnnualSalary.IsPositive() {
		return findings
	}
	for _, base := range cs.BaseResult.Events {
		worst := base
		worstName := cs.BaseResult.Scenario.Name
		for _, r := range cs.AlternativeResults {
			if e, ok := r.Event(base.Event); ok && e.Replacement.LessThan(worst.Replacement) {
				worst, worstName = e, r.Scenario.Name
			}
		}
		gap := cs.AnnualSalary.Sub(worst.Annual)
		if gap.IsPositive() {
			findings = append(findings, fmt.Sprintf("%s: widest gap in %s, %s a year below salary (%s%% replaced)",
				base.Event, worstName, gap.StringFixed(0), worst.Replacement.Mul(hundred).StringFixed(1)))
		}
	}
	return findings
}
