package compare

import (
	"fmt"
	"strings"
	"time"

	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// CompareEngine runs what-if scenarios through the event engine.
type CompareEngine struct {
	Engine *events.Engine
}

// NewCompareEngine wraps engine. A nil engine gets a fresh one.
func NewCompareEngine(engine *events.Engine) *CompareEngine {
	if engine == nil {
		engine = events.NewEngine()
	}
	return &CompareEngine{Engine: engine}
}

// Compare computes base and each alternative scenario for the given events.
// Scenarios inherit the base client and legal tables.
func (ce *CompareEngine) Compare(base events.Input, alternatives []Scenario, kinds ...events.Kind) (*ComparisonSet, error) {
	baseScenario := Scenario{Name: "base", EventDate: base.EventDate, Degree: base.DisabilityDegree}
	baseResult, err := ce.run(base, baseScenario, kinds)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	cs := &ComparisonSet{
		ClientID:     base.Client.ID,
		AnnualSalary: base.Client.AnnualSalary,
		BaseResult:   baseResult,
	}
	for _, sc := range alternatives {
		in := base
		if !sc.EventDate.IsZero() {
			in.EventDate = sc.EventDate
		} else {
			sc.EventDate = base.EventDate
		}
		in.DisabilityDegree = sc.Degree
		r, err := ce.run(in, sc, kinds)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", sc.Name, err)
		}
		cs.AlternativeResults = append(cs.AlternativeResults, CalculateComparison(r, baseResult))
	}
	cs.Findings = GenerateFindings(cs)
	return cs, nil
}

func (ce *CompareEngine) run(in events.Input, sc Scenario, kinds []events.Kind) (ComparisonResult, error) {
	if in.Client == nil {
		return ComparisonResult{}, events.ErrNoClient
	}
	report, err := ce.Engine.Compute(in, kinds...)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ComparisonResult{Scenario: sc, Events: totalsFromReport(report)}, nil
}

// DegreeScenarios builds one scenario per disability degree, named "degree_<n>".
func DegreeScenarios(degrees []decimal.Decimal) []Scenario {
	out := make([]Scenario, 0, len(degrees))
	for _, d := range degrees {
		out = append(out, Scenario{Name: "degree_" + d.String(), Degree: d})
	}
	return out
}

// ParseScenarios reads "name=degree[@date]" specs, e.g. "partial=50@01.06.2026".
func ParseScenarios(specs []string, defaultDegree decimal.Decimal) ([]Scenario, error) {
	out := make([]Scenario, 0, len(specs))
	for _, spec := range specs {
		name, rest, ok := strings.Cut(strings.TrimSpace(spec), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("scenario %q: want name=degree[@date]", spec)
		}
		sc := Scenario{Name: name, Degree: defaultDegree}
		degreeStr, dateStr, hasDate := strings.Cut(rest, "@")
		if degreeStr != "" {
			d, err := decimal.NewFromString(degreeStr)
			if err != nil || d.IsNegative() || d.GreaterThan(hundred) {
				return nil, fmt.Errorf("scenario %q: degree must be within [0, 100]", spec)
			}
			sc.Degree = d
		}
		if hasDate {
			d, ok := dateutil.Parse(dateStr)
			if !ok {
				return nil, fmt.Errorf("scenario %q: invalid date %q", spec, dateStr)
			}
			sc.EventDate = d.Time()
		}
		out = append(out, sc)
	}
	return out, nil
}

// dateLabel formats a scenario date for display.
func dateLabel(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateutil.MaskSwiss)
}
