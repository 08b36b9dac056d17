package compare

import (
	"github.com/goccy/go-json"
	"github.com/moneylife/benefits/internal/events"
)

// JSONFormatter renders a comparison with amounts fixed to centimes and
// dates in the Swiss mask. ComparisonSet itself marshals at full precision.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

type jsonScenario struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	EventDate string `json:"event_date"`
	Degree    string `json:"degree"`
}

type jsonEvent struct {
	Event       events.Kind `json:"event"`
	Annual      string      `json:"annual"`
	Monthly     string      `json:"monthly"`
	Capital     string      `json:"capital"`
	Replacement string      `json:"replacement_pct"`

	AnnualDiff  string `json:"annual_diff,omitempty"`
	AnnualPct   string `json:"annual_pct,omitempty"`
	CapitalDiff string `json:"capital_diff,omitempty"`
}

type jsonResult struct {
	Scenario jsonScenario `json:"scenario"`
	Events   []jsonEvent  `json:"events"`
}

type jsonDocument struct {
	ClientID     string       `json:"client_id"`
	AnnualSalary string       `json:"annual_salary"`
	Base         jsonResult   `json:"base"`
	Alternatives []jsonResult `json:"alternatives"`
	Findings     []string     `json:"findings"`
}

func jsonView(r *ComparisonResult, kind string) jsonResult {
	out := jsonResult{
		Scenario: jsonScenario{
			Name:      r.Scenario.Name,
			Kind:      kind,
			EventDate: dateLabel(r.Scenario.EventDate),
			Degree:    r.Scenario.Degree.String(),
		},
		Events: make([]jsonEvent, 0, len(r.Events)),
	}
	for _, e := range r.Events {
		ev := jsonEvent{
			Event:       e.Event,
			Annual:      e.Annual.StringFixed(2),
			Monthly:     e.Monthly.StringFixed(2),
			Capital:     e.Capital.StringFixed(2),
			Replacement: e.Replacement.Mul(hundred).StringFixed(2),
		}
		if kind != "base" {
			ev.AnnualDiff = e.AnnualDiffFromBase.StringFixed(2)
			ev.AnnualPct = e.AnnualPctFromBase.StringFixed(2)
			ev.CapitalDiff = e.CapitalDiffFromBase.StringFixed(2)
		}
		out.Events = append(out.Events, ev)
	}
	return out
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonDocument{
		ClientID:     compSet.ClientID,
		AnnualSalary: compSet.AnnualSalary.StringFixed(2),
		Base:         jsonView(&compSet.BaseResult, "base"),
		Alternatives: make([]jsonResult, 0, len(compSet.AlternativeResults)),
		Findings:     compSet.Findings,
	}
	for i := range compSet.AlternativeResults {
		doc.Alternatives = append(doc.Alternatives, jsonView(&compSet.AlternativeResults[i], "alternative"))
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
