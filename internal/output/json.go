package output

import (
	"github.com/goccy/go-json"
	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/riskpricing"
)

// JSONFormatter emits the report with full decimal precision.
type JSONFormatter struct {
	Indent bool
}

func (JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *events.Report) ([]byte, error) {
	return j.marshal(r)
}

func (j JSONFormatter) FormatPremiums(p riskpricing.Premiums) ([]byte, error) {
	return j.marshal(p)
}

func (j JSONFormatter) marshal(v any) ([]byte, error) {
	if j.Indent {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return json.Marshal(v)
}
