package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/riskpricing"
)

// CSVFormatter writes one row per payout component.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(r *events.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"ReportID", "Event", "Component", "Annual", "Monthly"}); err != nil {
		return nil, err
	}
	for _, s := range sections(r) {
		for _, l := range s.Lines {
			monthly := l.Monthly.StringFixed(2)
			if l.Capital {
				monthly = ""
			}
			row := []string{r.ID.String(), string(l.Event), l.Component, l.Annual.StringFixed(2), monthly}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (CSVFormatter) FormatPremiums(p riskpricing.Premiums) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Rider", "AnnualPremium"}); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(p.Breakdown))
	for k := range p.Breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.Write([]string{k, p.Breakdown[k].StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{"total", p.TotalRiskPremium.StringFixed(2)}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
