package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format writes one row per scenario and event.
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"EventDate",
		"Degree",
		"Event",
		"Annual",
		"Monthly",
		"Capital",
		"Replacement",
		"AnnualDiffFromBase",
		"AnnualPctFromBase",
		"CapitalDiffFromBase",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := cf.writeResult(writer, &compSet.BaseResult, "base"); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := cf.writeResult(writer, &compSet.AlternativeResults[i], "alternative"); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) writeResult(w *csv.Writer, r *ComparisonResult, kind string) error {
	for _, e := range r.Events {
		row := []string{
			r.Scenario.Name,
			kind,
			dateLabel(r.Scenario.EventDate),
			r.Scenario.Degree.String(),
			string(e.Event),
			e.Annual.StringFixed(2),
			e.Monthly.StringFixed(2),
			e.Capital.StringFixed(2),
			e.Replacement.StringFixed(4),
			e.AnnualDiffFromBase.StringFixed(2),
			e.AnnualPctFromBase.StringFixed(2),
			e.CapitalDiffFromBase.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
