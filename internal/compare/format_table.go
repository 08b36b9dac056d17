package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a table with one block per event.
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("BENEFIT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Client: %s | Annual salary: %s\n", compSet.ClientID, tf.formatDecimal(compSet.AnnualSalary)))

	nameWidth := 22
	numWidth := 13

	for _, base := range compSet.BaseResult.Events {
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(strings.ReplaceAll(string(base.Event), "_", " ")) + "\n")
		sb.WriteString(fmt.Sprintf("%-*s %6s %*s %*s %*s %*s\n",
			nameWidth, "Scenario",
			"Degree",
			numWidth, "Annual",
			numWidth, "Capital",
			numWidth, "Replaced",
			numWidth, "vs base"))
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		sb.WriteString(tf.formatRow(&compSet.BaseResult, base, nameWidth, numWidth, true))
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if e, ok := alt.Event(base.Event); ok {
				sb.WriteString(tf.formatRow(alt, e, nameWidth, numWidth, false))
			}
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.Findings) > 0 {
		sb.WriteString("\nFINDINGS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, f := range compSet.Findings {
			sb.WriteString(fmt.Sprintf("• %s\n", f))
		}
	}
	return sb.String()
}

func (tf *TableFormatter) formatRow(r *ComparisonResult, e EventTotals, nameWidth, numWidth int, isBase bool) string {
	name := r.Scenario.Name
	delta := ""
	if isBase {
		name += " (base)"
	} else {
		delta = tf.deltaSymbol(e.AnnualDiffFromBase) + tf.formatDecimal(e.AnnualDiffFromBase.Abs())
	}
	return fmt.Sprintf("%-*s %6s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		r.Scenario.Degree.StringFixed(0)+"%",
		numWidth, tf.formatDecimal(e.Annual),
		numWidth, tf.formatDecimal(e.Capital),
		numWidth, e.Replacement.Mul(hundred).StringFixed(1)+"%",
		numWidth, delta)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns + for gains, - for losses
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of the first event
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder
	if len(compSet.BaseResult.Events) == 0 {
		return ""
	}
	ev := compSet.BaseResult.Events[0]
	sb.WriteString(fmt.Sprintf("%s base: %s", ev.Event, tf.formatDecimal(ev.Annual)))
	for _, alt := range compSet.AlternativeResults {
		e, ok := alt.Event(ev.Event)
		if !ok {
			continue
		}
		change := "="
		if !e.AnnualDiffFromBase.IsZero() {
			change = tf.deltaSymbol(e.AnnualDiffFromBase) + tf.formatDecimal(e.AnnualDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.Scenario.Name, change))
	}
	return sb.String()
}
