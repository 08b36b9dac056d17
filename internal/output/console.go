package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/riskpricing"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7FB3E6"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9A9A9A"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#9C2A00", Dark: "#FFB86C"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	flagStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	totalStyle   = lipgloss.NewStyle().Bold(true)
)

// ConsoleFormatter renders a styled human-readable report.
type ConsoleFormatter struct {
	// Notes includes meta notes under each event.
	Notes bool
}

func (ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *events.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("BENEFIT REPORT"))
	who := r.ClientName
	if who == "" {
		who = r.ClientID
	}
	fmt.Fprintln(&buf, mutedStyle.Render(fmt.Sprintf("client %s | event date %s | legal year %d | report %s",
		who, r.EventDate.Format("02.01.2006"), r.LegalYear, r.ID)))
	fmt.Fprintf(&buf, "Annual salary:      %s\n", FormatCurrency(r.AnnualSalary))
	fmt.Fprintf(&buf, "Disability degree:  %s%%\n", r.DisabilityDegree.StringFixed(0))

	for _, s := range sections(r) {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render(sectionTitle(s.Kind)))
		fmt.Fprintf(&buf, "%-26s %18s %18s\n", "", "annual", "monthly")
		for _, l := range s.Lines {
			label := strings.ReplaceAll(l.Component, "_", " ")
			monthly := FormatCurrency(l.Monthly)
			if l.Capital {
				monthly = ""
			}
			row := fmt.Sprintf("%-26s %18s %18s", label, FormatCurrency(l.Annual), monthly)
			if l.Component == "total" || l.Component == "capital_total" {
				row = totalStyle.Render(row)
			}
			fmt.Fprintln(&buf, row)
		}
		if s.Replacement != nil {
			fmt.Fprintf(&buf, "%-26s %18s\n", "replacement rate", FormatPercentage(*s.Replacement))
		}
		writeFlags(&buf, s)
		if c.Notes {
			for _, n := range s.Meta.Notes {
				fmt.Fprintln(&buf, mutedStyle.Render("• "+n))
			}
		}
	}
	return buf.Bytes(), nil
}

func (ConsoleFormatter) FormatPremiums(p riskpricing.Premiums) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, titleStyle.Render("RISK PREMIUMS"))
	if p.TariffVersion != "" {
		fmt.Fprintln(&buf, mutedStyle.Render("tariff "+p.TariffVersion))
	}
	keys := make([]string, 0, len(p.Breakdown))
	for k := range p.Breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, "%-28s %18s\n", strings.ReplaceAll(k, "_", " "), FormatCurrency(p.Breakdown[k]))
	}
	fmt.Fprintln(&buf, totalStyle.Render(fmt.Sprintf("%-28s %18s", "total", FormatCurrency(p.TotalRiskPremium))))
	return buf.Bytes(), nil
}

func writeFlags(buf *bytes.Buffer, s section) {
	set := make([]string, 0, len(s.Meta.Flags))
	for name, on := range s.Meta.Flags {
		if on {
			set = append(set, name)
		}
	}
	if len(set) == 0 {
		return
	}
	sort.Strings(set)
	fmt.Fprintln(buf, flagStyle.Render("flags: "+strings.Join(set, ", ")))
}

func sectionTitle(k events.Kind) string {
	switch k {
	case events.IllnessDisability:
		return "Disability (illness)"
	case events.AccidentDisability:
		return "Disability (accident)"
	case events.AccidentDeath:
		return "Death (accident)"
	case events.IllnessDeath:
		return "Death (illness)"
	case events.Retirement:
		return "Retirement"
	default:
		return string(k)
	}
}
