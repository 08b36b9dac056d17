package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/riskpricing"
	"github.com/shopspring/decimal"
)

// Formatter renders an engine report. Amounts are rounded here and nowhere else.
type Formatter interface {
	Name() string
	Format(r *events.Report) ([]byte, error)
}

// PremiumsFormatter renders a risk premium quote.
type PremiumsFormatter interface {
	Name() string
	FormatPremiums(p riskpricing.Premiums) ([]byte, error)
}

var formatters = map[string]func() Formatter{
	"console": func() Formatter { return ConsoleFormatter{} },
	"json":    func() Formatter { return JSONFormatter{Indent: true} },
	"yaml":    func() Formatter { return YAMLFormatter{} },
	"csv":     func() Formatter { return CSVFormatter{} },
}

// GetFormatterByName returns nil for an unknown name.
func GetFormatterByName(name string) Formatter {
	if mk, ok := formatters[strings.ToLower(strings.TrimSpace(name))]; ok {
		return mk()
	}
	return nil
}

// GetPremiumsFormatterByName returns nil when name has no premiums rendering.
func GetPremiumsFormatterByName(name string) PremiumsFormatter {
	if pf, ok := GetFormatterByName(name).(PremiumsFormatter); ok {
		return pf
	}
	return nil
}

// FormatterNames lists the registered formats in sorted order.
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders r and writes it to path, or to w when path is empty.
func WriteFormatted(f Formatter, r *events.Report, path string, w io.Writer) error {
	data, err := f.Format(r)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FormatCurrency formats a decimal as Swiss francs with apostrophe grouping.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('\'')
		}
		b.WriteRune(c)
	}
	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + "CHF " + b.String() + "." + frac
}

// FormatPercentage formats a ratio (0.9) as a percentage (90.00%).
func FormatPercentage(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
