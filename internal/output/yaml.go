package output

import (
	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/riskpricing"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter emits the report with full decimal precision.
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(r *events.Report) ([]byte, error) {
	return yaml.Marshal(r)
}

func (YAMLFormatter) FormatPremiums(p riskpricing.Premiums) ([]byte, error) {
	return yaml.Marshal(p)
}
