package config

import (
	"fmt"
	"os"

	"github.com/moneylife/benefits/internal/calculation"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/riskpricing"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of client, legal and tariff files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

func readYAML(filename string, out interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", filename, err)
	}
	return nil
}

// LoadClientFromFile loads and validates a client file
func (ip *InputParser) LoadClientFromFile(filename string) (*domain.ClientData, error) {
	var client domain.ClientData
	if err := readYAML(filename, &client); err != nil {
		return nil, err
	}
	if err := ip.ValidateClient(&client); err != nil {
		return nil, fmt.Errorf("client validation failed: %w", err)
	}
	return &client, nil
}

// ParseClient decodes client yaml without validation.
func (ip *InputParser) ParseClient(data []byte) (*domain.ClientData, error) {
	var client domain.ClientData
	if err := yaml.Unmarshal(data, &client); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &client, nil
}

// LoadLegalBookFromFile loads the year-stamped legal tables. Years without
// a scale get one generated from their minimum AVS rente.
func (ip *InputParser) LoadLegalBookFromFile(filename string) (*domain.LegalBook, error) {
	var book domain.LegalBook
	if err := readYAML(filename, &book); err != nil {
		return nil, err
	}
	ip.CompleteLegalBook(&book)
	if err := ip.ValidateLegalBook(&book); err != nil {
		return nil, fmt.Errorf("legal tables validation failed: %w", err)
	}
	return &book, nil
}

// CompleteLegalBook sorts the book and fills missing scales.
func (ip *InputParser) CompleteLegalBook(book *domain.LegalBook) {
	for i := range book.Years {
		y := &book.Years[i]
		if len(y.Echelle44) == 0 && y.Settings.MinAVSAnnualRente.IsPositive() {
			y.Echelle44 = calculation.BuildEchelle44(domain.AnnualToMonthly(y.Settings.MinAVSAnnualRente))
		}
	}
	book.Sort()
}

// LegalForYear selects the tables in force for year.
func LegalForYear(book *domain.LegalBook, year int) (domain.Legal, error) {
	legal, ok := book.ForYear(year)
	if !ok {
		return domain.Legal{}, fmt.Errorf("%w %d", ErrNoLegalYear, year)
	}
	return legal, nil
}

// LoadTariffFromFile loads and validates a risk tariff
func (ip *InputParser) LoadTariffFromFile(filename string) (*riskpricing.Tariff, error) {
	var t riskpricing.Tariff
	if err := readYAML(filename, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tariff validation failed: %w", err)
	}
	return &t, nil
}

// LoadRidersFromFile loads a rider configuration
func (ip *InputParser) LoadRidersFromFile(filename string) (*riskpricing.RiderConfig, error) {
	var cfg riskpricing.RiderConfig
	if err := readYAML(filename, &cfg); err != nil {
		return nil, err
	}
	if err := ValidateRiders(&cfg); err != nil {
		return nil, fmt.Errorf("rider validation failed: %w", err)
	}
	return &cfg, nil
}

func invalidClient(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidClient, fmt.Sprintf(format, args...))
}

// ValidateClient reports the first problem in a client record. The
// calculators tolerate everything it rejects, reading it as zero.
func (ip *InputParser) ValidateClient(c *domain.ClientData) error {
	if !c.BirthDate.Valid() {
		if c.BirthDate.Raw() == "" {
			return invalidClient("birth date is required")
		}
		return invalidClient("birth date %q is not a valid date", c.BirthDate.Raw())
	}
	if c.AnnualSalary.IsNegative() {
		return invalidClient("annual salary cannot be negative")
	}
	if c.AverageIncome != nil && c.AverageIncome.IsNegative() {
		return invalidClient("average income cannot be negative")
	}
	if c.ContributionGapYears < 0 || c.CaregivingCreditYears < 0 {
		return invalidClient("year counts cannot be negative")
	}
	if c.EducationCreditYears != nil && *c.EducationCreditYears < 0 {
		return invalidClient("education credit years cannot be negative")
	}
	if c.CareerStartYear != 0 && c.CareerStartYear < c.BirthDate.Year() {
		return invalidClient("career cannot start before birth")
	}

	if raw := c.Spouse.BirthDate.Raw(); raw != "" && !c.Spouse.BirthDate.Valid() {
		return invalidClient("spouse birth date %q is not a valid date", raw)
	}
	if raw := c.MarriageDate.Raw(); raw != "" && !c.MarriageDate.Valid() {
		return invalidClient("marriage date %q is not a valid date", raw)
	}
	for i, child := range c.Children {
		if !child.BirthDate.Valid() {
			return invalidClient("child %d birth date %q is not a valid date", i, child.BirthDate.Raw())
		}
		if child.BirthDate.Before(c.BirthDate) {
			return invalidClient("child %d is born before the client", i)
		}
	}

	if err := validateCertificate(&c.LPP); err != nil {
		return err
	}
	if r := c.Accident.DailyAllowanceRate; r != nil && !validRate(*r) {
		return invalidClient("accident daily allowance rate must be between 0 and 1")
	}
	if r := c.Illness.DailyAllowanceRate; r != nil && !validRate(*r) {
		return invalidClient("illness daily allowance rate must be between 0 and 1")
	}
	if w := c.Illness.WaitingDays; w != nil && *w < 0 {
		return invalidClient("illness waiting days cannot be negative")
	}
	if c.Illness.Days < 0 {
		return invalidClient("illness allowance days cannot be negative")
	}

	if c.Risk.HeightCm < 0 || c.Risk.WeightKg.IsNegative() {
		return invalidClient("height and weight cannot be negative")
	}
	if cls := c.Risk.OccupationClass; cls != nil && (*cls < 1 || *cls > 4) {
		return invalidClient("occupation class must be between 1 and 4")
	}
	return nil
}

func validRate(r decimal.Decimal) bool {
	return r.IsPositive() && r.LessThanOrEqual(decimal.NewFromInt(1))
}

func validateCertificate(lpp *domain.LPPCertificate) error {
	optional := map[string]*decimal.Decimal{
		"insured salary":              lpp.InsuredSalary,
		"insured salary (risk)":       lpp.InsuredSalaryRisk,
		"insured salary (savings)":    lpp.InsuredSalarySavings,
		"death capital without rente": lpp.DeathCapitalNoRente,
		"death capital with rente":    lpp.DeathCapitalPlusRente,
	}
	for name, v := range optional {
		if v != nil && v.IsNegative() {
			return invalidClient("LPP %s cannot be negative", name)
		}
	}
	amounts := map[string]decimal.Decimal{
		"disability annuity":       lpp.DisabilityAnnuity,
		"child disability annuity": lpp.DisabilityChildAnnuity,
		"disability capital":       lpp.DisabilityCapital,
		"spouse annuity":           lpp.SpouseAnnuity,
		"partner annuity":          lpp.PartnerAnnuity,
		"orphan annuity":           lpp.OrphanAnnuity,
		"retirement annuity":       lpp.RetirementAnnuity,
		"retirement capital":       lpp.RetirementCapital,
	}
	for name, v := range amounts {
		if v.IsNegative() {
			return invalidClient("LPP %s cannot be negative", name)
		}
	}
	return nil
}

func invalidLegal(year int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: year %d: %s", ErrInvalidLegal, year, fmt.Sprintf(format, args...))
}

// ValidateLegalBook checks every year of the book. The book must be sorted.
func (ip *InputParser) ValidateLegalBook(book *domain.LegalBook) error {
	if len(book.Years) == 0 {
		return fmt.Errorf("%w: no years", ErrInvalidLegal)
	}
	for i, legal := range book.Years {
		s := legal.Settings
		if s.Year <= 0 {
			return fmt.Errorf("%w: entry %d has no year", ErrInvalidLegal, i)
		}
		if i > 0 && s.Year == book.Years[i-1].Settings.Year {
			return invalidLegal(s.Year, "duplicate year")
		}
		if s.FullContributionYears <= 0 {
			return invalidLegal(s.Year, "full contribution years must be positive")
		}
		if s.MinContributionYears < 0 || s.MinContributionYears > s.FullContributionYears {
			return invalidLegal(s.Year, "minimum contribution years must be between 0 and the full period")
		}
		if s.LPPMaxInsuredSalary.IsPositive() && s.LPPMinInsuredSalary.GreaterThan(s.LPPMaxInsuredSalary) {
			return invalidLegal(s.Year, "LPP minimum insured salary exceeds the maximum")
		}
		for name, v := range map[string]decimal.Decimal{
			"minimum AVS rente":       s.MinAVSAnnualRente,
			"BTE credit":              s.BTEAnnualCredit,
			"BTA credit":              s.BTAAnnualCredit,
			"coordination deduction":  s.LPPCoordinationDeduction,
			"LAA max insured earning": s.LAAMaxInsuredEarnings,
		} {
			if v.IsNegative() {
				return invalidLegal(s.Year, "%s cannot be negative", name)
			}
		}
		if s.MarriageCreditSplit.IsNegative() || s.MarriageCreditSplit.GreaterThan(decimal.NewFromInt(1)) {
			return invalidLegal(s.Year, "marriage credit split must be between 0 and 1")
		}
		if len(legal.Echelle44) == 0 {
			return invalidLegal(s.Year, "scale is empty and no minimum rente to build it from")
		}
		if !legal.Echelle44.Sorted() {
			return invalidLegal(s.Year, "scale brackets must be ascending")
		}
	}
	return nil
}

// ValidateRiders rejects negative amounts and waiting periods.
func ValidateRiders(cfg *riskpricing.RiderConfig) error {
	if cfg.FixedDeathCapital.IsNegative() || cfg.DecreasingDeathCapital.IsNegative() {
		return fmt.Errorf("death capitals cannot be negative")
	}
	for i, a := range cfg.DisabilityAnnuities {
		if a.AnnualAmount.IsNegative() {
			return fmt.Errorf("disability annuity %d cannot be negative", i)
		}
		if a.WaitingMonths < 0 {
			return fmt.Errorf("disability annuity %d waiting months cannot be negative", i)
		}
	}
	if w := cfg.PremiumWaiver; w != nil && w.AnnualPremium.IsNegative() {
		return fmt.Errorf("waived premium cannot be negative")
	}
	return nil
}
