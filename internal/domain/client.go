package domain

import (
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ClientData is the biographical and financial snapshot the calculators read.
// Calculators never modify it.
type ClientData struct {
	ID               string           `yaml:"id,omitempty" json:"id,omitempty"`
	Name             string           `yaml:"name,omitempty" json:"name,omitempty"`
	BirthDate        dateutil.Date    `yaml:"birth_date" json:"birth_date"`
	Sex              Sex              `yaml:"sex" json:"sex"`
	MaritalStatus    MaritalStatus    `yaml:"marital_status" json:"marital_status"`
	MarriageDuration MarriageDuration `yaml:"marriage_duration" json:"marriage_duration"`
	MarriageDate     dateutil.Date    `yaml:"marriage_date,omitempty" json:"marriage_date,omitempty"`
	Spouse           Spouse           `yaml:"spouse,omitempty" json:"spouse,omitempty"`
	Children         []Child          `yaml:"children,omitempty" json:"children,omitempty"`

	AnnualSalary decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
	// AverageIncome overrides the revalued career average used by AVS/AI.
	AverageIncome        *decimal.Decimal `yaml:"average_income,omitempty" json:"average_income,omitempty"`
	CareerStartYear      int              `yaml:"career_start_year,omitempty" json:"career_start_year,omitempty"`
	ContributionGapYears int              `yaml:"contribution_gap_years,omitempty" json:"contribution_gap_years,omitempty"`
	// EducationCreditYears replaces the BTE years derived from children's birth years.
	EducationCreditYears  *int `yaml:"education_credit_years,omitempty" json:"education_credit_years,omitempty"`
	CaregivingCreditYears int  `yaml:"caregiving_credit_years,omitempty" json:"caregiving_credit_years,omitempty"`

	LPP      LPPCertificate   `yaml:"lpp,omitempty" json:"lpp,omitempty"`
	Accident AccidentCoverage `yaml:"accident,omitempty" json:"accident,omitempty"`
	Illness  IllnessCoverage  `yaml:"illness,omitempty" json:"illness,omitempty"`
	Risk     RiskProfile      `yaml:"risk,omitempty" json:"risk,omitempty"`
}

// Spouse holds the partner facts needed by the survivor rules.
type Spouse struct {
	BirthDate dateutil.Date `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	Sex       Sex           `yaml:"sex,omitempty" json:"sex,omitempty"`
}

// Child of the client.
type Child struct {
	Name      string        `yaml:"name,omitempty" json:"name,omitempty"`
	BirthDate dateutil.Date `yaml:"birth_date" json:"birth_date"`
}

// LPPCertificate carries the values printed on the occupational pension
// certificate. Annuities are annual amounts; absent values read as zero.
type LPPCertificate struct {
	InsuredSalary        *decimal.Decimal `yaml:"insured_salary,omitempty" json:"insured_salary,omitempty"`
	InsuredSalaryRisk    *decimal.Decimal `yaml:"insured_salary_risk,omitempty" json:"insured_salary_risk,omitempty"`
	InsuredSalarySavings *decimal.Decimal `yaml:"insured_salary_savings,omitempty" json:"insured_salary_savings,omitempty"`

	DisabilityAnnuity      decimal.Decimal `yaml:"disability_annuity,omitempty" json:"disability_annuity,omitempty"`
	DisabilityChildAnnuity decimal.Decimal `yaml:"disability_child_annuity,omitempty" json:"disability_child_annuity,omitempty"`
	DisabilityCapital      decimal.Decimal `yaml:"disability_capital,omitempty" json:"disability_capital,omitempty"`
	SpouseAnnuity          decimal.Decimal `yaml:"spouse_annuity,omitempty" json:"spouse_annuity,omitempty"`
	PartnerAnnuity         decimal.Decimal `yaml:"partner_annuity,omitempty" json:"partner_annuity,omitempty"`
	OrphanAnnuity          decimal.Decimal `yaml:"orphan_annuity,omitempty" json:"orphan_annuity,omitempty"`
	RetirementAnnuity      decimal.Decimal `yaml:"retirement_annuity,omitempty" json:"retirement_annuity,omitempty"`
	RetirementCapital      decimal.Decimal `yaml:"retirement_capital,omitempty" json:"retirement_capital,omitempty"`

	// DeathCapitalNoRente is paid when no survivor rente is due.
	DeathCapitalNoRente *decimal.Decimal `yaml:"death_capital_no_rente,omitempty" json:"death_capital_no_rente,omitempty"`
	// DeathCapitalPlusRente is paid on top of a survivor rente.
	DeathCapitalPlusRente *decimal.Decimal `yaml:"death_capital_plus_rente,omitempty" json:"death_capital_plus_rente,omitempty"`
}

// SalaryMode reports which insured-salary values the certificate supplies.
func (c LPPCertificate) SalaryMode() InsuredSalaryMode {
	switch {
	case c.InsuredSalaryRisk != nil || c.InsuredSalarySavings != nil:
		return SplitSalary(c.InsuredSalaryRisk, c.InsuredSalarySavings, c.InsuredSalary)
	case c.InsuredSalary != nil:
		return GeneralSalary(*c.InsuredSalary)
	default:
		return LegalFallbackSalary()
	}
}

// AccidentCoverage describes the LAA contract. The legal 80% daily allowance
// applies unless DailyAllowanceRate is set.
type AccidentCoverage struct {
	DailyAllowanceRate *decimal.Decimal `yaml:"daily_allowance_rate,omitempty" json:"daily_allowance_rate,omitempty"`
}

// IllnessCoverage describes the collective loss-of-earnings insurance for
// illness. Without Covered there is no daily-allowance phase.
type IllnessCoverage struct {
	Covered            bool             `yaml:"covered,omitempty" json:"covered,omitempty"`
	DailyAllowanceRate *decimal.Decimal `yaml:"daily_allowance_rate,omitempty" json:"daily_allowance_rate,omitempty"`
	WaitingDays        *int             `yaml:"waiting_days,omitempty" json:"waiting_days,omitempty"`
	Days               int              `yaml:"days,omitempty" json:"days,omitempty"`
}

// RiskProfile holds the underwriting facts used by the third-pillar pricer.
type RiskProfile struct {
	HeightCm     int             `yaml:"height_cm,omitempty" json:"height_cm,omitempty"`
	WeightKg     decimal.Decimal `yaml:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	Smoker       bool            `yaml:"smoker,omitempty" json:"smoker,omitempty"`
	Hypertension bool            `yaml:"hypertension,omitempty" json:"hypertension,omitempty"`
	// OccupationClass is 1 to 4. Nil leaves risk riders unpriced.
	OccupationClass *int `yaml:"occupation_class,omitempty" json:"occupation_class,omitempty"`
}

// HasSpouseFacts reports whether a partner birthdate was supplied.
func (c *ClientData) HasSpouseFacts() bool {
	return c.Spouse.BirthDate.Valid()
}
