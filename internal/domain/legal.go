package domain

import (
	"sort"

	"github.com/moneylife/benefits/pkg/tables"
	"github.com/shopspring/decimal"
)

// LegalSettings are the regulatory parameters valid for one calendar year.
type LegalSettings struct {
	Year int `yaml:"year" json:"year"`

	// AVS/AI
	MinContributionYears  int             `yaml:"min_contribution_years" json:"min_contribution_years"`
	FullContributionYears int             `yaml:"full_contribution_years" json:"full_contribution_years"`
	ContributionStartAge  int             `yaml:"contribution_start_age" json:"contribution_start_age"`
	MinAVSAnnualRente     decimal.Decimal `yaml:"min_avs_annual_rente" json:"min_avs_annual_rente"`
	BTEAnnualCredit       decimal.Decimal `yaml:"bte_annual_credit" json:"bte_annual_credit"`
	BTAAnnualCredit       decimal.Decimal `yaml:"bta_annual_credit" json:"bta_annual_credit"`
	MarriageCreditSplit   decimal.Decimal `yaml:"marriage_credit_split" json:"marriage_credit_split"`
	RetirementAgeWomen    int             `yaml:"retirement_age_women" json:"retirement_age_women"`
	RetirementAgeMen      int             `yaml:"retirement_age_men" json:"retirement_age_men"`

	// LPP
	LPPMinInsuredSalary      decimal.Decimal `yaml:"lpp_min_insured_salary" json:"lpp_min_insured_salary"`
	LPPMaxInsuredSalary      decimal.Decimal `yaml:"lpp_max_insured_salary" json:"lpp_max_insured_salary"`
	LPPCoordinationDeduction decimal.Decimal `yaml:"lpp_coordination_deduction" json:"lpp_coordination_deduction"`
	LPPNoRenteCapitalMult    decimal.Decimal `yaml:"lpp_no_rente_capital_multiplier" json:"lpp_no_rente_capital_multiplier"`

	// LAA
	LAAMaxInsuredEarnings decimal.Decimal `yaml:"laa_max_insured_earnings" json:"laa_max_insured_earnings"`
	LAANoRenteCapitalMult decimal.Decimal `yaml:"laa_no_rente_capital_multiplier" json:"laa_no_rente_capital_multiplier"`
}

// DefaultCapitalMultiplier applies when a capital multiplier is not set.
var DefaultCapitalMultiplier = decimal.NewFromInt(3)

// LPPCapitalMultiplier returns the configured no-rente multiplier or 3.
func (ls LegalSettings) LPPCapitalMultiplier() decimal.Decimal {
	if ls.LPPNoRenteCapitalMult.IsPositive() {
		return ls.LPPNoRenteCapitalMult
	}
	return DefaultCapitalMultiplier
}

// LAACapitalMultiplier returns the configured no-rente multiplier or 3.
func (ls LegalSettings) LAACapitalMultiplier() decimal.Decimal {
	if ls.LAANoRenteCapitalMult.IsPositive() {
		return ls.LAANoRenteCapitalMult
	}
	return DefaultCapitalMultiplier
}

// CreditSplit returns the share of BTE credited to a married client, 0.5 when unset.
func (ls LegalSettings) CreditSplit() decimal.Decimal {
	if ls.MarriageCreditSplit.IsPositive() {
		return ls.MarriageCreditSplit
	}
	return decimal.NewFromFloat(0.5)
}

// RetirementAge returns the legal reference age for sex.
func (ls LegalSettings) RetirementAge(sex Sex) int {
	if sex == Female && ls.RetirementAgeWomen > 0 {
		return ls.RetirementAgeWomen
	}
	if ls.RetirementAgeMen > 0 {
		return ls.RetirementAgeMen
	}
	return 65
}

// Echelle44Row is one bracket of the full AVS/AI scale. Amounts are monthly.
type Echelle44Row struct {
	// IncomeFrom is the lower bound of the annual determinant average income.
	IncomeFrom  decimal.Decimal `yaml:"income_from" json:"income_from"`
	BaseMonthly decimal.Decimal `yaml:"base_monthly" json:"base_monthly"`
	// WidowMonthly is the widow/widower amount.
	WidowMonthly decimal.Decimal `yaml:"widow_monthly" json:"widow_monthly"`
	// Child40Monthly is the child/orphan amount when the scale prints it.
	Child40Monthly *decimal.Decimal `yaml:"child40_monthly,omitempty" json:"child40_monthly,omitempty"`
}

// Echelle44 is the full scale sorted by IncomeFrom.
type Echelle44 []Echelle44Row

func echelleKey(r Echelle44Row) decimal.Decimal { return r.IncomeFrom }

// Lookup selects the highest bracket whose income bound is at most ramd.
// Incomes below the first bracket read the first row. ok is false only for
// an empty scale.
func (e Echelle44) Lookup(ramd decimal.Decimal) (Echelle44Row, bool) {
	row, _, ok := tables.FloorOrFirst(e, echelleKey, ramd)
	return row, ok
}

// Sorted reports whether brackets are ascending.
func (e Echelle44) Sorted() bool { return tables.IsSorted(e, echelleKey) }

// Legal groups the settings and scale applied to one computation.
type Legal struct {
	Settings  LegalSettings `yaml:"settings" json:"settings"`
	Echelle44 Echelle44     `yaml:"echelle44" json:"echelle44"`
}

// LegalBook is the year-stamped collection of legal tables.
type LegalBook struct {
	Years []Legal `yaml:"years" json:"years"`
}

// Sort orders the book by year and each scale by bracket.
func (lb *LegalBook) Sort() {
	sort.SliceStable(lb.Years, func(i, j int) bool {
		return lb.Years[i].Settings.Year < lb.Years[j].Settings.Year
	})
	for i := range lb.Years {
		scale := lb.Years[i].Echelle44
		sort.SliceStable(scale, func(a, b int) bool {
			return scale[a].IncomeFrom.LessThan(scale[b].IncomeFrom)
		})
	}
}

// ForYear returns the latest tables published for year or earlier. The book
// must be sorted.
func (lb LegalBook) ForYear(year int) (Legal, bool) {
	legal, _, ok := tables.FloorInt(lb.Years, func(l Legal) int { return l.Settings.Year }, year)
	return legal, ok
}
