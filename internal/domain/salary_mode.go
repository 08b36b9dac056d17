package domain

import "github.com/shopspring/decimal"

// SalarySource names where an insured salary came from.
type SalarySource int

const (
	SalaryFromLegalFallback SalarySource = iota
	SalaryFromGeneral
	SalaryFromSplit
)

func (s SalarySource) String() string {
	switch s {
	case SalaryFromGeneral:
		return "certificate_general"
	case SalaryFromSplit:
		return "certificate_split"
	default:
		return "legal_fallback"
	}
}

func (s SalarySource) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// SalaryPurpose distinguishes the two insured salaries of an LPP plan.
type SalaryPurpose int

const (
	PurposeRisk SalaryPurpose = iota
	PurposeSavings
)

func (p SalaryPurpose) String() string {
	if p == PurposeSavings {
		return "savings"
	}
	return "risk"
}

func (p SalaryPurpose) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// InsuredSalaryMode is one of LegalFallback, General(amount) or
// Split(risk, savings). A split certificate may print only one of the two
// values; the general value, when present, still backs the missing one.
type InsuredSalaryMode struct {
	kind    SalarySource
	general *decimal.Decimal
	risk    *decimal.Decimal
	savings *decimal.Decimal
}

func LegalFallbackSalary() InsuredSalaryMode {
	return InsuredSalaryMode{kind: SalaryFromLegalFallback}
}

func GeneralSalary(amount decimal.Decimal) InsuredSalaryMode {
	return InsuredSalaryMode{kind: SalaryFromGeneral, general: &amount}
}

func SplitSalary(risk, savings, general *decimal.Decimal) InsuredSalaryMode {
	return InsuredSalaryMode{kind: SalaryFromSplit, risk: risk, savings: savings, general: general}
}

// Kind returns the variant.
func (m InsuredSalaryMode) Kind() SalarySource { return m.kind }

// For returns the certificate value for purpose and its source. ok is false
// when the legal derivation must be used instead.
func (m InsuredSalaryMode) For(purpose SalaryPurpose) (decimal.Decimal, SalarySource, bool) {
	split := m.risk
	if purpose == PurposeSavings {
		split = m.savings
	}
	if split != nil {
		return *split, SalaryFromSplit, true
	}
	if m.general != nil {
		return *m.general, SalaryFromGeneral, true
	}
	return decimal.Zero, SalaryFromLegalFallback, false
}
