package calculation

import (
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/rules"
	"github.com/shopspring/decimal"
)

// InsuredSalary is an LPP insured salary and where it came from.
type InsuredSalary struct {
	Purpose domain.SalaryPurpose `yaml:"purpose" json:"purpose"`
	Amount  decimal.Decimal      `yaml:"amount" json:"amount"`
	Source  domain.SalarySource  `yaml:"source" json:"source"`
}

// LPPCalculator reads occupational pension benefits. Rentes come from the
// certificate; the calculator only derives insured salaries and death
// capitals when the certificate is silent.
type LPPCalculator struct {
	settings domain.LegalSettings
}

func NewLPPCalculator(settings domain.LegalSettings) *LPPCalculator {
	return &LPPCalculator{settings: settings}
}

// InsuredSalary resolves the insured salary for purpose: the certificate's
// split value, else its general value, else salary minus the coordination
// deduction clamped to the legal bounds.
func (l *LPPCalculator) InsuredSalary(c *domain.ClientData, purpose domain.SalaryPurpose) InsuredSalary {
	if v, src, ok := c.LPP.SalaryMode().For(purpose); ok {
		return InsuredSalary{Purpose: purpose, Amount: decimal.Max(v, decimal.Zero), Source: src}
	}
	return InsuredSalary{Purpose: purpose, Amount: l.LegalInsuredSalary(c.AnnualSalary), Source: domain.SalaryFromLegalFallback}
}

// LegalInsuredSalary is salary − coordination deduction within [min, max].
// A client without salary has no insured salary.
func (l *LPPCalculator) LegalInsuredSalary(salary decimal.Decimal) decimal.Decimal {
	if !salary.IsPositive() {
		return decimal.Zero
	}
	v := salary.Sub(l.settings.LPPCoordinationDeduction)
	if v.LessThan(l.settings.LPPMinInsuredSalary) {
		v = l.settings.LPPMinInsuredSalary
	}
	if l.settings.LPPMaxInsuredSalary.IsPositive() && v.GreaterThan(l.settings.LPPMaxInsuredSalary) {
		v = l.settings.LPPMaxInsuredSalary
	}
	return v
}

// DisabilityAnnuity is the certificate disability rente scaled by quota.
func (l *LPPCalculator) DisabilityAnnuity(c *domain.ClientData, quota decimal.Decimal) domain.Amount {
	return domain.Annual(c.LPP.DisabilityAnnuity.Mul(quota))
}

// DisabilityChildAnnuities pays the per-child disability rente for every
// minor child at ref, scaled by quota.
func (l *LPPCalculator) DisabilityChildAnnuities(c *domain.ClientData, ref time.Time, quota decimal.Decimal) domain.Amount {
	n := decimal.NewFromInt(int64(len(rules.MinorChildrenAt(c, ref))))
	return domain.Annual(c.LPP.DisabilityChildAnnuity.Mul(n).Mul(quota))
}

// SurvivorReference is the spouse or partner rente printed on the
// certificate. Registered partners use the partner rente when the plan
// prints one.
func (l *LPPCalculator) SurvivorReference(c *domain.ClientData) decimal.Decimal {
	if c.MaritalStatus == domain.RegisteredPartnership && c.LPP.PartnerAnnuity.IsPositive() {
		return c.LPP.PartnerAnnuity
	}
	return c.LPP.SpouseAnnuity
}

// SpouseAnnuity is the survivor rente when it is due.
func (l *LPPCalculator) SpouseAnnuity(c *domain.ClientData, ent domain.Entitlement) domain.Amount {
	if ent != domain.Due {
		return domain.Amount{}
	}
	return domain.Annual(l.SurvivorReference(c))
}

// OrphanAnnuities pays the orphan rente for every minor child at ref.
func (l *LPPCalculator) OrphanAnnuities(c *domain.ClientData, ref time.Time) domain.Amount {
	n := decimal.NewFromInt(int64(len(rules.MinorChildrenAt(c, ref))))
	return domain.Annual(c.LPP.OrphanAnnuity.Mul(n))
}

// RetirementAnnuity is the certificate projected retirement rente.
func (l *LPPCalculator) RetirementAnnuity(c *domain.ClientData) domain.Amount {
	return domain.Annual(c.LPP.RetirementAnnuity)
}

// NoRenteCapital is paid to a partner who is not entitled to a rente: the
// certificate value, else the survivor reference rente times the legal
// multiplier.
func (l *LPPCalculator) NoRenteCapital(c *domain.ClientData) decimal.Decimal {
	if c.LPP.DeathCapitalNoRente != nil {
		return decimal.Max(*c.LPP.DeathCapitalNoRente, decimal.Zero)
	}
	return l.SurvivorReference(c).Mul(l.settings.LPPCapitalMultiplier())
}

// PlusRenteCapital is the certificate capital paid in addition to a rente.
func (l *LPPCalculator) PlusRenteCapital(c *domain.ClientData) decimal.Decimal {
	if c.LPP.DeathCapitalPlusRente != nil {
		return decimal.Max(*c.LPP.DeathCapitalPlusRente, decimal.Zero)
	}
	return decimal.Zero
}
