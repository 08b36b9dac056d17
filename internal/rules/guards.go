// Package rules holds the eligibility predicates for survivor pensions.
//
// Every guard is evaluated at an explicit reference date, normally the event
// date, so that projected and historical scenarios are reproducible.
package rules

import (
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/pkg/dateutil"
)

const (
	// MinorAge is the age at which a child stops counting as a minor.
	MinorAge = 18
	// SpouseMinAge is the survivor age threshold of the widow rule.
	SpouseMinAge = 45
)

// HasPartner reports a marriage or a registered partnership.
func HasPartner(c *domain.ClientData) bool {
	return c.MaritalStatus == domain.Married || c.MaritalStatus == domain.RegisteredPartnership
}

// ChildrenUnderAt returns the children younger than age at ref. Children
// not yet born at ref and children with a malformed birthdate are excluded.
func ChildrenUnderAt(c *domain.ClientData, ref time.Time, age int) []domain.Child {
	var out []domain.Child
	for _, child := range c.Children {
		if !child.BirthDate.Valid() || child.BirthDate.Time().After(ref) {
			continue
		}
		if dateutil.AgeAt(child.BirthDate, ref) < age {
			out = append(out, child)
		}
	}
	return out
}

// MinorChildrenAt returns the children under 18 at ref.
func MinorChildrenAt(c *domain.ClientData, ref time.Time) []domain.Child {
	return ChildrenUnderAt(c, ref, MinorAge)
}

// HasChildUnder18At reports at least one minor child at ref.
func HasChildUnder18At(c *domain.ClientData, ref time.Time) bool {
	return len(MinorChildrenAt(c, ref)) > 0
}

// SpouseAgeAt returns the partner's age at ref, 0 when unknown.
func SpouseAgeAt(c *domain.ClientData, ref time.Time) int {
	return dateutil.AgeAt(c.Spouse.BirthDate, ref)
}

// widowRule is (spouse ≥ 45 and married ≥ 5 years) or a minor child.
func widowRule(c *domain.ClientData, ref time.Time) bool {
	if HasChildUnder18At(c, ref) {
		return true
	}
	return SpouseAgeAt(c, ref) >= SpouseMinAge && c.MarriageDuration == domain.AtLeastFiveYears
}

// AVSWidowDueAt reports whether a surviving wife or partner receives the AVS
// widow's pension.
func AVSWidowDueAt(c *domain.ClientData, ref time.Time) bool {
	return HasPartner(c) && widowRule(c, ref)
}

// AVSWidowerDueAt reports whether a surviving husband receives the AVS
// widower's pension, which requires a minor child.
func AVSWidowerDueAt(c *domain.ClientData, ref time.Time) bool {
	return HasPartner(c) && HasChildUnder18At(c, ref)
}

// AVSSurvivorSpouseDueAt applies the widow or widower rule according to the
// surviving partner's sex. An unknown sex uses the widow rule.
func AVSSurvivorSpouseDueAt(c *domain.ClientData, ref time.Time) bool {
	if c.Spouse.Sex == domain.Male {
		return AVSWidowerDueAt(c, ref)
	}
	return AVSWidowDueAt(c, ref)
}

// spouseEntitlement implements the symmetric LPP/LAA rule.
//
//	due:     (spouse ≥ 45 and married ≥ 5 years) or a minor child
//	non-due: no minor child and (spouse < 45 or married < 5 years)
//
// Anything else, such as an unknown marriage duration or spouse birthdate
// for an otherwise qualifying survivor, is Indeterminate.
func spouseEntitlement(c *domain.ClientData, ref time.Time) domain.Entitlement {
	if !HasPartner(c) {
		return domain.NotApplicable
	}
	if HasChildUnder18At(c, ref) {
		return domain.Due
	}

	ageKnown := c.Spouse.BirthDate.Valid()
	age := SpouseAgeAt(c, ref)

	switch {
	case ageKnown && age >= SpouseMinAge && c.MarriageDuration == domain.AtLeastFiveYears:
		return domain.Due
	case ageKnown && age < SpouseMinAge:
		return domain.NonDue
	case c.MarriageDuration == domain.LessThanFiveYears:
		return domain.NonDue
	default:
		return domain.Indeterminate
	}
}

// LPPSpouseEntitlementAt evaluates the LPP spouse/partner pension rule.
func LPPSpouseEntitlementAt(c *domain.ClientData, ref time.Time) domain.Entitlement {
	return spouseEntitlement(c, ref)
}

// LAASpouseEntitlementAt evaluates the LAA spouse pension rule.
func LAASpouseEntitlementAt(c *domain.ClientData, ref time.Time) domain.Entitlement {
	return spouseEntitlement(c, ref)
}

func LPPRenteDueAt(c *domain.ClientData, ref time.Time) bool {
	return LPPSpouseEntitlementAt(c, ref) == domain.Due
}

// LPPRenteNonDueAt reports a partner who gets the lump sum instead of a rente.
func LPPRenteNonDueAt(c *domain.ClientData, ref time.Time) bool {
	return LPPSpouseEntitlementAt(c, ref) == domain.NonDue
}

func LAARenteDueAt(c *domain.ClientData, ref time.Time) bool {
	return LAASpouseEntitlementAt(c, ref) == domain.Due
}

func LAARenteNonDueAt(c *domain.ClientData, ref time.Time) bool {
	return LAASpouseEntitlementAt(c, ref) == domain.NonDue
}
