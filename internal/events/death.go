package events

import (
	"time"

	"github.com/moneylife/benefits/internal/calculation"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/rules"
)

func survivorEntitlements(c *domain.ClientData, at time.Time) domain.SurvivorEntitlements {
	return domain.SurvivorEntitlements{
		AVSSpouseDue: rules.AVSSurvivorSpouseDueAt(c, at),
		LPPSpouse:    rules.LPPSpouseEntitlementAt(c, at),
		LAASpouse:    rules.LAASpouseEntitlementAt(c, at),
		Orphans:      calculation.OrphanCount(c, at),
	}
}

func recordEntitlements(m *domain.Meta, e domain.SurvivorEntitlements) {
	m.Flag("avs_spouse_due", e.AVSSpouseDue)
	m.Input("lpp_spouse", e.LPPSpouse)
	m.Input("laa_spouse", e.LAASpouse)
	m.Input("orphans", e.Orphans)
}

// lppDeathCapitals pays the no-rente capital to a partner without rente and
// the plus-rente capital alongside a rente.
func lppDeathCapitals(c *domain.ClientData, lpp *calculation.LPPCalculator, ent domain.Entitlement, m *domain.Meta) domain.Capitals {
	var caps domain.Capitals
	switch ent {
	case domain.Due:
		caps.LPPPlusRente = lpp.PlusRenteCapital(c)
	case domain.NonDue:
		caps.LPPNoRente = lpp.NoRenteCapital(c)
	case domain.Indeterminate:
		m.Flag("lpp_spouse_indeterminate", true)
		m.Notef("LPP spouse entitlement is indeterminate (%s): neither rente nor lump sum computed, the no-rente capital is withheld", indeterminateReason(c))
	}
	return caps
}

// indeterminateReason names the missing fact behind an Indeterminate spouse
// entitlement.
func indeterminateReason(c *domain.ClientData) string {
	if !c.HasSpouseFacts() {
		return "spouse birth date unknown"
	}
	return "marriage duration unknown"
}

// ComputeAccidentDeath coordinates the survivor rentes of the three pillars
// under the 90% cap, AVS first, then LAA, then LPP.
func ComputeAccidentDeath(in Input) domain.AccidentDeathResult {
	c := in.Client
	calc := newCalculators(in.Legal)
	out := domain.AccidentDeathResult{
		EventDate:    in.EventDate,
		Entitlements: survivorEntitlements(c, in.EventDate),
		Meta:         domain.NewMeta(),
	}
	recordEntitlements(&out.Meta, out.Entitlements)
	recordInsuredSalaries(&out.Meta, c, calc.lpp)

	proj := calc.avs.Project(c, in.EventDate, calculation.Early)
	recordProjection(&out.Meta, proj)
	avs := calc.avs.SurvivorRentes(c, in.EventDate, proj)
	out.AVSSpouse = avs.Spouse
	out.AVSOrphans = avs.Orphans

	laa := calc.laa.SurvivorRentes(c, in.EventDate, out.Entitlements.LAASpouse == domain.Due)
	out.LAASpouse = laa.Spouse
	out.LAAChildren = laa.Children
	out.LAAFamilyCap = laa.FamilyCapApplied
	out.Meta.Flag("laa_family_cap", laa.FamilyCapApplied)

	out.LPPSpouse = calc.lpp.SpouseAnnuity(c, out.Entitlements.LPPSpouse)
	out.LPPOrphans = calc.lpp.OrphanAnnuities(c, in.EventDate)

	out.Coordination = accidentCoordination(c, calc.laa, avs.Total.Annual, laa.Total.Annual, out.LPPSpouse.Add(out.LPPOrphans).Annual)
	recordCoordination(&out.Meta, out.Coordination)
	out.Rente = domain.NewBreakdown(
		domain.Annual(out.Coordination.Base),
		domain.Annual(out.Coordination.LAA),
		domain.Annual(out.Coordination.LPP),
	)

	caps := lppDeathCapitals(c, calc.lpp, out.Entitlements.LPPSpouse, &out.Meta)
	switch out.Entitlements.LAASpouse {
	case domain.NonDue:
		caps.LAA = calc.laa.LumpSumCapital(c)
	case domain.Indeterminate:
		out.Meta.Flag("laa_spouse_indeterminate", true)
		out.Meta.Notef("LAA spouse entitlement is indeterminate (%s): neither rente nor lump sum computed, the widow(er) capital is withheld", indeterminateReason(c))
	}
	out.Capitals = caps.Sum()
	return out
}

// ComputeIllnessDeath sums the AVS and LPP survivor benefits. LAA does not
// cover illness and no coordination applies.
func ComputeIllnessDeath(in Input) domain.IllnessDeathResult {
	c := in.Client
	calc := newCalculators(in.Legal)
	out := domain.IllnessDeathResult{
		EventDate:    in.EventDate,
		Entitlements: survivorEntitlements(c, in.EventDate),
		Meta:         domain.NewMeta(),
	}
	recordEntitlements(&out.Meta, out.Entitlements)
	recordInsuredSalaries(&out.Meta, c, calc.lpp)

	proj := calc.avs.Project(c, in.EventDate, calculation.Early)
	recordProjection(&out.Meta, proj)
	avs := calc.avs.SurvivorRentes(c, in.EventDate, proj)
	out.AVSSpouse = avs.Spouse
	out.AVSOrphans = avs.Orphans

	out.LPPSpouse = calc.lpp.SpouseAnnuity(c, out.Entitlements.LPPSpouse)
	out.LPPOrphans = calc.lpp.OrphanAnnuities(c, in.EventDate)

	out.Rente = domain.NewBreakdown(avs.Total, domain.Amount{}, out.LPPSpouse.Add(out.LPPOrphans))
	out.Capitals = lppDeathCapitals(c, calc.lpp, out.Entitlements.LPPSpouse, &out.Meta).Sum()
	out.Meta.Notef("illness: sources summed without coordination")
	if out.Capitals.Total.IsZero() && out.Rente.Total.IsZero() {
		out.Meta.Notef("no survivor benefits")
	}
	return out
}
