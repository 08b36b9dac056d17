package events

import (
	"github.com/moneylife/benefits/internal/calculation"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeAccidentDisability runs the LAA daily allowance followed by the
// coordinated rente phase: AI is paid in full, LAA fills the room under the
// 90% cap and LPP tops up what remains.
func ComputeAccidentDisability(in Input) domain.AccidentDisabilityResult {
	c := in.Client
	calc := newCalculators(in.Legal)
	degree := calculation.ClampDegree(in.DisabilityDegree)
	quota := calculation.AIQuota(degree)

	out := domain.AccidentDisabilityResult{
		EventDate:      in.EventDate,
		Degree:         degree,
		Quota:          quota,
		DailyAllowance: calc.laa.AllowancePhase(c, accidentAllowanceDays, accidentWaitingDays),
		Meta:           domain.NewMeta(),
	}
	out.Meta.Input("degree", degree)
	out.Meta.Input("quota", quota)
	out.Meta.Input("laa_insured_earnings", calc.laa.InsuredEarnings(c))

	proj := calc.avs.Project(c, in.EventDate, calculation.Early)
	recordProjection(&out.Meta, proj)
	out.AI = domain.Monthly(calc.avs.InvalidityMonthly(proj, degree))
	out.AIChildren = domain.Monthly(calc.avs.InvalidityChildrenMonthly(c, in.EventDate, proj, degree))

	recordInsuredSalaries(&out.Meta, c, calc.lpp)
	out.LAANominal = calc.laa.DisabilityRente(c, degree)
	out.LPPNominal = calc.lpp.DisabilityAnnuity(c, quota).Add(calc.lpp.DisabilityChildAnnuities(c, in.EventDate, quota))

	base := out.AI.Add(out.AIChildren)
	out.Coordination = accidentCoordination(c, calc.laa, base.Annual, out.LAANominal.Annual, out.LPPNominal.Annual)
	recordCoordination(&out.Meta, out.Coordination)
	if out.Coordination.LAAReduced() {
		out.Meta.Notef("LAA rente reduced to stay under %s%% of salary", calculation.AccidentCapRate.Mul(decimal.NewFromInt(100)).String())
	}

	out.Rente = domain.NewBreakdown(
		domain.Annual(out.Coordination.Base),
		domain.Annual(out.Coordination.LAA),
		domain.Annual(out.Coordination.LPP),
	)
	out.Capitals = domain.Capitals{LPPOther: decimal.Max(c.LPP.DisabilityCapital, decimal.Zero)}.Sum()
	out.Replacement = replacementRate(out.Rente.Total, c.AnnualSalary)
	return out
}
