package events

import (
	"github.com/moneylife/benefits/internal/calculation"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeIllnessDisability sums AI and LPP disability benefits. Illness is
// not coordinated, so the total may exceed the former salary.
func ComputeIllnessDisability(in Input) domain.IllnessDisabilityResult {
	c := in.Client
	calc := newCalculators(in.Legal)
	degree := calculation.ClampDegree(in.DisabilityDegree)
	quota := calculation.AIQuota(degree)

	out := domain.IllnessDisabilityResult{
		EventDate: in.EventDate,
		Degree:    degree,
		Quota:     quota,
		Meta:      domain.NewMeta(),
	}
	out.Meta.Input("degree", degree)
	out.Meta.Input("quota", quota)

	proj := calc.avs.Project(c, in.EventDate, calculation.Early)
	recordProjection(&out.Meta, proj)
	out.AI = domain.Monthly(calc.avs.InvalidityMonthly(proj, degree))
	out.AIChildren = domain.Monthly(calc.avs.InvalidityChildrenMonthly(c, in.EventDate, proj, degree))

	recordInsuredSalaries(&out.Meta, c, calc.lpp)
	out.LPP = calc.lpp.DisabilityAnnuity(c, quota)
	out.LPPChildren = calc.lpp.DisabilityChildAnnuities(c, in.EventDate, quota)

	if phase, ok := illnessAllowance(c); ok {
		out.DailyAllowance = &phase
		out.Meta.Flag("daily_allowance", true)
	} else {
		out.Meta.Flag("daily_allowance", false)
		out.Meta.Notef("no loss-of-earnings insurance: no daily allowance before the rente")
	}

	out.Rente = domain.NewBreakdown(out.AI.Add(out.AIChildren), domain.Amount{}, out.LPP.Add(out.LPPChildren))
	out.Capitals = domain.Capitals{LPPOther: decimal.Max(c.LPP.DisabilityCapital, decimal.Zero)}.Sum()
	out.Replacement = replacementRate(out.Rente.Total, c.AnnualSalary)
	out.Meta.Notef("illness: sources summed without coordination")
	if quota.IsZero() {
		out.Meta.Notef("degree below 40%%: no AI or LPP disability rente")
	}
	return out
}

// illnessAllowance is the collective daily allowance on the annual salary.
func illnessAllowance(c *domain.ClientData) (domain.DailyAllowancePhase, bool) {
	cov := c.Illness
	if !cov.Covered {
		return domain.DailyAllowancePhase{}, false
	}
	rate := illnessDefaultRate
	if cov.DailyAllowanceRate != nil && cov.DailyAllowanceRate.IsPositive() {
		rate = *cov.DailyAllowanceRate
	}
	waiting := illnessDefaultWaitDays
	if cov.WaitingDays != nil {
		waiting = *cov.WaitingDays
	}
	days := illnessAllowanceDays
	if cov.Days > 0 {
		days = cov.Days
	}
	return calculation.NewAllowancePhase("IJM", c.AnnualSalary, rate, days, waiting), true
}
