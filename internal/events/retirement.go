package events

import (
	"github.com/moneylife/benefits/internal/calculation"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ComputeRetirement projects the AVS old-age rente and the LPP retirement
// annuity at the legal retirement age. Sources are summed.
func ComputeRetirement(in Input) domain.RetirementResult {
	c := in.Client
	calc := newCalculators(in.Legal)
	age := in.Legal.Settings.RetirementAge(c.Sex)

	at := in.EventDate
	if c.BirthDate.Valid() {
		at = c.BirthDate.AddYears(age).Time()
	}
	out := domain.RetirementResult{
		RetirementDate: at,
		Age:            dateutil.AgeAt(c.BirthDate, at),
		Meta:           domain.NewMeta(),
	}
	out.Meta.Input("legal_retirement_age", age)
	if c.BirthDate.Valid() {
		out.Meta.Input("days_until_retirement", dateutil.DaysBetween(in.EventDate, at))
	}

	proj := calc.avs.Project(c, at, calculation.OldAge)
	recordProjection(&out.Meta, proj)
	out.AVS = domain.Monthly(calc.avs.OldAgeMonthly(proj))
	children := decimal.NewFromInt(int64(calculation.OrphanCount(c, at)))
	out.AVSChildren = domain.Monthly(proj.ChildMonthly().Mul(children))
	recordInsuredSalaries(&out.Meta, c, calc.lpp)
	out.LPP = calc.lpp.RetirementAnnuity(c)

	out.Rente = domain.NewBreakdown(out.AVS.Add(out.AVSChildren), domain.Amount{}, out.LPP)
	out.Capitals = domain.Capitals{LPPOther: decimal.Max(c.LPP.RetirementCapital, decimal.Zero)}.Sum()
	out.Replacement = replacementRate(out.Rente.Total, c.AnnualSalary)
	if proj.Years.Effective < proj.Years.Full {
		out.Meta.Notef("%d missing contribution years", proj.Years.Full-proj.Years.Effective)
	}
	return out
}
