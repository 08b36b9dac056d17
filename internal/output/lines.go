package output

import (
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/events"
	"github.com/shopspring/decimal"
)

// line is one payout row of a report.
type line struct {
	Event     events.Kind
	Component string
	Annual    decimal.Decimal
	Monthly   decimal.Decimal
	Capital   bool
}

type section struct {
	Kind  events.Kind
	Lines []line
	Meta  domain.Meta
	// Replacement is nil for events without a salary-replacement rate.
	Replacement *decimal.Decimal
}

func rente(k events.Kind, name string, a domain.Amount) line {
	return line{Event: k, Component: name, Annual: a.Annual, Monthly: a.Monthly}
}

func capital(k events.Kind, name string, v decimal.Decimal) line {
	return line{Event: k, Component: name, Annual: v, Capital: true}
}

func capitalLines(k events.Kind, c domain.Capitals) []line {
	var out []line
	for _, kv := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"capital_lpp_no_rente", c.LPPNoRente},
		{"capital_lpp_plus_rente", c.LPPPlusRente},
		{"capital_lpp_other", c.LPPOther},
		{"capital_laa", c.LAA},
	} {
		if !kv.v.IsZero() {
			out = append(out, capital(k, kv.name, kv.v))
		}
	}
	return append(out, capital(k, "capital_total", c.Total))
}

// sections flattens a report in the fixed event order.
func sections(r *events.Report) []section {
	var out []section
	if res := r.IllnessDisability; res != nil {
		k := events.IllnessDisability
		ls := []line{
			rente(k, "ai", res.AI),
			rente(k, "ai_children", res.AIChildren),
			rente(k, "lpp", res.LPP),
			rente(k, "lpp_children", res.LPPChildren),
			rente(k, "total", res.Rente.Total),
		}
		if da := res.DailyAllowance; da != nil {
			ls = append(ls, capital(k, "daily_allowance_total", da.Total))
		}
		s := section{Kind: k, Lines: append(ls, capitalLines(k, res.Capitals)...), Meta: res.Meta}
		rate := res.Replacement
		s.Replacement = &rate
		out = append(out, s)
	}
	if res := r.AccidentDisability; res != nil {
		k := events.AccidentDisability
		ls := []line{
			rente(k, "ai", res.AI),
			rente(k, "ai_children", res.AIChildren),
			rente(k, "laa", res.Rente.LAA),
			rente(k, "lpp", res.Rente.LPP),
			rente(k, "total", res.Rente.Total),
			capital(k, "daily_allowance_total", res.DailyAllowance.Total),
		}
		s := section{Kind: k, Lines: append(ls, capitalLines(k, res.Capitals)...), Meta: res.Meta}
		rate := res.Replacement
		s.Replacement = &rate
		out = append(out, s)
	}
	if res := r.AccidentDeath; res != nil {
		k := events.AccidentDeath
		ls := []line{
			rente(k, "avs_spouse", res.AVSSpouse),
			rente(k, "avs_orphans", res.AVSOrphans),
			rente(k, "laa", res.Rente.LAA),
			rente(k, "lpp", res.Rente.LPP),
			rente(k, "total", res.Rente.Total),
		}
		out = append(out, section{Kind: k, Lines: append(ls, capitalLines(k, res.Capitals)...), Meta: res.Meta})
	}
	if res := r.IllnessDeath; res != nil {
		k := events.IllnessDeath
		ls := []line{
			rente(k, "avs_spouse", res.AVSSpouse),
			rente(k, "avs_orphans", res.AVSOrphans),
			rente(k, "lpp_spouse", res.LPPSpouse),
			rente(k, "lpp_orphans", res.LPPOrphans),
			rente(k, "total", res.Rente.Total),
		}
		out = append(out, section{Kind: k, Lines: append(ls, capitalLines(k, res.Capitals)...), Meta: res.Meta})
	}
	if res := r.Retirement; res != nil {
		k := events.Retirement
		ls := []line{
			rente(k, "avs", res.AVS),
			rente(k, "avs_children", res.AVSChildren),
			rente(k, "lpp", res.LPP),
			rente(k, "total", res.Rente.Total),
		}
		s := section{Kind: k, Lines: append(ls, capitalLines(k, res.Capitals)...), Meta: res.Meta}
		rate := res.Replacement
		s.Replacement = &rate
		out = append(out, s)
	}
	return out
}
