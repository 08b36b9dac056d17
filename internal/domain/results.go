package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Meta explains how a result was obtained.
type Meta struct {
	Notes  []string          `yaml:"notes,omitempty" json:"notes,omitempty"`
	Flags  map[string]bool   `yaml:"flags,omitempty" json:"flags,omitempty"`
	Inputs map[string]string `yaml:"inputs,omitempty" json:"inputs,omitempty"`
}

// NewMeta returns an empty Meta with initialised maps.
func NewMeta() Meta {
	return Meta{Flags: map[string]bool{}, Inputs: map[string]string{}}
}

// Notef appends a human-readable note.
func (m *Meta) Notef(format string, args ...any) {
	m.Notes = append(m.Notes, fmt.Sprintf(format, args...))
}

// Flag records an eligibility flag.
func (m *Meta) Flag(name string, v bool) {
	if m.Flags == nil {
		m.Flags = map[string]bool{}
	}
	m.Flags[name] = v
}

// Input records an input value that shaped the result.
func (m *Meta) Input(name string, v any) {
	if m.Inputs == nil {
		m.Inputs = map[string]string{}
	}
	switch x := v.(type) {
	case decimal.Decimal:
		m.Inputs[name] = x.String()
	case fmt.Stringer:
		m.Inputs[name] = x.String()
	default:
		m.Inputs[name] = fmt.Sprint(v)
	}
}

// Breakdown splits a periodic benefit by insurer.
type Breakdown struct {
	AVS   Amount `yaml:"avs" json:"avs"`
	LAA   Amount `yaml:"laa" json:"laa"`
	LPP   Amount `yaml:"lpp" json:"lpp"`
	Total Amount `yaml:"total" json:"total"`
}

// NewBreakdown sums the three sources into Total.
func NewBreakdown(avs, laa, lpp Amount) Breakdown {
	return Breakdown{AVS: avs, LAA: laa, LPP: lpp, Total: avs.Add(laa).Add(lpp)}
}

// Capitals lists lump sums paid on an event.
type Capitals struct {
	LPPNoRente   decimal.Decimal `yaml:"lpp_no_rente" json:"lpp_no_rente"`
	LPPPlusRente decimal.Decimal `yaml:"lpp_plus_rente" json:"lpp_plus_rente"`
	LPPOther     decimal.Decimal `yaml:"lpp_other" json:"lpp_other"`
	LAA          decimal.Decimal `yaml:"laa" json:"laa"`
	Total        decimal.Decimal `yaml:"total" json:"total"`
}

// Sum fills Total.
func (c Capitals) Sum() Capitals {
	c.Total = c.LPPNoRente.Add(c.LPPPlusRente).Add(c.LPPOther).Add(c.LAA)
	return c
}

// Coordination traces the capping cascade of an accident event. All figures
// are annual.
type Coordination struct {
	CapRate    decimal.Decimal `yaml:"cap_rate" json:"cap_rate"`
	CapBase    decimal.Decimal `yaml:"cap_base" json:"cap_base"`
	Cap        decimal.Decimal `yaml:"cap" json:"cap"`
	LAACeiling decimal.Decimal `yaml:"laa_ceiling" json:"laa_ceiling"`
	Base       decimal.Decimal `yaml:"base" json:"base"`
	LAANominal decimal.Decimal `yaml:"laa_nominal" json:"laa_nominal"`
	LAAAllowed decimal.Decimal `yaml:"laa_allowed" json:"laa_allowed"`
	LAA        decimal.Decimal `yaml:"laa" json:"laa"`
	LPPNominal decimal.Decimal `yaml:"lpp_nominal" json:"lpp_nominal"`
	LPPAllowed decimal.Decimal `yaml:"lpp_allowed" json:"lpp_allowed"`
	LPP        decimal.Decimal `yaml:"lpp" json:"lpp"`
	Total      decimal.Decimal `yaml:"total" json:"total"`
}

// LAAReduced reports whether the cap cut the LAA rente.
func (c Coordination) LAAReduced() bool { return c.LAA.LessThan(c.LAANominal) }

// LPPReduced reports whether the cap cut the LPP rente.
func (c Coordination) LPPReduced() bool { return c.LPP.LessThan(c.LPPNominal) }

// DailyAllowancePhase is the salary-replacement period before a rente starts.
type DailyAllowancePhase struct {
	Insurer     string          `yaml:"insurer" json:"insurer"`
	Rate        decimal.Decimal `yaml:"rate" json:"rate"`
	BaseAnnual  decimal.Decimal `yaml:"base_annual" json:"base_annual"`
	Daily       decimal.Decimal `yaml:"daily" json:"daily"`
	Days        int             `yaml:"days" json:"days"`
	WaitingDays int             `yaml:"waiting_days" json:"waiting_days"`
	PaidDays    int             `yaml:"paid_days" json:"paid_days"`
	Total       decimal.Decimal `yaml:"total" json:"total"`
	// Equivalent is the allowance expressed as a periodic amount.
	Equivalent Amount `yaml:"equivalent" json:"equivalent"`
}

// IllnessDisabilityResult is the outcome of disability caused by illness.
// Sources are summed without coordination.
type IllnessDisabilityResult struct {
	EventDate      time.Time            `yaml:"event_date" json:"event_date"`
	Degree         decimal.Decimal      `yaml:"degree" json:"degree"`
	Quota          decimal.Decimal      `yaml:"quota" json:"quota"`
	DailyAllowance *DailyAllowancePhase `yaml:"daily_allowance,omitempty" json:"daily_allowance,omitempty"`
	AI             Amount               `yaml:"ai" json:"ai"`
	AIChildren     Amount               `yaml:"ai_children" json:"ai_children"`
	LPP            Amount               `yaml:"lpp" json:"lpp"`
	LPPChildren    Amount               `yaml:"lpp_children" json:"lpp_children"`
	Rente          Breakdown            `yaml:"rente" json:"rente"`
	Capitals       Capitals             `yaml:"capitals" json:"capitals"`
	Replacement    decimal.Decimal      `yaml:"replacement_rate" json:"replacement_rate"`
	Meta           Meta                 `yaml:"meta" json:"meta"`
}

// AccidentDisabilityResult is the outcome of disability caused by an accident.
type AccidentDisabilityResult struct {
	EventDate      time.Time           `yaml:"event_date" json:"event_date"`
	Degree         decimal.Decimal     `yaml:"degree" json:"degree"`
	Quota          decimal.Decimal     `yaml:"quota" json:"quota"`
	DailyAllowance DailyAllowancePhase `yaml:"daily_allowance" json:"daily_allowance"`
	AI             Amount              `yaml:"ai" json:"ai"`
	AIChildren     Amount              `yaml:"ai_children" json:"ai_children"`
	LAANominal     Amount              `yaml:"laa_nominal" json:"laa_nominal"`
	LPPNominal     Amount              `yaml:"lpp_nominal" json:"lpp_nominal"`
	Coordination   Coordination        `yaml:"coordination" json:"coordination"`
	Rente          Breakdown           `yaml:"rente" json:"rente"`
	Capitals       Capitals            `yaml:"capitals" json:"capitals"`
	Replacement    decimal.Decimal     `yaml:"replacement_rate" json:"replacement_rate"`
	Meta           Meta                `yaml:"meta" json:"meta"`
}

// SurvivorEntitlements records the spouse guards evaluated at the death date.
type SurvivorEntitlements struct {
	AVSSpouseDue bool        `yaml:"avs_spouse_due" json:"avs_spouse_due"`
	LPPSpouse    Entitlement `yaml:"lpp_spouse" json:"lpp_spouse"`
	LAASpouse    Entitlement `yaml:"laa_spouse" json:"laa_spouse"`
	Orphans      int         `yaml:"orphans" json:"orphans"`
}

// AccidentDeathResult is the outcome of death caused by an accident.
type AccidentDeathResult struct {
	EventDate    time.Time            `yaml:"event_date" json:"event_date"`
	Entitlements SurvivorEntitlements `yaml:"entitlements" json:"entitlements"`
	AVSSpouse    Amount               `yaml:"avs_spouse" json:"avs_spouse"`
	AVSOrphans   Amount               `yaml:"avs_orphans" json:"avs_orphans"`
	LAASpouse    Amount               `yaml:"laa_spouse" json:"laa_spouse"`
	LAAChildren  Amount               `yaml:"laa_children" json:"laa_children"`
	LAAFamilyCap bool                 `yaml:"laa_family_cap_applied" json:"laa_family_cap_applied"`
	LPPSpouse    Amount               `yaml:"lpp_spouse" json:"lpp_spouse"`
	LPPOrphans   Amount               `yaml:"lpp_orphans" json:"lpp_orphans"`
	Coordination Coordination         `yaml:"coordination" json:"coordination"`
	Rente        Breakdown            `yaml:"rente" json:"rente"`
	Capitals     Capitals             `yaml:"capitals" json:"capitals"`
	Meta         Meta                 `yaml:"meta" json:"meta"`
}

// IllnessDeathResult is the outcome of death caused by illness. Sources are
// summed without coordination and LAA does not contribute.
type IllnessDeathResult struct {
	EventDate    time.Time            `yaml:"event_date" json:"event_date"`
	Entitlements SurvivorEntitlements `yaml:"entitlements" json:"entitlements"`
	AVSSpouse    Amount               `yaml:"avs_spouse" json:"avs_spouse"`
	AVSOrphans   Amount               `yaml:"avs_orphans" json:"avs_orphans"`
	LPPSpouse    Amount               `yaml:"lpp_spouse" json:"lpp_spouse"`
	LPPOrphans   Amount               `yaml:"lpp_orphans" json:"lpp_orphans"`
	Rente        Breakdown            `yaml:"rente" json:"rente"`
	Capitals     Capitals             `yaml:"capitals" json:"capitals"`
	Meta         Meta                 `yaml:"meta" json:"meta"`
}

// RetirementResult is the outcome of ordinary retirement at the legal age.
type RetirementResult struct {
	RetirementDate time.Time       `yaml:"retirement_date" json:"retirement_date"`
	Age            int             `yaml:"age" json:"age"`
	AVS            Amount          `yaml:"avs" json:"avs"`
	AVSChildren    Amount          `yaml:"avs_children" json:"avs_children"`
	LPP            Amount          `yaml:"lpp" json:"lpp"`
	Rente          Breakdown       `yaml:"rente" json:"rente"`
	Capitals       Capitals        `yaml:"capitals" json:"capitals"`
	Replacement    decimal.Decimal `yaml:"replacement_rate" json:"replacement_rate"`
	Meta           Meta            `yaml:"meta" json:"meta"`
}
