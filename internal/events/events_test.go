package events

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moneylife/benefits/internal/calculation"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

var eventDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func settings() domain.LegalSettings {
	return domain.LegalSettings{
		Year:                     2025,
		MinContributionYears:     1,
		FullContributionYears:    44,
		ContributionStartAge:     20,
		MinAVSAnnualRente:        dec(15120),
		BTEAnnualCredit:          dec(45360),
		BTAAnnualCredit:          dec(45360),
		MarriageCreditSplit:      dec(0.5),
		RetirementAgeWomen:       65,
		RetirementAgeMen:         65,
		LPPMinInsuredSalary:      dec(3780),
		LPPMaxInsuredSalary:      dec(64260),
		LPPCoordinationDeduction: dec(26460),
		LAAMaxInsuredEarnings:    dec(148200),
	}
}

// flatLegal uses a one-row scale so every eligible client reads the same rente.
func flatLegal(base float64) domain.Legal {
	child := dec(base * 0.4)
	return domain.Legal{
		Settings: settings(),
		Echelle44: domain.Echelle44{{
			IncomeFrom:     decimal.Zero,
			BaseMonthly:    dec(base),
			WidowMonthly:   dec(base * 0.8),
			Child40Monthly: &child,
		}},
	}
}

// mask parses s, keeping malformed input as an invalid date.
func mask(s string) dateutil.Date {
	d, _ := dateutil.Parse(s)
	return d
}

func single(birth string, salary float64) *domain.ClientData {
	return &domain.ClientData{
		ID:            "c-1",
		BirthDate:     dateutil.MustParse(birth),
		MaritalStatus: domain.Single,
		AnnualSalary:  dec(salary),
	}
}

func married(birth, spouseBirth string, salary float64, d domain.MarriageDuration) *domain.ClientData {
	c := single(birth, salary)
	c.MaritalStatus = domain.Married
	c.MarriageDuration = d
	c.Spouse = domain.Spouse{BirthDate: mask(spouseBirth), Sex: domain.Female}
	return c
}

func TestAccidentDisability_CoordinatedLAA(t *testing.T) {
	c := single("01.01.1985", 80000)
	c.LPP.DisabilityAnnuity = dec(20000)

	res := ComputeAccidentDisability(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(100)})

	assert.True(t, res.AI.Monthly.Equal(dec(2000)))
	assert.Equal(t, "5333.33", res.LAANominal.Monthly.StringFixed(2))
	assert.True(t, domain.AnnualToMonthly(res.Coordination.Cap).Equal(dec(6000)))
	assert.True(t, res.Rente.LAA.Monthly.Equal(dec(4000)))
	assert.True(t, res.Rente.LPP.IsZero(), "no room left for LPP")
	assert.True(t, res.Rente.Total.Monthly.Equal(dec(6000)))
	assert.True(t, res.Meta.Flags["laa_reduced"])
	assert.True(t, res.Meta.Flags["lpp_reduced"])

	assert.Equal(t, "LAA", res.DailyAllowance.Insurer)
	assert.Equal(t, 728, res.DailyAllowance.PaidDays)
	assert.True(t, res.DailyAllowance.Equivalent.Annual.Equal(dec(64000)))
}

func TestAccidentDisability_PartialDegree(t *testing.T) {
	c := single("01.01.1985", 80000)
	c.LPP.DisabilityAnnuity = dec(20000)

	res := ComputeAccidentDisability(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(50)})

	assert.True(t, res.Quota.Equal(dec(0.5)))
	assert.True(t, res.AI.Monthly.Equal(dec(1000)))
	// LAA 32000 fits under 72000 − 12000; LPP 10000 fits the remaining 28000
	assert.True(t, res.Rente.LAA.Annual.Equal(dec(32000)))
	assert.True(t, res.Rente.LPP.Annual.Equal(dec(10000)))
	assert.False(t, res.Meta.Flags["laa_reduced"])
}

func TestAccidentDisability_NeverExceedsCap(t *testing.T) {
	for _, salary := range []float64{20000, 45000, 80000, 150000, 300000} {
		for _, degree := range []float64{40, 55, 70, 100} {
			c := single("01.01.1980", salary)
			c.LPP.DisabilityAnnuity = dec(salary * 0.4)
			c.LPP.DisabilityChildAnnuity = dec(salary * 0.08)
			c.Children = []domain.Child{{BirthDate: dateutil.MustParse("01.01.2015")}}

			res := ComputeAccidentDisability(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(degree)})
			sum := res.Coordination.Base.Add(res.Coordination.LAA).Add(res.Coordination.LPP)
			if res.Coordination.Base.LessThanOrEqual(res.Coordination.Cap) {
				assert.True(t, sum.LessThanOrEqual(res.Coordination.Cap), "salary %v degree %v", salary, degree)
			}
		}
	}
}

func TestIllnessDisability_SumsWithoutCap(t *testing.T) {
	c := single("01.01.1985", 80000)
	c.LPP.DisabilityAnnuity = dec(60000)
	c.LPP.DisabilityCapital = dec(10000)

	res := ComputeIllnessDisability(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(100)})

	assert.True(t, res.Rente.AVS.Annual.Equal(dec(24000)))
	assert.True(t, res.Rente.LPP.Annual.Equal(dec(60000)))
	assert.True(t, res.Rente.LAA.IsZero())
	assert.True(t, res.Rente.Total.Annual.Equal(dec(84000)), "may exceed the salary")
	assert.True(t, res.Replacement.Equal(dec(1.05)))
	assert.True(t, res.Capitals.Total.Equal(dec(10000)))
	assert.Nil(t, res.DailyAllowance)
	assert.False(t, res.Meta.Flags["daily_allowance"])
}

func TestIllnessDisability_DailyAllowance(t *testing.T) {
	c := single("01.01.1985", 73000)
	c.Illness.Covered = true

	res := ComputeIllnessDisability(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(100)})
	require.NotNil(t, res.DailyAllowance)
	assert.True(t, res.DailyAllowance.Daily.Equal(dec(160)))
	assert.Equal(t, 700, res.DailyAllowance.PaidDays)

	wait := 60
	c.Illness.WaitingDays = &wait
	c.Illness.DailyAllowanceRate = ptr(dec(0.9))
	res = ComputeIllnessDisability(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(100)})
	assert.Equal(t, 670, res.DailyAllowance.PaidDays)
	assert.True(t, res.DailyAllowance.Daily.Equal(dec(180)))
}

func TestIllnessDisability_BelowThreshold(t *testing.T) {
	c := single("01.01.1985", 80000)
	c.LPP.DisabilityAnnuity = dec(20000)
	res := ComputeIllnessDisability(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(30)})
	assert.True(t, res.Rente.Total.IsZero())
}

func TestAccidentDeath_SpouseDue(t *testing.T) {
	c := married("01.01.1975", "01.01.1975", 100000, domain.AtLeastFiveYears)
	c.LPP.SpouseAnnuity = dec(30000)
	c.LPP.DeathCapitalPlusRente = ptr(dec(50000))

	res := ComputeAccidentDeath(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate})

	assert.True(t, res.Entitlements.AVSSpouseDue)
	assert.Equal(t, domain.Due, res.Entitlements.LPPSpouse)
	assert.Equal(t, domain.Due, res.Entitlements.LAASpouse)
	assert.True(t, res.AVSSpouse.Annual.Equal(dec(19200)))
	assert.True(t, res.LAASpouse.Annual.Equal(dec(40000)))
	assert.True(t, res.Rente.LAA.Annual.Equal(dec(40000)))
	assert.True(t, res.Rente.LPP.Annual.Equal(dec(30000)))
	assert.True(t, res.Rente.Total.Annual.Equal(dec(89200)))
	assert.True(t, res.Rente.Total.Annual.LessThanOrEqual(res.Coordination.Cap))
	assert.True(t, res.Capitals.LPPPlusRente.Equal(dec(50000)))
	assert.True(t, res.Capitals.LPPNoRente.IsZero())
	assert.True(t, res.Capitals.LAA.IsZero())
	assert.False(t, res.Meta.Flags["avs_exceeds_cap"])
}

func TestAccidentDeath_SpouseNonDueGetsCapitals(t *testing.T) {
	c := married("01.01.1975", "01.01.1990", 100000, domain.AtLeastFiveYears)
	c.LPP.SpouseAnnuity = dec(30000)

	res := ComputeAccidentDeath(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate})

	assert.False(t, res.Entitlements.AVSSpouseDue)
	assert.Equal(t, domain.NonDue, res.Entitlements.LPPSpouse)
	assert.True(t, res.Rente.Total.IsZero())
	assert.True(t, res.Capitals.LPPNoRente.Equal(dec(90000)))
	assert.True(t, res.Capitals.LAA.Equal(dec(120000)))
	assert.True(t, res.Capitals.Total.Equal(dec(210000)))
}

func TestAccidentDeath_IndeterminateSpouse(t *testing.T) {
	c := married("01.01.1975", "not a date", 100000, domain.AtLeastFiveYears)
	c.LPP.SpouseAnnuity = dec(30000)

	res := ComputeAccidentDeath(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate})

	assert.Equal(t, domain.Indeterminate, res.Entitlements.LPPSpouse)
	assert.Equal(t, domain.Indeterminate, res.Entitlements.LAASpouse)
	assert.True(t, res.LPPSpouse.IsZero())
	assert.True(t, res.Capitals.Total.IsZero())
	assert.True(t, res.Meta.Flags["lpp_spouse_indeterminate"])
	assert.True(t, res.Meta.Flags["laa_spouse_indeterminate"])
	withheld := 0
	for _, n := range res.Meta.Notes {
		if strings.Contains(n, "indeterminate") {
			assert.Contains(t, n, "spouse birth date unknown")
			assert.Contains(t, n, "capital is withheld")
			withheld++
		}
	}
	assert.Equal(t, 2, withheld, "one note each for LPP and LAA")
}

func TestAccidentDeath_AVSAboveCap(t *testing.T) {
	c := married("01.01.1980", "01.01.1980", 20000, domain.AtLeastFiveYears)
	for _, b := range []string{"01.01.2012", "01.01.2014", "01.01.2016"} {
		c.Children = append(c.Children, domain.Child{BirthDate: dateutil.MustParse(b)})
	}
	res := ComputeAccidentDeath(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate})

	assert.True(t, res.Coordination.Cap.Equal(dec(18000)))
	assert.True(t, res.Coordination.Base.Equal(dec(48000)), res.Coordination.Base.String())
	assert.True(t, res.Rente.LAA.IsZero())
	assert.True(t, res.Rente.LPP.IsZero())
	assert.True(t, res.Rente.Total.Annual.Equal(dec(48000)))
	assert.True(t, res.Meta.Flags["avs_exceeds_cap"])
	assert.Contains(t, strings.Join(res.Meta.Notes, "\n"), "exceeds the 18000.00 cap")
}

func TestAccidentDeath_FamilyCap(t *testing.T) {
	c := married("01.01.1980", "01.01.1980", 100000, domain.AtLeastFiveYears)
	for _, b := range []string{"01.01.2012", "01.01.2014", "01.01.2016"} {
		c.Children = append(c.Children, domain.Child{BirthDate: dateutil.MustParse(b)})
	}
	res := ComputeAccidentDeath(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate})

	assert.True(t, res.LAAFamilyCap)
	assert.Equal(t, 3, res.Entitlements.Orphans)
	laa := res.LAASpouse.Annual.Add(res.LAAChildren.Annual)
	assert.True(t, laa.LessThanOrEqual(dec(70000.01)))
	assert.True(t, res.AVSOrphans.Monthly.Equal(dec(2400)))
}

func TestIllnessDeath(t *testing.T) {
	c := married("01.01.1975", "01.01.1975", 100000, domain.AtLeastFiveYears)
	c.LPP.SpouseAnnuity = dec(30000)
	c.LPP.OrphanAnnuity = dec(6000)
	c.Children = []domain.Child{{BirthDate: dateutil.MustParse("01.01.2010")}}

	res := ComputeIllnessDeath(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate})

	assert.True(t, res.AVSSpouse.Annual.Equal(dec(19200)))
	assert.True(t, res.AVSOrphans.Annual.Equal(dec(9600)))
	assert.True(t, res.Rente.LAA.IsZero())
	assert.True(t, res.Rente.LPP.Annual.Equal(dec(36000)))
	assert.True(t, res.Rente.Total.Annual.Equal(dec(64800)))
}

func TestRetirement(t *testing.T) {
	c := single("01.03.1960", 80000)
	c.Sex = domain.Female
	c.LPP.RetirementAnnuity = dec(24000)
	c.LPP.RetirementCapital = dec(100000)
	legal := domain.Legal{Settings: settings(), Echelle44: calculation.BuildEchelle44(dec(1260))}

	res := ComputeRetirement(Input{Client: c, Legal: legal, EventDate: eventDate})

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), res.RetirementDate)
	assert.Equal(t, 65, res.Age)
	assert.True(t, res.AVS.Monthly.Equal(dec(2356)))
	assert.True(t, res.LPP.Monthly.Equal(dec(2000)))
	assert.True(t, res.Rente.Total.Monthly.Equal(dec(4356)))
	assert.True(t, res.Capitals.Total.Equal(dec(100000)))
}

func TestInsuredSalariesRecordedOnEveryEvent(t *testing.T) {
	c := married("01.01.1980", "01.01.1980", 80000, domain.AtLeastFiveYears)
	c.LPP.InsuredSalaryRisk = ptr(dec(65540))
	in := Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(100)}

	metas := map[Kind]domain.Meta{
		IllnessDisability:  ComputeIllnessDisability(in).Meta,
		AccidentDisability: ComputeAccidentDisability(in).Meta,
		AccidentDeath:      ComputeAccidentDeath(in).Meta,
		IllnessDeath:       ComputeIllnessDeath(in).Meta,
		Retirement:         ComputeRetirement(in).Meta,
	}
	for k, m := range metas {
		assert.Equal(t, "65540", m.Inputs["lpp_insured_salary_risk"], k)
		assert.Equal(t, "certificate_split", m.Inputs["lpp_insured_salary_risk_source"], k)
		// the savings side is absent from the certificate: 80000 − 26460
		assert.Equal(t, "53540", m.Inputs["lpp_insured_salary_savings"], k)
		assert.Equal(t, "legal_fallback", m.Inputs["lpp_insured_salary_savings_source"], k)
	}

	general := single("01.01.1980", 80000)
	general.LPP.InsuredSalary = ptr(dec(70000))
	m := ComputeIllnessDeath(Input{Client: general, Legal: flatLegal(2000), EventDate: eventDate}).Meta
	assert.Equal(t, "70000", m.Inputs["lpp_insured_salary_savings"])
	assert.Equal(t, "certificate_general", m.Inputs["lpp_insured_salary_savings_source"])
}

func TestRetirement_DaysUntilRetirement(t *testing.T) {
	c := single("01.06.1961", 80000)
	c.Sex = domain.Female
	res := ComputeRetirement(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate})
	assert.Equal(t, "365", res.Meta.Inputs["days_until_retirement"])
}

func TestMalformedInputsReadAsZero(t *testing.T) {
	c := &domain.ClientData{BirthDate: mask("31.02.19x5")}
	in := Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(100)}

	assert.True(t, ComputeIllnessDisability(in).Rente.Total.IsZero())
	assert.True(t, ComputeAccidentDisability(in).Rente.Total.IsZero())
	assert.True(t, ComputeAccidentDeath(in).Rente.Total.IsZero())
	assert.True(t, ComputeIllnessDeath(in).Rente.Total.IsZero())
	assert.True(t, ComputeRetirement(in).Rente.Total.IsZero())
}

type recordingLogger struct{ lines []string }

func (l *recordingLogger) Debugf(f string, a ...interface{}) { l.lines = append(l.lines, fmt.Sprintf(f, a...)) }
func (l *recordingLogger) Infof(f string, a ...interface{})  { l.lines = append(l.lines, fmt.Sprintf(f, a...)) }
func (l *recordingLogger) Warnf(f string, a ...interface{})  { l.lines = append(l.lines, fmt.Sprintf(f, a...)) }
func (l *recordingLogger) Errorf(f string, a ...interface{}) { l.lines = append(l.lines, fmt.Sprintf(f, a...)) }

type recordingObserver struct{ kinds []Kind }

func (o *recordingObserver) ObserveComputation(k Kind, _ time.Duration) { o.kinds = append(o.kinds, k) }

func TestEngine_SetLogger(t *testing.T) {
	e := NewEngine()
	assert.IsType(t, NopLogger{}, e.Logger)

	l := &recordingLogger{}
	e.SetLogger(l)
	assert.Equal(t, l, e.Logger)

	e.SetLogger(nil)
	assert.IsType(t, NopLogger{}, e.Logger)
}

func TestEngine_Compute(t *testing.T) {
	e := NewEngine()
	l := &recordingLogger{}
	o := &recordingObserver{}
	e.SetLogger(l)
	e.Observer = o

	c := married("01.01.1975", "01.01.1975", 100000, domain.AtLeastFiveYears)
	r, err := e.Compute(Input{Client: c, Legal: flatLegal(2000), EventDate: eventDate, DisabilityDegree: dec(100)})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "c-1", r.ClientID)
	assert.Equal(t, 2025, r.LegalYear)
	assert.NotNil(t, r.IllnessDisability)
	assert.NotNil(t, r.AccidentDisability)
	assert.NotNil(t, r.AccidentDeath)
	assert.NotNil(t, r.IllnessDeath)
	assert.NotNil(t, r.Retirement)
	assert.Equal(t, AllKinds, o.kinds)
	assert.NotEmpty(t, l.lines)
}

func TestEngine_ComputeSubset(t *testing.T) {
	e := NewEngine()
	r, err := e.Compute(Input{Client: single("01.01.1985", 80000), Legal: flatLegal(2000), EventDate: eventDate}, Retirement)
	require.NoError(t, err)
	assert.NotNil(t, r.Retirement)
	assert.Nil(t, r.AccidentDeath)

	_, err = e.Compute(Input{Client: single("01.01.1985", 80000)}, Kind("flood"))
	assert.Error(t, err)
}

func TestEngine_ComputeRequiresClient(t *testing.T) {
	_, err := NewEngine().Compute(Input{})
	assert.ErrorIs(t, err, ErrNoClient)
}

func TestEngine_Idempotent(t *testing.T) {
	fixed := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	e := NewEngine()
	e.newID = func() uuid.UUID { return fixed }

	c := married("01.01.1980", "01.01.1980", 95000, domain.AtLeastFiveYears)
	c.Children = []domain.Child{{BirthDate: dateutil.MustParse("01.01.2014")}}
	c.LPP.DisabilityAnnuity = dec(30000)
	c.LPP.SpouseAnnuity = dec(18000)
	in := Input{Client: c, Legal: flatLegal(2100), EventDate: eventDate, DisabilityDegree: dec(80)}

	first, err := e.Compute(in)
	require.NoError(t, err)
	second, err := e.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("accident_death")
	assert.True(t, ok)
	assert.Equal(t, AccidentDeath, k)
	_, ok = ParseKind("nope")
	assert.False(t, ok)
}
