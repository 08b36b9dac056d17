package compare

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func baseInput() events.Input {
	child := dec(800)
	return events.Input{
		Client: &domain.ClientData{
			ID:            "c-1",
			BirthDate:     dateutil.MustParse("01.01.1985"),
			MaritalStatus: domain.Single,
			AnnualSalary:  dec(80000),
			LPP:           domain.LPPCertificate{DisabilityAnnuity: dec(20000)},
		},
		Legal: domain.Legal{
			Settings: domain.LegalSettings{
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
			},
			Echelle44: domain.Echelle44{{IncomeFrom: decimal.Zero, BaseMonthly: dec(2000), WidowMonthly: dec(1600), Child40Monthly: &child}},
		},
		EventDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DisabilityDegree: dec(100),
	}
}

func TestCompare_DegreeSweep(t *testing.T) {
	ce := NewCompareEngine(nil)
	cs, err := ce.Compare(baseInput(), DegreeScenarios([]decimal.Decimal{dec(50), dec(30)}), events.AccidentDisability)
	require.NoError(t, err)

	assert.Equal(t, "c-1", cs.ClientID)
	base, ok := cs.BaseResult.Event(events.AccidentDisability)
	require.True(t, ok)
	assert.True(t, base.Annual.Equal(dec(72000)), base.Annual.String())
	assert.True(t, base.Replacement.Equal(dec(0.9)))

	require.Len(t, cs.AlternativeResults, 2)
	half, _ := cs.AlternativeResults[0].Event(events.AccidentDisability)
	assert.Equal(t, "degree_50", cs.AlternativeResults[0].Scenario.Name)
	assert.True(t, half.Annual.Equal(dec(54000)), half.Annual.String())
	assert.True(t, half.AnnualDiffFromBase.Equal(dec(-18000)))
	assert.True(t, half.AnnualPctFromBase.Equal(dec(-25)))

	low, _ := cs.AlternativeResults[1].Event(events.AccidentDisability)
	assert.True(t, low.Annual.Equal(dec(19200)), "below the AI threshold only LAA pays")
	assert.Equal(t, "-73.33", low.AnnualPctFromBase.StringFixed(2))
	assert.True(t, cs.AlternativeResults[1].Scenario.EventDate.Equal(baseInput().EventDate), "date inherited from base")

	require.Len(t, cs.Findings, 1)
	assert.Equal(t, "accident_disability: widest gap in degree_30, 60800 a year below salary (24.0% replaced)", cs.Findings[0])
}

func TestCompare_ScenarioDateOverride(t *testing.T) {
	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cs, err := NewCompareEngine(events.NewEngine()).Compare(baseInput(),
		[]Scenario{{Name: "later", EventDate: later, Degree: dec(100)}}, events.Retirement)
	require.NoError(t, err)
	assert.True(t, cs.AlternativeResults[0].Scenario.EventDate.Equal(later))
	_, ok := cs.AlternativeResults[0].Event(events.AccidentDisability)
	assert.False(t, ok, "only requested events are compared")
}

func TestCompare_NoClient(t *testing.T) {
	in := baseInput()
	in.Client = nil
	_, err := NewCompareEngine(nil).Compare(in, nil)
	assert.ErrorIs(t, err, events.ErrNoClient)
}

func TestParseScenarios(t *testing.T) {
	scs, err := ParseScenarios([]string{"partial=50", "later=@01.06.2030", "both=70@2031-01-01"}, dec(100))
	require.NoError(t, err)
	require.Len(t, scs, 3)

	assert.Equal(t, "partial", scs[0].Name)
	assert.True(t, scs[0].Degree.Equal(dec(50)))
	assert.True(t, scs[0].EventDate.IsZero())

	assert.True(t, scs[1].Degree.Equal(dec(100)), "degree defaults when omitted")
	assert.Equal(t, 2030, scs[1].EventDate.Year())

	assert.True(t, scs[2].Degree.Equal(dec(70)))
	assert.Equal(t, time.January, scs[2].EventDate.Month())

	for _, bad := range []string{"nodegree", "=50", "x=abc", "x=120", "x=50@32.01.2030"} {
		_, err := ParseScenarios([]string{bad}, dec(100))
		assert.Error(t, err, bad)
	}
}

func TestFormatters(t *testing.T) {
	cs, err := NewCompareEngine(nil).Compare(baseInput(), DegreeScenarios([]decimal.Decimal{dec(50)}), events.AccidentDisability)
	require.NoError(t, err)

	table := (&TableFormatter{}).Format(cs)
	assert.Contains(t, table, "BENEFIT SCENARIO COMPARISON")
	assert.Contains(t, table, "ACCIDENT DISABILITY")
	assert.Contains(t, table, "base (base)")
	assert.Contains(t, table, "72.0K")
	assert.Contains(t, table, "-18.0K")
	assert.Contains(t, table, "FINDINGS")

	assert.Equal(t, "accident_disability base: 72.0K | degree_50: -18.0K", (&TableFormatter{}).FormatCompact(cs))

	csvOut, err := (&CSVFormatter{}).Format(cs)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "base,base,01.06.2025,100,accident_disability,72000.00,6000.00,"))
	assert.True(t, strings.HasPrefix(lines[2], "degree_50,alternative,01.06.2025,50,accident_disability,54000.00,4500.00,"))
	assert.True(t, strings.HasSuffix(lines[2], ",-18000.00,-25.00,0.00"))

	jsonOut, err := (&JSONFormatter{Pretty: true}).Format(cs)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &doc))
	assert.Equal(t, "c-1", doc["client_id"])
	assert.Equal(t, "80000.00", doc["annual_salary"])

	base := doc["base"].(map[string]any)
	assert.Equal(t, map[string]any{"name": "base", "kind": "base", "event_date": "01.06.2025", "degree": "100"}, base["scenario"])
	baseEvent := base["events"].([]any)[0].(map[string]any)
	assert.Equal(t, "72000.00", baseEvent["annual"])
	assert.Equal(t, "90.00", baseEvent["replacement_pct"])
	assert.NotContains(t, baseEvent, "annual_diff", "the base has no delta")

	alts := doc["alternatives"].([]any)
	require.Len(t, alts, 1)
	alt := alts[0].(map[string]any)["events"].([]any)[0].(map[string]any)
	assert.Equal(t, "54000.00", alt["annual"])
	assert.Equal(t, "-18000.00", alt["annual_diff"])
	assert.Equal(t, "-25.00", alt["annual_pct"])
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "a very ...", tf.truncate("a very long scenario", 10))
	assert.Equal(t, "1.50M", tf.formatDecimal(dec(1500000)))
	assert.Equal(t, "950", tf.formatDecimal(dec(950)))
}
