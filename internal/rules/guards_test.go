package rules

import (
	"testing"
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/stretchr/testify/assert"
)

var eventDate = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func married(spouseBirth string, duration domain.MarriageDuration, children ...string) *domain.ClientData {
	c := &domain.ClientData{
		BirthDate:        dateutil.MustParse("01.01.1975"),
		MaritalStatus:    domain.Married,
		MarriageDuration: duration,
	}
	c.Spouse.BirthDate, _ = dateutil.Parse(spouseBirth)
	for _, b := range children {
		c.Children = append(c.Children, domain.Child{BirthDate: dateutil.MustParse(b)})
	}
	return c
}

func TestHasPartner(t *testing.T) {
	for status, want := range map[domain.MaritalStatus]bool{
		domain.Married:               true,
		domain.RegisteredPartnership: true,
		domain.Single:                false,
		domain.Divorced:              false,
		domain.Widowed:               false,
	} {
		assert.Equal(t, want, HasPartner(&domain.ClientData{MaritalStatus: status}), status.String())
	}
}

func TestHasChildUnder18At_Boundary(t *testing.T) {
	// 17 years and 364 days at the event date
	almost18 := married("01.01.1970", domain.AtLeastFiveYears, "02.06.2007")
	assert.True(t, HasChildUnder18At(almost18, eventDate))

	// exactly 18 at the event date
	just18 := married("01.01.1970", domain.AtLeastFiveYears, "01.06.2007")
	assert.False(t, HasChildUnder18At(just18, eventDate))

	// not yet born
	unborn := married("01.01.1970", domain.AtLeastFiveYears, "01.01.2026")
	assert.False(t, HasChildUnder18At(unborn, eventDate))

	// malformed birthdates are ignored
	c := married("01.01.1970", domain.AtLeastFiveYears)
	c.Children = []domain.Child{{BirthDate: func() dateutil.Date { d, _ := dateutil.Parse("xx"); return d }()}}
	assert.False(t, HasChildUnder18At(c, eventDate))
	assert.Len(t, MinorChildrenAt(&domain.ClientData{}, eventDate), 0)
}

func TestAVSWidowDueAt(t *testing.T) {
	tests := []struct {
		name   string
		client *domain.ClientData
		want   bool
	}{
		{"spouse 50 married at least 5 years", married("01.01.1975", domain.AtLeastFiveYears), true},
		{"spouse 50 short marriage", married("01.01.1975", domain.LessThanFiveYears), false},
		{"spouse 40 long marriage", married("01.01.1985", domain.AtLeastFiveYears), false},
		{"spouse 40 with minor child", married("01.01.1985", domain.LessThanFiveYears, "01.01.2015"), true},
		{"malformed spouse birthdate reads as age 0", married("garbage", domain.AtLeastFiveYears), false},
		{"single client", &domain.ClientData{MaritalStatus: domain.Single}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AVSWidowDueAt(tt.client, eventDate))
		})
	}
}

func TestAVSWidowerDueAt(t *testing.T) {
	assert.False(t, AVSWidowerDueAt(married("01.01.1960", domain.AtLeastFiveYears), eventDate))
	assert.True(t, AVSWidowerDueAt(married("01.01.1960", domain.AtLeastFiveYears, "01.01.2012"), eventDate))

	c := married("01.01.1960", domain.AtLeastFiveYears)
	c.Spouse.Sex = domain.Male
	assert.False(t, AVSSurvivorSpouseDueAt(c, eventDate))
	c.Spouse.Sex = domain.Female
	assert.True(t, AVSSurvivorSpouseDueAt(c, eventDate))
}

func TestSpouseEntitlement(t *testing.T) {
	tests := []struct {
		name   string
		client *domain.ClientData
		want   domain.Entitlement
	}{
		{"minor child", married("01.01.1990", domain.LessThanFiveYears, "01.01.2020"), domain.Due},
		{"spouse 50 long marriage", married("01.01.1975", domain.AtLeastFiveYears), domain.Due},
		{"spouse 35 long marriage", married("01.01.1990", domain.AtLeastFiveYears), domain.NonDue},
		{"spouse 50 short marriage", married("01.01.1975", domain.LessThanFiveYears), domain.NonDue},
		{"spouse 50 unknown marriage duration", married("01.01.1975", domain.MarriageDurationUnknown), domain.Indeterminate},
		{"malformed spouse birthdate long marriage", married("??", domain.AtLeastFiveYears), domain.Indeterminate},
		{"adult child only", married("01.01.1980", domain.MarriageDurationUnknown, "01.01.2000"), domain.Indeterminate},
		{"no partner", &domain.ClientData{MaritalStatus: domain.Divorced}, domain.NotApplicable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LPPSpouseEntitlementAt(tt.client, eventDate))
			assert.Equal(t, tt.want, LAASpouseEntitlementAt(tt.client, eventDate))
		})
	}
}

func TestDueAndNonDueAreExclusive(t *testing.T) {
	spouses := []string{"01.01.1950", "01.06.1980", "02.06.1980", "01.01.2000", "bad"}
	durations := []domain.MarriageDuration{domain.AtLeastFiveYears, domain.LessThanFiveYears, domain.MarriageDurationUnknown}
	children := [][]string{nil, {"01.01.2010"}, {"01.01.1995"}}
	refs := []time.Time{eventDate, time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}

	for _, s := range spouses {
		for _, dur := range durations {
			for _, kids := range children {
				c := married(s, dur, kids...)
				for _, ref := range refs {
					assert.False(t, LPPRenteDueAt(c, ref) && LPPRenteNonDueAt(c, ref))
					assert.False(t, LAARenteDueAt(c, ref) && LAARenteNonDueAt(c, ref))
				}
			}
		}
	}
}

func TestGuardsUseReferenceDate(t *testing.T) {
	c := married("01.01.1985", domain.AtLeastFiveYears)
	assert.False(t, AVSWidowDueAt(c, eventDate), "spouse is 40 in 2025")
	assert.True(t, AVSWidowDueAt(c, time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)), "spouse is 46 in 2031")
}
