package calculation

import (
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func settings2025() domain.LegalSettings {
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
		LPPNoRenteCapitalMult:    dec(3),
		LAAMaxInsuredEarnings:    dec(148200),
		LAANoRenteCapitalMult:    dec(3),
	}
}

func legal2025() domain.Legal {
	return domain.Legal{Settings: settings2025(), Echelle44: BuildEchelle44(dec(1260))}
}

func client(birth string, salary float64) *domain.ClientData {
	return &domain.ClientData{
		BirthDate:     dateutil.MustParse(birth),
		MaritalStatus: domain.Single,
		AnnualSalary:  dec(salary),
	}
}

func withChildren(c *domain.ClientData, births ...string) *domain.ClientData {
	for _, b := range births {
		c.Children = append(c.Children, domain.Child{BirthDate: dateutil.MustParse(b)})
	}
	return c
}

func marriedTo(c *domain.ClientData, spouseBirth string, duration domain.MarriageDuration) *domain.ClientData {
	c.MaritalStatus = domain.Married
	c.MarriageDuration = duration
	c.Spouse = domain.Spouse{BirthDate: dateutil.MustParse(spouseBirth), Sex: domain.Female}
	return c
}

func domainDate(s string) dateutil.Date { return dateutil.MustParse(s) }
