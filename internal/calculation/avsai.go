package calculation

import (
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/rules"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ProjectionKind selects how the contribution window is measured.
type ProjectionKind int

const (
	// OldAge measures against the legal full contribution period.
	OldAge ProjectionKind = iota
	// Early is used for disability and death before retirement age: the full
	// period is the client's age cohort and the career supplement applies.
	Early
)

const defaultContributionStartAge = 20

var (
	hundred     = decimal.NewFromInt(100)
	child40Rate = decimal.NewFromFloat(0.40)
	widowRate   = decimal.NewFromFloat(0.80)
)

// careerSupplement is the step table of the supplement added to the average
// income of clients disabled or deceased young. Ages are at the event date.
var careerSupplement = []struct {
	maxAge int
	rate   decimal.Decimal
}{
	{22, decimal.NewFromInt(100)},
	{23, decimal.NewFromInt(90)},
	{24, decimal.NewFromInt(80)},
	{26, decimal.NewFromInt(70)},
	{28, decimal.NewFromInt(60)},
	{30, decimal.NewFromInt(50)},
	{32, decimal.NewFromInt(40)},
	{35, decimal.NewFromInt(30)},
	{39, decimal.NewFromInt(20)},
	{44, decimal.NewFromInt(10)},
}

// CareerSupplementRate returns the supplement as a fraction of the average
// income: 100% under 23 down to 0% from 45.
func CareerSupplementRate(age int) decimal.Decimal {
	for _, step := range careerSupplement {
		if age <= step.maxAge {
			return step.rate.Div(hundred)
		}
	}
	return decimal.Zero
}

// AIQuota converts a disability degree in percent into the share of a full
// AI/LPP rente: nothing under 40%, 25% at 40% rising 2.5 points per degree to
// 47.5% at 49%, the degree itself from 50% to 69%, and a full rente from 70%.
func AIQuota(degree decimal.Decimal) decimal.Decimal {
	switch {
	case degree.LessThan(decimal.NewFromInt(40)):
		return decimal.Zero
	case degree.GreaterThanOrEqual(decimal.NewFromInt(70)):
		return decimal.NewFromInt(1)
	case degree.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return degree.Div(hundred)
	default:
		steps := degree.Sub(decimal.NewFromInt(40))
		return decimal.NewFromFloat(0.25).Add(steps.Mul(decimal.NewFromFloat(0.025)))
	}
}

// ContributionYears describes the AVS contribution window.
type ContributionYears struct {
	FirstYear int `yaml:"first_year" json:"first_year"`
	LastYear  int `yaml:"last_year" json:"last_year"`
	Effective int `yaml:"effective" json:"effective"`
	Full      int `yaml:"full" json:"full"`
}

// Credits are the notional BTE/BTA incomes added to the career total.
type Credits struct {
	Education       decimal.Decimal `yaml:"education" json:"education"`
	Caregiving      decimal.Decimal `yaml:"caregiving" json:"caregiving"`
	Applied         decimal.Decimal `yaml:"applied" json:"applied"`
	EducationYears  int             `yaml:"education_years" json:"education_years"`
	CaregivingYears int             `yaml:"caregiving_years" json:"caregiving_years"`
}

// AVSProjection is the intermediate state of an AVS/AI computation.
type AVSProjection struct {
	Kind           ProjectionKind      `yaml:"-" json:"-"`
	AgeAtEvent     int                 `yaml:"age_at_event" json:"age_at_event"`
	Years          ContributionYears   `yaml:"years" json:"years"`
	AverageIncome  decimal.Decimal     `yaml:"average_income" json:"average_income"`
	SupplementRate decimal.Decimal     `yaml:"supplement_rate" json:"supplement_rate"`
	Supplement     decimal.Decimal     `yaml:"supplement" json:"supplement"`
	Credits        Credits             `yaml:"credits" json:"credits"`
	RAMD           decimal.Decimal     `yaml:"ramd" json:"ramd"`
	Row            domain.Echelle44Row `yaml:"row" json:"row"`
	Eligible       bool                `yaml:"eligible" json:"eligible"`
}

// BaseMonthly is the full old-age or invalidity rente read from the scale.
func (p AVSProjection) BaseMonthly() decimal.Decimal {
	if !p.Eligible {
		return decimal.Zero
	}
	return p.Row.BaseMonthly
}

// WidowMonthly is the widow/widower rente, 80% of base when the scale omits it.
func (p AVSProjection) WidowMonthly() decimal.Decimal {
	if !p.Eligible {
		return decimal.Zero
	}
	if p.Row.WidowMonthly.IsPositive() {
		return p.Row.WidowMonthly
	}
	return p.Row.BaseMonthly.Mul(widowRate)
}

// ChildMonthly is the child or orphan rente, from the scale column when
// present or 40% of the base amount.
func (p AVSProjection) ChildMonthly() decimal.Decimal {
	if !p.Eligible {
		return decimal.Zero
	}
	if p.Row.Child40Monthly != nil {
		return *p.Row.Child40Monthly
	}
	return p.Row.BaseMonthly.Mul(child40Rate)
}

// AVSProjector computes AVS/AI amounts under one year's legal tables.
type AVSProjector struct {
	legal domain.Legal
}

func NewAVSProjector(legal domain.Legal) *AVSProjector {
	return &AVSProjector{legal: legal}
}

func (p *AVSProjector) startAge() int {
	if p.legal.Settings.ContributionStartAge > 0 {
		return p.legal.Settings.ContributionStartAge
	}
	return defaultContributionStartAge
}

// Contribution measures the contribution window ending the year before the
// event. Contributions start on 1 January after the start-age birthday, or
// at the career start when later.
func (p *AVSProjector) Contribution(c *domain.ClientData, eventDate time.Time, kind ProjectionKind) ContributionYears {
	if !c.BirthDate.Valid() {
		return ContributionYears{}
	}
	s := p.legal.Settings
	cohortFirst := c.BirthDate.Year() + p.startAge() + 1
	last := eventDate.Year() - 1

	full := s.FullContributionYears
	if kind == Early {
		cohort := last - cohortFirst + 1
		if full <= 0 || cohort < full {
			full = cohort
		}
	}
	if full < 0 {
		full = 0
	}

	first := cohortFirst
	if c.CareerStartYear > first {
		first = c.CareerStartYear
	}
	effective := last - first + 1 - c.ContributionGapYears
	if effective < 0 {
		effective = 0
	}
	if effective > full {
		effective = full
	}
	return ContributionYears{FirstYear: first, LastYear: last, Effective: effective, Full: full}
}

// AverageIncome returns the revalued career average: the explicit value when
// supplied, otherwise the current salary.
func AverageIncome(c *domain.ClientData) decimal.Decimal {
	if c.AverageIncome != nil {
		return decimal.Max(*c.AverageIncome, decimal.Zero)
	}
	return decimal.Max(c.AnnualSalary, decimal.Zero)
}

// Credits computes the BTE and BTA incomes year by year over the window.
// Each year credits the larger of the two. BTE is shared with the partner in
// years of marriage. Without an explicit count, BTE years are the years
// following a child's birth up to its 16th birthday year; explicit counts are
// placed from the start of the window.
func (p *AVSProjector) Credits(c *domain.ClientData, years ContributionYears) Credits {
	var out Credits
	if years.Effective == 0 {
		return out
	}
	s := p.legal.Settings
	split := s.CreditSplit()

	for _, y := range dateutil.YearsInclusive(years.FirstYear, years.LastYear) {
		bte := decimal.Zero
		if p.educationYear(c, years, y) {
			bte = s.BTEAnnualCredit
			if marriedIn(c, y) {
				bte = bte.Mul(split)
			}
			out.EducationYears++
			out.Education = out.Education.Add(bte)
		}

		bta := decimal.Zero
		if y < years.FirstYear+c.CaregivingCreditYears {
			bta = s.BTAAnnualCredit
			out.CaregivingYears++
			out.Caregiving = out.Caregiving.Add(bta)
		}

		out.Applied = out.Applied.Add(decimal.Max(bte, bta))
	}
	return out
}

func (p *AVSProjector) educationYear(c *domain.ClientData, years ContributionYears, y int) bool {
	if c.EducationCreditYears != nil {
		return y < years.FirstYear+*c.EducationCreditYears
	}
	for _, child := range c.Children {
		if !child.BirthDate.Valid() {
			continue
		}
		born := child.BirthDate.Year()
		if y > born && y <= born+16 {
			return true
		}
	}
	return false
}

func marriedIn(c *domain.ClientData, year int) bool {
	if !rules.HasPartner(c) {
		return false
	}
	return !c.MarriageDate.Valid() || c.MarriageDate.Year() <= year
}

// Project runs the full AVS/AI pipeline up to the scale lookup.
//
// RAMD = (average × effective years × (1 + supplement) + credits) / full years
//
// A window with no full or effective years short-circuits to an ineligible
// projection whose amounts are all zero.
func (p *AVSProjector) Project(c *domain.ClientData, eventDate time.Time, kind ProjectionKind) AVSProjection {
	out := AVSProjection{
		Kind:       kind,
		AgeAtEvent: dateutil.AgeAt(c.BirthDate, eventDate),
	}
	out.Years = p.Contribution(c, eventDate, kind)
	out.AverageIncome = AverageIncome(c)

	minYears := p.legal.Settings.MinContributionYears
	if minYears < 1 {
		minYears = 1
	}
	if out.Years.Full <= 0 || out.Years.Effective < minYears {
		out.SupplementRate = decimal.Zero
		return out
	}

	effective := decimal.NewFromInt(int64(out.Years.Effective))
	career := out.AverageIncome.Mul(effective)
	if kind == Early {
		out.SupplementRate = CareerSupplementRate(out.AgeAtEvent)
		out.Supplement = career.Mul(out.SupplementRate)
	}
	out.Credits = p.Credits(c, out.Years)

	total := career.Add(out.Supplement).Add(out.Credits.Applied)
	out.RAMD = total.Div(decimal.NewFromInt(int64(out.Years.Full)))

	row, ok := p.legal.Echelle44.Lookup(out.RAMD)
	if !ok {
		return out
	}
	out.Row = row
	out.Eligible = true
	return out
}

// OrphanCount is the number of children under 18 at the event date.
func OrphanCount(c *domain.ClientData, eventDate time.Time) int {
	return len(rules.MinorChildrenAt(c, eventDate))
}

// InvalidityMonthly is the AI rente for degree (percent).
func (p *AVSProjector) InvalidityMonthly(proj AVSProjection, degree decimal.Decimal) decimal.Decimal {
	return proj.BaseMonthly().Mul(AIQuota(degree))
}

// InvalidityChildrenMonthly is the AI child rente for every minor child.
func (p *AVSProjector) InvalidityChildrenMonthly(c *domain.ClientData, eventDate time.Time, proj AVSProjection, degree decimal.Decimal) decimal.Decimal {
	n := decimal.NewFromInt(int64(OrphanCount(c, eventDate)))
	return proj.ChildMonthly().Mul(AIQuota(degree)).Mul(n)
}

// OldAgeMonthly is the AVS retirement rente.
func (p *AVSProjector) OldAgeMonthly(proj AVSProjection) decimal.Decimal {
	return proj.BaseMonthly()
}
