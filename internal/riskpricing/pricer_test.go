package riskpricing

import (
	"errors"
	"testing"
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/smartystreets/goconvey/convey"
)

func class(n int) *int { return &n }

func baseContext() Context {
	return Context{Age: 30, BMI: d("22.5"), OccupationClass: class(1)}
}

func equal(actual decimal.Decimal, want string) bool { return actual.Equal(d(want)) }

func TestComputeRiskPremiums(t *testing.T) {
	convey.Convey("Given the default tariff", t, func() {
		p := NewPricer(DefaultTariff())
		riders := RiderConfig{
			FixedDeathCapital:      d("100000"),
			DecreasingDeathCapital: d("100000"),
			DisabilityAnnuities: []DisabilityAnnuity{
				{AnnualAmount: d("24000"), WaitingMonths: 3},
				{AnnualAmount: d("24000"), WaitingMonths: 9},
			},
			PremiumWaiver: &PremiumWaiver{AnnualPremium: d("5000")},
		}

		convey.Convey("When the occupation class is unset", func() {
			c := &domain.ClientData{BirthDate: dateutil.MustParse("01.01.1990"), AnnualSalary: d("60000")}
			got := p.ComputeRiskPremiums(riders, NewContext(c, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

			convey.Convey("Then nothing is priced", func() {
				convey.So(got.TotalRiskPremium.IsZero(), convey.ShouldBeTrue)
				convey.So(got.Breakdown, convey.ShouldBeEmpty)
				convey.So(got.Breakdown, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a neutral risk is priced", func() {
			got := p.ComputeRiskPremiums(riders, baseContext())

			convey.Convey("Then every rider uses its base rate", func() {
				convey.So(equal(got.Breakdown[FixedDeathKey], "150"), convey.ShouldBeTrue)
				convey.So(equal(got.Breakdown[DecreasingDeathKey], "82.5"), convey.ShouldBeTrue)
				convey.So(equal(got.Breakdown[DisabilityKey(1)], "432"), convey.ShouldBeTrue)
				convey.So(equal(got.Breakdown[DisabilityKey(2)], "336"), convey.ShouldBeTrue)
				convey.So(equal(got.Breakdown[PremiumWaiverKey], "150"), convey.ShouldBeTrue)
				convey.So(equal(got.TotalRiskPremium, "1150.5"), convey.ShouldBeTrue)
				convey.So(got.TariffVersion, convey.ShouldEqual, DefaultTariffVersion)
			})
		})

		convey.Convey("When the insured smokes", func() {
			ctx := baseContext()
			ctx.Smoker = true
			got := p.ComputeRiskPremiums(riders, ctx)

			convey.Convey("Then death and disability use their own smoker factors", func() {
				convey.So(equal(got.Breakdown[FixedDeathKey], "390"), convey.ShouldBeTrue)
				convey.So(equal(got.Breakdown[DisabilityKey(1)], "503.28"), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the insured is older than the pivot age", func() {
			ctx := baseContext()
			ctx.Age = 40
			got := p.ComputeRiskPremiums(RiderConfig{FixedDeathCapital: d("100000")}, ctx)

			convey.Convey("Then the age factor grows linearly", func() {
				convey.So(equal(got.TotalRiskPremium, "180"), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When factors combine", func() {
			ctx := Context{Age: 35, BMI: d("31"), Hypertension: true, OccupationClass: class(4)}
			got := p.ComputeRiskPremiums(RiderConfig{FixedDeathCapital: d("100000")}, ctx)

			convey.Convey("Then they multiply", func() {
				// 150 × age 1.10 × BMI 1.20 × hypertension 1.15 × class 1.66
				convey.So(equal(got.TotalRiskPremium, "377.9820"), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When no riders are configured", func() {
			got := p.ComputeRiskPremiums(RiderConfig{}, baseContext())
			convey.So(got.TotalRiskPremium.IsZero(), convey.ShouldBeTrue)
			convey.So(got.Breakdown, convey.ShouldBeEmpty)
		})
	})
}

func TestTariffFactors(t *testing.T) {
	convey.Convey("Given the default tariff", t, func() {
		tr := DefaultTariff()

		convey.Convey("BMI bands are read by upper bound", func() {
			convey.So(equal(tr.BMIFactor(d("17")), "1.10"), convey.ShouldBeTrue)
			convey.So(equal(tr.BMIFactor(d("24.99")), "1.00"), convey.ShouldBeTrue)
			convey.So(equal(tr.BMIFactor(d("25")), "1.10"), convey.ShouldBeTrue)
			convey.So(equal(tr.BMIFactor(d("34")), "1.20"), convey.ShouldBeTrue)
			convey.So(equal(tr.BMIFactor(d("40")), "1.35"), convey.ShouldBeTrue)
			convey.So(equal(tr.BMIFactor(decimal.Zero), "1"), convey.ShouldBeTrue)
		})

		convey.Convey("Occupation classes above the table read the highest row", func() {
			f, ok := tr.OccupationFactor(3)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(equal(f, "1.2"), convey.ShouldBeTrue)
			f, ok = tr.OccupationFactor(9)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(equal(f, "1.66"), convey.ShouldBeTrue)
			_, ok = tr.OccupationFactor(0)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Waiting periods are floored to a tariffed one", func() {
			convey.So(equal(tr.DisabilityPerMille(1), "18"), convey.ShouldBeTrue)
			convey.So(equal(tr.DisabilityPerMille(12), "10"), convey.ShouldBeTrue)
			convey.So(equal(tr.DisabilityPerMille(36), "7"), convey.ShouldBeTrue)
		})

		convey.Convey("The age factor is flat below the pivot", func() {
			convey.So(equal(tr.AgeFactor(20), "1"), convey.ShouldBeTrue)
			convey.So(equal(tr.AgeFactor(55), "1.5"), convey.ShouldBeTrue)
		})
	})
}

func TestNewContext(t *testing.T) {
	convey.Convey("Given a classified client", t, func() {
		c := &domain.ClientData{
			BirthDate: dateutil.MustParse("02.06.1985"),
			Risk: domain.RiskProfile{
				HeightCm:        180,
				WeightKg:        d("81"),
				Smoker:          true,
				OccupationClass: class(2),
			},
		}
		ctx := NewContext(c, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		convey.So(ctx.Age, convey.ShouldEqual, 39)
		convey.So(equal(ctx.BMI, "25"), convey.ShouldBeTrue)
		convey.So(ctx.Smoker, convey.ShouldBeTrue)
		convey.So(*ctx.OccupationClass, convey.ShouldEqual, 2)

		convey.Convey("A zero class is treated as unclassified", func() {
			c.Risk.OccupationClass = class(0)
			convey.So(NewContext(c, time.Now()).OccupationClass, convey.ShouldBeNil)
		})

		convey.Convey("A missing height gives an unknown BMI", func() {
			c.Risk.HeightCm = 0
			convey.So(NewContext(c, time.Now()).BMI.IsZero(), convey.ShouldBeTrue)
		})
	})
}

func TestTariffValidate(t *testing.T) {
	convey.Convey("Given tariffs to validate", t, func() {
		convey.Convey("The default tariff is valid", func() {
			convey.So(DefaultTariff().Validate(), convey.ShouldBeNil)
		})

		cases := []struct {
			name   string
			mutate func(*Tariff)
		}{
			{"missing version", func(t *Tariff) { t.Version = "" }},
			{"negative death rate", func(t *Tariff) { t.DeathPerMille = d("-1") }},
			{"zero smoker factor", func(t *Tariff) { t.SmokerDeathFactor = decimal.Zero }},
			{"unordered disability rows", func(t *Tariff) { t.Disability[1].WaitingMonths = 2 }},
			{"no disability rows", func(t *Tariff) { t.Disability = nil }},
			{"bounded last BMI band", func(t *Tariff) { t.BMIBands[len(t.BMIBands)-1].Below = bound("50") }},
			{"descending BMI bands", func(t *Tariff) { t.BMIBands[1].Below = bound("10") }},
			{"duplicate occupation", func(t *Tariff) { t.Occupations[1].Class = 1 }},
		}
		for _, tc := range cases {
			convey.Convey("Rejects "+tc.name, func() {
				tr := DefaultTariff()
				tc.mutate(&tr)
				err := tr.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, ErrInvalidTariff), convey.ShouldBeTrue)
			})
		}
	})
}
