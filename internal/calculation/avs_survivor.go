package calculation

import (
	"time"

	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/rules"
	"github.com/shopspring/decimal"
)

// AVSSurvivorRentes are the AVS pensions paid to the family of a deceased client.
type AVSSurvivorRentes struct {
	SpouseDue bool          `yaml:"spouse_due" json:"spouse_due"`
	Spouse    domain.Amount `yaml:"spouse" json:"spouse"`
	Orphans   domain.Amount `yaml:"orphans" json:"orphans"`
	Count     int           `yaml:"orphan_count" json:"orphan_count"`
	Total     domain.Amount `yaml:"total" json:"total"`
}

// SurvivorRentes computes the widow/widower and orphan rentes from the
// deceased's projection. The spouse rente is gated by the AVS survivor guard;
// one orphan rente is paid per child under 18 at the death date.
func (p *AVSProjector) SurvivorRentes(c *domain.ClientData, deathDate time.Time, proj AVSProjection) AVSSurvivorRentes {
	out := AVSSurvivorRentes{
		SpouseDue: rules.AVSSurvivorSpouseDueAt(c, deathDate),
		Count:     OrphanCount(c, deathDate),
	}
	if out.SpouseDue {
		out.Spouse = domain.Monthly(proj.WidowMonthly())
	}
	out.Orphans = domain.Monthly(proj.ChildMonthly().Mul(decimal.NewFromInt(int64(out.Count))))
	out.Total = out.Spouse.Add(out.Orphans)
	return out
}
