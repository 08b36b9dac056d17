package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNoClient is returned when an Input carries no client.
var ErrNoClient = errors.New("no client data")

// Logger is the logging surface the engine needs. *zap.SugaredLogger
// satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// Observer is told how long each composer took.
type Observer interface {
	ObserveComputation(kind Kind, d time.Duration)
}

// Report collects the results of one engine run. Only requested events are set.
type Report struct {
	ID               uuid.UUID       `yaml:"id" json:"id"`
	ClientID         string          `yaml:"client_id,omitempty" json:"client_id,omitempty"`
	ClientName       string          `yaml:"client_name,omitempty" json:"client_name,omitempty"`
	EventDate        time.Time       `yaml:"event_date" json:"event_date"`
	LegalYear        int             `yaml:"legal_year" json:"legal_year"`
	DisabilityDegree decimal.Decimal `yaml:"disability_degree" json:"disability_degree"`
	AnnualSalary     decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`

	IllnessDisability  *domain.IllnessDisabilityResult  `yaml:"illness_disability,omitempty" json:"illness_disability,omitempty"`
	AccidentDisability *domain.AccidentDisabilityResult `yaml:"accident_disability,omitempty" json:"accident_disability,omitempty"`
	AccidentDeath      *domain.AccidentDeathResult      `yaml:"accident_death,omitempty" json:"accident_death,omitempty"`
	IllnessDeath       *domain.IllnessDeathResult       `yaml:"illness_death,omitempty" json:"illness_death,omitempty"`
	Retirement         *domain.RetirementResult         `yaml:"retirement,omitempty" json:"retirement,omitempty"`
}

// Engine runs the event composers for a client.
type Engine struct {
	Logger   Logger
	Observer Observer
	newID    func() uuid.UUID
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}, newID: uuid.New}
}

// SetLogger replaces the logger. nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Compute runs the requested composers, or all of them when kinds is empty.
func (e *Engine) Compute(in Input, kinds ...Kind) (*Report, error) {
	if in.Client == nil {
		return nil, ErrNoClient
	}
	if len(kinds) == 0 {
		kinds = AllKinds
	}
	if in.Legal.Settings.Year == 0 && len(in.Legal.Echelle44) == 0 {
		e.Logger.Warnf("computing with empty legal tables")
	}

	r := &Report{
		ID:               e.id(),
		ClientID:         in.Client.ID,
		ClientName:       in.Client.Name,
		EventDate:        in.EventDate,
		LegalYear:        in.Legal.Settings.Year,
		DisabilityDegree: in.DisabilityDegree,
		AnnualSalary:     in.Client.AnnualSalary,
	}
	for _, k := range kinds {
		start := time.Now()
		switch k {
		case IllnessDisability:
			res := ComputeIllnessDisability(in)
			r.IllnessDisability = &res
		case AccidentDisability:
			res := ComputeAccidentDisability(in)
			r.AccidentDisability = &res
		case AccidentDeath:
			res := ComputeAccidentDeath(in)
			r.AccidentDeath = &res
		case IllnessDeath:
			res := ComputeIllnessDeath(in)
			r.IllnessDeath = &res
		case Retirement:
			res := ComputeRetirement(in)
			r.Retirement = &res
		default:
			return nil, fmt.Errorf("unknown event %q", k)
		}
		elapsed := time.Since(start)
		if e.Observer != nil {
			e.Observer.ObserveComputation(k, elapsed)
		}
		e.Logger.Debugf("computed %s for client %q in %s", k, in.Client.ID, elapsed)
	}
	e.Logger.Infof("report %s: %d events at %s", r.ID, len(kinds), in.EventDate.Format("2006-01-02"))
	return r, nil
}

func (e *Engine) id() uuid.UUID {
	if e.newID == nil {
		return uuid.New()
	}
	return e.newID()
}
