package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/chrisdamba/heatwavesim/internal/advisor"
	"github.com/chrisdamba/heatwavesim/internal/factories"
	"github.com/chrisdamba/heatwavesim/internal/models"
	"github.com/chrisdamba/heatwavesim/internal/output"
	"github.com/chrisdamba/heatwavesim/internal/repositories"
)

// Advisor answers agent questions. A nil Advisor means rule-based decisions
// only.
type Advisor interface {
	Advise(ctx context.Context, req advisor.Request) advisor.Decision
}

type Simulator struct {
	Config     *models.Config
	Env        *Environment
	Customers  []*models.Customer
	Riders     []*models.Rider
	Platform   *models.Platform
	Government *models.Government
	Orders     []*models.Order
	DailyStats []models.DailyStats
	RiderStats []models.RiderStats
	Logs       []models.AgentLog
	Rng        Rand
	RunID      string

	advisor       Advisor
	output        output.OutputDestination
	store         repositories.RunRepository
	envOpts       []EnvironmentOption
	bar           *progressbar.ProgressBar
	customersByID map[string]*models.Customer

	// accumulators for the day in progress
	dayTemps     []float64
	dayPlaced    int
	dayDelivered int
}

type Option func(*Simulator)

func WithAdvisor(a Advisor) Option {
	return func(s *Simulator) { s.advisor = a }
}

func WithOutput(o output.OutputDestination) Option {
	return func(s *Simulator) { s.output = o }
}

func WithStore(r repositories.RunRepository) Option {
	return func(s *Simulator) { s.store = r }
}

func WithRand(r Rand) Option {
	return func(s *Simulator) { s.Rng = r }
}

// WithEnvironmentOptions appends to the options derived from the config.
func WithEnvironmentOptions(opts ...EnvironmentOption) Option {
	return func(s *Simulator) { s.envOpts = append(s.envOpts, opts...) }
}

func WithRunID(id string) Option {
	return func(s *Simulator) { s.RunID = id }
}

func NewSimulator(config *models.Config, opts ...Option) *Simulator {
	sim := &Simulator{
		Config: config,
		Platform: &models.Platform{
			ID:           "platform",
			Cash:         config.InitialPlatformCash,
			RiderPayRate: config.RiderPayRate,
		},
		Government:    &models.Government{ID: "government"},
		customersByID: make(map[string]*models.Customer, config.NumCustomers),
	}
	for _, opt := range opts {
		opt(sim)
	}
	if sim.Rng == nil {
		sim.Rng = NewRand(config.Seed)
	}
	if sim.output == nil {
		sim.output = &output.ConsoleOutput{}
	}
	if sim.RunID == "" {
		sim.RunID = uuid.NewString()
	}

	envOpts := append([]EnvironmentOption{
		WithStartHour(config.StartHour),
		WithShelterRate(config.InitialShelterRate),
		WithRestRate(config.RestRate),
	}, sim.envOpts...)
	sim.Env = NewEnvironment(sim.Rng, envOpts...)

	sim.initializeAgents()
	return sim
}

func (s *Simulator) initializeAgents() {
	customerFactory := &factories.CustomerFactory{}
	riderFactory := &factories.RiderFactory{}

	s.Customers = make([]*models.Customer, s.Config.NumCustomers)
	for i := range s.Customers {
		c := customerFactory.CreateCustomer(i)
		s.Customers[i] = c
		s.customersByID[c.ID] = c
	}

	s.Riders = make([]*models.Rider, s.Config.NumRiders)
	for i := range s.Riders {
		s.Riders[i] = riderFactory.CreateRider(i, s.Config)
	}
}

// Run drives the simulation until the configured number of days has been
// aggregated, ctx is cancelled, or an hour fails. A report is returned in
// every case; the error is non-nil when the run did not complete.
func (s *Simulator) Run(ctx context.Context) (*models.Report, error) {
	if s.store != nil {
		if err := s.store.CreateRun(ctx, s.RunID, s.Config); err != nil {
			return nil, fmt.Errorf("create run %s: %w", s.RunID, err)
		}
	}
	if !s.Config.Quiet {
		s.bar = progressbar.NewOptions(s.totalHours(),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	log.Printf("Simulation %s starts: %d customers, %d riders, %d days, decisions by %s",
		s.RunID, s.Config.NumCustomers, s.Config.NumRiders, s.Config.SimulationDays, s.decisionMode())

	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("simulation aborted at day %d hour %02d: %w", s.Env.Day(), s.Env.Hour(), err)
			break
		}
		done, err := s.Step(ctx)
		if err != nil {
			runErr = err
			break
		}
		if done {
			break
		}
	}
	if s.bar != nil {
		_ = s.bar.Finish()
	}

	// sinks and storage still receive the partial results after an abort
	finalCtx := context.WithoutCancel(ctx)
	if runErr != nil {
		log.Printf("Simulation stopped early: %v", runErr)
		if len(s.dayTemps) > 0 {
			s.aggregateDay(finalCtx, s.Env.Day(), true)
		}
	}

	report := s.BuildReport(runErr)
	s.emit(models.TopicFinalReport, report)
	if s.store != nil {
		if err := s.store.SaveReport(finalCtx, s.RunID, report); err != nil {
			log.Printf("Failed to save report: %v", err)
		}
	}

	log.Printf("Simulation %s completed: %d/%d days", s.RunID, report.DaysCompleted, s.Config.SimulationDays)
	return report, runErr
}

// Step simulates one hour. It reports done once the last configured day has
// been aggregated. A panic inside the hour is returned as *HourError.
func (s *Simulator) Step(ctx context.Context) (done bool, err error) {
	phase := phaseEnvironment
	defer func() {
		if r := recover(); r != nil {
			err = &HourError{Day: s.Env.Day(), Hour: s.Env.Hour(), Phase: phase, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	s.Env.AdvanceHour()
	day, hour := s.Env.Day(), s.Env.Hour()

	if hour == 0 && day > 0 {
		phase = phaseAggregate
		s.aggregateDay(ctx, day-1, false)
	}
	if day >= s.Config.SimulationDays {
		return true, nil
	}

	phase = phaseEnvironment
	env := s.Env.State()
	s.dayTemps = append(s.dayTemps, env.Temperature)
	s.abandonStaleOrders(env)

	if env.IsMealTime {
		phase = phaseCustomers
		for _, c := range s.Customers {
			order, entry := s.decideOrder(ctx, c, env)
			if order != nil {
				s.Orders = append(s.Orders, order)
				s.dayPlaced++
			}
			s.record(entry)
		}
	}

	phase = phaseRiders
	pool := s.PendingOrders()
	for _, r := range s.Riders {
		if !r.OnDuty {
			continue
		}
		var entry models.AgentLog
		pool, entry = s.riderTurn(ctx, r, env, pool)
		s.record(entry)
	}

	if hour == 23 {
		phase = phasePlatform
		s.record(s.platformTurn(ctx, s.Env.State()))
	}
	if hour == 22 {
		phase = phaseGovernment
		s.record(s.governmentTurn(ctx, s.Env.State()))
	}

	if s.bar != nil {
		_ = s.bar.Add(1)
	}
	return false, nil
}

// PendingOrders returns the orders no rider has claimed yet, oldest first.
func (s *Simulator) PendingOrders() []*models.Order {
	var pending []*models.Order
	for _, o := range s.Orders {
		if o.IsPending() {
			pending = append(pending, o)
		}
	}
	return pending
}

func (s *Simulator) abandonStaleOrders(env models.EnvironmentState) {
	limit := s.Config.OrderAbandonHours
	if limit <= 0 {
		return
	}
	for _, o := range s.Orders {
		if o.IsPending() && o.HoursPending(env.Day, env.Hour) >= limit {
			o.Abandoned = true
		}
	}
}

func (s *Simulator) advise(ctx context.Context, req func() advisor.Request) advisor.Decision {
	if s.advisor == nil {
		return advisor.Fallback()
	}
	return s.advisor.Advise(ctx, req())
}

// fallbackSource labels a rule decision taken because advice was missing or
// unusable.
func (s *Simulator) fallbackSource() string {
	if s.advisor == nil {
		return models.DecisionSourceRule
	}
	return models.DecisionSourceFallback
}

func (s *Simulator) decisionMode() string {
	if s.advisor == nil {
		return models.DecisionModeRule
	}
	return models.DecisionModeLLM
}

func (s *Simulator) newLog(env models.EnvironmentState, agentType, agentID string) models.AgentLog {
	return models.AgentLog{
		Day:            env.Day,
		Hour:           env.Hour,
		AgentType:      agentType,
		AgentID:        agentID,
		DecisionSource: models.DecisionSourceRule,
	}
}

func (s *Simulator) record(entry models.AgentLog) {
	s.Logs = append(s.Logs, entry)
	s.emit(models.TopicAgentActions, entry)
}

func (s *Simulator) emit(topic string, v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error serializing %s record: %v", topic, err)
		return
	}
	if err := s.output.WriteMessage(topic, msg); err != nil {
		log.Printf("Failed to write message to %s: %v", topic, err)
	}
}

func (s *Simulator) totalHours() int {
	return s.Config.SimulationDays*HoursPerDay - s.Config.StartHour - 1
}

// IsHourError reports whether err carries hour context.
func IsHourError(err error) bool {
	var he *HourError
	return errors.As(err, &he)
}
