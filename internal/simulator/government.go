package simulator

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/chrisdamba/heatwavesim/internal/advisor"
	"github.com/chrisdamba/heatwavesim/internal/models"
)

const (
	subsidyHighTemp      = 42.0
	subsidyLowTemp       = 38.0
	subsidyHighAmount    = 50.0
	subsidyLowAmount     = 30.0
	maxAdvisedSubsidy    = 100.0
	shelterTemp          = 40.0
	shelterComplaints    = 3
	shelterMaxCoverage   = 0.8
	unhealthyRiderHealth = 5.0
)

// SubsidyAmount is the rule-based per-rider heat subsidy.
func SubsidyAmount(temp float64) float64 {
	switch {
	case temp > subsidyHighTemp:
		return subsidyHighAmount
	case temp > subsidyLowTemp:
		return subsidyLowAmount
	}
	return 0
}

// ProvideSubsidy pays amount to every on-duty rider out of the budget and
// returns the total paid.
func ProvideSubsidy(g *models.Government, riders []*models.Rider, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	var total float64
	for _, r := range riders {
		if r.OnDuty {
			r.Money += amount
			total += amount
		}
	}
	g.Budget -= total
	g.SubsidiesPaid += total
	return total
}

// ShouldBuildShelter is the rule-based shelter construction test.
func ShouldBuildShelter(g *models.Government, env models.EnvironmentState, complaints int, cost float64) bool {
	return env.Temperature > shelterTemp &&
		complaints > shelterComplaints &&
		canBuildShelter(g, env, cost)
}

func canBuildShelter(g *models.Government, env models.EnvironmentState, cost float64) bool {
	return env.ShelterRate < shelterMaxCoverage && g.Budget >= cost
}

// BuildShelter spends cost from the budget. The caller raises coverage.
func BuildShelter(g *models.Government, cost float64) bool {
	if g.Budget < cost {
		return false
	}
	g.Budget -= cost
	g.SheltersBuilt++
	return true
}

func ReceiveTax(g *models.Government, amount float64) {
	g.Budget += amount
}

func (s *Simulator) governmentTurn(ctx context.Context, env models.EnvironmentState) models.AgentLog {
	g := s.Government
	entry := s.newLog(env, models.AgentGovernment, g.ID)

	_, complaints, _ := riderSummary(s.Riders)
	unhealthy := 0
	for _, r := range s.Riders {
		if r.Health < unhealthyRiderHealth {
			unhealthy++
		}
	}
	entry.Observation = fmt.Sprintf("temperature %.1f°C, %d complaints, %d riders in poor health, shelter %.2f, budget %.0f",
		env.Temperature, complaints, unhealthy, env.ShelterRate, g.Budget)

	var amount float64
	var build bool
	decision := s.advise(ctx, func() advisor.Request {
		return advisor.GovernmentRequest(g, env, complaints, unhealthy)
	})
	if decision.Usable() {
		entry.DecisionSource = models.DecisionSourceLLM
		entry.Thought = decision.Thought()
		if decision.SubsidyAmount != nil && env.Temperature > subsidyLowTemp {
			amount = math.Max(0, math.Min(maxAdvisedSubsidy, *decision.SubsidyAmount))
		}
		build = decision.BuildShelter != nil && *decision.BuildShelter &&
			canBuildShelter(g, env, s.Config.ShelterCost)
	} else {
		entry.DecisionSource = s.fallbackSource()
		entry.Thought = decision.RuleThought("rule: subsidy by temperature, shelter when complaints pile up")
		amount = SubsidyAmount(env.Temperature)
		build = ShouldBuildShelter(g, env, complaints, s.Config.ShelterCost)
	}

	var actions []string
	if paid := ProvideSubsidy(g, s.Riders, amount); paid > 0 {
		actions = append(actions, fmt.Sprintf("subsidy %.0f per rider, %.0f total", amount, paid))
	}
	if build && BuildShelter(g, s.Config.ShelterCost) {
		s.Env.AddShelter(s.Config.ShelterIncrement)
		actions = append(actions, fmt.Sprintf("built shelter, coverage now %.2f", s.Env.ShelterRate()))
	}
	if len(actions) == 0 {
		actions = append(actions, "keep observing")
	}
	entry.Action = strings.Join(actions, "; ")
	return entry
}
