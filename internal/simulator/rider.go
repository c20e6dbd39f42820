package simulator

import (
	"context"
	"fmt"
	"math"

	"github.com/chrisdamba/heatwavesim/internal/advisor"
	"github.com/chrisdamba/heatwavesim/internal/models"
)

const (
	forcedRestHealth  = 2.0
	minDeliverHealth  = 3.0
	heatRestThreshold = 42.0
	heatRestHealth    = 6.0
	heatRestChance    = 0.7
	complainChance    = 0.3
	healthLossFactor  = 0.2
	restHeatThreshold = 40.0
	happinessMoneyCap = 2000.0
)

// DecideAction is the rider's rule-based choice for this hour. A fired rider
// is off duty and draws nothing.
func DecideAction(r *models.Rider, env models.EnvironmentState, available int, rng Rand) string {
	switch {
	case !r.OnDuty:
		return models.ActionOffDuty
	case r.Health < forcedRestHealth:
		return models.ActionRest
	case env.Temperature > heatRestThreshold && r.Health < heatRestHealth && rng.Float64() < heatRestChance:
		return models.ActionRest
	}
	if available > 0 && r.Health >= minDeliverHealth {
		if rng.Float64() < DeliverProbability(r, env) {
			return models.ActionDeliver
		}
	} else if r.Health < minDeliverHealth && rng.Float64() < complainChance {
		return models.ActionComplain
	}
	return models.ActionRest
}

func DeliverProbability(r *models.Rider, env models.EnvironmentState) float64 {
	healthFactor := r.Health / models.MaxHealth
	tempFactor := math.Max(0.1, 1-(env.Temperature-35)/15)
	return healthFactor * tempFactor
}

// HealthLoss is the health a delivery of the given distance costs in the
// current heat, reduced by shelter coverage.
func HealthLoss(env models.EnvironmentState, distance float64) float64 {
	return math.Max(0, (env.Temperature-35)*healthLossFactor*distance*(1-env.ShelterRate))
}

// DeliverOrder applies the health cost and income of one delivery and marks
// the order delivered by r. It returns the income credited.
func DeliverOrder(r *models.Rider, o *models.Order, env models.EnvironmentState, payRate float64) float64 {
	r.SetHealth(r.Health - HealthLoss(env, o.Distance))

	income := o.Cost*payRate + o.Tip
	r.Money += income
	r.DailyIncome += income
	r.OrdersCompleted++

	o.RiderID = r.ID
	o.Delivered = true
	o.DeliveredDay, o.DeliveredHour = env.Day, env.Hour

	UpdateHappiness(r, env)
	return income
}

// Rest recovers health at the environment's rest rate, halved above 40°C.
func Rest(r *models.Rider, env models.EnvironmentState) float64 {
	recovery := 1.0 * env.RestRate
	if env.Temperature > restHeatThreshold {
		recovery = 0.5 * env.RestRate
	}
	r.SetHealth(r.Health + recovery)
	return recovery
}

func Complain(r *models.Rider, env models.EnvironmentState, reason string) models.Complaint {
	c := models.Complaint{
		RiderID:     r.ID,
		Day:         env.Day,
		Hour:        env.Hour,
		Health:      r.Health,
		Temperature: env.Temperature,
		Reason:      reason,
	}
	r.Complaints = append(r.Complaints, c)
	return c
}

func UpdateHappiness(r *models.Rider, env models.EnvironmentState) {
	health := 0.4 * r.Health / models.MaxHealth
	money := 0.3 * math.Min(1, r.Money/happinessMoneyCap)
	comfort := 0.3 * math.Max(0.1, 1-(env.Temperature-30)/20)
	r.Happiness = math.Max(0, math.Min(models.MaxHappiness, 10*(health+money+comfort)))
}

// riderTurn runs one on-duty rider's hour against the shared pending pool.
// A claimed order is removed from pool before the next rider acts.
func (s *Simulator) riderTurn(ctx context.Context, r *models.Rider, env models.EnvironmentState, pool []*models.Order) ([]*models.Order, models.AgentLog) {
	entry := s.newLog(env, models.AgentRider, r.ID)
	entry.Observation = fmt.Sprintf("temperature %.1f°C, shelter %.2f, %d orders available, health %.1f, money %.0f",
		env.Temperature, env.ShelterRate, len(pool), r.Health, r.Money)

	action, reason := s.chooseRiderAction(ctx, r, env, len(pool), &entry)

	switch action {
	case models.ActionDeliver:
		idx := s.Rng.Intn(len(pool))
		o := pool[idx]
		if !o.IsPending() {
			panic(fmt.Sprintf("order %s claimed twice", o.ID))
		}
		pool = append(pool[:idx:idx], pool[idx+1:]...)

		loss := HealthLoss(env, o.Distance)
		income := DeliverOrder(r, o, env, s.Platform.RiderPayRate)
		s.dayDelivered++
		tip := s.customerFeedback(o, r)
		r.Money += tip
		r.DailyIncome += tip

		entry.Action = fmt.Sprintf("deliver %s: health -%.1f, income %.1f, tip %.1f",
			shortID(o.ID), loss, income, tip)
	case models.ActionComplain:
		Complain(r, env, reason)
		entry.Action = "complain: " + reason
	default:
		recovery := Rest(r, env)
		entry.Action = fmt.Sprintf("rest: health +%.1f", recovery)
	}
	return pool, entry
}

func (s *Simulator) chooseRiderAction(ctx context.Context, r *models.Rider, env models.EnvironmentState, available int, entry *models.AgentLog) (string, string) {
	reason := fmt.Sprintf("health %.1f at %.1f°C", r.Health, env.Temperature)
	if r.Health < forcedRestHealth {
		entry.Thought = "health critical, must rest"
		entry.DecisionSource = models.DecisionSourceRule
		return models.ActionRest, reason
	}

	decision := s.advise(ctx, func() advisor.Request {
		return advisor.RiderRequest(r, env, available)
	})
	if decision.Usable() {
		switch decision.Action {
		case models.ActionRest, models.ActionComplain:
			entry.Thought = decision.Thought()
			entry.DecisionSource = models.DecisionSourceLLM
			if decision.Action == models.ActionComplain && decision.Reasoning != "" {
				reason = decision.Reasoning
			}
			return decision.Action, reason
		case models.ActionDeliver:
			if available > 0 {
				entry.Thought = decision.Thought()
				entry.DecisionSource = models.DecisionSourceLLM
				return models.ActionDeliver, reason
			}
		}
	}

	entry.Thought = decision.RuleThought(fmt.Sprintf("rule: deliver probability %.2f", DeliverProbability(r, env)))
	entry.DecisionSource = s.fallbackSource()
	return DecideAction(r, env, available, s.Rng), reason
}

// customerFeedback has the ordering customer rate and tip a fresh delivery.
func (s *Simulator) customerFeedback(o *models.Order, r *models.Rider) float64 {
	c, ok := s.customersByID[o.CustomerID]
	if !ok {
		return 0
	}
	RateOrder(c, o, r.Health, s.Rng)
	return DecideTip(o, r.Health, s.Rng)
}
