package simulator

import (
	"context"
	"fmt"
	"math"

	"github.com/lucsky/cuid"

	"github.com/chrisdamba/heatwavesim/internal/advisor"
	"github.com/chrisdamba/heatwavesim/internal/models"
)

const (
	baseOrderRate     = 0.3
	mealTimeFactor    = 1.5
	offMealTimeFactor = 0.3
	minOrderGapHours  = 4
)

// OrderProbability is the rule-based chance that a customer orders this hour.
func OrderProbability(c *models.Customer, env models.EnvironmentState) float64 {
	tempFactor := math.Max(0.1, 1-(env.Temperature-30)/20)
	ratingFactor := c.AverageRating() / 5.0
	mealFactor := offMealTimeFactor
	if env.IsMealTime {
		mealFactor = mealTimeFactor
	}
	return tempFactor * ratingFactor * mealFactor * baseOrderRate
}

// canOrder applies the meal-time window and the minimum gap between orders.
func canOrder(c *models.Customer, env models.EnvironmentState) bool {
	if !env.IsMealTime {
		return false
	}
	since := c.HoursSinceLastOrder(env.Day, env.Hour)
	return since < 0 || since >= minOrderGapHours
}

// decideOrder runs one customer's observe/think/act cycle. It returns the new
// order, or nil when the customer does not order this hour.
func (s *Simulator) decideOrder(ctx context.Context, c *models.Customer, env models.EnvironmentState) (*models.Order, models.AgentLog) {
	entry := s.newLog(env, models.AgentCustomer, c.ID)
	entry.Observation = fmt.Sprintf("temperature %.1f°C, hour %d, meal time %t, average rating %.1f",
		env.Temperature, env.Hour, env.IsMealTime, c.AverageRating())

	if !canOrder(c, env) {
		entry.Thought = "ordered recently or outside a meal window"
		entry.Action = "no order"
		return nil, entry
	}

	prob := OrderProbability(c, env)
	var order bool
	decision := s.advise(ctx, func() advisor.Request {
		return advisor.CustomerRequest(c.ID, env, c.AverageRating())
	})
	if decision.Usable() && decision.Order != nil {
		order = *decision.Order
		entry.Thought = decision.Thought()
		entry.DecisionSource = models.DecisionSourceLLM
	} else {
		order = s.Rng.Float64() < prob
		entry.Thought = decision.RuleThought(fmt.Sprintf("rule: order probability %.2f", prob))
		entry.DecisionSource = s.fallbackSource()
	}

	if !order {
		entry.Action = "no order"
		return nil, entry
	}

	o := &models.Order{
		ID:           cuid.New(),
		CustomerID:   c.ID,
		CreationDay:  env.Day,
		CreationHour: env.Hour,
		Cost:         s.Env.OrderCost(),
		Distance:     s.Env.OrderDistance(),
	}
	c.OrderHistory = append(c.OrderHistory, o)
	c.LastOrderDay, c.LastOrderHour, c.HasOrdered = env.Day, env.Hour, true

	entry.Action = fmt.Sprintf("order %s: cost %.1f, distance %.0fkm", shortID(o.ID), o.Cost, o.Distance)
	return o, entry
}

// RateOrder scores a delivered order from the rider's health, jittered by
// one point either way, and records it in the customer's rating window.
func RateOrder(c *models.Customer, o *models.Order, riderHealth float64, rng Rand) int {
	rating := 5
	if riderHealth < 5 {
		rating--
	}
	if riderHealth < 3 {
		rating--
	}
	rating += rng.Intn(3) - 1
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	o.Rating = &rating
	c.PushRating(rating)
	return rating
}

// DecideTip tips out of compassion for an exhausted rider, or for a good
// rating otherwise.
func DecideTip(o *models.Order, riderHealth float64, rng Rand) float64 {
	var tip float64
	switch {
	case riderHealth < 3:
		tip = uniform(rng, 2, 5)
	case o.Rating != nil && *o.Rating >= 4:
		tip = uniform(rng, 1, 3)
	}
	o.Tip = tip
	return tip
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
