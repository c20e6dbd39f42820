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
	minPayAdjust  = 0.5
	maxPayAdjust  = 1.5
	minRiderPay   = 0.05
	maxRiderPay   = 0.5
	fireHealth    = 1.0
	maxComplaints = 5
	taxPeriodDays = 7

	fallbackPayRaise   = 1.1
	payRaiseHealth     = 4.0
	payRaiseComplaints = 5
)

// CalcProfit books the commission on orders delivered during day as the
// platform's revenue for that day.
func CalcProfit(p *models.Platform, orders []*models.Order, day int, commission float64) float64 {
	var revenue float64
	for _, o := range orders {
		if o.Delivered && o.DeliveredDay == day {
			revenue += o.Cost * commission
		}
	}
	p.Cash += revenue
	p.DailyRevenue = revenue
	return revenue
}

// ConsiderFireRider takes a rider off duty for good when health or
// complaints cross the firing threshold. It reports whether r was fired by
// this call; an already fired rider is left alone.
func ConsiderFireRider(r *models.Rider) bool {
	if !r.OnDuty {
		return false
	}
	if r.Health < fireHealth || r.ComplaintCount() > maxComplaints {
		r.OnDuty = false
		return true
	}
	return false
}

// PayTax transfers rate × daily revenue from the platform to the government.
func PayTax(p *models.Platform, g *models.Government, rate float64) float64 {
	tax := p.DailyRevenue * rate
	p.Cash -= tax
	ReceiveTax(g, tax)
	return tax
}

func taxDue(day int) bool {
	return day > 0 && day%taxPeriodDays == 0
}

// AdjustPay scales the rider pay rate by a bounded multiplier.
func AdjustPay(p *models.Platform, multiplier float64) float64 {
	m := math.Max(minPayAdjust, math.Min(maxPayAdjust, multiplier))
	p.RiderPayRate = math.Max(minRiderPay, math.Min(maxRiderPay, p.RiderPayRate*m))
	return p.RiderPayRate
}

// needsPayRaise is the advisor-mode fallback for pay: a raise when riders are
// worn down or complaining. Rule mode keeps the configured rate fixed.
func needsPayRaise(avgHealth float64, complaints int) bool {
	return avgHealth < payRaiseHealth || complaints > payRaiseComplaints
}

func (s *Simulator) platformTurn(ctx context.Context, env models.EnvironmentState) models.AgentLog {
	p := s.Platform
	entry := s.newLog(env, models.AgentPlatform, p.ID)

	active, complaints, avgHealth := riderSummary(s.Riders)
	entry.Observation = fmt.Sprintf("%d riders on duty, %d delivered today, average health %.1f, %d complaints",
		active, s.dayDelivered, avgHealth, complaints)

	var actions []string
	decision := s.advise(ctx, func() advisor.Request {
		return advisor.PlatformRequest(p, active, s.dayDelivered, avgHealth, complaints)
	})
	if decision.Usable() {
		entry.DecisionSource = models.DecisionSourceLLM
		entry.Thought = decision.Thought()
		if decision.AdjustPay != nil && *decision.AdjustPay != 1.0 {
			rate := AdjustPay(p, *decision.AdjustPay)
			actions = append(actions, fmt.Sprintf("pay rate now %.2f", rate))
		}
		if decision.FireRiders != nil && *decision.FireRiders {
			actions = append(actions, "dismissal requested")
		}
	} else {
		entry.DecisionSource = s.fallbackSource()
		entry.Thought = decision.RuleThought("rule: book revenue, review riders, remit weekly tax")
		if s.advisor != nil && needsPayRaise(avgHealth, complaints) {
			rate := AdjustPay(p, fallbackPayRaise)
			actions = append(actions, fmt.Sprintf("pay rate now %.2f", rate))
		}
	}

	revenue := CalcProfit(p, s.Orders, env.Day, s.Config.PlatformCommission)
	actions = append(actions, fmt.Sprintf("revenue %.1f", revenue))

	fired := 0
	for _, r := range s.Riders {
		if ConsiderFireRider(r) {
			fired++
		}
	}
	if fired > 0 {
		actions = append(actions, fmt.Sprintf("fired %d riders", fired))
	}

	if taxDue(env.Day) {
		tax := PayTax(p, s.Government, s.Config.TaxRate)
		actions = append(actions, fmt.Sprintf("paid tax %.1f", tax))
	}

	entry.Action = strings.Join(actions, "; ")
	return entry
}

// riderSummary returns on-duty count, total complaints and mean health.
func riderSummary(riders []*models.Rider) (active, complaints int, avgHealth float64) {
	if len(riders) == 0 {
		return 0, 0, models.MaxHealth
	}
	var health float64
	for _, r := range riders {
		if r.OnDuty {
			active++
		}
		complaints += r.ComplaintCount()
		health += r.Health
	}
	return active, complaints, health / float64(len(riders))
}
