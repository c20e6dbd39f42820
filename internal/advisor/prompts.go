package advisor

import (
	"fmt"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

const customerSystem = `You are a sensible food-delivery customer deciding whether to order.
Consider how the heat affects going out to eat, how good recent service has been,
and whether it is a meal time. Keep the analysis short and explain your reasoning.`

const riderSystem = `You are a food-delivery rider whose first goal is to maximise income.
Health matters, but earning money means taking some risk.

Your state:
- health: %.1f/10
- money: %.0f
- happiness: %.1f/10

Guidelines:
- Take orders whenever they exist and your health is not dangerous (below 2).
- Heat is normal in this city; you cannot stop working only because it is hot.
- Rest first only when your health is very poor.
- No work means no income.

Choose your next action: deliver, rest or complain.`

const governmentSystem = `You are the government official responsible for protecting outdoor workers.
Protect riders' health and safety, allocate public money sensibly and keep
the delivery service running. Decide whether to pay a heat subsidy or build
shelter infrastructure.`

const platformSystem = `You run operations for a food-delivery platform.
Maintain service quality, manage the rider workforce and balance revenue
against social responsibility. Make an operational decision from the data.`

func CustomerRequest(id string, env models.EnvironmentState, avgRating float64) Request {
	return Request{
		Agent:   models.AgentCustomer,
		AgentID: id,
		System:  customerSystem,
		User: fmt.Sprintf(`Current conditions:
- temperature: %.1f°C
- hour: %d
- meal time: %t
- my average recent rating: %.1f

Should I order delivery? Consider:
1. how convenient it is to go out in this heat
2. meal times suit ordering better
3. recent ratings reflect service quality

Answer {"order": true/false, "concern_level": "high/medium/low", "reasoning": "..."}`,
			env.Temperature, env.Hour, env.IsMealTime, avgRating),
	}
}

func RiderRequest(r *models.Rider, env models.EnvironmentState, available int) Request {
	return Request{
		Agent:   models.AgentRider,
		AgentID: r.ID,
		System:  fmt.Sprintf(riderSystem, r.Health, r.Money, r.Happiness),
		User: fmt.Sprintf(`Working conditions:
- temperature: %.1f°C (extreme heat above 40°C)
- shelter coverage: %.2f
- orders available: %d
- my health: %.1f/10
- my money: %.0f

Pick the best action:
1. deliver - take an order (income, but may hurt health)
2. rest - recover health (no income)
3. complain - complain about working conditions

Answer {"action": "deliver/rest/complain", "risk_level": "high/medium/low", "reasoning": "..."}`,
			env.Temperature, env.ShelterRate, available, r.Health, r.Money),
	}
}

func GovernmentRequest(g *models.Government, env models.EnvironmentState, complaints, unhealthy int) Request {
	return Request{
		Agent:   models.AgentGovernment,
		AgentID: g.ID,
		System:  governmentSystem,
		User: fmt.Sprintf(`Current situation:
- temperature: %.1f°C
- rider complaints: %d
- riders in poor health: %d
- shelter coverage: %.2f
- budget: %.0f

Set policy:
1. heat subsidy: 30-50 per rider above 38°C, 50-100 above 42°C
2. build shelter: worth it when complaints are high and coverage is below 0.8, costs 1000
3. assess urgency

Answer {"subsidy_amount": number, "build_shelter": true/false, "urgency": "high/medium/low", "reasoning": "..."}`,
			env.Temperature, complaints, unhealthy, env.ShelterRate, g.Budget),
	}
}

func PlatformRequest(p *models.Platform, active, completed int, avgHealth float64, complaints int) Request {
	return Request{
		Agent:   models.AgentPlatform,
		AgentID: p.ID,
		System:  platformSystem,
		User: fmt.Sprintf(`Operations today:
- riders on duty: %d
- orders completed today: %d
- average rider health: %.1f/10
- complaints received: %d
- platform cash: %.0f

Decide:
1. pay adjustment: raise or lower the rider pay multiplier
2. staffing: whether to dismiss poor performers
3. risk: how risky operations currently are

Answer {"adjust_pay": 1.0, "fire_riders": false, "risk_level": "low", "reasoning": "..."}`,
			active, completed, avgHealth, complaints, p.Cash),
	}
}
