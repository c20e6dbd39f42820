package simulator

import (
	"math"
	"testing"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

func TestOrderProbability(t *testing.T) {
	c := &models.Customer{}
	tests := []struct {
		name string
		env  models.EnvironmentState
		want float64
	}{
		{"cool meal time", models.EnvironmentState{Temperature: 30, IsMealTime: true}, 0.45},
		{"hot meal time", models.EnvironmentState{Temperature: 40, IsMealTime: true}, 0.225},
		{"temperature floor", models.EnvironmentState{Temperature: 60, IsMealTime: true}, 0.045},
		{"off meal time", models.EnvironmentState{Temperature: 30}, 0.09},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrderProbability(c, tt.env); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("OrderProbability() = %v, want %v", got, tt.want)
			}
		})
	}

	c.PushRating(1)
	got := OrderProbability(c, models.EnvironmentState{Temperature: 30, IsMealTime: true})
	if math.Abs(got-0.09) > 1e-9 {
		t.Errorf("low rating probability = %v, want 0.09", got)
	}
}

func TestCanOrderGap(t *testing.T) {
	c := &models.Customer{}
	meal := models.EnvironmentState{Day: 0, Hour: 7, IsMealTime: true}
	if !canOrder(c, meal) {
		t.Fatal("first order refused")
	}
	c.LastOrderDay, c.LastOrderHour, c.HasOrdered = 0, 7, true
	if canOrder(c, models.EnvironmentState{Day: 0, Hour: 8, IsMealTime: true}) {
		t.Error("ordered again after 1 hour")
	}
	if !canOrder(c, models.EnvironmentState{Day: 0, Hour: 11, IsMealTime: true}) {
		t.Error("refused after 4 hours")
	}
	if canOrder(c, models.EnvironmentState{Day: 1, Hour: 3}) {
		t.Error("ordered outside a meal window")
	}
}

func TestRateOrder(t *testing.T) {
	tests := []struct {
		health float64
		jitter int
		want   int
	}{
		{10, 1, 5},
		{10, 2, 5},
		{4, 1, 4},
		{2, 1, 3},
		{2, 0, 2},
		{0, 0, 2},
	}
	for _, tt := range tests {
		c := &models.Customer{}
		o := &models.Order{}
		got := RateOrder(c, o, tt.health, fixedRand{n: tt.jitter})
		if got != tt.want {
			t.Errorf("RateOrder(health %v, jitter %d) = %d, want %d", tt.health, tt.jitter-1, got, tt.want)
		}
		if o.Rating == nil || *o.Rating != got || c.AverageRating() != float64(got) {
			t.Errorf("rating %d not recorded on order and customer", got)
		}
	}
}

func TestRatingWindow(t *testing.T) {
	c := &models.Customer{}
	for _, r := range []int{1, 1, 5, 5, 5, 5, 5} {
		c.PushRating(r)
	}
	if len(c.LastRatings) != models.RatingWindowSize || c.AverageRating() != 5 {
		t.Errorf("window = %v", c.LastRatings)
	}
}

func TestDecideTip(t *testing.T) {
	good := 4
	poor := 2
	if tip := DecideTip(&models.Order{Rating: &poor}, 2, fixedRand{f: 0.5}); tip != 3.5 {
		t.Errorf("compassion tip = %v, want 3.5", tip)
	}
	if tip := DecideTip(&models.Order{Rating: &good}, 8, fixedRand{f: 0.5}); tip != 2 {
		t.Errorf("good rating tip = %v, want 2", tip)
	}
	if tip := DecideTip(&models.Order{Rating: &poor}, 8, fixedRand{f: 0.5}); tip != 0 {
		t.Errorf("poor rating tip = %v, want 0", tip)
	}
}

func TestDecideAction(t *testing.T) {
	tests := []struct {
		name      string
		health    float64
		temp      float64
		available int
		draw      float64
		offDuty   bool
		want      string
	}{
		{"forced rest", 1.5, 30, 3, 0, false, models.ActionRest},
		{"heat rest", 5, 43, 3, 0.5, false, models.ActionRest},
		{"deliver", 10, 35, 1, 0.99, false, models.ActionDeliver},
		{"no orders rests", 10, 35, 0, 0, false, models.ActionRest},
		{"exhausted complains", 2.5, 35, 0, 0.2, false, models.ActionComplain},
		{"exhausted rests", 2.5, 35, 3, 0.5, false, models.ActionRest},
		{"unlucky draw rests", 5, 35, 2, 0.6, false, models.ActionRest},
		{"fired rider off duty", 10, 35, 3, 0, true, models.ActionOffDuty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.Rider{Health: tt.health, OnDuty: !tt.offDuty}
			got := DecideAction(r, models.EnvironmentState{Temperature: tt.temp}, tt.available, fixedRand{f: tt.draw})
			if got != tt.want {
				t.Errorf("DecideAction() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHealthLossExtremeHeat(t *testing.T) {
	if loss := HealthLoss(state(45, 0), 10); loss != 20 {
		t.Fatalf("HealthLoss(45°C, 10km) = %v, want 20", loss)
	}
	if loss := HealthLoss(state(30, 0), 10); loss != 0 {
		t.Errorf("HealthLoss below 35°C = %v, want 0", loss)
	}
	if loss := HealthLoss(state(45, 0.5), 10); loss != 10 {
		t.Errorf("shelter did not halve loss: %v", loss)
	}

	r := &models.Rider{ID: "rider_0", Health: 10}
	o := &models.Order{Cost: 50, Distance: 10, Tip: 2}
	income := DeliverOrder(r, o, state(45, 0), 0.2)
	if r.Health != 0 {
		t.Errorf("health = %v, want clamped to 0", r.Health)
	}
	if income != 12 || r.Money != 12 || r.DailyIncome != 12 {
		t.Errorf("income %v money %v daily %v, want 12", income, r.Money, r.DailyIncome)
	}
	if !o.Delivered || o.RiderID != "rider_0" || o.IsPending() {
		t.Errorf("order not marked delivered: %+v", o)
	}
	if r.Happiness < 0 || r.Happiness > models.MaxHappiness {
		t.Errorf("happiness %v out of range", r.Happiness)
	}
}

func TestRest(t *testing.T) {
	r := &models.Rider{Health: 5}
	if got := Rest(r, state(35, 0)); got != 0.6 {
		t.Errorf("Rest() = %v, want 0.6", got)
	}
	if got := Rest(r, state(41, 0)); got != 0.3 {
		t.Errorf("Rest() above 40°C = %v, want 0.3", got)
	}
	r.Health = 9.9
	Rest(r, state(30, 0))
	if r.Health != models.MaxHealth {
		t.Errorf("health %v not capped", r.Health)
	}
}

func TestConsiderFireRider(t *testing.T) {
	r := &models.Rider{Health: 0.5, OnDuty: true, Complaints: make([]models.Complaint, 2)}
	if !ConsiderFireRider(r) {
		t.Fatal("rider with health 0.5 was not fired")
	}
	if r.OnDuty {
		t.Error("fired rider still on duty")
	}
	if ConsiderFireRider(r) {
		t.Error("second call fired the rider again")
	}
	r.Health = 10
	if ConsiderFireRider(r) || r.OnDuty {
		t.Error("firing was reversed")
	}

	healthy := &models.Rider{Health: 8, OnDuty: true, Complaints: make([]models.Complaint, 6)}
	if !ConsiderFireRider(healthy) {
		t.Error("rider with 6 complaints kept")
	}
	ok := &models.Rider{Health: 1, OnDuty: true, Complaints: make([]models.Complaint, 5)}
	if ConsiderFireRider(ok) {
		t.Error("rider at the thresholds fired")
	}
}

func TestCalcProfitIsDayScoped(t *testing.T) {
	p := &models.Platform{Cash: 100}
	orders := []*models.Order{
		{Cost: 20, Delivered: true, DeliveredDay: 0},
		{Cost: 30, Delivered: true, DeliveredDay: 1},
		{Cost: 40, Delivered: true, DeliveredDay: 1},
		{Cost: 50},
	}
	if got := CalcProfit(p, orders, 1, 0.8); got != 56 {
		t.Errorf("CalcProfit() = %v, want 56", got)
	}
	if p.Cash != 156 || p.DailyRevenue != 56 {
		t.Errorf("cash %v revenue %v", p.Cash, p.DailyRevenue)
	}
}

func TestPayTax(t *testing.T) {
	p := &models.Platform{Cash: 1000, DailyRevenue: 200}
	g := &models.Government{}
	if tax := PayTax(p, g, 0.1); tax != 20 {
		t.Errorf("PayTax() = %v", tax)
	}
	if p.Cash != 980 || g.Budget != 20 {
		t.Errorf("cash %v budget %v", p.Cash, g.Budget)
	}
	for day, due := range map[int]bool{0: false, 3: false, 7: true, 14: true, 15: false} {
		if taxDue(day) != due {
			t.Errorf("taxDue(%d) = %t", day, !due)
		}
	}
}

func TestAdjustPay(t *testing.T) {
	p := &models.Platform{RiderPayRate: 0.2}
	if got := AdjustPay(p, 1.2); math.Abs(got-0.24) > 1e-9 {
		t.Errorf("AdjustPay(1.2) = %v", got)
	}
	p.RiderPayRate = 0.2
	if got := AdjustPay(p, 10); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("multiplier not clamped: %v", got)
	}
	p.RiderPayRate = 0.45
	if got := AdjustPay(p, 1.5); got != 0.5 {
		t.Errorf("rate not capped: %v", got)
	}
	p.RiderPayRate = 0.06
	if got := AdjustPay(p, 0.1); got != 0.05 {
		t.Errorf("rate not floored: %v", got)
	}
}

func TestGovernmentRules(t *testing.T) {
	for temp, want := range map[float64]float64{45: 50, 42.5: 50, 42: 30, 39: 30, 38: 0, 30: 0} {
		if got := SubsidyAmount(temp); got != want {
			t.Errorf("SubsidyAmount(%v) = %v, want %v", temp, got, want)
		}
	}

	g := &models.Government{Budget: 40}
	riders := []*models.Rider{{OnDuty: true}, {OnDuty: false}, {OnDuty: true}}
	if paid := ProvideSubsidy(g, riders, 30); paid != 60 {
		t.Errorf("ProvideSubsidy() = %v, want 60", paid)
	}
	if g.Budget != -20 || g.SubsidiesPaid != 60 || riders[1].Money != 0 {
		t.Errorf("budget %v paid %v off-duty money %v", g.Budget, g.SubsidiesPaid, riders[1].Money)
	}

	g = &models.Government{Budget: 1000}
	hot := models.EnvironmentState{Temperature: 41, ShelterRate: 0.5}
	if !ShouldBuildShelter(g, hot, 4, 1000) {
		t.Error("shelter not built when every condition holds")
	}
	if ShouldBuildShelter(g, hot, 3, 1000) {
		t.Error("shelter built with only 3 complaints")
	}
	if ShouldBuildShelter(g, models.EnvironmentState{Temperature: 41, ShelterRate: 0.8}, 4, 1000) {
		t.Error("shelter built at 0.8 coverage")
	}
	if !BuildShelter(g, 1000) || g.Budget != 0 || g.SheltersBuilt != 1 {
		t.Errorf("BuildShelter left %+v", g)
	}
	if BuildShelter(g, 1000) {
		t.Error("built without budget")
	}
}
