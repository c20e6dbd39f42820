package simulator

import (
	"math/rand"
	"testing"
)

func TestAdvanceHourRollsOverDay(t *testing.T) {
	calls := 0
	gen := func(Rand) []float64 {
		calls++
		return ConstantCurve(float64(30 + calls))(nil)
	}
	env := NewEnvironment(fixedRand{}, WithStartHour(0), WithCurveGenerator(gen))

	for i := 0; i < 23; i++ {
		env.AdvanceHour()
	}
	if env.Day() != 0 || env.Hour() != 23 {
		t.Fatalf("after 23 advances got day %d hour %d", env.Day(), env.Hour())
	}
	env.AdvanceHour()
	if env.Day() != 1 || env.Hour() != 0 {
		t.Fatalf("after 24 advances got day %d hour %d", env.Day(), env.Hour())
	}
	if calls != 2 {
		t.Errorf("curve generated %d times, want 2", calls)
	}
	if got := env.CurrentTemperature(); got != 32 {
		t.Errorf("CurrentTemperature() = %v, want the new day's curve", got)
	}
}

func TestDefaultTemperatureCurve(t *testing.T) {
	curve := DefaultTemperatureCurve(fixedRand{})
	if len(curve) != HoursPerDay {
		t.Fatalf("len(curve) = %d", len(curve))
	}
	if curve[6] != 35 {
		t.Errorf("06:00 = %v, want 35", curve[6])
	}
	if curve[12] != 45 {
		t.Errorf("12:00 = %v, want 45", curve[12])
	}
	for h, temp := range curve {
		if temp < minCurveTemperature || temp > maxCurveTemperature {
			t.Errorf("hour %d: %v outside [32,48] without noise", h, temp)
		}
	}
}

func TestMealTimeWindows(t *testing.T) {
	want := map[int]bool{6: false, 7: true, 8: true, 9: false, 11: true, 13: false, 17: true, 18: true, 19: false, 23: false}
	for hour, meal := range want {
		if got := IsMealHour(hour); got != meal {
			t.Errorf("IsMealHour(%d) = %t, want %t", hour, got, meal)
		}
	}
}

func TestAddShelter(t *testing.T) {
	env := NewEnvironment(fixedRand{}, WithShelterRate(0.75))

	env.AddShelter(0)
	if env.ShelterRate() != 0.75 {
		t.Errorf("AddShelter(0) changed rate to %v", env.ShelterRate())
	}
	env.AddShelter(-0.5)
	if env.ShelterRate() != 0.75 {
		t.Errorf("negative delta changed rate to %v", env.ShelterRate())
	}
	env.AddShelter(0.1)
	if got := env.State().ShelterRate; got < 0.849 || got > 0.851 {
		t.Errorf("rate after +0.1 = %v", got)
	}
	env.AddShelter(0.5)
	if env.ShelterRate() != 1 {
		t.Errorf("rate not capped: %v", env.ShelterRate())
	}
}

func TestOrderDistanceAndCostBounds(t *testing.T) {
	env := NewEnvironment(rand.New(rand.NewSource(7)))
	counts := make(map[float64]int)
	for i := 0; i < 5000; i++ {
		d := env.OrderDistance()
		if d < 1 || d > maxDistanceKm || d != float64(int(d)) {
			t.Fatalf("distance %v out of range", d)
		}
		counts[d]++
		c := env.OrderCost()
		if c < minOrderCost || c > maxOrderCost {
			t.Fatalf("cost %v out of range", c)
		}
	}
	// Zipf mass is concentrated on short trips
	if counts[1] < counts[2] || counts[2] < counts[3] {
		t.Errorf("distance distribution not decreasing: %v", counts)
	}
}

func TestOrderDistanceExtremes(t *testing.T) {
	if d := NewEnvironment(fixedRand{f: 0}).OrderDistance(); d != 1 {
		t.Errorf("u=0 gives %v, want 1", d)
	}
	if d := NewEnvironment(fixedRand{f: 0.999999}).OrderDistance(); d != maxDistanceKm {
		t.Errorf("u→1 gives %v, want %d", d, maxDistanceKm)
	}
}

func TestCurveIsCopied(t *testing.T) {
	env := NewEnvironment(fixedRand{}, WithCurveGenerator(ConstantCurve(40)))
	c := env.Curve()
	c[env.Hour()] = 0
	if env.CurrentTemperature() != 40 {
		t.Error("Curve() exposed internal state")
	}
}
