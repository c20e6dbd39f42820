package simulator

import (
	"math"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

const (
	HoursPerDay = 24

	baseTemperature      = 35.0
	temperatureAmplitude = 10.0
	minCurveTemperature  = 32.0
	maxCurveTemperature  = 48.0
	temperatureNoiseStd  = 2.0

	zipfExponent   = 1.5
	zeta15         = 2.612375348685488 // Riemann zeta(1.5)
	maxDistanceKm  = 10
	minOrderCost   = 15.0
	maxOrderCost   = 50.0
	maxShelterRate = 1.0
)

// mealWindows are half-open [start, end) hour ranges.
var mealWindows = [][2]int{{7, 9}, {11, 13}, {17, 19}}

// distanceCDF is the cumulative distribution of a Zipf(1.5) draw with every
// value above maxDistanceKm folded onto maxDistanceKm.
var distanceCDF = func() [maxDistanceKm]float64 {
	var cdf [maxDistanceKm]float64
	acc := 0.0
	for k := 1; k < maxDistanceKm; k++ {
		acc += math.Pow(float64(k), -zipfExponent) / zeta15
		cdf[k-1] = acc
	}
	cdf[maxDistanceKm-1] = 1.0
	return cdf
}()

// CurveGenerator produces the 24 hourly temperatures of one day.
type CurveGenerator func(rng Rand) []float64

// DefaultTemperatureCurve is a sine-shaped heatwave day peaking at 18:00,
// clamped to [32,48] before per-hour gaussian noise is added.
func DefaultTemperatureCurve(rng Rand) []float64 {
	curve := make([]float64, HoursPerDay)
	for h := range curve {
		base := baseTemperature + temperatureAmplitude*math.Sin(float64(h-6)*math.Pi/12)
		base = math.Max(minCurveTemperature, math.Min(maxCurveTemperature, base))
		curve[h] = base + rng.NormFloat64()*temperatureNoiseStd
	}
	return curve
}

// ConstantCurve returns a generator that always yields temp for every hour.
func ConstantCurve(temp float64) CurveGenerator {
	return func(Rand) []float64 {
		curve := make([]float64, HoursPerDay)
		for h := range curve {
			curve[h] = temp
		}
		return curve
	}
}

func IsMealHour(hour int) bool {
	for _, w := range mealWindows {
		if hour >= w[0] && hour < w[1] {
			return true
		}
	}
	return false
}

// Environment owns the simulated clock, the day's temperature curve and the
// shelter/rest infrastructure coverage.
type Environment struct {
	day         int
	hour        int
	shelterRate float64
	restRate    float64
	curve       []float64

	rng      Rand
	generate CurveGenerator
	mealTime func(hour int) bool
}

type EnvironmentOption func(*Environment)

func WithStartHour(hour int) EnvironmentOption {
	return func(e *Environment) { e.hour = hour }
}

func WithShelterRate(rate float64) EnvironmentOption {
	return func(e *Environment) { e.shelterRate = math.Min(maxShelterRate, math.Max(0, rate)) }
}

func WithRestRate(rate float64) EnvironmentOption {
	return func(e *Environment) { e.restRate = rate }
}

func WithCurveGenerator(gen CurveGenerator) EnvironmentOption {
	return func(e *Environment) { e.generate = gen }
}

// WithMealTime overrides the meal-time predicate.
func WithMealTime(fn func(hour int) bool) EnvironmentOption {
	return func(e *Environment) { e.mealTime = fn }
}

func NewEnvironment(rng Rand, opts ...EnvironmentOption) *Environment {
	env := &Environment{
		hour:        6,
		shelterRate: 0.15,
		restRate:    0.6,
		rng:         rng,
		generate:    DefaultTemperatureCurve,
		mealTime:    IsMealHour,
	}
	for _, opt := range opts {
		opt(env)
	}
	env.curve = env.generate(env.rng)
	return env
}

func (e *Environment) Day() int             { return e.day }
func (e *Environment) Hour() int            { return e.hour }
func (e *Environment) ShelterRate() float64 { return e.shelterRate }
func (e *Environment) RestRate() float64    { return e.restRate }

// Curve returns a copy of the active day's temperature curve.
func (e *Environment) Curve() []float64 {
	return append([]float64(nil), e.curve...)
}

// AdvanceHour moves the clock forward one hour, rolling over to a new day
// with a freshly generated temperature curve at midnight.
func (e *Environment) AdvanceHour() {
	e.hour++
	if e.hour >= HoursPerDay {
		e.hour = 0
		e.day++
		e.curve = e.generate(e.rng)
	}
}

func (e *Environment) CurrentTemperature() float64 {
	return e.curve[e.hour%len(e.curve)]
}

func (e *Environment) IsMealTime() bool {
	return e.mealTime(e.hour)
}

// AddShelter raises shelter coverage immediately, capped at 1.0. Negative
// deltas are ignored so coverage never shrinks.
func (e *Environment) AddShelter(delta float64) {
	if delta <= 0 {
		return
	}
	e.shelterRate = math.Min(maxShelterRate, e.shelterRate+delta)
}

// OrderDistance samples a delivery distance in km from a Zipf(1.5)
// distribution, capped at 10 and floored at 1.
func (e *Environment) OrderDistance() float64 {
	u := e.rng.Float64()
	for i, p := range distanceCDF {
		if u < p {
			return float64(i + 1)
		}
	}
	return maxDistanceKm
}

func (e *Environment) OrderCost() float64 {
	return uniform(e.rng, minOrderCost, maxOrderCost)
}

func (e *Environment) State() models.EnvironmentState {
	return models.EnvironmentState{
		Day:         e.day,
		Hour:        e.hour,
		Temperature: e.CurrentTemperature(),
		ShelterRate: e.shelterRate,
		RestRate:    e.restRate,
		IsMealTime:  e.IsMealTime(),
	}
}
