package simulator

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

const keepPoliciesSuggestion = "Conditions are stable: keep current policies and keep monitoring."

type gradeBand struct {
	min   float64
	grade string
}

var (
	healthBands     = []gradeBand{{8, "excellent"}, {6, "good"}, {4, "fair"}}
	happinessBands  = []gradeBand{{7, "excellent"}, {5, "good"}, {3, "fair"}}
	completionBands = []gradeBand{{0.9, "excellent"}, {0.8, "good"}, {0.7, "fair"}}
)

func grade(v float64, bands []gradeBand) string {
	for _, b := range bands {
		if v >= b.min {
			return b.grade
		}
	}
	return "poor"
}

func HealthGrade(avg float64) string    { return grade(avg, healthBands) }
func HappinessGrade(avg float64) string { return grade(avg, happinessBands) }
func ServiceGrade(rate float64) string  { return grade(rate, completionBands) }

// Suggestions derives policy advice from the final figures.
func Suggestions(r *models.Report) []string {
	var out []string
	if r.AvgFinalHealth < 5 {
		out = append(out, "Rider health is poor: build more shelters and cap working hours in extreme heat.")
	}
	if float64(r.TotalComplaints) > 2*float64(r.SimulationDays) {
		out = append(out, "Complaints are frequent: raise heat subsidies or improve working conditions.")
	}
	if r.CompletionRate < 0.8 {
		out = append(out, "Completion rate is low: balance workload against health protection.")
	}
	if r.FinalShelterRate < 0.5 {
		out = append(out, "Shelter coverage is below 50%: invest further in shade and rest infrastructure.")
	}
	if float64(r.ActiveRiders) < 0.8*float64(r.NumRiders) {
		out = append(out, "Too many riders have left: improve pay and protection to retain the workforce.")
	}
	if len(out) == 0 {
		out = append(out, keepPoliciesSuggestion)
	}
	return out
}

// BuildReport derives the final report from the last daily aggregate. When
// nothing has been aggregated yet the live state is rolled up instead.
func (s *Simulator) BuildReport(runErr error) *models.Report {
	var last models.DailyStats
	if n := len(s.DailyStats); n > 0 {
		last = s.DailyStats[n-1]
	} else {
		last = s.Snapshot(s.Env.Day(), true)
	}

	completed := 0
	for _, d := range s.DailyStats {
		if !d.Partial {
			completed++
		}
	}

	r := &models.Report{
		RunID:             s.RunID,
		SimulationDays:    s.Config.SimulationDays,
		DaysCompleted:     completed,
		TotalOrders:       last.TotalOrders,
		CompletedOrders:   last.CompletedOrders,
		CompletionRate:    float64(last.CompletedOrders) / float64(maxInt(1, last.TotalOrders)),
		AvgFinalHealth:    last.AvgRiderHealth,
		AvgFinalHappiness: last.AvgRiderHappiness,
		TotalComplaints:   last.TotalComplaints,
		TotalSubsidies:    last.GovernmentSubsidies,
		SheltersBuilt:     last.SheltersBuilt,
		FinalShelterRate:  last.ShelterRate,
		ActiveRiders:      last.ActiveRiders,
		NumRiders:         len(s.Riders),
		PlatformCash:      last.PlatformCash,
		GovernmentBudget:  last.GovernmentBudget,
		Aborted:           runErr != nil,
	}
	if runErr != nil {
		r.FailureDescription = runErr.Error()
	}
	r.HealthGrade = HealthGrade(r.AvgFinalHealth)
	r.HappinessGrade = HappinessGrade(r.AvgFinalHappiness)
	r.ServiceGrade = ServiceGrade(r.CompletionRate)
	r.Suggestions = Suggestions(r)
	return r
}

// FormatReport writes a human-readable summary of r.
func FormatReport(w io.Writer, r *models.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Simulation report %s ===\n", r.RunID)
	fmt.Fprintf(&b, "Days simulated:        %d of %d\n", r.DaysCompleted, r.SimulationDays)
	if r.Aborted {
		fmt.Fprintf(&b, "Stopped early:         %s\n", r.FailureDescription)
	}
	fmt.Fprintf(&b, "Orders:                %s placed, %s delivered (%.1f%%)\n",
		humanize.Comma(int64(r.TotalOrders)), humanize.Comma(int64(r.CompletedOrders)), r.CompletionRate*100)
	fmt.Fprintf(&b, "Rider health:          %.1f/10 (%s)\n", r.AvgFinalHealth, r.HealthGrade)
	fmt.Fprintf(&b, "Rider happiness:       %.1f/10 (%s)\n", r.AvgFinalHappiness, r.HappinessGrade)
	fmt.Fprintf(&b, "Service:               %s\n", r.ServiceGrade)
	fmt.Fprintf(&b, "Riders on duty:        %d of %d\n", r.ActiveRiders, r.NumRiders)
	fmt.Fprintf(&b, "Complaints:            %s\n", humanize.Comma(int64(r.TotalComplaints)))
	fmt.Fprintf(&b, "Subsidies paid:        %s\n", humanize.CommafWithDigits(r.TotalSubsidies, 2))
	fmt.Fprintf(&b, "Shelters built:        %d (coverage %.2f)\n", r.SheltersBuilt, r.FinalShelterRate)
	fmt.Fprintf(&b, "Platform cash:         %s\n", humanize.CommafWithDigits(r.PlatformCash, 2))
	fmt.Fprintf(&b, "Government budget:     %s\n", humanize.CommafWithDigits(r.GovernmentBudget, 2))
	b.WriteString("Suggestions:\n")
	for _, sug := range r.Suggestions {
		fmt.Fprintf(&b, "  - %s\n", sug)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
