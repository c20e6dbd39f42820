package simulator

import (
	"context"
	"log"
	"math"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

// Snapshot rolls the current state up into a DailyStats record for day
// without resetting anything.
func (s *Simulator) Snapshot(day int, partial bool) models.DailyStats {
	stats := models.DailyStats{
		Day:                 day,
		OrdersPlaced:        s.dayPlaced,
		OrdersDelivered:     s.dayDelivered,
		TotalOrders:         len(s.Orders),
		GovernmentSubsidies: s.Government.SubsidiesPaid,
		GovernmentBudget:    s.Government.Budget,
		SheltersBuilt:       s.Government.SheltersBuilt,
		PlatformRevenue:     s.Platform.DailyRevenue,
		PlatformCash:        s.Platform.Cash,
		ShelterRate:         s.Env.ShelterRate(),
		Partial:             partial,
	}

	if len(s.dayTemps) > 0 {
		sum, hottest := 0.0, math.Inf(-1)
		for _, t := range s.dayTemps {
			sum += t
			hottest = math.Max(hottest, t)
		}
		stats.AvgTemperature = sum / float64(len(s.dayTemps))
		stats.MaxTemperature = hottest
	}

	for _, o := range s.Orders {
		switch {
		case o.Delivered:
			stats.CompletedOrders++
		case o.IsPending():
			stats.PendingOrders++
		}
	}

	var health, happiness float64
	for _, r := range s.Riders {
		health += r.Health
		happiness += r.Happiness
		stats.TotalComplaints += r.ComplaintCount()
		if r.OnDuty {
			stats.ActiveRiders++
		}
	}
	if n := len(s.Riders); n > 0 {
		stats.AvgRiderHealth = health / float64(n)
		stats.AvgRiderHappiness = happiness / float64(n)
	}
	return stats
}

func (s *Simulator) riderSnapshots(day int) []models.RiderStats {
	out := make([]models.RiderStats, 0, len(s.Riders))
	for _, r := range s.Riders {
		out = append(out, models.RiderStats{
			Day:             day,
			RiderID:         r.ID,
			Health:          r.Health,
			Money:           r.Money,
			Happiness:       r.Happiness,
			OrdersCompleted: r.OrdersCompleted,
			DailyIncome:     r.DailyIncome,
			OnDuty:          r.OnDuty,
			Complaints:      r.ComplaintCount(),
		})
	}
	return out
}

// aggregateDay records and publishes the rollup for day, then resets the
// per-day counters of the platform, the riders and the simulator.
func (s *Simulator) aggregateDay(ctx context.Context, day int, partial bool) {
	stats := s.Snapshot(day, partial)
	riders := s.riderSnapshots(day)

	s.DailyStats = append(s.DailyStats, stats)
	s.RiderStats = append(s.RiderStats, riders...)

	for _, rs := range riders {
		s.emit(models.TopicRiderStats, rs)
	}
	s.emit(models.TopicDailyStats, stats)

	if s.store != nil {
		if err := s.store.SaveDailyStats(ctx, s.RunID, stats); err != nil {
			log.Printf("Failed to save daily stats for day %d: %v", day, err)
		}
		if err := s.store.SaveRiderStats(ctx, s.RunID, riders); err != nil {
			log.Printf("Failed to save rider stats for day %d: %v", day, err)
		}
	}

	if !s.Config.Quiet {
		log.Printf("Day %d: %.1f°C avg, %d orders placed, %d delivered, %d pending, health %.1f, complaints %d, shelter %.2f",
			day, stats.AvgTemperature, stats.OrdersPlaced, stats.OrdersDelivered, stats.PendingOrders,
			stats.AvgRiderHealth, stats.TotalComplaints, stats.ShelterRate)
	}

	s.Platform.DailyRevenue = 0
	for _, r := range s.Riders {
		r.DailyIncome = 0
	}
	s.dayTemps = s.dayTemps[:0]
	s.dayPlaced, s.dayDelivered = 0, 0
}
