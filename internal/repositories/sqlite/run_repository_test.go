package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

func openTemp(t *testing.T) *RunRepository {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRunRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)

	cfg := models.DefaultConfig()
	cfg.LLM.APIKey = "secret"
	if err := repo.CreateRun(ctx, "run-1", cfg); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	for day := 0; day < 3; day++ {
		s := models.DailyStats{Day: day, AvgTemperature: 40 + float64(day), TotalOrders: day * 10, ActiveRiders: 3}
		if err := repo.SaveDailyStats(ctx, "run-1", s); err != nil {
			t.Fatalf("SaveDailyStats(%d) error = %v", day, err)
		}
	}
	// a second write for the same day replaces the first
	if err := repo.SaveDailyStats(ctx, "run-1", models.DailyStats{Day: 2, TotalOrders: 99, Partial: true}); err != nil {
		t.Fatalf("SaveDailyStats() error = %v", err)
	}

	got, err := repo.DailyStats(ctx, "run-1")
	if err != nil {
		t.Fatalf("DailyStats() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("DailyStats() returned %d rows, want 3", len(got))
	}
	if got[0].Day != 0 || got[1].AvgTemperature != 41 {
		t.Errorf("unexpected rows: %+v", got[:2])
	}
	if got[2].TotalOrders != 99 || !got[2].Partial {
		t.Errorf("day 2 = %+v, want replaced partial row", got[2])
	}

	other, err := repo.DailyStats(ctx, "run-2")
	if err != nil {
		t.Fatalf("DailyStats(run-2) error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("DailyStats(run-2) = %d rows, want 0", len(other))
	}
}

func TestSaveRiderStatsAndReport(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)

	stats := []models.RiderStats{
		{Day: 0, RiderID: "rider_0", Health: 9.5, Money: 1010, OnDuty: true},
		{Day: 0, RiderID: "rider_1", Health: 4, Money: 990, OnDuty: false, Complaints: 2},
		{Day: 1, RiderID: "rider_0", Health: 8, Money: 1030, OnDuty: true, OrdersCompleted: 3},
	}
	if err := repo.SaveRiderStats(ctx, "run-1", stats); err != nil {
		t.Fatalf("SaveRiderStats() error = %v", err)
	}

	history, err := repo.RiderHistory(ctx, "run-1", "rider_0")
	if err != nil {
		t.Fatalf("RiderHistory() error = %v", err)
	}
	if len(history) != 2 || history[1].OrdersCompleted != 3 {
		t.Errorf("RiderHistory() = %+v", history)
	}

	report := &models.Report{
		RunID:          "run-1",
		CompletionRate: 0.85,
		HealthGrade:    "good",
		Suggestions:    []string{"build more shelters"},
	}
	if err := repo.SaveReport(ctx, "run-1", report); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}
	stored, err := repo.Report(ctx, "run-1")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if stored.CompletionRate != 0.85 || len(stored.Suggestions) != 1 {
		t.Errorf("Report() = %+v", stored)
	}
}
