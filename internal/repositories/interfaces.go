package repositories

import (
	"context"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

// RunRepository persists the records of simulation runs.
type RunRepository interface {
	CreateRun(ctx context.Context, runID string, config *models.Config) error
	SaveDailyStats(ctx context.Context, runID string, stats models.DailyStats) error
	SaveRiderStats(ctx context.Context, runID string, stats []models.RiderStats) error
	SaveReport(ctx context.Context, runID string, report *models.Report) error
	DailyStats(ctx context.Context, runID string) ([]models.DailyStats, error)
	Close() error
}
