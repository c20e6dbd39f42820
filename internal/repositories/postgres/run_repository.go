package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TIMESTAMPTZ NOT NULL,
    num_customers INTEGER NOT NULL,
    num_riders INTEGER NOT NULL,
    simulation_days INTEGER NOT NULL,
    decision_mode TEXT NOT NULL,
    config JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_stats (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    avg_temperature DOUBLE PRECISION NOT NULL,
    max_temperature DOUBLE PRECISION NOT NULL,
    total_orders INTEGER NOT NULL,
    completed_orders INTEGER NOT NULL,
    orders_placed INTEGER NOT NULL,
    orders_delivered INTEGER NOT NULL,
    pending_orders INTEGER NOT NULL,
    avg_rider_health DOUBLE PRECISION NOT NULL,
    avg_rider_happiness DOUBLE PRECISION NOT NULL,
    total_complaints INTEGER NOT NULL,
    active_riders INTEGER NOT NULL,
    government_subsidies DOUBLE PRECISION NOT NULL,
    government_budget DOUBLE PRECISION NOT NULL,
    shelters_built INTEGER NOT NULL,
    platform_revenue DOUBLE PRECISION NOT NULL,
    platform_cash DOUBLE PRECISION NOT NULL,
    shelter_rate DOUBLE PRECISION NOT NULL,
    partial BOOLEAN NOT NULL,
    PRIMARY KEY (run_id, day)
);

CREATE TABLE IF NOT EXISTS rider_stats (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    rider_id TEXT NOT NULL,
    health DOUBLE PRECISION NOT NULL,
    money DOUBLE PRECISION NOT NULL,
    happiness DOUBLE PRECISION NOT NULL,
    orders_completed INTEGER NOT NULL,
    daily_income DOUBLE PRECISION NOT NULL,
    on_duty BOOLEAN NOT NULL,
    complaints INTEGER NOT NULL,
    PRIMARY KEY (run_id, day, rider_id)
);

CREATE TABLE IF NOT EXISTS reports (
    run_id TEXT PRIMARY KEY REFERENCES runs(id) ON DELETE CASCADE,
    completion_rate DOUBLE PRECISION NOT NULL,
    health_grade TEXT NOT NULL,
    happiness_grade TEXT NOT NULL,
    service_grade TEXT NOT NULL,
    aborted BOOLEAN NOT NULL,
    report JSONB NOT NULL
);`

type RunRepository struct {
	pool *pgxpool.Pool
}

func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Open connects to connString and creates the schema if needed.
func Open(ctx context.Context, connString string) (*RunRepository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	r := NewRunRepository(pool)
	if err := r.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *RunRepository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

func (r *RunRepository) CreateRun(ctx context.Context, runID string, config *models.Config) error {
	cfgJSON, err := json.Marshal(config.Redacted())
	if err != nil {
		return err
	}
	query := `
        INSERT INTO runs (id, started_at, num_customers, num_riders, simulation_days, decision_mode, config)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err = r.pool.Exec(ctx, query,
		runID,
		time.Now().UTC(),
		config.NumCustomers,
		config.NumRiders,
		config.SimulationDays,
		config.DecisionMode,
		cfgJSON,
	)
	return err
}

func (r *RunRepository) SaveDailyStats(ctx context.Context, runID string, s models.DailyStats) error {
	query := `
        INSERT INTO daily_stats (
            run_id, day, avg_temperature, max_temperature, total_orders, completed_orders,
            orders_placed, orders_delivered, pending_orders, avg_rider_health, avg_rider_happiness,
            total_complaints, active_riders, government_subsidies, government_budget, shelters_built,
            platform_revenue, platform_cash, shelter_rate, partial
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
        )
        ON CONFLICT (run_id, day) DO UPDATE SET
            avg_temperature = EXCLUDED.avg_temperature,
            max_temperature = EXCLUDED.max_temperature,
            total_orders = EXCLUDED.total_orders,
            completed_orders = EXCLUDED.completed_orders,
            orders_placed = EXCLUDED.orders_placed,
            orders_delivered = EXCLUDED.orders_delivered,
            pending_orders = EXCLUDED.pending_orders,
            avg_rider_health = EXCLUDED.avg_rider_health,
            avg_rider_happiness = EXCLUDED.avg_rider_happiness,
            total_complaints = EXCLUDED.total_complaints,
            active_riders = EXCLUDED.active_riders,
            government_subsidies = EXCLUDED.government_subsidies,
            government_budget = EXCLUDED.government_budget,
            shelters_built = EXCLUDED.shelters_built,
            platform_revenue = EXCLUDED.platform_revenue,
            platform_cash = EXCLUDED.platform_cash,
            shelter_rate = EXCLUDED.shelter_rate,
            partial = EXCLUDED.partial
    `
	_, err := r.pool.Exec(ctx, query,
		runID, s.Day, s.AvgTemperature, s.MaxTemperature, s.TotalOrders, s.CompletedOrders,
		s.OrdersPlaced, s.OrdersDelivered, s.PendingOrders, s.AvgRiderHealth, s.AvgRiderHappiness,
		s.TotalComplaints, s.ActiveRiders, s.GovernmentSubsidies, s.GovernmentBudget, s.SheltersBuilt,
		s.PlatformRevenue, s.PlatformCash, s.ShelterRate, s.Partial,
	)
	return err
}

func (r *RunRepository) SaveRiderStats(ctx context.Context, runID string, stats []models.RiderStats) error {
	if len(stats) == 0 {
		return nil
	}
	query := `
        INSERT INTO rider_stats (
            run_id, day, rider_id, health, money, happiness, orders_completed, daily_income, on_duty, complaints
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (run_id, day, rider_id) DO NOTHING
    `
	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(query,
			runID, s.Day, s.RiderID, s.Health, s.Money, s.Happiness,
			s.OrdersCompleted, s.DailyIncome, s.OnDuty, s.Complaints,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *RunRepository) SaveReport(ctx context.Context, runID string, report *models.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO reports (run_id, completion_rate, health_grade, happiness_grade, service_grade, aborted, report)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (run_id) DO UPDATE SET
            completion_rate = EXCLUDED.completion_rate,
            health_grade = EXCLUDED.health_grade,
            happiness_grade = EXCLUDED.happiness_grade,
            service_grade = EXCLUDED.service_grade,
            aborted = EXCLUDED.aborted,
            report = EXCLUDED.report
    `
	_, err = r.pool.Exec(ctx, query,
		runID,
		report.CompletionRate,
		report.HealthGrade,
		report.HappinessGrade,
		report.ServiceGrade,
		report.Aborted,
		reportJSON,
	)
	return err
}

func (r *RunRepository) DailyStats(ctx context.Context, runID string) ([]models.DailyStats, error) {
	query := `
        SELECT day, avg_temperature, max_temperature, total_orders, completed_orders,
            orders_placed, orders_delivered, pending_orders, avg_rider_health, avg_rider_happiness,
            total_complaints, active_riders, government_subsidies, government_budget, shelters_built,
            platform_revenue, platform_cash, shelter_rate, partial
        FROM daily_stats WHERE run_id = $1 ORDER BY day
    `
	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DailyStats
	for rows.Next() {
		var s models.DailyStats
		if err := rows.Scan(
			&s.Day, &s.AvgTemperature, &s.MaxTemperature, &s.TotalOrders, &s.CompletedOrders,
			&s.OrdersPlaced, &s.OrdersDelivered, &s.PendingOrders, &s.AvgRiderHealth, &s.AvgRiderHappiness,
			&s.TotalComplaints, &s.ActiveRiders, &s.GovernmentSubsidies, &s.GovernmentBudget, &s.SheltersBuilt,
			&s.PlatformRevenue, &s.PlatformCash, &s.ShelterRate, &s.Partial,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *RunRepository) Close() error {
	r.pool.Close()
	return nil
}
