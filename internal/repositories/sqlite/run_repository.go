// Package sqlite stores simulation runs in a local SQLite file.
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	num_customers INTEGER NOT NULL,
	num_riders INTEGER NOT NULL,
	simulation_days INTEGER NOT NULL,
	decision_mode TEXT NOT NULL,
	config_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_stats (
	run_id TEXT NOT NULL,
	day INTEGER NOT NULL,
	avg_temperature REAL NOT NULL,
	max_temperature REAL NOT NULL,
	total_orders INTEGER NOT NULL,
	completed_orders INTEGER NOT NULL,
	orders_placed INTEGER NOT NULL,
	orders_delivered INTEGER NOT NULL,
	pending_orders INTEGER NOT NULL,
	avg_rider_health REAL NOT NULL,
	avg_rider_happiness REAL NOT NULL,
	total_complaints INTEGER NOT NULL,
	active_riders INTEGER NOT NULL,
	government_subsidies REAL NOT NULL,
	government_budget REAL NOT NULL,
	shelters_built INTEGER NOT NULL,
	platform_revenue REAL NOT NULL,
	platform_cash REAL NOT NULL,
	shelter_rate REAL NOT NULL,
	partial INTEGER NOT NULL,
	PRIMARY KEY (run_id, day)
);

CREATE TABLE IF NOT EXISTS rider_stats (
	run_id TEXT NOT NULL,
	day INTEGER NOT NULL,
	rider_id TEXT NOT NULL,
	health REAL NOT NULL,
	money REAL NOT NULL,
	happiness REAL NOT NULL,
	orders_completed INTEGER NOT NULL,
	daily_income REAL NOT NULL,
	on_duty INTEGER NOT NULL,
	complaints INTEGER NOT NULL,
	PRIMARY KEY (run_id, day, rider_id)
);

CREATE TABLE IF NOT EXISTS reports (
	run_id TEXT PRIMARY KEY,
	completion_rate REAL NOT NULL,
	health_grade TEXT NOT NULL,
	happiness_grade TEXT NOT NULL,
	service_grade TEXT NOT NULL,
	aborted INTEGER NOT NULL,
	report_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rider_stats_rider ON rider_stats(run_id, rider_id);
`

// dailyStatsRow maps the daily_stats columns for sqlx.
type dailyStatsRow struct {
	RunID               string  `db:"run_id"`
	Day                 int     `db:"day"`
	AvgTemperature      float64 `db:"avg_temperature"`
	MaxTemperature      float64 `db:"max_temperature"`
	TotalOrders         int     `db:"total_orders"`
	CompletedOrders     int     `db:"completed_orders"`
	OrdersPlaced        int     `db:"orders_placed"`
	OrdersDelivered     int     `db:"orders_delivered"`
	PendingOrders       int     `db:"pending_orders"`
	AvgRiderHealth      float64 `db:"avg_rider_health"`
	AvgRiderHappiness   float64 `db:"avg_rider_happiness"`
	TotalComplaints     int     `db:"total_complaints"`
	ActiveRiders        int     `db:"active_riders"`
	GovernmentSubsidies float64 `db:"government_subsidies"`
	GovernmentBudget    float64 `db:"government_budget"`
	SheltersBuilt       int     `db:"shelters_built"`
	PlatformRevenue     float64 `db:"platform_revenue"`
	PlatformCash        float64 `db:"platform_cash"`
	ShelterRate         float64 `db:"shelter_rate"`
	Partial             bool    `db:"partial"`
}

type riderStatsRow struct {
	RunID           string  `db:"run_id"`
	Day             int     `db:"day"`
	RiderID         string  `db:"rider_id"`
	Health          float64 `db:"health"`
	Money           float64 `db:"money"`
	Happiness       float64 `db:"happiness"`
	OrdersCompleted int     `db:"orders_completed"`
	DailyIncome     float64 `db:"daily_income"`
	OnDuty          bool    `db:"on_duty"`
	Complaints      int     `db:"complaints"`
}

type RunRepository struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path and migrates it.
func Open(ctx context.Context, path string) (*RunRepository, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	conn.SetMaxOpenConns(1)

	r := &RunRepository{conn: conn}
	if err := r.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *RunRepository) migrate(ctx context.Context) error {
	_, err := r.conn.ExecContext(ctx, schema)
	return err
}

func (r *RunRepository) Close() error {
	return r.conn.Close()
}

func (r *RunRepository) CreateRun(ctx context.Context, runID string, config *models.Config) error {
	cfgJSON, err := json.Marshal(config.Redacted())
	if err != nil {
		return err
	}
	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, num_customers, num_riders, simulation_days, decision_mode, config_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), config.NumCustomers, config.NumRiders,
		config.SimulationDays, config.DecisionMode, string(cfgJSON),
	)
	return err
}

func (r *RunRepository) SaveDailyStats(ctx context.Context, runID string, s models.DailyStats) error {
	row := dailyStatsRow{
		RunID:               runID,
		Day:                 s.Day,
		AvgTemperature:      s.AvgTemperature,
		MaxTemperature:      s.MaxTemperature,
		TotalOrders:         s.TotalOrders,
		CompletedOrders:     s.CompletedOrders,
		OrdersPlaced:        s.OrdersPlaced,
		OrdersDelivered:     s.OrdersDelivered,
		PendingOrders:       s.PendingOrders,
		AvgRiderHealth:      s.AvgRiderHealth,
		AvgRiderHappiness:   s.AvgRiderHappiness,
		TotalComplaints:     s.TotalComplaints,
		ActiveRiders:        s.ActiveRiders,
		GovernmentSubsidies: s.GovernmentSubsidies,
		GovernmentBudget:    s.GovernmentBudget,
		SheltersBuilt:       s.SheltersBuilt,
		PlatformRevenue:     s.PlatformRevenue,
		PlatformCash:        s.PlatformCash,
		ShelterRate:         s.ShelterRate,
		Partial:             s.Partial,
	}
	_, err := r.conn.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO daily_stats (
			run_id, day, avg_temperature, max_temperature, total_orders, completed_orders,
			orders_placed, orders_delivered, pending_orders, avg_rider_health, avg_rider_happiness,
			total_complaints, active_riders, government_subsidies, government_budget, shelters_built,
			platform_revenue, platform_cash, shelter_rate, partial
		) VALUES (
			:run_id, :day, :avg_temperature, :max_temperature, :total_orders, :completed_orders,
			:orders_placed, :orders_delivered, :pending_orders, :avg_rider_health, :avg_rider_happiness,
			:total_complaints, :active_riders, :government_subsidies, :government_budget, :shelters_built,
			:platform_revenue, :platform_cash, :shelter_rate, :partial
		)`, row)
	return err
}

func (r *RunRepository) SaveRiderStats(ctx context.Context, runID string, stats []models.RiderStats) error {
	tx, err := r.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range stats {
		row := riderStatsRow{
			RunID:           runID,
			Day:             s.Day,
			RiderID:         s.RiderID,
			Health:          s.Health,
			Money:           s.Money,
			Happiness:       s.Happiness,
			OrdersCompleted: s.OrdersCompleted,
			DailyIncome:     s.DailyIncome,
			OnDuty:          s.OnDuty,
			Complaints:      s.Complaints,
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT OR REPLACE INTO rider_stats (
				run_id, day, rider_id, health, money, happiness, orders_completed, daily_income, on_duty, complaints
			) VALUES (
				:run_id, :day, :rider_id, :health, :money, :happiness, :orders_completed, :daily_income, :on_duty, :complaints
			)`, row); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *RunRepository) SaveReport(ctx context.Context, runID string, report *models.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return err
	}
	_, err = r.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO reports (run_id, completion_rate, health_grade, happiness_grade, service_grade, aborted, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, report.CompletionRate, report.HealthGrade, report.HappinessGrade,
		report.ServiceGrade, report.Aborted, string(reportJSON),
	)
	return err
}

func (r *RunRepository) DailyStats(ctx context.Context, runID string) ([]models.DailyStats, error) {
	var rows []dailyStatsRow
	if err := r.conn.SelectContext(ctx, &rows,
		`SELECT * FROM daily_stats WHERE run_id = ? ORDER BY day`, runID); err != nil {
		return nil, err
	}
	out := make([]models.DailyStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.DailyStats{
			Day:                 row.Day,
			AvgTemperature:      row.AvgTemperature,
			MaxTemperature:      row.MaxTemperature,
			TotalOrders:         row.TotalOrders,
			CompletedOrders:     row.CompletedOrders,
			OrdersPlaced:        row.OrdersPlaced,
			OrdersDelivered:     row.OrdersDelivered,
			PendingOrders:       row.PendingOrders,
			AvgRiderHealth:      row.AvgRiderHealth,
			AvgRiderHappiness:   row.AvgRiderHappiness,
			TotalComplaints:     row.TotalComplaints,
			ActiveRiders:        row.ActiveRiders,
			GovernmentSubsidies: row.GovernmentSubsidies,
			GovernmentBudget:    row.GovernmentBudget,
			SheltersBuilt:       row.SheltersBuilt,
			PlatformRevenue:     row.PlatformRevenue,
			PlatformCash:        row.PlatformCash,
			ShelterRate:         row.ShelterRate,
			Partial:             row.Partial,
		})
	}
	return out, nil
}

// RiderHistory returns one rider's daily snapshots in day order.
func (r *RunRepository) RiderHistory(ctx context.Context, runID, riderID string) ([]models.RiderStats, error) {
	var rows []riderStatsRow
	if err := r.conn.SelectContext(ctx, &rows,
		`SELECT * FROM rider_stats WHERE run_id = ? AND rider_id = ? ORDER BY day`, runID, riderID); err != nil {
		return nil, err
	}
	out := make([]models.RiderStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.RiderStats{
			Day:             row.Day,
			RiderID:         row.RiderID,
			Health:          row.Health,
			Money:           row.Money,
			Happiness:       row.Happiness,
			OrdersCompleted: row.OrdersCompleted,
			DailyIncome:     row.DailyIncome,
			OnDuty:          row.OnDuty,
			Complaints:      row.Complaints,
		})
	}
	return out, nil
}

// Report decodes the stored report document for a run.
func (r *RunRepository) Report(ctx context.Context, runID string) (*models.Report, error) {
	var raw string
	if err := r.conn.GetContext(ctx, &raw, `SELECT report_json FROM reports WHERE run_id = ?`, runID); err != nil {
		return nil, err
	}
	var report models.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, err
	}
	return &report, nil
}
