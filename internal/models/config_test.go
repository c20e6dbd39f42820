package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.NumCustomers != 10 || cfg.NumRiders != 3 || cfg.SimulationDays != 30 {
		t.Errorf("population defaults %d/%d/%d", cfg.NumCustomers, cfg.NumRiders, cfg.SimulationDays)
	}
	if cfg.LLM.Timeout != 30*time.Second || cfg.DecisionMode != DecisionModeRule {
		t.Errorf("llm timeout %v mode %s", cfg.LLM.Timeout, cfg.DecisionMode)
	}
	if cfg.KafkaTimeoutMs != 10000 {
		t.Errorf("kafka timeout %d", cfg.KafkaTimeoutMs)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	content := `
num_customers: 25
num_riders: 4
simulation_days: 7
decision_mode: llm
order_abandon_hours: 6
llm:
  model: test-model
  timeout: 5s
database:
  driver: sqlite
  path: runs.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.NumCustomers != 25 || cfg.NumRiders != 4 || cfg.SimulationDays != 7 || cfg.OrderAbandonHours != 6 {
		t.Errorf("loaded %+v", cfg)
	}
	if cfg.LLM.Model != "test-model" || cfg.LLM.Timeout != 5*time.Second || cfg.LLM.BaseURL != "https://api.deepseek.com" {
		t.Errorf("llm %+v", cfg.LLM)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "runs.db" {
		t.Errorf("database %+v", cfg.Database)
	}
	if cfg.RestRate != 0.6 {
		t.Errorf("default rest rate lost: %v", cfg.RestRate)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestLoadConfigAPIKeyFromEnv(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	cfg, err := LoadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if red := cfg.Redacted(); red.LLM.APIKey != "***" || cfg.LLM.APIKey != "sk-test" {
		t.Errorf("Redacted() = %q, original %q", red.LLM.APIKey, cfg.LLM.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no customers", func(c *Config) { c.NumCustomers = 0 }},
		{"no riders", func(c *Config) { c.NumRiders = -1 }},
		{"no days", func(c *Config) { c.SimulationDays = 0 }},
		{"bad start hour", func(c *Config) { c.StartHour = 24 }},
		{"bad shelter rate", func(c *Config) { c.InitialShelterRate = 1.5 }},
		{"bad rest rate", func(c *Config) { c.RestRate = -0.1 }},
		{"negative abandonment", func(c *Config) { c.OrderAbandonHours = -1 }},
		{"unknown mode", func(c *Config) { c.DecisionMode = "oracle" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConnString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "sim", Password: "p@ss", DBName: "heat", SSLMode: "disable"}
	want := "postgres://sim:p%40ss@db:5432/heat?sslmode=disable"
	if got := d.ConnString(); got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}
}
