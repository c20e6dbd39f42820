package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/chrisdamba/heatwavesim/internal/models"
	"github.com/chrisdamba/heatwavesim/internal/output"
)

func testArchive() *output.Archive {
	return &output.Archive{
		RunID:      "run-1",
		Logs:       make([]models.AgentLog, 1500),
		DailyStats: make([]models.DailyStats, 3),
		Report: &models.Report{
			RunID:          "run-1",
			SimulationDays: 3,
			DaysCompleted:  3,
			CompletionRate: 0.75,
			ServiceGrade:   "fair",
			Suggestions:    []string{"build shelters"},
		},
	}
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, testArchive(), "text"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "1,500 agent decisions over 3 days") {
		t.Errorf("text report:\n%s", buf.String())
	}
}

func TestWriteReportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, testArchive(), "yaml"); err != nil {
		t.Fatal(err)
	}
	var got models.Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if got.RunID != "run-1" || got.CompletionRate != 0.75 || got.ServiceGrade != "fair" {
		t.Errorf("decoded %+v", got)
	}
	if !strings.Contains(buf.String(), "completion_rate: 0.75") {
		t.Errorf("yaml keys not snake_case:\n%s", buf.String())
	}
}

func TestWriteReportUnknownFormat(t *testing.T) {
	err := writeReport(&bytes.Buffer{}, testArchive(), "xml")
	if !errors.Is(err, models.ErrInvalidConfig) {
		t.Fatalf("error = %v", err)
	}
}
