package advisor

import (
	"testing"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

func TestParseStructured(t *testing.T) {
	tests := []struct {
		name  string
		agent string
		text  string
		check func(t *testing.T, d Decision)
	}{
		{
			name:  "customer bool",
			agent: models.AgentCustomer,
			text:  `Sure. {"order": true, "concern_level": "low", "reasoning": "hungry"}`,
			check: func(t *testing.T, d Decision) {
				if d.Order == nil || !*d.Order {
					t.Fatalf("order = %v, want true", d.Order)
				}
				if d.Level != "low" {
					t.Fatalf("level = %q", d.Level)
				}
			},
		},
		{
			name:  "customer string",
			agent: models.AgentCustomer,
			text:  `{"order": "False"}`,
			check: func(t *testing.T, d Decision) {
				if d.Order == nil || *d.Order {
					t.Fatalf("order = %v, want false", d.Order)
				}
			},
		},
		{
			name:  "rider action normalised",
			agent: models.AgentRider,
			text:  "I think:\n{\"action\": \"Deliver\", \"risk_level\": \"high\"}\nthanks",
			check: func(t *testing.T, d Decision) {
				if d.Action != models.ActionDeliver {
					t.Fatalf("action = %q", d.Action)
				}
			},
		},
		{
			name:  "government",
			agent: models.AgentGovernment,
			text:  `{"subsidy_amount": 40, "build_shelter": true, "urgency": "high"}`,
			check: func(t *testing.T, d Decision) {
				if d.SubsidyAmount == nil || *d.SubsidyAmount != 40 {
					t.Fatalf("subsidy = %v", d.SubsidyAmount)
				}
				if d.BuildShelter == nil || !*d.BuildShelter {
					t.Fatalf("build_shelter = %v", d.BuildShelter)
				}
			},
		},
		{
			name:  "platform",
			agent: models.AgentPlatform,
			text:  `{"adjust_pay": 1.1, "fire_riders": false}`,
			check: func(t *testing.T, d Decision) {
				if d.AdjustPay == nil || *d.AdjustPay != 1.1 {
					t.Fatalf("adjust_pay = %v", d.AdjustPay)
				}
				if d.FireRiders == nil || *d.FireRiders {
					t.Fatalf("fire_riders = %v", d.FireRiders)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse(tt.agent, tt.text)
			if d.Kind != Structured {
				t.Fatalf("kind = %v, want structured", d.Kind)
			}
			tt.check(t, d)
		})
	}
}

func TestParseUnparsed(t *testing.T) {
	tests := []struct {
		name  string
		agent string
		text  string
	}{
		{"no object", models.AgentRider, "I would rather rest today."},
		{"broken json", models.AgentRider, `{"action": "rest"`},
		{"unknown action", models.AgentRider, `{"action": "sleep"}`},
		{"missing field", models.AgentGovernment, `{"subsidy_amount": 30}`},
		{"negative subsidy", models.AgentGovernment, `{"subsidy_amount": -5, "build_shelter": false}`},
		{"zero pay", models.AgentPlatform, `{"adjust_pay": 0}`},
		{"unknown agent", "Restaurant", `{"order": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse(tt.agent, tt.text)
			if d.Kind != Unparsed {
				t.Fatalf("kind = %v, want unparsed", d.Kind)
			}
			if d.Usable() {
				t.Fatal("unparsed decision must not be usable")
			}
			if d.Raw != tt.text {
				t.Fatalf("raw = %q", d.Raw)
			}
		})
	}
}
