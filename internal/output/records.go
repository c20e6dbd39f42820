package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

type AgentActionRecord struct {
	Day            int32  `parquet:"name=day, type=INT32"`
	Hour           int32  `parquet:"name=hour, type=INT32"`
	AgentType      string `parquet:"name=agent_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	AgentID        string `parquet:"name=agent_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Observation    string `parquet:"name=observation, type=BYTE_ARRAY, convertedtype=UTF8"`
	Thought        string `parquet:"name=thought, type=BYTE_ARRAY, convertedtype=UTF8"`
	Action         string `parquet:"name=action, type=BYTE_ARRAY, convertedtype=UTF8"`
	DecisionSource string `parquet:"name=decision_source, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type RiderStatsRecord struct {
	Day             int32   `parquet:"name=day, type=INT32"`
	RiderID         string  `parquet:"name=rider_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Health          float64 `parquet:"name=health, type=DOUBLE"`
	Money           float64 `parquet:"name=money, type=DOUBLE"`
	Happiness       float64 `parquet:"name=happiness, type=DOUBLE"`
	OrdersCompleted int32   `parquet:"name=orders_completed, type=INT32"`
	DailyIncome     float64 `parquet:"name=daily_income, type=DOUBLE"`
	OnDuty          bool    `parquet:"name=on_duty, type=BOOLEAN"`
	Complaints      int32   `parquet:"name=complaints, type=INT32"`
}

type DailyStatsRecord struct {
	Day                 int32   `parquet:"name=day, type=INT32"`
	AvgTemperature      float64 `parquet:"name=avg_temperature, type=DOUBLE"`
	MaxTemperature      float64 `parquet:"name=max_temperature, type=DOUBLE"`
	TotalOrders         int32   `parquet:"name=total_orders, type=INT32"`
	CompletedOrders     int32   `parquet:"name=completed_orders, type=INT32"`
	OrdersPlaced        int32   `parquet:"name=orders_placed, type=INT32"`
	OrdersDelivered     int32   `parquet:"name=orders_delivered, type=INT32"`
	PendingOrders       int32   `parquet:"name=pending_orders, type=INT32"`
	AvgRiderHealth      float64 `parquet:"name=avg_rider_health, type=DOUBLE"`
	AvgRiderHappiness   float64 `parquet:"name=avg_rider_happiness, type=DOUBLE"`
	TotalComplaints     int32   `parquet:"name=total_complaints, type=INT32"`
	ActiveRiders        int32   `parquet:"name=active_riders, type=INT32"`
	GovernmentSubsidies float64 `parquet:"name=government_subsidies, type=DOUBLE"`
	GovernmentBudget    float64 `parquet:"name=government_budget, type=DOUBLE"`
	SheltersBuilt       int32   `parquet:"name=shelters_built, type=INT32"`
	PlatformRevenue     float64 `parquet:"name=platform_revenue, type=DOUBLE"`
	PlatformCash        float64 `parquet:"name=platform_cash, type=DOUBLE"`
	ShelterRate         float64 `parquet:"name=shelter_rate, type=DOUBLE"`
	Partial             bool    `parquet:"name=partial, type=BOOLEAN"`
}

type FinalReportRecord struct {
	RunID             string  `parquet:"name=run_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	SimulationDays    int32   `parquet:"name=simulation_days, type=INT32"`
	DaysCompleted     int32   `parquet:"name=days_completed, type=INT32"`
	TotalOrders       int32   `parquet:"name=total_orders, type=INT32"`
	CompletedOrders   int32   `parquet:"name=completed_orders, type=INT32"`
	CompletionRate    float64 `parquet:"name=completion_rate, type=DOUBLE"`
	AvgFinalHealth    float64 `parquet:"name=avg_final_health, type=DOUBLE"`
	AvgFinalHappiness float64 `parquet:"name=avg_final_happiness, type=DOUBLE"`
	TotalComplaints   int32   `parquet:"name=total_complaints, type=INT32"`
	TotalSubsidies    float64 `parquet:"name=total_subsidies, type=DOUBLE"`
	SheltersBuilt     int32   `parquet:"name=shelters_built, type=INT32"`
	FinalShelterRate  float64 `parquet:"name=final_shelter_rate, type=DOUBLE"`
	ActiveRiders      int32   `parquet:"name=active_riders, type=INT32"`
	NumRiders         int32   `parquet:"name=num_riders, type=INT32"`
	PlatformCash      float64 `parquet:"name=platform_cash, type=DOUBLE"`
	GovernmentBudget  float64 `parquet:"name=government_budget, type=DOUBLE"`
	HealthGrade       string  `parquet:"name=health_grade, type=BYTE_ARRAY, convertedtype=UTF8"`
	HappinessGrade    string  `parquet:"name=happiness_grade, type=BYTE_ARRAY, convertedtype=UTF8"`
	ServiceGrade      string  `parquet:"name=service_grade, type=BYTE_ARRAY, convertedtype=UTF8"`
	Suggestions       string  `parquet:"name=suggestions, type=BYTE_ARRAY, convertedtype=UTF8"`
	Aborted           bool    `parquet:"name=aborted, type=BOOLEAN"`
	Failure           string  `parquet:"name=failure, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// recordPrototype returns an empty record whose tags define the parquet
// schema for topic.
func recordPrototype(topic string) (interface{}, error) {
	switch topic {
	case models.TopicAgentActions:
		return new(AgentActionRecord), nil
	case models.TopicRiderStats:
		return new(RiderStatsRecord), nil
	case models.TopicDailyStats:
		return new(DailyStatsRecord), nil
	case models.TopicFinalReport:
		return new(FinalReportRecord), nil
	}
	return nil, fmt.Errorf("unknown topic: %s", topic)
}

// toRecord decodes a JSON message into the parquet record for topic.
func toRecord(topic string, msg []byte) (interface{}, error) {
	switch topic {
	case models.TopicAgentActions:
		var l models.AgentLog
		if err := json.Unmarshal(msg, &l); err != nil {
			return nil, err
		}
		return AgentActionRecord{
			Day:            int32(l.Day),
			Hour:           int32(l.Hour),
			AgentType:      l.AgentType,
			AgentID:        l.AgentID,
			Observation:    l.Observation,
			Thought:        l.Thought,
			Action:         l.Action,
			DecisionSource: l.DecisionSource,
		}, nil
	case models.TopicRiderStats:
		var r models.RiderStats
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return RiderStatsRecord{
			Day:             int32(r.Day),
			RiderID:         r.RiderID,
			Health:          r.Health,
			Money:           r.Money,
			Happiness:       r.Happiness,
			OrdersCompleted: int32(r.OrdersCompleted),
			DailyIncome:     r.DailyIncome,
			OnDuty:          r.OnDuty,
			Complaints:      int32(r.Complaints),
		}, nil
	case models.TopicDailyStats:
		var d models.DailyStats
		if err := json.Unmarshal(msg, &d); err != nil {
			return nil, err
		}
		return DailyStatsRecord{
			Day:                 int32(d.Day),
			AvgTemperature:      d.AvgTemperature,
			MaxTemperature:      d.MaxTemperature,
			TotalOrders:         int32(d.TotalOrders),
			CompletedOrders:     int32(d.CompletedOrders),
			OrdersPlaced:        int32(d.OrdersPlaced),
			OrdersDelivered:     int32(d.OrdersDelivered),
			PendingOrders:       int32(d.PendingOrders),
			AvgRiderHealth:      d.AvgRiderHealth,
			AvgRiderHappiness:   d.AvgRiderHappiness,
			TotalComplaints:     int32(d.TotalComplaints),
			ActiveRiders:        int32(d.ActiveRiders),
			GovernmentSubsidies: d.GovernmentSubsidies,
			GovernmentBudget:    d.GovernmentBudget,
			SheltersBuilt:       int32(d.SheltersBuilt),
			PlatformRevenue:     d.PlatformRevenue,
			PlatformCash:        d.PlatformCash,
			ShelterRate:         d.ShelterRate,
			Partial:             d.Partial,
		}, nil
	case models.TopicFinalReport:
		var r models.Report
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return FinalReportRecord{
			RunID:             r.RunID,
			SimulationDays:    int32(r.SimulationDays),
			DaysCompleted:     int32(r.DaysCompleted),
			TotalOrders:       int32(r.TotalOrders),
			CompletedOrders:   int32(r.CompletedOrders),
			CompletionRate:    r.CompletionRate,
			AvgFinalHealth:    r.AvgFinalHealth,
			AvgFinalHappiness: r.AvgFinalHappiness,
			TotalComplaints:   int32(r.TotalComplaints),
			TotalSubsidies:    r.TotalSubsidies,
			SheltersBuilt:     int32(r.SheltersBuilt),
			FinalShelterRate:  r.FinalShelterRate,
			ActiveRiders:      int32(r.ActiveRiders),
			NumRiders:         int32(r.NumRiders),
			PlatformCash:      r.PlatformCash,
			GovernmentBudget:  r.GovernmentBudget,
			HealthGrade:       r.HealthGrade,
			HappinessGrade:    r.HappinessGrade,
			ServiceGrade:      r.ServiceGrade,
			Suggestions:       strings.Join(r.Suggestions, "\n"),
			Aborted:           r.Aborted,
			Failure:           r.FailureDescription,
		}, nil
	}
	return nil, fmt.Errorf("unknown topic: %s", topic)
}
