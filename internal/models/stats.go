package models

// AgentLog is one observe/think/act record for a single agent at one hour.
type AgentLog struct {
	Day            int    `json:"day"`
	Hour           int    `json:"hour"`
	AgentType      string `json:"agent_type"`
	AgentID        string `json:"agent_id"`
	Observation    string `json:"observation"`
	Thought        string `json:"thought"`
	Action         string `json:"action"`
	DecisionSource string `json:"decision_source"`
}

// DailyStats is the end-of-day rollup. TotalOrders and CompletedOrders are
// cumulative over the run; OrdersPlaced and OrdersDelivered cover the day only.
type DailyStats struct {
	Day                 int     `json:"day"`
	AvgTemperature      float64 `json:"avg_temperature"`
	MaxTemperature      float64 `json:"max_temperature"`
	TotalOrders         int     `json:"total_orders"`
	CompletedOrders     int     `json:"completed_orders"`
	OrdersPlaced        int     `json:"orders_placed"`
	OrdersDelivered     int     `json:"orders_delivered"`
	PendingOrders       int     `json:"pending_orders"`
	AvgRiderHealth      float64 `json:"avg_rider_health"`
	AvgRiderHappiness   float64 `json:"avg_rider_happiness"`
	TotalComplaints     int     `json:"total_complaints"`
	ActiveRiders        int     `json:"active_riders"`
	GovernmentSubsidies float64 `json:"government_subsidies"`
	GovernmentBudget    float64 `json:"government_budget"`
	SheltersBuilt       int     `json:"shelters_built"`
	PlatformRevenue     float64 `json:"platform_revenue"`
	PlatformCash        float64 `json:"platform_cash"`
	ShelterRate         float64 `json:"shelter_rate"`
	Partial             bool    `json:"partial"`
}

type Report struct {
	RunID              string   `json:"run_id" yaml:"run_id"`
	SimulationDays     int      `json:"simulation_days" yaml:"simulation_days"`
	DaysCompleted      int      `json:"days_completed" yaml:"days_completed"`
	TotalOrders        int      `json:"total_orders" yaml:"total_orders"`
	CompletedOrders    int      `json:"completed_orders" yaml:"completed_orders"`
	CompletionRate     float64  `json:"completion_rate" yaml:"completion_rate"`
	AvgFinalHealth     float64  `json:"avg_final_health" yaml:"avg_final_health"`
	AvgFinalHappiness  float64  `json:"avg_final_happiness" yaml:"avg_final_happiness"`
	TotalComplaints    int      `json:"total_complaints" yaml:"total_complaints"`
	TotalSubsidies     float64  `json:"total_subsidies" yaml:"total_subsidies"`
	SheltersBuilt      int      `json:"shelters_built" yaml:"shelters_built"`
	FinalShelterRate   float64  `json:"final_shelter_rate" yaml:"final_shelter_rate"`
	ActiveRiders       int      `json:"active_riders" yaml:"active_riders"`
	NumRiders          int      `json:"num_riders" yaml:"num_riders"`
	PlatformCash       float64  `json:"platform_cash" yaml:"platform_cash"`
	GovernmentBudget   float64  `json:"government_budget" yaml:"government_budget"`
	HealthGrade        string   `json:"health_grade" yaml:"health_grade"`
	HappinessGrade     string   `json:"happiness_grade" yaml:"happiness_grade"`
	ServiceGrade       string   `json:"service_grade" yaml:"service_grade"`
	Suggestions        []string `json:"suggestions" yaml:"suggestions"`
	Aborted            bool     `json:"aborted" yaml:"aborted"`
	FailureDescription string   `json:"failure,omitempty" yaml:"failure,omitempty"`
}
