package models

type Platform struct {
	ID           string  `json:"id"`
	Cash         float64 `json:"cash"`
	DailyRevenue float64 `json:"daily_revenue"`
	RiderPayRate float64 `json:"rider_pay_rate"`
}

type Government struct {
	ID            string  `json:"id"`
	Budget        float64 `json:"budget"`
	SubsidiesPaid float64 `json:"subsidies_paid"`
	SheltersBuilt int     `json:"shelters_built"`
}
