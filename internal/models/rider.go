package models

const (
	MaxHealth    = 10.0
	MaxHappiness = 10.0
)

type Complaint struct {
	RiderID     string  `json:"rider_id"`
	Day         int     `json:"day"`
	Hour        int     `json:"hour"`
	Health      float64 `json:"health"`
	Temperature float64 `json:"temperature"`
	Reason      string  `json:"reason"`
}

type Rider struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Health          float64     `json:"health"`
	Money           float64     `json:"money"`
	Happiness       float64     `json:"happiness"`
	OnDuty          bool        `json:"on_duty"`
	OrdersCompleted int         `json:"orders_completed"`
	Complaints      []Complaint `json:"complaints"`
	DailyIncome     float64     `json:"daily_income"`
}

// SetHealth stores h clamped to [0, MaxHealth].
func (r *Rider) SetHealth(h float64) {
	r.Health = clamp(h, 0, MaxHealth)
}

func (r *Rider) ComplaintCount() int {
	return len(r.Complaints)
}

type RiderStats struct {
	Day             int     `json:"day"`
	RiderID         string  `json:"rider_id"`
	Health          float64 `json:"health"`
	Money           float64 `json:"money"`
	Happiness       float64 `json:"happiness"`
	OrdersCompleted int     `json:"orders_completed"`
	DailyIncome     float64 `json:"daily_income"`
	OnDuty          bool    `json:"on_duty"`
	Complaints      int     `json:"complaints"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
