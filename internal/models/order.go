package models

type Order struct {
	ID            string  `json:"order_id"`
	CustomerID    string  `json:"customer_id"`
	CreationDay   int     `json:"creation_day"`
	CreationHour  int     `json:"creation_hour"`
	Cost          float64 `json:"cost"`
	Distance      float64 `json:"distance"`
	RiderID       string  `json:"rider_id,omitempty"`
	Delivered     bool    `json:"delivered"`
	DeliveredDay  int     `json:"delivered_day"`
	DeliveredHour int     `json:"delivered_hour"`
	Rating        *int    `json:"rating,omitempty"`
	Tip           float64 `json:"tip"`
	Abandoned     bool    `json:"abandoned"`
}

// IsPending reports whether the order is still waiting for a rider.
func (o *Order) IsPending() bool {
	return !o.Delivered && !o.Abandoned && o.RiderID == ""
}

// HoursPending returns how long the order has been waiting at the given clock.
func (o *Order) HoursPending(day, hour int) int {
	return (day-o.CreationDay)*24 + (hour - o.CreationHour)
}
