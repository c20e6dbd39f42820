package models

// RatingWindowSize is how many recent ratings a customer remembers.
const RatingWindowSize = 5

// DefaultAverageRating is used before a customer has rated anything.
const DefaultAverageRating = 5.0

type Customer struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	LastRatings   []int    `json:"last_ratings"`
	OrderHistory  []*Order `json:"-"`
	LastOrderDay  int      `json:"last_order_day"`
	LastOrderHour int      `json:"last_order_hour"`
	HasOrdered    bool     `json:"has_ordered"`
}

// PushRating appends a rating, evicting the oldest once the window is full.
func (c *Customer) PushRating(rating int) {
	c.LastRatings = append(c.LastRatings, rating)
	if len(c.LastRatings) > RatingWindowSize {
		c.LastRatings = c.LastRatings[len(c.LastRatings)-RatingWindowSize:]
	}
}

func (c *Customer) AverageRating() float64 {
	if len(c.LastRatings) == 0 {
		return DefaultAverageRating
	}
	sum := 0
	for _, r := range c.LastRatings {
		sum += r
	}
	return float64(sum) / float64(len(c.LastRatings))
}

// HoursSinceLastOrder returns the number of simulated hours since the last
// order, or -1 if the customer has never ordered.
func (c *Customer) HoursSinceLastOrder(day, hour int) int {
	if !c.HasOrdered {
		return -1
	}
	return (day-c.LastOrderDay)*24 + (hour - c.LastOrderHour)
}
