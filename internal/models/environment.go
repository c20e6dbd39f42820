package models

// EnvironmentState is the read-only snapshot handed to agents each hour.
type EnvironmentState struct {
	Day         int     `json:"day"`
	Hour        int     `json:"hour"`
	Temperature float64 `json:"temperature"`
	ShelterRate float64 `json:"shelter_rate"`
	RestRate    float64 `json:"rest_rate"`
	IsMealTime  bool    `json:"is_meal_time"`
}
