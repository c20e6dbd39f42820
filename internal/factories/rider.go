package factories

import (
	"fmt"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

const initialRiderHappiness = 5.0

type RiderFactory struct{}

// CreateRider returns an on-duty rider in full health.
func (rf *RiderFactory) CreateRider(index int, config *models.Config) *models.Rider {
	return &models.Rider{
		ID:        fmt.Sprintf("rider_%d", index),
		Name:      fake.Person().Name(),
		Health:    models.MaxHealth,
		Money:     config.InitialRiderMoney,
		Happiness: initialRiderHappiness,
		OnDuty:    true,
	}
}
