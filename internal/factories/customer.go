package factories

import (
	"fmt"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

var fake = faker.New()

type CustomerFactory struct{}

func (cf *CustomerFactory) CreateCustomer(index int) *models.Customer {
	return &models.Customer{
		ID:          fmt.Sprintf("customer_%d", index),
		Name:        fake.Person().Name(),
		LastRatings: make([]int, 0, models.RatingWindowSize),
	}
}
