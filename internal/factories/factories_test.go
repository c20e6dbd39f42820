package factories

import (
	"testing"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

func TestCreateRider(t *testing.T) {
	cfg := models.DefaultConfig()
	r := (&RiderFactory{}).CreateRider(2, cfg)
	if r.ID != "rider_2" {
		t.Fatalf("id = %q", r.ID)
	}
	if r.Health != models.MaxHealth || r.Money != cfg.InitialRiderMoney || !r.OnDuty {
		t.Fatalf("rider = %+v", r)
	}
	if r.Name == "" {
		t.Fatal("expected a generated name")
	}
}

func TestCreateCustomer(t *testing.T) {
	c := (&CustomerFactory{}).CreateCustomer(0)
	if c.ID != "customer_0" {
		t.Fatalf("id = %q", c.ID)
	}
	if got := c.AverageRating(); got != models.DefaultAverageRating {
		t.Fatalf("average rating = %v", got)
	}
}
