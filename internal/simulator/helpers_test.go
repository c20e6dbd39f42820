package simulator

import (
	"encoding/json"
	"testing"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

// fixedRand answers every draw with the same values.
type fixedRand struct {
	f    float64
	n    int
	norm float64
}

func (r fixedRand) Float64() float64     { return r.f }
func (r fixedRand) Intn(n int) int       { return r.n % n }
func (r fixedRand) NormFloat64() float64 { return r.norm }

type message struct {
	topic string
	body  []byte
}

// captureOutput keeps every record a run publishes.
type captureOutput struct {
	messages []message
	closed   bool
}

func (c *captureOutput) WriteMessage(topic string, msg []byte) error {
	c.messages = append(c.messages, message{topic: topic, body: append([]byte(nil), msg...)})
	return nil
}

func (c *captureOutput) Close() error {
	c.closed = true
	return nil
}

func (c *captureOutput) count(topic string) int {
	n := 0
	for _, m := range c.messages {
		if m.topic == topic {
			n++
		}
	}
	return n
}

func (c *captureOutput) decode(t *testing.T, topic string, v interface{}) {
	t.Helper()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].topic == topic {
			if err := json.Unmarshal(c.messages[i].body, v); err != nil {
				t.Fatalf("decode %s: %v", topic, err)
			}
			return
		}
	}
	t.Fatalf("no message on %s", topic)
}

func testConfig(customers, riders, days int) *models.Config {
	cfg := models.DefaultConfig()
	cfg.NumCustomers = customers
	cfg.NumRiders = riders
	cfg.SimulationDays = days
	cfg.Quiet = true
	return cfg
}

func alwaysMealTime(int) bool { return true }

func state(temp, shelter float64) models.EnvironmentState {
	return models.EnvironmentState{Temperature: temp, ShelterRate: shelter, RestRate: 0.6}
}
