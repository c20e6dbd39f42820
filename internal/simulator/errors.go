package simulator

import "fmt"

// HourError reports a failure inside one simulated hour with enough context
// to locate it in the agent log.
type HourError struct {
	Day   int
	Hour  int
	Phase string
	Err   error
}

func (e *HourError) Error() string {
	return fmt.Sprintf("day %d hour %02d (%s): %v", e.Day, e.Hour, e.Phase, e.Err)
}

func (e *HourError) Unwrap() error {
	return e.Err
}

const (
	phaseEnvironment = "environment"
	phaseAggregate   = "daily_aggregation"
	phaseCustomers   = "customers"
	phaseRiders      = "riders"
	phasePlatform    = "platform"
	phaseGovernment  = "government"
)
