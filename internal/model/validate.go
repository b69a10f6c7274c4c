package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed accident event or an incomplete
// report input. It fails the run before any capability is invoked.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid accident event: %s", strings.Join(e.Problems, "; "))
}

// ValidateEvent checks the required AccidentEvent fields. A nil return
// means the event is safe to hand to the pipeline.
func ValidateEvent(ev *AccidentEvent) error {
	var problems []string

	if ev == nil {
		return &ValidationError{Problems: []string{"event is nil"}}
	}
	if ev.PolicyID == "" {
		problems = append(problems, "policy_id is required")
	}
	if ev.VehicleID == "" {
		problems = append(problems, "vehicle_id is required")
	}
	if ev.DriverID == "" {
		problems = append(problems, "driver_id is required")
	}
	if ev.VIN == "" {
		problems = append(problems, "vin is required")
	}
	if ev.EventTime.IsZero() {
		problems = append(problems, "event_time is required")
	}
	if ev.SpeedMPH < 0 {
		problems = append(problems, "speed_mph must not be negative")
	}
	if ev.GForce < 0 {
		problems = append(problems, "g_force must not be negative")
	}
	if ev.Latitude < -90 || ev.Latitude > 90 {
		problems = append(problems, "latitude out of range")
	}
	if ev.Longitude < -180 || ev.Longitude > 180 {
		problems = append(problems, "longitude out of range")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
