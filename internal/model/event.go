package model

import "time"

// AccidentEvent is a single vehicle-accident telemetry event as delivered
// by the ingestion layer. It is created once per claim and never mutated.
type AccidentEvent struct {
	PolicyID      string    `json:"policy_id"`
	VehicleID     string    `json:"vehicle_id"`
	DriverID      string    `json:"driver_id"`
	VIN           string    `json:"vin"`
	EventTime     time.Time `json:"event_time"`
	SpeedMPH      float64   `json:"speed_mph"`
	SpeedLimitMPH float64   `json:"speed_limit_mph"`
	GForce        float64   `json:"g_force"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CurrentStreet string    `json:"current_street"`

	Accelerometer AxisReading  `json:"accelerometer"`
	Gyroscope     *AxisReading `json:"gyroscope,omitempty"`
	Device        *DeviceState `json:"device,omitempty"`
}

// AxisReading is a three-axis sensor sample.
type AxisReading struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DeviceState carries optional telematics-device health at event time.
type DeviceState struct {
	BatteryPercent int `json:"battery_percent"`
	SignalStrength int `json:"signal_strength"`
}
