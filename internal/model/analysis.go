package model

import "time"

// Severity classifies the overall impact severity.
type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// ImpactType classifies the collision geometry.
type ImpactType string

const (
	ImpactFrontal  ImpactType = "FRONTAL"
	ImpactRear     ImpactType = "REAR"
	ImpactSide     ImpactType = "SIDE"
	ImpactRollover ImpactType = "ROLLOVER"
	ImpactUnknown  ImpactType = "UNKNOWN"
)

// ImpactAnalysis is the result of the analyze-impact capability.
type ImpactAnalysis struct {
	Severity               Severity   `json:"severity"`
	ImpactType             ImpactType `json:"impact_type"`
	EstimatedSpeedAtImpact float64    `json:"estimated_speed_at_impact"`
	WasSpeeding            bool       `json:"was_speeding"`
	AirbagLikely           bool       `json:"airbag_likely"`
	Confidence             float64    `json:"confidence"`
	Narrative              string     `json:"narrative"`
}

// EnvironmentContext is the result of the gather-environment capability.
type EnvironmentContext struct {
	Address             string         `json:"address"`
	RoadType            string         `json:"road_type"`
	NearestIntersection string         `json:"nearest_intersection,omitempty"`
	Weather             Weather        `json:"weather"`
	RoadConditions      RoadConditions `json:"road_conditions"`
	ContributingFactors []string       `json:"contributing_factors"`
	DaylightStatus      string         `json:"daylight_status"`
	Prior24HourWeather  string         `json:"prior_24h_weather,omitempty"`
}

// Weather describes conditions at the accident location.
type Weather struct {
	Conditions      string  `json:"conditions"`
	TemperatureF    float64 `json:"temperature_f"`
	VisibilityMiles float64 `json:"visibility_miles"`
	WindSpeedMPH    float64 `json:"wind_speed_mph"`
	Precipitation   string  `json:"precipitation,omitempty"`
}

// RoadConditions describes the road surface and layout.
type RoadConditions struct {
	SurfaceCondition string `json:"surface_condition"`
	NumberOfLanes    int    `json:"number_of_lanes"`
	ConstructionZone bool   `json:"construction_zone"`
	AssessmentReason string `json:"assessment_reason,omitempty"`
}

// PolicyInfo is the result of the lookup-policy capability.
type PolicyInfo struct {
	Policy  PolicyDetail  `json:"policy"`
	Driver  DriverDetail  `json:"driver"`
	Vehicle VehicleDetail `json:"vehicle"`
}

// PolicyDetail describes the insurance policy covering the vehicle.
type PolicyDetail struct {
	Number            string   `json:"number"`
	Status            string   `json:"status"`
	CoverageTypes     []string `json:"coverage_types"`
	Deductible        float64  `json:"deductible"`
	HasRoadside       bool     `json:"has_roadside"`
	HasRentalCoverage bool     `json:"has_rental_coverage"`
}

// DriverDetail identifies the insured driver.
type DriverDetail struct {
	Name                  string  `json:"name"`
	Phone                 string  `json:"phone"`
	Email                 string  `json:"email"`
	RiskScore             float64 `json:"risk_score"`
	EmergencyContactName  string  `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string  `json:"emergency_contact_phone,omitempty"`
}

// VehicleDetail identifies the insured vehicle.
type VehicleDetail struct {
	Year           int     `json:"year"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Color          string  `json:"color"`
	VIN            string  `json:"vin"`
	Plate          string  `json:"plate"`
	EstimatedValue float64 `json:"estimated_value"`
}

// NearbyServices is the result of the find-services capability.
type NearbyServices struct {
	BodyShops              []ServiceLocation `json:"body_shops"`
	TowServices            []ServiceLocation `json:"tow_services"`
	MedicalFacilities      []ServiceLocation `json:"medical_facilities"`
	RentalCarLocations     []ServiceLocation `json:"rental_car_locations"`
	DispatchRecommendation string            `json:"dispatch_recommendation"`
	VehicleLikelyDrivable  bool              `json:"vehicle_likely_drivable"`
}

// ServiceLocation is one nearby service provider.
type ServiceLocation struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone"`
	DistanceMiles float64 `json:"distance_miles"`
	Rating        float64 `json:"rating"`
	ETAMinutes    int     `json:"eta_minutes"`
	IsPreferred   bool    `json:"is_preferred"`
	IsOpen        bool    `json:"is_open"`
}

// ResponseStatus tracks what the driver has reported back, if anything.
type ResponseStatus string

const (
	ResponseConfirmedOK ResponseStatus = "CONFIRMED_OK"
	ResponseNeedsHelp   ResponseStatus = "NEEDS_HELP"
	ResponsePending     ResponseStatus = "PENDING"
	ResponseNone        ResponseStatus = "NO_RESPONSE"
)

// CommunicationsStatus is the result of the initiate-comms capability.
type CommunicationsStatus struct {
	DriverOutreach     DriverOutreach `json:"driver_outreach"`
	AdjusterNotified   bool           `json:"adjuster_notified"`
	AssignedAdjuster   string         `json:"assigned_adjuster,omitempty"`
	RoadsideDispatched bool           `json:"roadside_dispatched"`
	CommunicationLog   []CommsEntry   `json:"communication_log"`
}

// DriverOutreach records the initial outreach to the driver.
type DriverOutreach struct {
	SMSSent           bool           `json:"sms_sent"`
	SMSTimestamp      *time.Time     `json:"sms_timestamp,omitempty"`
	SMSContent        string         `json:"sms_content,omitempty"`
	PushSent          bool           `json:"push_sent"`
	ResponseStatus    ResponseStatus `json:"response_status"`
	DriverResponse    string         `json:"driver_response,omitempty"`
	ResponseTimestamp *time.Time     `json:"response_timestamp,omitempty"`
}

// CommsEntry is one entry in the ordered communication log.
type CommsEntry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Direction string    `json:"direction"`
	Party     string    `json:"party"`
	Summary   string    `json:"summary"`
	Delivered bool      `json:"delivered"`
}
