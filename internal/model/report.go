package model

import "time"

// Tier1Result bundles the three first-stage analyses. It is constructed
// atomically: either all three capabilities succeeded, or no Tier1Result
// exists for the run.
type Tier1Result struct {
	Impact      ImpactAnalysis     `json:"impact"`
	Environment EnvironmentContext `json:"environment"`
	Policy      PolicyInfo         `json:"policy"`
}

// Tier2Result bundles the two second-stage results, with the same
// all-or-nothing construction rule as Tier1Result.
type Tier2Result struct {
	Services       NearbyServices       `json:"services"`
	Communications CommunicationsStatus `json:"communications"`
}

// ReportStatus is the lifecycle status of an incident report.
type ReportStatus string

const (
	// ReportInitiated is the status of every freshly compiled report.
	ReportInitiated ReportStatus = "INITIATED"
)

// IncidentReport is the composed first-notice-of-loss report. It is
// created exactly once per successful pipeline run and immutable
// afterward; persistence is keyed by ClaimNumber.
type IncidentReport struct {
	ClaimNumber string       `json:"claim_number"`
	Status      ReportStatus `json:"status"`
	GeneratedAt time.Time    `json:"generated_at"`

	Event          AccidentEvent        `json:"event"`
	Impact         ImpactAnalysis       `json:"impact"`
	Environment    EnvironmentContext   `json:"environment"`
	Policy         PolicyInfo           `json:"policy"`
	Services       NearbyServices       `json:"services"`
	Communications CommunicationsStatus `json:"communications"`

	RecommendedActions []string `json:"recommended_actions"`
	Alerts             []string `json:"alerts"`
}
