package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/fnolabs/crashtriage/internal/model"
)

// Compile assembles the final incident report from the event and both
// tier results. It is pure and synchronous: no external calls, and the
// same inputs always produce the same report (timestamp aside).
func Compile(ev *model.AccidentEvent, tier1 *model.Tier1Result, tier2 *model.Tier2Result, at time.Time) (*model.IncidentReport, error) {
	if ev == nil || tier1 == nil || tier2 == nil {
		return nil, &model.ValidationError{Problems: []string{"compilation requires event and both tier results"}}
	}

	report := &model.IncidentReport{
		ClaimNumber:    ClaimNumber(ev.PolicyID, at),
		Status:         model.ReportInitiated,
		GeneratedAt:    at,
		Event:          *ev,
		Impact:         tier1.Impact,
		Environment:    tier1.Environment,
		Policy:         tier1.Policy,
		Services:       tier2.Services,
		Communications: tier2.Communications,
	}

	report.RecommendedActions = recommendedActions(tier1, tier2)
	report.Alerts = compileAlerts(ev, tier1, tier2)

	return report, nil
}

// recommendedActions builds the ordered action list: the standing review
// action, then the severity branch, then the drivability branch.
func recommendedActions(tier1 *model.Tier1Result, tier2 *model.Tier2Result) []string {
	actions := []string{"Review claim within 24 hours"}

	switch tier1.Impact.Severity {
	case model.SeveritySevere:
		actions = append(actions,
			"Priority contact: call driver immediately",
			"Assign senior adjuster",
			"Request police report",
		)
	case model.SeverityModerate:
		actions = append(actions,
			"Schedule vehicle inspection within 48 hours",
			"Follow up with driver for photos",
		)
	case model.SeverityMinor:
		actions = append(actions, "Request photos of damage from driver")
	}

	if tier2.Services.VehicleLikelyDrivable {
		actions = append(actions, "Provide body shop referral list to driver")
	} else {
		actions = append(actions, "Confirm tow service dispatch")
		if tier1.Policy.Policy.HasRentalCoverage {
			actions = append(actions, "Arrange rental car for driver")
		}
	}

	return actions
}

// compileAlerts builds the ordered alert list from the impact,
// environment and communications results.
func compileAlerts(ev *model.AccidentEvent, tier1 *model.Tier1Result, tier2 *model.Tier2Result) []string {
	var alerts []string

	if tier1.Impact.WasSpeeding {
		alerts = append(alerts, fmt.Sprintf("Driver was speeding: %.0f mph in a %.0f mph zone",
			ev.SpeedMPH, ev.SpeedLimitMPH))
	}
	if tier1.Impact.AirbagLikely {
		alerts = append(alerts, "Airbag deployment likely")
	}
	if tier1.Environment.Weather.Precipitation != "" {
		alerts = append(alerts, fmt.Sprintf("Active precipitation at accident time: %s",
			tier1.Environment.Weather.Precipitation))
	}
	if len(tier1.Environment.ContributingFactors) > 0 {
		alerts = append(alerts, fmt.Sprintf("Contributing factors: %s",
			strings.Join(tier1.Environment.ContributingFactors, ", ")))
	}
	if tier2.Communications.DriverOutreach.ResponseStatus != model.ResponseConfirmedOK {
		alerts = append(alerts, "Awaiting driver response to wellness check")
	}

	return alerts
}
