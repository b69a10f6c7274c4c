package pipeline

import (
	"fmt"
	"strings"

	"github.com/fnolabs/crashtriage/internal/model"
)

// RenderReportBody renders the deterministic plaintext body used for
// adjuster notification and CLI output. Sections are fully ordered so
// the same report always renders to the same text.
func RenderReportBody(report *model.IncidentReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "INCIDENT REPORT %s\n", report.ClaimNumber)
	fmt.Fprintf(&b, "Status: %s | Generated: %s\n\n", report.Status, report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("ACCIDENT DETAIL\n")
	fmt.Fprintf(&b, "  Time: %s\n", report.Event.EventTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "  Location: %s (%.5f, %.5f)\n", report.Event.CurrentStreet, report.Event.Latitude, report.Event.Longitude)
	fmt.Fprintf(&b, "  Speed: %.0f mph (limit %.0f mph)\n", report.Event.SpeedMPH, report.Event.SpeedLimitMPH)
	fmt.Fprintf(&b, "  G-force: %.1f\n\n", report.Event.GForce)

	b.WriteString("IMPACT ANALYSIS\n")
	fmt.Fprintf(&b, "  Severity: %s\n", report.Impact.Severity)
	fmt.Fprintf(&b, "  Type: %s\n", report.Impact.ImpactType)
	fmt.Fprintf(&b, "  Estimated speed at impact: %.0f mph\n", report.Impact.EstimatedSpeedAtImpact)
	fmt.Fprintf(&b, "  Speeding: %t | Airbag likely: %t | Confidence: %.0f%%\n\n",
		report.Impact.WasSpeeding, report.Impact.AirbagLikely, report.Impact.Confidence*100)

	if report.Impact.Narrative != "" {
		b.WriteString("NARRATIVE\n")
		fmt.Fprintf(&b, "  %s\n\n", report.Impact.Narrative)
	}

	b.WriteString("POLICY\n")
	fmt.Fprintf(&b, "  Number: %s (%s)\n", report.Policy.Policy.Number, report.Policy.Policy.Status)
	fmt.Fprintf(&b, "  Coverage: %s\n", strings.Join(report.Policy.Policy.CoverageTypes, ", "))
	fmt.Fprintf(&b, "  Deductible: $%.2f | Roadside: %t | Rental: %t\n\n",
		report.Policy.Policy.Deductible, report.Policy.Policy.HasRoadside, report.Policy.Policy.HasRentalCoverage)

	b.WriteString("DRIVER\n")
	fmt.Fprintf(&b, "  %s | %s | %s\n\n", report.Policy.Driver.Name, report.Policy.Driver.Phone, report.Policy.Driver.Email)

	b.WriteString("VEHICLE\n")
	fmt.Fprintf(&b, "  %d %s %s (%s)\n", report.Policy.Vehicle.Year, report.Policy.Vehicle.Make,
		report.Policy.Vehicle.Model, report.Policy.Vehicle.Color)
	fmt.Fprintf(&b, "  VIN: %s | Plate: %s | Est. value: $%.2f\n\n",
		report.Policy.Vehicle.VIN, report.Policy.Vehicle.Plate, report.Policy.Vehicle.EstimatedValue)

	b.WriteString("ENVIRONMENT\n")
	fmt.Fprintf(&b, "  Address: %s\n", report.Environment.Address)
	fmt.Fprintf(&b, "  Road: %s, %d lanes, surface %s\n", report.Environment.RoadType,
		report.Environment.RoadConditions.NumberOfLanes, report.Environment.RoadConditions.SurfaceCondition)
	fmt.Fprintf(&b, "  Weather: %s, %.0fF, visibility %.1f mi, wind %.0f mph\n",
		report.Environment.Weather.Conditions, report.Environment.Weather.TemperatureF,
		report.Environment.Weather.VisibilityMiles, report.Environment.Weather.WindSpeedMPH)
	fmt.Fprintf(&b, "  Daylight: %s\n\n", report.Environment.DaylightStatus)

	b.WriteString("NEARBY SERVICES\n")
	writeServiceList(&b, "Body shops", report.Services.BodyShops)
	writeServiceList(&b, "Tow services", report.Services.TowServices)
	writeServiceList(&b, "Medical facilities", report.Services.MedicalFacilities)
	writeServiceList(&b, "Rental locations", report.Services.RentalCarLocations)
	fmt.Fprintf(&b, "  Dispatch recommendation: %s\n", report.Services.DispatchRecommendation)
	fmt.Fprintf(&b, "  Vehicle likely drivable: %t\n\n", report.Services.VehicleLikelyDrivable)

	b.WriteString("RECOMMENDED ACTIONS\n")
	for i, action := range report.RecommendedActions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, action)
	}
	b.WriteString("\n")

	b.WriteString("ALERTS\n")
	if len(report.Alerts) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, alert := range report.Alerts {
		fmt.Fprintf(&b, "  ! %s\n", alert)
	}

	return b.String()
}

func writeServiceList(b *strings.Builder, label string, locations []model.ServiceLocation) {
	if len(locations) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s:\n", label)
	for _, loc := range locations {
		marker := ""
		if loc.IsPreferred {
			marker = " [preferred]"
		}
		fmt.Fprintf(b, "    - %s, %.1f mi, ETA %d min%s\n", loc.Name, loc.DistanceMiles, loc.ETAMinutes, marker)
	}
}
