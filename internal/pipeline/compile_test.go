package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/fnolabs/crashtriage/internal/model"
)

func baseTierResults() (*model.Tier1Result, *model.Tier2Result) {
	tier1 := &model.Tier1Result{
		Impact: model.ImpactAnalysis{
			Severity:   model.SeverityMinor,
			ImpactType: model.ImpactRear,
			Confidence: 0.8,
		},
		Environment: model.EnvironmentContext{
			Address:        "1 Main St",
			RoadType:       "residential",
			Weather:        model.Weather{Conditions: "clear", TemperatureF: 70, VisibilityMiles: 10},
			RoadConditions: model.RoadConditions{SurfaceCondition: "dry", NumberOfLanes: 2},
			DaylightStatus: "daylight",
		},
		Policy: model.PolicyInfo{
			Policy: model.PolicyDetail{Number: "POL-9", Status: "ACTIVE"},
			Driver: model.DriverDetail{Name: "Sam Lee", Phone: "+15105550101", Email: "sam@example.com"},
		},
	}
	tier2 := &model.Tier2Result{
		Services: model.NearbyServices{
			VehicleLikelyDrivable:  true,
			DispatchRecommendation: "none",
		},
		Communications: model.CommunicationsStatus{
			DriverOutreach: model.DriverOutreach{ResponseStatus: model.ResponseConfirmedOK},
		},
	}
	return tier1, tier2
}

var compileAt = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func mustCompile(t *testing.T, ev *model.AccidentEvent, t1 *model.Tier1Result, t2 *model.Tier2Result) *model.IncidentReport {
	t.Helper()
	report, err := Compile(ev, t1, t2, compileAt)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return report
}

func TestCompile_StandingReviewAction(t *testing.T) {
	for _, severity := range []model.Severity{model.SeverityMinor, model.SeverityModerate, model.SeveritySevere} {
		tier1, tier2 := baseTierResults()
		tier1.Impact.Severity = severity

		report := mustCompile(t, testEvent(), tier1, tier2)
		if report.RecommendedActions[0] != "Review claim within 24 hours" {
			t.Errorf("%s: review action must always lead: %v", severity, report.RecommendedActions)
		}
	}
}

func TestCompile_SeverityBranches(t *testing.T) {
	tests := []struct {
		severity model.Severity
		want     string
	}{
		{model.SeveritySevere, "Assign senior adjuster"},
		{model.SeveritySevere, "Request police report"},
		{model.SeverityModerate, "Schedule vehicle inspection within 48 hours"},
		{model.SeverityModerate, "Follow up with driver for photos"},
		{model.SeverityMinor, "Request photos of damage from driver"},
	}

	for _, tt := range tests {
		tier1, tier2 := baseTierResults()
		tier1.Impact.Severity = tt.severity

		report := mustCompile(t, testEvent(), tier1, tier2)
		if !containsString(report.RecommendedActions, tt.want) {
			t.Errorf("%s: missing %q in %v", tt.severity, tt.want, report.RecommendedActions)
		}
	}
}

func TestCompile_DrivabilityBranch(t *testing.T) {
	tier1, tier2 := baseTierResults()
	tier2.Services.VehicleLikelyDrivable = true
	report := mustCompile(t, testEvent(), tier1, tier2)
	if !containsString(report.RecommendedActions, "Provide body shop referral list to driver") {
		t.Errorf("drivable vehicle missing body shop referral: %v", report.RecommendedActions)
	}
	if containsString(report.RecommendedActions, "Confirm tow service dispatch") {
		t.Error("drivable vehicle must not get a tow confirmation")
	}

	tier2.Services.VehicleLikelyDrivable = false
	report = mustCompile(t, testEvent(), tier1, tier2)
	if !containsString(report.RecommendedActions, "Confirm tow service dispatch") {
		t.Errorf("undrivable vehicle missing tow confirmation: %v", report.RecommendedActions)
	}
	if containsString(report.RecommendedActions, "Arrange rental car for driver") {
		t.Error("rental arrangement requires rental coverage")
	}

	tier1.Policy.Policy.HasRentalCoverage = true
	report = mustCompile(t, testEvent(), tier1, tier2)
	if !containsString(report.RecommendedActions, "Arrange rental car for driver") {
		t.Errorf("rental coverage missing rental arrangement: %v", report.RecommendedActions)
	}
}

func TestCompile_Alerts(t *testing.T) {
	tier1, tier2 := baseTierResults()
	report := mustCompile(t, testEvent(), tier1, tier2)
	if len(report.Alerts) != 0 {
		t.Errorf("calm claim should have no alerts, got %v", report.Alerts)
	}

	tier1.Impact.WasSpeeding = true
	tier1.Impact.AirbagLikely = true
	tier1.Environment.Weather.Precipitation = "heavy rain"
	tier1.Environment.ContributingFactors = []string{"wet road", "low visibility"}
	tier2.Communications.DriverOutreach.ResponseStatus = model.ResponsePending

	report = mustCompile(t, testEvent(), tier1, tier2)
	if len(report.Alerts) != 5 {
		t.Fatalf("expected 5 alerts, got %d: %v", len(report.Alerts), report.Alerts)
	}
	if !strings.Contains(report.Alerts[0], "speeding") {
		t.Errorf("first alert should be speeding: %v", report.Alerts)
	}
	if report.Alerts[1] != "Airbag deployment likely" {
		t.Errorf("second alert should be airbag: %v", report.Alerts)
	}
	if !strings.Contains(report.Alerts[2], "heavy rain") {
		t.Errorf("third alert should name precipitation: %v", report.Alerts)
	}
	if !strings.Contains(report.Alerts[3], "wet road, low visibility") {
		t.Errorf("fourth alert should join contributing factors: %v", report.Alerts)
	}
	if report.Alerts[4] != "Awaiting driver response to wellness check" {
		t.Errorf("fifth alert should be driver response: %v", report.Alerts)
	}
}

func TestCompile_RejectsMissingInputs(t *testing.T) {
	tier1, tier2 := baseTierResults()

	if _, err := Compile(nil, tier1, tier2, compileAt); err == nil {
		t.Error("expected error for nil event")
	}
	if _, err := Compile(testEvent(), nil, tier2, compileAt); err == nil {
		t.Error("expected error for nil tier 1 result")
	}
	if _, err := Compile(testEvent(), tier1, nil, compileAt); err == nil {
		t.Error("expected error for nil tier 2 result")
	}
}

func TestRenderReportBody_SectionOrder(t *testing.T) {
	tier1, tier2 := baseTierResults()
	tier1.Impact.Narrative = "Low speed rear impact."
	tier2.Services.BodyShops = []model.ServiceLocation{{Name: "Main St Auto", DistanceMiles: 0.8, ETAMinutes: 7, IsPreferred: true}}

	report := mustCompile(t, testEvent(), tier1, tier2)
	body := RenderReportBody(report)

	sections := []string{
		"ACCIDENT DETAIL",
		"IMPACT ANALYSIS",
		"NARRATIVE",
		"POLICY",
		"DRIVER",
		"VEHICLE",
		"ENVIRONMENT",
		"NEARBY SERVICES",
		"RECOMMENDED ACTIONS",
		"ALERTS",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(body, section)
		if idx == -1 {
			t.Fatalf("missing section %q in body:\n%s", section, body)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}

	if !strings.Contains(body, "[preferred]") {
		t.Error("preferred service marker missing")
	}

	// Same report renders to the same text.
	if body != RenderReportBody(report) {
		t.Error("renderer is not deterministic")
	}
}
