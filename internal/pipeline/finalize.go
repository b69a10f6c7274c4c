package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/fnolabs/crashtriage/internal/capability"
	"github.com/fnolabs/crashtriage/internal/model"
)

// Finalize renders the report body and issues the two best-effort
// notifications. Each send is wrapped individually: a failure is logged
// and never aborts the stage or alters the report. The unchanged report
// is returned as the pipeline's completion marker.
func (p *Pipeline) Finalize(ctx context.Context, report *model.IncidentReport) *model.IncidentReport {
	if !p.config.Pipeline.Notifications {
		return report
	}

	body := RenderReportBody(report)

	p.notify(ctx, capability.NotifyAdjuster, capability.NotifyAdjusterParams{
		ClaimNumber: report.ClaimNumber,
		Severity:    report.Impact.Severity,
		ReportBody:  body,
	})

	p.notify(ctx, capability.NotifyCustomer, capability.NotifyCustomerParams{
		ClaimReference: report.ClaimNumber,
		CustomerName:   report.Policy.Driver.Name,
		CustomerEmail:  report.Policy.Driver.Email,
		PolicyNumber:   report.Policy.Policy.Number,
		Severity:       report.Impact.Severity,
		Services:       report.Services,
		NextSteps:      report.RecommendedActions,
	})

	return report
}

// notify performs one best-effort notification send.
func (p *Pipeline) notify(ctx context.Context, name string, params any) {
	var result capability.NotificationResult
	if err := p.invoker.Invoke(ctx, name, params, &result); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s failed: %v\n", name, err)
		return
	}
	p.counters.EmailSent()
}
