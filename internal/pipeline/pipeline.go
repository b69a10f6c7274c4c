// Package pipeline implements the dependency-staged orchestration that
// turns one accident telemetry event into a composed incident report.
// Two fixed tiers of capability invocations run with parallel fan-out
// and fail-fast barriers; compilation and finalization follow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fnolabs/crashtriage/internal/capability"
	"github.com/fnolabs/crashtriage/internal/model"
	"github.com/fnolabs/crashtriage/internal/stats"
	"github.com/fnolabs/crashtriage/internal/status"
	"github.com/fnolabs/crashtriage/internal/store"
)

// Pipeline orchestrates the complete claim process for one event.
type Pipeline struct {
	invoker  capability.Invoker
	sink     status.Sink
	counters *stats.Counters
	reports  store.ReportStore // optional; persistence failures never unwind a report
	config   *model.Config

	nowFunc func() time.Time // injectable for tests
}

// New creates a pipeline. sink may be nil (no observation), reports may
// be nil (no persistence); invoker and counters are required.
func New(invoker capability.Invoker, sink status.Sink, counters *stats.Counters, reports store.ReportStore, cfg *model.Config) *Pipeline {
	if sink == nil {
		sink = status.NopSink{}
	}
	if counters == nil {
		counters = stats.NewCounters()
	}
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	return &Pipeline{
		invoker:  invoker,
		sink:     sink,
		counters: counters,
		reports:  reports,
		config:   cfg,
		nowFunc:  time.Now,
	}
}

// Process runs the full pipeline for one accident event. It returns the
// completed IncidentReport, or an error with no report at all; there is
// no partial state in between.
func (p *Pipeline) Process(ctx context.Context, ev *model.AccidentEvent) (*model.IncidentReport, error) {
	if err := model.ValidateEvent(ev); err != nil {
		return nil, err
	}
	p.counters.AccidentReceived()

	tier1, err := p.collectTier1(ctx, ev)
	if err != nil {
		return nil, err
	}

	tier2, err := p.collectTier2(ctx, ev, tier1)
	if err != nil {
		return nil, err
	}

	report, err := Compile(ev, tier1, tier2, p.nowFunc().UTC())
	if err != nil {
		return nil, err
	}
	p.counters.ReportProduced()

	report = p.Finalize(ctx, report)

	if p.reports != nil {
		if _, err := p.reports.Save(report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: persist report %s: %v\n", report.ClaimNumber, err)
		}
	}

	return report, nil
}

// runTask invokes one capability with lifecycle broadcasting. Every
// failure comes back as a *capability.Error carrying the capability
// name, after a FAILED event has been published.
func (p *Pipeline) runTask(ctx context.Context, name, claimRef string, params any, out any) error {
	p.sink.Publish(status.Event{
		Capability: name,
		Status:     status.StatusStarted,
		ClaimRef:   claimRef,
	})

	if err := p.invoker.Invoke(ctx, name, params, out); err != nil {
		var cerr *capability.Error
		if !errors.As(err, &cerr) {
			err = capability.NewError(name, err)
		}
		p.sink.Publish(status.Event{
			Capability: name,
			Status:     status.StatusFailed,
			ClaimRef:   claimRef,
			Detail:     err.Error(),
		})
		return err
	}

	p.sink.Publish(status.Event{
		Capability: name,
		Status:     status.StatusCompleted,
		ClaimRef:   claimRef,
	})
	return nil
}
