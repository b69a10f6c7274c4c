package pipeline

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fnolabs/crashtriage/internal/capability"
	"github.com/fnolabs/crashtriage/internal/model"
)

// collectTier2 launches service location and communications initiation
// concurrently against the Tier-1 results, with the same fail-fast
// barrier as Tier-1. Tier-2 never starts before the Tier-1 barrier has
// resolved.
func (p *Pipeline) collectTier2(ctx context.Context, ev *model.AccidentEvent, tier1 *model.Tier1Result) (*model.Tier2Result, error) {
	claimRef := ClaimReference(ev, p.nowFunc())

	radius := p.config.Pipeline.ServiceRadiusMiles
	if radius <= 0 {
		radius = 5
	}

	var result model.Tier2Result
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		params := capability.FindServicesParams{
			Latitude:    ev.Latitude,
			Longitude:   ev.Longitude,
			Severity:    tier1.Impact.Severity,
			RadiusMiles: radius,
		}
		return p.runTask(gctx, capability.FindServices, claimRef, params, &result.Services)
	})

	g.Go(func() error {
		params := capability.InitiateCommsParams{
			ClaimReference: claimRef,
			DriverName:     tier1.Policy.Driver.Name,
			DriverPhone:    tier1.Policy.Driver.Phone,
			Severity:       tier1.Impact.Severity,
		}
		return p.runTask(gctx, capability.InitiateComms, claimRef, params, &result.Communications)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result.Communications.DriverOutreach.SMSSent {
		p.counters.SMSSent()
	}

	// Log entries need unique IDs, not stable ones; assign any missing.
	for i := range result.Communications.CommunicationLog {
		if result.Communications.CommunicationLog[i].ID == "" {
			result.Communications.CommunicationLog[i].ID = uuid.NewString()
		}
	}

	return &result, nil
}
