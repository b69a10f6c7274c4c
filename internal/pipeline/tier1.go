package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fnolabs/crashtriage/internal/capability"
	"github.com/fnolabs/crashtriage/internal/model"
	"github.com/fnolabs/crashtriage/internal/status"
)

// collectTier1 launches impact analysis, environment gathering and
// policy lookup concurrently against the raw event and joins all three.
// The barrier is fail-fast: the first failure cancels the group context,
// so in-flight siblings stop instead of running to completion, and any
// already-produced sibling results are discarded. A Tier1Result is
// returned only when all three tasks succeeded.
func (p *Pipeline) collectTier1(ctx context.Context, ev *model.AccidentEvent) (*model.Tier1Result, error) {
	claimRef := ClaimReference(ev, p.nowFunc())

	var result model.Tier1Result
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.runTask(gctx, capability.AnalyzeImpact, claimRef, ev, &result.Impact)
	})

	g.Go(func() error {
		return p.runTask(gctx, capability.GatherEnvironment, claimRef, ev, &result.Environment)
	})

	g.Go(func() error {
		if err := p.runTask(gctx, capability.LookupPolicy, claimRef, ev, &result.Policy); err != nil {
			return err
		}
		// One-way notice for the external observer; no effect on
		// pipeline control flow.
		p.sink.PublishCustomerIdentified(status.CustomerIdentified{
			ClaimRef: claimRef,
			PolicyID: ev.PolicyID,
			Name:     result.Policy.Driver.Name,
			Phone:    result.Policy.Driver.Phone,
			Email:    result.Policy.Driver.Email,
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}
