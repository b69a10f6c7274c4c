package pipeline

import (
	"fmt"
	"time"

	"github.com/fnolabs/crashtriage/internal/model"
)

// ClaimNumber derives the claim identifier from the policy and the year
// of processing. The scheme is deterministic on purpose: a retried or
// duplicate-delivered event resolves to the same claim, so persistence
// upserts instead of forking a second record.
func ClaimNumber(policyID string, at time.Time) string {
	return fmt.Sprintf("CLM-%d-%s", at.Year(), policyID)
}

// ClaimReference is the reference handed to Tier-2 capabilities and
// customer communications. It is the same value as the final claim
// number, derived before the report exists.
func ClaimReference(ev *model.AccidentEvent, at time.Time) string {
	return ClaimNumber(ev.PolicyID, at)
}
