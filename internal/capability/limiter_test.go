package capability

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow(AnalyzeImpact) {
			t.Errorf("request %d within burst should be allowed", i+1)
		}
	}
	if l.Allow(AnalyzeImpact) {
		t.Error("request beyond burst should be denied")
	}
}

func TestLimiter_PerCapabilityBuckets(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow(AnalyzeImpact) {
		t.Error("first analyze-impact should be allowed")
	}
	if !l.Allow(GatherEnvironment) {
		t.Error("gather-environment has its own bucket")
	}
	if l.Allow(AnalyzeImpact) {
		t.Error("second analyze-impact should be denied")
	}
}

func TestLimiter_ZeroRateDisablesLimiting(t *testing.T) {
	l := NewLimiter(0, 1)

	for i := 0; i < 100; i++ {
		if !l.Allow(LookupPolicy) {
			t.Fatal("zero rate must disable limiting")
		}
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.1, 1)
	l.Allow(FindServices) // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, FindServices); err == nil {
		t.Error("Wait should fail when context expires first")
	}
}

func TestLimiter_SetCapabilityRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetCapabilityRate(InitiateComms, 100, 10)

	for i := 0; i < 10; i++ {
		if !l.Allow(InitiateComms) {
			t.Errorf("custom burst request %d should be allowed", i+1)
		}
	}
}
