package stats

import (
	"sync"
	"testing"
)

func TestCounters_Snapshot(t *testing.T) {
	c := NewCounters()

	c.AccidentReceived()
	c.AccidentReceived()
	c.ReportProduced()
	c.SMSSent()
	c.EmailSent()
	c.EmailSent()
	c.EmailSent()

	snap := c.Snapshot()
	if snap.AccidentsReceived != 2 {
		t.Errorf("accidents: expected 2, got %d", snap.AccidentsReceived)
	}
	if snap.ReportsProduced != 1 {
		t.Errorf("reports: expected 1, got %d", snap.ReportsProduced)
	}
	if snap.SMSSent != 1 {
		t.Errorf("sms: expected 1, got %d", snap.SMSSent)
	}
	if snap.EmailsSent != 3 {
		t.Errorf("emails: expected 3, got %d", snap.EmailsSent)
	}
}

func TestCounters_ConcurrentIncrement(t *testing.T) {
	c := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.AccidentReceived()
				c.SMSSent()
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.AccidentsReceived != 2000 || snap.SMSSent != 2000 {
		t.Errorf("lost increments: %+v", snap)
	}
}
