// Package stats holds process-wide pipeline counters. Counters are
// explicitly constructed and injected rather than kept as globals.
package stats

import "sync/atomic"

// Counters tracks pipeline throughput. All methods are safe for
// concurrent use.
type Counters struct {
	accidentsReceived atomic.Int64
	reportsProduced   atomic.Int64
	smsSent           atomic.Int64
	emailsSent        atomic.Int64
}

// NewCounters creates a zeroed counter set.
func NewCounters() *Counters {
	return &Counters{}
}

// AccidentReceived records one ingested accident event.
func (c *Counters) AccidentReceived() { c.accidentsReceived.Add(1) }

// ReportProduced records one completed incident report.
func (c *Counters) ReportProduced() { c.reportsProduced.Add(1) }

// SMSSent records one SMS delivered to a driver.
func (c *Counters) SMSSent() { c.smsSent.Add(1) }

// EmailSent records one notification email delivered.
func (c *Counters) EmailSent() { c.emailsSent.Add(1) }

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	AccidentsReceived int64 `json:"accidents_received"`
	ReportsProduced   int64 `json:"reports_produced"`
	SMSSent           int64 `json:"sms_sent"`
	EmailsSent        int64 `json:"emails_sent"`
}

// Snapshot returns the current counter values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		AccidentsReceived: c.accidentsReceived.Load(),
		ReportsProduced:   c.reportsProduced.Load(),
		SMSSent:           c.smsSent.Load(),
		EmailsSent:        c.emailsSent.Load(),
	}
}
