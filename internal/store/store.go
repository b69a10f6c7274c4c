// Package store persists completed incident reports keyed by claim
// number. Saves are idempotent upserts: a duplicate claim number is a
// no-op returning the existing record, never an error.
package store

import (
	"fmt"
	"strings"

	"github.com/fnolabs/crashtriage/internal/model"
)

// ReportStore is the persistence collaborator for incident reports.
type ReportStore interface {
	// Save stores the report unless a report with the same claim
	// number already exists, in which case the existing record is
	// returned unchanged.
	Save(report *model.IncidentReport) (*model.IncidentReport, error)

	// Get returns the report for a claim number, or false.
	Get(claimNumber string) (*model.IncidentReport, bool)

	// List returns all stored claim numbers.
	List() ([]string, error)
}

// New creates a report store from configuration.
func New(cfg model.StoreConfig) (ReportStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "disk":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("disk store requires a directory")
		}
		return NewDiskStore(cfg.Dir), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s (supported: memory, disk)", cfg.Backend)
	}
}
