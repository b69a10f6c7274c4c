package store

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fnolabs/crashtriage/internal/model"
)

// MemoryStore keeps reports in memory with an optional TTL.
type MemoryStore struct {
	cache *gocache.Cache
	mu    sync.Mutex // serializes the check-then-set in Save
}

// NewMemoryStore creates a memory store. ttl == 0 means reports never
// expire.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryStore{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

// Save upserts idempotently by claim number.
func (s *MemoryStore) Save(report *model.IncidentReport) (*model.IncidentReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, found := s.cache.Get(report.ClaimNumber); found {
		return existing.(*model.IncidentReport), nil
	}
	s.cache.SetDefault(report.ClaimNumber, report)
	return report, nil
}

// Get returns the report for a claim number.
func (s *MemoryStore) Get(claimNumber string) (*model.IncidentReport, bool) {
	if val, found := s.cache.Get(claimNumber); found {
		return val.(*model.IncidentReport), true
	}
	return nil, false
}

// List returns all stored claim numbers.
func (s *MemoryStore) List() ([]string, error) {
	items := s.cache.Items()
	claims := make([]string, 0, len(items))
	for claim := range items {
		claims = append(claims, claim)
	}
	return claims, nil
}
