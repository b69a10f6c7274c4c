package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fnolabs/crashtriage/internal/model"
)

// DiskStore writes one JSON file per report under a directory, named by
// claim number.
type DiskStore struct {
	dir string
	mu  sync.Mutex
}

// NewDiskStore creates a disk store rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Save upserts idempotently by claim number.
func (s *DiskStore) Save(report *model.IncidentReport) (*model.IncidentReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, found := s.read(report.ClaimNumber); found {
		return existing, nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	path := s.path(report.ClaimNumber)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("rename report: %w", err)
	}

	return report, nil
}

// Get returns the report for a claim number.
func (s *DiskStore) Get(claimNumber string) (*model.IncidentReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(claimNumber)
}

// List returns all stored claim numbers.
func (s *DiskStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var claims []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			claims = append(claims, strings.TrimSuffix(name, ".json"))
		}
	}
	return claims, nil
}

func (s *DiskStore) read(claimNumber string) (*model.IncidentReport, bool) {
	data, err := os.ReadFile(s.path(claimNumber))
	if err != nil {
		return nil, false
	}

	var report model.IncidentReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}

func (s *DiskStore) path(claimNumber string) string {
	return filepath.Join(s.dir, claimNumber+".json")
}
