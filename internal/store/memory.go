package store

import (
	"sync"
	"time"

	"github.com/i474232898/travel-weather/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory history of generated reports.
type MemoryStore struct {
	mu sync.RWMutex

	// insertion order, oldest first
	reports []weather.Report
	byID    map[string]int

	// retention configuration
	maxHistory int           // max number of reports kept
	maxAge     time.Duration // optional max age of reports

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		byID:       make(map[string]int),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveReport appends a report and enforces retention.
func (s *MemoryStore) SaveReport(report weather.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, report)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.reports) > s.maxHistory {
		over := len(s.reports) - s.maxHistory
		s.reports = s.reports[over:]
	}

	// Enforce retention by age; the newest report always survives.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.reports)-1; i++ {
			if !s.reports[i].CreatedAt.Before(cutoff) {
				break
			}
		}
		s.reports = s.reports[i:]
	}

	s.reindex()
}

func (s *MemoryStore) reindex() {
	s.byID = make(map[string]int, len(s.reports))
	for i, r := range s.reports {
		s.byID[r.ID] = i
	}
}

// GetReport returns the report with the given ID.
func (s *MemoryStore) GetReport(id string) (weather.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return weather.Report{}, weather.ErrReportNotFound
	}
	return s.reports[i], nil
}

// GetLatest returns the most recently saved report.
func (s *MemoryStore) GetLatest() (weather.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.reports) == 0 {
		return weather.Report{}, weather.ErrReportNotFound
	}
	return s.reports[len(s.reports)-1], nil
}

// Len returns the number of retained reports.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
