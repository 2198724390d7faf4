package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/i474232898/travel-weather/internal/geo"
	"github.com/i474232898/travel-weather/internal/weather"
)

// Memory is an in-memory station catalog. It ranks stations by great-circle
// distance itself, so it answers with exact candidates for any coordinate.
type Memory struct {
	mu       sync.RWMutex
	stations []weather.Station

	// limit caps how many ranked candidates are returned (0 = all)
	limit int
}

// NewMemory creates a catalog holding stations in the given order.
func NewMemory(stations []weather.Station, limit int) *Memory {
	m := &Memory{limit: limit}
	m.replace(stations)
	return m
}

// NearestCandidates returns the catalog ordered by distance from c. Stations
// at the same distance keep their catalog order.
func (m *Memory) NearestCandidates(ctx context.Context, c geo.Coordinate) ([]weather.Station, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type ranked struct {
		station  weather.Station
		distance float64
	}

	all := make([]ranked, len(m.stations))
	for i, s := range m.stations {
		all[i] = ranked{station: s, distance: geo.Distance(c, s.Coordinate())}
	}
	// Distances within the matcher's tie epsilon keep catalog order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].distance < all[j].distance-weather.TieEpsilonKm
	})

	n := len(all)
	if m.limit > 0 && m.limit < n {
		n = m.limit
	}

	result := make([]weather.Station, n)
	for i := 0; i < n; i++ {
		result[i] = all[i].station
	}
	return result, nil
}

// ReplaceStations swaps the whole catalog.
func (m *Memory) ReplaceStations(ctx context.Context, stations []weather.Station) error {
	m.replace(stations)
	return nil
}

func (m *Memory) replace(stations []weather.Station) {
	seen := make(map[string]bool, len(stations))
	kept := make([]weather.Station, 0, len(stations))
	for _, s := range stations {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		kept = append(kept, s)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stations = kept
}

// Len returns the number of stations in the catalog.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stations)
}
