package weather

import (
	"errors"

	"github.com/i474232898/travel-weather/internal/geo"
	"github.com/i474232898/travel-weather/internal/route"
)

// ErrNoStationsAvailable is returned when a point has no candidate stations.
var ErrNoStationsAvailable = errors.New("no weather stations available")

// TieEpsilonKm is the distance under which two candidates count as equidistant.
const TieEpsilonKm = 1e-9

// Match selects the station nearest to p. Equidistant candidates resolve to
// the one listed first.
func Match(p route.Point, candidates []Station) (StationMatch, error) {
	if len(candidates) == 0 {
		return StationMatch{}, ErrNoStationsAvailable
	}

	best := 0
	bestDistance := geo.Distance(p.Coordinate, candidates[0].Coordinate())

	for i := 1; i < len(candidates); i++ {
		d := geo.Distance(p.Coordinate, candidates[i].Coordinate())
		if d < bestDistance-TieEpsilonKm {
			best = i
			bestDistance = d
		}
	}

	return StationMatch{
		Station:        candidates[best],
		ElapsedMinutes: p.ElapsedMinutes,
		DistanceKm:     bestDistance,
	}, nil
}
