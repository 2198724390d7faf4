package weather

import (
	"context"
	"errors"
	"time"

	"github.com/i474232898/travel-weather/internal/geo"
	"github.com/i474232898/travel-weather/internal/route"
)

// ErrForecastUnavailable wraps any failed forecast lookup.
var ErrForecastUnavailable = errors.New("forecast unavailable")

// ErrReportNotFound is returned by report stores for unknown IDs.
var ErrReportNotFound = errors.New("report not found")

// StationCatalog answers with the stations worth ranking for a coordinate.
// Implementations may return the whole catalog or a pre-ranked subset; the
// order returned is the tie-break order.
type StationCatalog interface {
	NearestCandidates(ctx context.Context, c geo.Coordinate) ([]Station, error)
}

// ForecastProvider abstracts a 3-hourly forecast source (e.g. Met Office DataPoint).
type ForecastProvider interface {
	Name() string
	Forecast(ctx context.Context, stationID string, windowStart time.Time) (Forecast, error)
}

// Directions resolves an origin/destination pair into a drivable route.
type Directions interface {
	Route(ctx context.Context, origin, destination string) (route.Route, error)
}

// StationSource lists every station known to an upstream provider.
type StationSource interface {
	Stations(ctx context.Context) ([]Station, error)
}

// StationSink accepts a full replacement of the station catalog.
type StationSink interface {
	ReplaceStations(ctx context.Context, stations []Station) error
}

// ReportStore is the contract the in-memory report history must satisfy.
type ReportStore interface {
	SaveReport(report Report)
	GetReport(id string) (Report, error)
	GetLatest() (Report, error)
}
