package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/i474232898/travel-weather/internal/route"
)

var (
	// ErrDirectionsUnavailable wraps failures of the directions provider.
	ErrDirectionsUnavailable = errors.New("directions unavailable")

	// ErrNoDirections is returned when a route must be resolved but no
	// directions provider is configured.
	ErrNoDirections = errors.New("no directions provider configured")

	errNoForecasts = errors.New("no forecast provider configured")
)

const defaultConcurrency = 4

// Service correlates routes with forecasts and keeps the resulting reports.
type Service struct {
	catalog     StationCatalog
	forecasts   ForecastProvider
	directions  Directions
	store       ReportStore
	concurrency int
	now         func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithConcurrency bounds how many points are matched and forecast at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock overrides the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service. directions and store may be nil when the
// caller only builds reports from explicit routes.
func NewService(catalog StationCatalog, forecasts ForecastProvider, directions Directions, store ReportStore, opts ...Option) *Service {
	s := &Service{
		catalog:     catalog,
		forecasts:   forecasts,
		directions:  directions,
		store:       store,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate resolves the requested route, builds its report and saves it.
func (s *Service) Generate(ctx context.Context, req ReportRequest) (Report, error) {
	r, err := s.resolveRoute(ctx, req)
	if err != nil {
		return Report{}, err
	}

	report, err := s.BuildReport(ctx, r, req.Departure)
	if err != nil {
		return Report{}, err
	}

	report.ID = uuid.NewString()
	if s.store != nil {
		s.store.SaveReport(report)
	}

	log.Info().
		Str("report", report.ID).
		Int("points", len(report.Records)).
		Int("unavailable", report.Summary.Unavailable).
		Msg("route weather report generated")

	return report, nil
}

func (s *Service) resolveRoute(ctx context.Context, req ReportRequest) (route.Route, error) {
	if req.Route != nil {
		return *req.Route, nil
	}
	if s.directions == nil {
		return route.Route{}, ErrNoDirections
	}

	r, err := s.directions.Route(ctx, req.Origin, req.Destination)
	if err != nil {
		return route.Route{}, fmt.Errorf("%w: %v", ErrDirectionsUnavailable, err)
	}
	if r.Origin == "" {
		r.Origin = req.Origin
	}
	if r.Destination == "" {
		r.Destination = req.Destination
	}
	return r, nil
}

// BuildReport samples the route, matches every point to its nearest station
// and looks up the forecast for the window the traveller arrives in.
//
// Catalog failures and points without stations abort the whole report. A
// failed forecast only marks its own record as unavailable.
func (s *Service) BuildReport(ctx context.Context, r route.Route, departure time.Time) (Report, error) {
	seq, err := route.Sample(r)
	if err != nil {
		return Report{}, err
	}

	var points []route.Point
	for p := range seq {
		points = append(points, p)
	}

	log.Debug().
		Int("segments", len(r.Segments)).
		Int("points", len(points)).
		Time("departure", departure).
		Msg("route sampled")

	records := make([]ReportRecord, len(points))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.concurrency)

	for i, point := range points {
		p.Go(func(ctx context.Context) error {
			rec, err := s.buildRecord(ctx, i, point, departure)
			if err != nil {
				return err
			}
			// Each goroutine owns its own index.
			records[i] = rec
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	return Report{
		CreatedAt:   s.now().UTC(),
		Departure:   departure,
		Origin:      r.Origin,
		Destination: r.Destination,
		DurationSec: r.TotalSeconds(),
		Records:     records,
		Summary:     Summarize(records),
	}, nil
}

func (s *Service) buildRecord(ctx context.Context, seq int, p route.Point, departure time.Time) (ReportRecord, error) {
	candidates, err := s.catalog.NearestCandidates(ctx, p.Coordinate)
	if err != nil {
		return ReportRecord{}, fmt.Errorf("point %d: station lookup: %w", seq+1, err)
	}

	match, err := Match(p, candidates)
	if err != nil {
		return ReportRecord{}, fmt.Errorf("point %d: %w", seq+1, err)
	}

	arrival := departure.Add(time.Duration(match.ElapsedMinutes) * time.Minute)
	// Forecast steps are every 3 hours from 00Z, so windows are aligned in UTC
	// and only shown in the departure's location.
	window := Align(arrival.UTC()).In(arrival.Location())

	rec := ReportRecord{
		Sequence:       seq,
		Station:        match.Station,
		DistanceKm:     match.DistanceKm,
		ElapsedMinutes: match.ElapsedMinutes,
		ArrivalTime:    arrival,
		Window:         window,
	}

	forecast, err := s.lookupForecast(ctx, match.Station.ID, window.Start)
	if err != nil {
		log.Warn().
			Err(err).
			Int("point", seq+1).
			Str("station", match.Station.ID).
			Time("window", window.Start).
			Msg("forecast lookup failed")

		rec.ForecastUnavailable = true
		rec.ForecastError = err.Error()
		return rec, nil
	}

	if !forecast.Visibility.Known() || !forecast.Weather.Known() {
		log.Debug().
			Str("station", match.Station.ID).
			Str("visibility", string(forecast.Visibility)).
			Str("weather", string(forecast.Weather)).
			Msg("forecast carries unrecognised codes")
	}

	rec.Forecast = &forecast
	return rec, nil
}

func (s *Service) lookupForecast(ctx context.Context, stationID string, windowStart time.Time) (Forecast, error) {
	if s.forecasts == nil {
		return Forecast{}, fmt.Errorf("%w: %v", ErrForecastUnavailable, errNoForecasts)
	}

	f, err := s.forecasts.Forecast(ctx, stationID, windowStart)
	if err != nil {
		if errors.Is(err, ErrForecastUnavailable) {
			return Forecast{}, err
		}
		return Forecast{}, fmt.Errorf("%w: %s: %v", ErrForecastUnavailable, s.forecasts.Name(), err)
	}
	return f, nil
}

// GetReport delegates to the underlying store.
func (s *Service) GetReport(id string) (Report, error) {
	if s.store == nil {
		return Report{}, ErrReportNotFound
	}
	return s.store.GetReport(id)
}

// LatestReport delegates to the underlying store.
func (s *Service) LatestReport() (Report, error) {
	if s.store == nil {
		return Report{}, ErrReportNotFound
	}
	return s.store.GetLatest()
}
