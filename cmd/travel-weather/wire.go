package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/travel-weather/internal/catalog"
	"github.com/i474232898/travel-weather/internal/config"
	"github.com/i474232898/travel-weather/internal/weather"
	"github.com/i474232898/travel-weather/internal/weather/providers"
)

type stationCatalog interface {
	weather.StationCatalog
	weather.StationSink
}

// dependencies holds the collaborators shared by every command.
type dependencies struct {
	catalog       stationCatalog
	forecasts     weather.ForecastProvider
	directions    weather.Directions
	stationSource weather.StationSource

	closers []func(context.Context) error
}

func wire(ctx context.Context, cfg *config.AppConfig) (*dependencies, error) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	deps := &dependencies{}

	if cfg.DataPointAPIKey != "" {
		dp := providers.NewDataPointProvider(httpClient, cfg.DataPointAPIKey, cfg.DataPointBaseURL)
		deps.forecasts = dp
		deps.stationSource = dp
	} else {
		log.Warn().Msg("DATAPOINT_API_KEY not set; every forecast will be unavailable")
	}

	if cfg.GoogleMapsAPIKey != "" {
		deps.directions = providers.NewGoogleDirections(httpClient, cfg.GoogleMapsAPIKey, cfg.DirectionsBaseURL, cfg.DirectionsRegion)
	} else {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set; reports need explicit route segments")
	}

	switch cfg.StationCatalog {
	case config.CatalogMongo:
		m, err := catalog.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.CandidateLimit)
		if err != nil {
			return nil, err
		}
		deps.catalog = m
		deps.closers = append(deps.closers, m.Close)
	default:
		var seed []weather.Station
		if cfg.StationsFile != "" {
			stations, err := catalog.LoadYAML(cfg.StationsFile)
			if err != nil {
				return nil, err
			}
			seed = stations
			log.Info().Int("stations", len(seed)).Str("file", cfg.StationsFile).Msg("station catalog seeded")
		}
		mem := catalog.NewMemory(seed, cfg.CandidateLimit)
		deps.catalog = mem

		// Without a seed file the catalog is filled from the sitelist before serving.
		if mem.Len() == 0 && deps.stationSource != nil {
			stations, err := deps.stationSource.Stations(ctx)
			if err != nil {
				return nil, err
			}
			if err := mem.ReplaceStations(ctx, stations); err != nil {
				return nil, err
			}
			log.Info().Int("stations", mem.Len()).Msg("station catalog loaded from DataPoint")
		}
	}

	return deps, nil
}

func (d *dependencies) service(cfg *config.AppConfig, reports weather.ReportStore) *weather.Service {
	return weather.NewService(
		d.catalog,
		d.forecasts,
		d.directions,
		reports,
		weather.WithConcurrency(cfg.PipelineConcurrency),
	)
}

func (d *dependencies) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		log.Error().Err(err).Msg("failed to close dependencies")
	}
}
