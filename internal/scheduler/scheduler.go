package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/travel-weather/internal/weather"
)

const refreshTimeout = 2 * time.Minute

// Scheduler periodically refreshes the station catalog from an upstream source.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    weather.StationSource
	sink      weather.StationSink
	interval  time.Duration
}

// New creates a new Scheduler.
func New(source weather.StationSource, sink weather.StationSink, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		source:    source,
		sink:      sink,
		interval:  interval,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first run happens one interval after Start; callers load the catalog at
// startup themselves.
func (s *Scheduler) Start() error {
	if s.source == nil || s.sink == nil || s.interval <= 0 {
		log.Info().Msg("scheduler: station refresh disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := s.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("scheduler: station refresh failed")
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Refresh pulls the station list once and replaces the catalog. An empty
// upstream answer keeps the current catalog.
func (s *Scheduler) Refresh(ctx context.Context) error {
	log.Info().Msg("scheduler: refreshing station catalog")

	stations, err := s.source.Stations(ctx)
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		log.Warn().Msg("scheduler: upstream returned no stations; keeping current catalog")
		return nil
	}

	if err := s.sink.ReplaceStations(ctx, stations); err != nil {
		return err
	}

	log.Info().Int("stations", len(stations)).Msg("scheduler: station catalog refreshed")
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
