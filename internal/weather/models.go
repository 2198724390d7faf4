package weather

import (
	"time"

	"github.com/i474232898/travel-weather/internal/geo"
	"github.com/i474232898/travel-weather/internal/route"
)

// Station is a fixed weather-reporting site from the station catalog.
type Station struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Region    string  `json:"region,omitempty" yaml:"region,omitempty"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Coordinate returns the station position.
func (s Station) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: s.Latitude, Lng: s.Longitude}
}

// StationMatch binds a sampled point's travel time to its nearest station.
type StationMatch struct {
	Station        Station `json:"station"`
	ElapsedMinutes int     `json:"elapsedMinutes"`
	DistanceKm     float64 `json:"distanceKm"`
}

// Window is the 3-hour reporting interval used by the forecast provider.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Forecast is a single 3-hourly forecast for one station.
type Forecast struct {
	Weather                  WeatherType `json:"weatherType"`
	TemperatureC             int         `json:"temperatureC"`
	FeelsLikeC               int         `json:"feelsLikeC"`
	WindSpeedMph             int         `json:"windSpeedMph"`
	WindGustMph              int         `json:"windGustMph"`
	WindDirection            string      `json:"windDirection"`
	PrecipitationProbability int         `json:"precipitationProbability"`
	HumidityPct              int         `json:"humidityPercent"`
	Visibility               Visibility  `json:"visibility"`
	UVIndex                  int         `json:"uvIndex"`
}

// ReportRecord is the weather outlook for one sampled point on the route.
type ReportRecord struct {
	Sequence       int       `json:"sequence"`
	Station        Station   `json:"station"`
	DistanceKm     float64   `json:"distanceKm"`
	ElapsedMinutes int       `json:"elapsedMinutes"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Window         Window    `json:"window"`

	// Forecast is nil when the lookup failed for this record.
	Forecast            *Forecast `json:"forecast"`
	ForecastUnavailable bool      `json:"forecastUnavailable"`
	ForecastError       string    `json:"forecastError,omitempty"`
}

// Report is the full outcome of correlating a route with forecasts.
type Report struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"createdAt"` // always UTC
	Departure   time.Time      `json:"departure"`
	Origin      string         `json:"origin,omitempty"`
	Destination string         `json:"destination,omitempty"`
	DurationSec int            `json:"durationSeconds"`
	Records     []ReportRecord `json:"records"`
	Summary     Summary        `json:"summary"`
}

// ReportRequest describes a route to report on. Either Route carries explicit
// segments or Origin/Destination are resolved through the directions provider.
type ReportRequest struct {
	Departure   time.Time
	Origin      string
	Destination string
	Route       *route.Route
}
