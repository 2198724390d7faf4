package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-weather/internal/weather"
)

// DefaultDataPointBaseURL is the Met Office DataPoint API root.
const DefaultDataPointBaseURL = "http://datapoint.metoffice.gov.uk/public/data/val"

// DataPointProvider implements weather.ForecastProvider and weather.StationSource
// for the Met Office DataPoint 3-hourly site-specific forecast.
type DataPointProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewDataPointProvider(client *http.Client, apiKey, baseURL string) *DataPointProvider {
	if baseURL == "" {
		baseURL = DefaultDataPointBaseURL
	}

	return &DataPointProvider{
		name:    "datapoint",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuitBreaker("datapoint"),
	}
}

func (p *DataPointProvider) Name() string {
	return p.name
}

// dataPointRep is one 3-hourly forecast step. All values arrive as strings.
type dataPointRep struct {
	WindDirection string `json:"D"`
	FeelsLike     string `json:"F"`
	WindGust      string `json:"G"`
	Humidity      string `json:"H"`
	PrecipProb    string `json:"Pp"`
	WindSpeed     string `json:"S"`
	Temperature   string `json:"T"`
	Visibility    string `json:"V"`
	WeatherType   string `json:"W"`
	UVIndex       string `json:"U"`
	Minutes       string `json:"$"` // minutes after midnight UTC
}

type dataPointPeriod struct {
	Value string                  `json:"value"` // e.g. "2024-05-01Z"
	Rep   oneOrMany[dataPointRep] `json:"Rep"`
}

type dataPointForecastResponse struct {
	SiteRep struct {
		DV struct {
			Location struct {
				ID     string                     `json:"i"`
				Name   string                     `json:"name"`
				Period oneOrMany[dataPointPeriod] `json:"Period"`
			} `json:"Location"`
		} `json:"DV"`
	} `json:"SiteRep"`
}

// Forecast returns the 3-hourly forecast for the window starting at windowStart.
func (p *DataPointProvider) Forecast(ctx context.Context, stationID string, windowStart time.Time) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("%w: datapoint api key is not configured", weather.ErrForecastUnavailable)
	}

	windowStart = windowStart.UTC()

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("res", "3hourly")
		values.Set("time", windowStart.Format("2006-01-02T15Z"))
		values.Set("key", p.apiKey)

		u := fmt.Sprintf("%s/wxfcs/all/json/%s?%s", p.baseURL, url.PathEscape(stationID), values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("%w: %v", weather.ErrForecastUnavailable, err)
	}
	defer resp.Body.Close()

	var payload dataPointForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Forecast{}, fmt.Errorf("%w: decode forecast: %v", weather.ErrForecastUnavailable, err)
	}

	rep, ok := selectRep(payload.SiteRep.DV.Location.Period, windowStart)
	if !ok {
		return weather.Forecast{}, fmt.Errorf("%w: no forecast for station %s at %s",
			weather.ErrForecastUnavailable, stationID, windowStart.Format(time.RFC3339))
	}

	f, err := rep.toForecast()
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("%w: %v", weather.ErrForecastUnavailable, err)
	}
	return f, nil
}

// selectRep finds the step for windowStart. A response filtered by time
// carries a single step, which is taken as is.
func selectRep(periods []dataPointPeriod, windowStart time.Time) (dataPointRep, bool) {
	day := windowStart.Format("2006-01-02") + "Z"
	minutes := strconv.Itoa(windowStart.Hour() * 60)

	var all []dataPointRep
	for _, period := range periods {
		for _, rep := range period.Rep {
			if period.Value == day && rep.Minutes == minutes {
				return rep, true
			}
			all = append(all, rep)
		}
	}

	if len(all) == 1 {
		return all[0], true
	}
	return dataPointRep{}, false
}

func (r dataPointRep) toForecast() (weather.Forecast, error) {
	f := weather.Forecast{
		Weather:       weather.WeatherType(r.WeatherType),
		WindDirection: r.WindDirection,
		Visibility:    weather.Visibility(r.Visibility),
	}

	fields := []struct {
		name  string
		value string
		dst   *int
	}{
		{"T", r.Temperature, &f.TemperatureC},
		{"F", r.FeelsLike, &f.FeelsLikeC},
		{"S", r.WindSpeed, &f.WindSpeedMph},
		{"G", r.WindGust, &f.WindGustMph},
		{"Pp", r.PrecipProb, &f.PrecipitationProbability},
		{"H", r.Humidity, &f.HumidityPct},
		{"U", r.UVIndex, &f.UVIndex},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		n, err := strconv.Atoi(field.value)
		if err != nil {
			return weather.Forecast{}, fmt.Errorf("field %s: invalid value %q", field.name, field.value)
		}
		*field.dst = n
	}

	if f.Weather == "" {
		f.Weather = weather.WeatherNotAvailable
	}
	if f.Visibility == "" {
		f.Visibility = weather.VisibilityUnknown
	}
	return f, nil
}

type dataPointSiteListResponse struct {
	Locations struct {
		Location []struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Region    string `json:"region"`
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
		} `json:"Location"`
	} `json:"Locations"`
}

// Stations lists every forecast site known to DataPoint.
func (p *DataPointProvider) Stations(ctx context.Context) ([]weather.Station, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("datapoint api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)

		u := fmt.Sprintf("%s/wxfcs/all/json/sitelist?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload dataPointSiteListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	stations := make([]weather.Station, 0, len(payload.Locations.Location))
	for _, loc := range payload.Locations.Location {
		lat, latErr := strconv.ParseFloat(loc.Latitude, 64)
		lng, lngErr := strconv.ParseFloat(loc.Longitude, 64)
		if latErr != nil || lngErr != nil {
			// Skip sites without usable coordinates.
			continue
		}

		stations = append(stations, weather.Station{
			ID:        loc.ID,
			Name:      loc.Name,
			Region:    loc.Region,
			Latitude:  lat,
			Longitude: lng,
		})
	}

	return stations, nil
}
