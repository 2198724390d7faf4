package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-weather/internal/geo"
	"github.com/i474232898/travel-weather/internal/route"
)

// DefaultDirectionsBaseURL is the Google Directions JSON endpoint.
const DefaultDirectionsBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

var errNoRoute = errors.New("directions returned no route")

// GoogleDirections implements weather.Directions for the Google Directions API.
type GoogleDirections struct {
	name    string
	apiKey  string
	baseURL string
	region  string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewGoogleDirections(client *http.Client, apiKey, baseURL, region string) *GoogleDirections {
	if baseURL == "" {
		baseURL = DefaultDirectionsBaseURL
	}

	return &GoogleDirections{
		name:    "google-directions",
		apiKey:  apiKey,
		baseURL: baseURL,
		region:  region,
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuitBreaker("google-directions"),
	}
}

func (p *GoogleDirections) Name() string {
	return p.name
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l latLng) coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: l.Lat, Lng: l.Lng}
}

type durationValue struct {
	Value int `json:"value"` // seconds
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			StartAddress  string        `json:"start_address"`
			EndAddress    string        `json:"end_address"`
			StartLocation latLng        `json:"start_location"`
			EndLocation   latLng        `json:"end_location"`
			Duration      durationValue `json:"duration"`
			Steps         []struct {
				StartLocation latLng        `json:"start_location"`
				EndLocation   latLng        `json:"end_location"`
				Duration      durationValue `json:"duration"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route asks the directions service for a driving route. Steps of every leg
// of the first route become the route segments.
func (p *GoogleDirections) Route(ctx context.Context, origin, destination string) (route.Route, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("origin", origin)
		values.Set("destination", destination)
		values.Set("mode", "driving")
		if p.region != "" {
			values.Set("region", p.region)
		}
		if p.apiKey != "" {
			values.Set("key", p.apiKey)
		}

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return route.Route{}, err
	}
	defer resp.Body.Close()

	var payload directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return route.Route{}, err
	}

	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return route.Route{}, fmt.Errorf("directions status %s: %s", payload.Status, payload.ErrorMessage)
		}
		return route.Route{}, fmt.Errorf("directions status %s", payload.Status)
	}
	if len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		return route.Route{}, errNoRoute
	}

	legs := payload.Routes[0].Legs
	first, last := legs[0], legs[len(legs)-1]

	r := route.Route{
		Origin:      first.StartAddress,
		Destination: last.EndAddress,
		Start:       first.StartLocation.coordinate(),
		End:         last.EndLocation.coordinate(),
	}
	for _, leg := range legs {
		r.DurationSeconds += leg.Duration.Value
		for _, step := range leg.Steps {
			r.Segments = append(r.Segments, route.Segment{
				Start:           step.StartLocation.coordinate(),
				End:             step.EndLocation.coordinate(),
				DurationSeconds: step.Duration.Value,
			})
		}
	}

	if len(r.Segments) == 0 {
		return route.Route{}, errNoRoute
	}
	return r, nil
}
