package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/i474232898/travel-weather/internal/geo"
)

const directionsBody = `{"status":"OK","routes":[{"legs":[{
"start_address":"Westminster, London","end_address":"Birmingham, UK",
"start_location":{"lat":51.5007,"lng":-0.1246},"end_location":{"lat":52.4862,"lng":-1.8904},
"duration":{"text":"2 hours","value":7200},
"steps":[
{"start_location":{"lat":51.5007,"lng":-0.1246},"end_location":{"lat":51.9,"lng":-0.5},"duration":{"value":2000}},
{"start_location":{"lat":51.9,"lng":-0.5},"end_location":{"lat":52.4862,"lng":-1.8904},"duration":{"value":5200}}]}]}]}`

func TestGoogleDirectionsRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("origin") != "Westminster" || q.Get("destination") != "Birmingham" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("region") != "uk" || q.Get("key") != "maps-key" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, directionsBody)
	}))
	defer srv.Close()

	p := NewGoogleDirections(srv.Client(), "maps-key", srv.URL, "uk")

	r, err := p.Route(context.Background(), "Westminster", "Birmingham")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(r.Segments))
	}
	if r.DurationSeconds != 7200 {
		t.Fatalf("expected leg duration 7200, got %d", r.DurationSeconds)
	}
	if r.Start != (geo.Coordinate{Lat: 51.5007, Lng: -0.1246}) || r.End != (geo.Coordinate{Lat: 52.4862, Lng: -1.8904}) {
		t.Fatalf("unexpected endpoints %v -> %v", r.Start, r.End)
	}
	if r.Segments[1].DurationSeconds != 5200 {
		t.Fatalf("unexpected second segment %+v", r.Segments[1])
	}
	if r.Origin != "Westminster, London" || r.Destination != "Birmingham, UK" {
		t.Fatalf("unexpected labels %q -> %q", r.Origin, r.Destination)
	}
}

func TestGoogleDirectionsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","routes":[]}`)
	}))
	defer srv.Close()

	p := NewGoogleDirections(srv.Client(), "", srv.URL, "")

	if _, err := p.Route(context.Background(), "Atlantis", "Birmingham"); err == nil {
		t.Fatal("expected an error for ZERO_RESULTS")
	}
}

func TestGoogleDirectionsEmptyRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","routes":[]}`)
	}))
	defer srv.Close()

	p := NewGoogleDirections(srv.Client(), "", srv.URL, "")

	if _, err := p.Route(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected an error for an empty route list")
	}
}
