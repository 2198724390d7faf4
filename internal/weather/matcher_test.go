package weather

import (
	"errors"
	"testing"

	"github.com/i474232898/travel-weather/internal/geo"
	"github.com/i474232898/travel-weather/internal/route"
)

func TestMatchPicksNearest(t *testing.T) {
	p := route.Point{Coordinate: geo.Coordinate{Lat: 51.5, Lng: -0.12}, ElapsedMinutes: 30}
	candidates := []Station{
		{ID: "3772", Name: "Heathrow", Latitude: 51.479, Longitude: -0.449},
		{ID: "3781", Name: "Kenley", Latitude: 51.303, Longitude: -0.09},
		{ID: "352409", Name: "London", Latitude: 51.508, Longitude: -0.125},
	}

	m, err := Match(p, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Station.ID != "352409" {
		t.Fatalf("expected London station, got %s", m.Station.Name)
	}
	if m.ElapsedMinutes != 30 {
		t.Fatalf("expected elapsed 30, got %d", m.ElapsedMinutes)
	}
	if want := geo.Distance(p.Coordinate, candidates[2].Coordinate()); m.DistanceKm != want {
		t.Fatalf("distance = %v, want %v", m.DistanceKm, want)
	}
}

func TestMatchTieBreaksOnCatalogOrder(t *testing.T) {
	p := route.Point{Coordinate: geo.Coordinate{Lat: 0, Lng: 0}}
	candidates := []Station{
		{ID: "north", Latitude: 1, Longitude: 0},
		{ID: "south", Latitude: -1, Longitude: 0},
		{ID: "east", Latitude: 0, Longitude: 1},
	}

	for i := 0; i < 5; i++ {
		m, err := Match(p, candidates)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Station.ID != "north" {
			t.Fatalf("run %d: expected first listed station, got %s", i, m.Station.ID)
		}
	}

	reversed := []Station{candidates[2], candidates[1], candidates[0]}
	m, err := Match(p, reversed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Station.ID != "east" {
		t.Fatalf("expected first listed station after reordering, got %s", m.Station.ID)
	}
}

func TestMatchNoCandidates(t *testing.T) {
	_, err := Match(route.Point{}, nil)
	if !errors.Is(err, ErrNoStationsAvailable) {
		t.Fatalf("expected ErrNoStationsAvailable, got %v", err)
	}
}
