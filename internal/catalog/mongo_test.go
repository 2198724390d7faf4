package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/i474232898/travel-weather/internal/geo"
)

// Integration test - needs a reachable MongoDB.
func TestMongoCatalogIntegration(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017/"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	m, err := ConnectMongo(ctx, uri, "travel_weather_test", 2)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer m.Close(ctx)

	if err := m.ReplaceStations(ctx, testStations); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := m.NearestCandidates(ctx, geo.Coordinate{Lat: 51.5007, Lng: -0.1246})
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if len(got) != 2 || got[0].ID != "352409" {
		t.Fatalf("unexpected candidates %+v", got)
	}
}

func TestStationDocumentRoundTrip(t *testing.T) {
	s := testStations[1]
	if got := toDocument(s).station(); got != s {
		t.Fatalf("document round trip = %+v, want %+v", got, s)
	}
	if doc := toDocument(s); doc.Location.Coordinates[0] != s.Longitude {
		t.Fatal("GeoJSON coordinates must be longitude first")
	}
}

func TestNearestPipelineBreaksTiesOnID(t *testing.T) {
	pipeline := nearestPipeline(geo.Coordinate{Lat: 51.5, Lng: -0.12}, 5)
	if len(pipeline) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(pipeline))
	}

	geoNear := pipeline[0][0]
	if geoNear.Key != "$geoNear" {
		t.Fatalf("first stage = %s, want $geoNear", geoNear.Key)
	}
	near := geoNear.Value.(bson.D)[0].Value.(bson.D)
	coords := near[1].Value.(bson.A)
	if coords[0] != -0.12 || coords[1] != 51.5 {
		t.Fatalf("coordinates = %v, want [lng lat]", coords)
	}

	sortStage := pipeline[1][0]
	if sortStage.Key != "$sort" {
		t.Fatalf("second stage = %s, want $sort", sortStage.Key)
	}
	keys := sortStage.Value.(bson.D)
	if len(keys) != 2 || keys[0].Key != "distance" || keys[1].Key != "_id" {
		t.Fatalf("sort keys = %v, want distance then _id", keys)
	}

	if limit := pipeline[2][0]; limit.Key != "$limit" || limit.Value != int64(5) {
		t.Fatalf("last stage = %v, want $limit 5", limit)
	}
}
