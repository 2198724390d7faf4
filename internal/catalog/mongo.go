package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/i474232898/travel-weather/internal/geo"
	"github.com/i474232898/travel-weather/internal/weather"
)

const stationsCollection = "stations"

var errEmptyReplacement = errors.New("refusing to replace catalog with no stations")

type geoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"` // lng, lat
}

type stationDocument struct {
	ID       string       `bson:"_id"`
	Name     string       `bson:"name"`
	Region   string       `bson:"region,omitempty"`
	Location geoJSONPoint `bson:"location"`
}

func toDocument(s weather.Station) stationDocument {
	return stationDocument{
		ID:     s.ID,
		Name:   s.Name,
		Region: s.Region,
		Location: geoJSONPoint{
			Type:        "Point",
			Coordinates: []float64{s.Longitude, s.Latitude},
		},
	}
}

func (d stationDocument) station() weather.Station {
	s := weather.Station{ID: d.ID, Name: d.Name, Region: d.Region}
	if len(d.Location.Coordinates) == 2 {
		s.Longitude = d.Location.Coordinates[0]
		s.Latitude = d.Location.Coordinates[1]
	}
	return s
}

// Mongo is a station catalog backed by a MongoDB collection with a 2dsphere
// index. Candidates come back pre-ranked by $geoNear and are re-ranked by the
// matcher with the spherical law of cosines.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	limit      int64
}

// ConnectMongo connects, pings and prepares the stations collection.
func ConnectMongo(ctx context.Context, uri, database string, limit int) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	m := &Mongo{
		client:     client,
		collection: client.Database(database).Collection(stationsCollection),
		limit:      int64(limit),
	}
	m.createIndexes(connectCtx)

	return m, nil
}

func (m *Mongo) createIndexes(ctx context.Context) {
	_, err := m.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating station indexes")
	}
}

// nearestPipeline ranks stations by spherical distance from c. $near leaves
// the order of equidistant stations unspecified, so ties are broken on _id.
func nearestPipeline(c geo.Coordinate, limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: bson.D{
				{Key: "type", Value: "Point"},
				{Key: "coordinates", Value: bson.A{c.Lng, c.Lat}},
			}},
			{Key: "distanceField", Value: "distance"},
			{Key: "spherical", Value: true},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "distance", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
	}
}

// NearestCandidates returns the stations closest to c, nearest first.
func (m *Mongo) NearestCandidates(ctx context.Context, c geo.Coordinate) ([]weather.Station, error) {
	cursor, err := m.collection.Aggregate(ctx, nearestPipeline(c, m.limit))
	if err != nil {
		return nil, fmt.Errorf("query nearest stations: %w", err)
	}

	var docs []stationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode stations: %w", err)
	}

	stations := make([]weather.Station, 0, len(docs))
	for _, d := range docs {
		stations = append(stations, d.station())
	}
	return stations, nil
}

// ReplaceStations upserts every station and removes those no longer listed.
func (m *Mongo) ReplaceStations(ctx context.Context, stations []weather.Station) error {
	if len(stations) == 0 {
		return errEmptyReplacement
	}

	models := make([]mongo.WriteModel, 0, len(stations))
	ids := make(bson.A, 0, len(stations))
	for _, s := range stations {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": s.ID}).
			SetReplacement(toDocument(s)).
			SetUpsert(true))
		ids = append(ids, s.ID)
	}

	if _, err := m.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("upsert stations: %w", err)
	}

	deleted, err := m.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": ids}})
	if err != nil {
		return fmt.Errorf("prune stations: %w", err)
	}

	log.Info().
		Int("stations", len(stations)).
		Int64("removed", deleted.DeletedCount).
		Msg("station catalog replaced")
	return nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
