package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/i474232898/travel-weather/internal/weather"
)

// stationFile is the on-disk layout of a station seed file:
//
//	stations:
//	  - id: "352409"
//	    name: London
//	    latitude: 51.508
//	    longitude: -0.125
type stationFile struct {
	Stations []weather.Station `yaml:"stations"`
}

// LoadYAML reads stations from a YAML seed file.
func LoadYAML(path string) ([]weather.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station file: %w", err)
	}

	var f stationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse station file %s: %w", path, err)
	}

	for i, s := range f.Stations {
		if s.ID == "" {
			return nil, fmt.Errorf("station %d in %s has no id", i, path)
		}
		if s.Latitude < -90 || s.Latitude > 90 || s.Longitude < -180 || s.Longitude > 180 {
			return nil, fmt.Errorf("station %s in %s has invalid coordinates", s.ID, path)
		}
	}

	return f.Stations, nil
}
