package geo

import "math"

// EarthRadiusKm is the sphere radius used for station ranking. Station choices
// depend on it, so it must not be swapped for the WGS84 mean radius.
const EarthRadiusKm = 6378.10

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Distance returns the great-circle distance in kilometres between a and b
// using the spherical law of cosines.
func Distance(a, b Coordinate) float64 {
	latA := radians(a.Lat)
	latB := radians(b.Lat)
	dLng := radians(b.Lng) - radians(a.Lng)

	cosine := math.Cos(latA)*math.Cos(latB)*math.Cos(dLng) + math.Sin(latA)*math.Sin(latB)

	// Rounding can push identical points just past 1.
	if cosine > 1 {
		cosine = 1
	} else if cosine < -1 {
		cosine = -1
	}

	return EarthRadiusKm * math.Acos(cosine)
}

// Lerp interpolates linearly between a and b; ratio 0 yields a, ratio 1 yields b.
func Lerp(a, b Coordinate, ratio float64) Coordinate {
	return Coordinate{
		Lat: a.Lat + ratio*(b.Lat-a.Lat),
		Lng: a.Lng + ratio*(b.Lng-a.Lng),
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
