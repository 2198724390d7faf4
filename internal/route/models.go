package route

import "github.com/i474232898/travel-weather/internal/geo"

// Segment is one leg of a route as returned by the directions provider.
type Segment struct {
	Start           geo.Coordinate `json:"start"`
	End             geo.Coordinate `json:"end"`
	DurationSeconds int            `json:"durationSeconds"`
}

// Route is an ordered list of segments plus the overall start, end and duration
// reported by the directions provider.
type Route struct {
	Origin          string         `json:"origin,omitempty"`
	Destination     string         `json:"destination,omitempty"`
	Start           geo.Coordinate `json:"start"`
	End             geo.Coordinate `json:"end"`
	Segments        []Segment      `json:"segments"`
	DurationSeconds int            `json:"durationSeconds"`
}

// FromSegments builds a Route whose start, end and duration are derived from
// the segments themselves.
func FromSegments(segments []Segment) Route {
	r := Route{Segments: segments}
	if len(segments) == 0 {
		return r
	}

	r.Start = segments[0].Start
	r.End = segments[len(segments)-1].End
	for _, s := range segments {
		r.DurationSeconds += s.DurationSeconds
	}
	return r
}

// TotalSeconds returns the route duration, falling back to the segment sum
// when the provider did not report one.
func (r Route) TotalSeconds() int {
	if r.DurationSeconds != 0 {
		return r.DurationSeconds
	}

	total := 0
	for _, s := range r.Segments {
		total += s.DurationSeconds
	}
	return total
}

// Point is a sampled location tagged with the travel time since departure.
type Point struct {
	geo.Coordinate
	ElapsedMinutes int `json:"elapsedMinutes"`
}
