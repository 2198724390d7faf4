package route

import (
	"iter"

	"github.com/i474232898/travel-weather/internal/geo"
)

const (
	// SampleIntervalMinutes is the spacing between sampled points.
	SampleIntervalMinutes = 30
	sampleIntervalSeconds = SampleIntervalMinutes * 60
)

// Validate checks that the route can be sampled.
func Validate(r Route) error {
	if len(r.Segments) == 0 {
		return ErrEmptyRoute
	}
	if r.DurationSeconds < 0 {
		return &InvalidSegmentError{Index: -1, DurationSeconds: r.DurationSeconds}
	}
	for i, s := range r.Segments {
		if s.DurationSeconds < 0 {
			return &InvalidSegmentError{Index: i, DurationSeconds: s.DurationSeconds}
		}
	}
	return nil
}

// Sample validates the route and returns the points found every 30 minutes of
// travel. The first point is the start of the first segment at minute 0. A
// trailing point at the route end is added when the total travel time in whole
// minutes is not a multiple of 30 and lies past the last sampled point.
//
// The sequence is computed lazily and may be ranged over any number of times.
func Sample(r Route) (iter.Seq[Point], error) {
	if err := Validate(r); err != nil {
		return nil, err
	}

	return func(yield func(Point) bool) {
		if !yield(Point{Coordinate: r.Segments[0].Start}) {
			return
		}

		carry := 0
		nextMinute := SampleIntervalMinutes

		for _, seg := range r.Segments {
			remaining := seg.DurationSeconds

			// Boundaries are measured from the segment start against its full
			// duration, so a boundary landing on the segment end has ratio 1.
			for k := 1; carry+remaining >= sampleIntervalSeconds; k++ {
				ratio := float64(k*sampleIntervalSeconds-carry) / float64(seg.DurationSeconds)

				p := Point{
					Coordinate:     geo.Lerp(seg.Start, seg.End, ratio),
					ElapsedMinutes: nextMinute,
				}
				if !yield(p) {
					return
				}

				remaining -= sampleIntervalSeconds
				nextMinute += SampleIntervalMinutes
			}

			carry = (carry + remaining) % sampleIntervalSeconds
		}

		// A declared route duration may undercut the segment sum; the trailing
		// point never goes behind the last boundary point.
		finalMinutes := r.TotalSeconds() / 60
		lastMinute := nextMinute - SampleIntervalMinutes
		if finalMinutes%SampleIntervalMinutes != 0 && finalMinutes > lastMinute {
			yield(Point{Coordinate: r.End, ElapsedMinutes: finalMinutes})
		}
	}, nil
}

// Points samples the route and collects every point.
func Points(r Route) ([]Point, error) {
	seq, err := Sample(r)
	if err != nil {
		return nil, err
	}

	var points []Point
	for p := range seq {
		points = append(points, p)
	}
	return points, nil
}
