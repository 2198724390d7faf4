package route

import (
	"errors"
	"testing"

	"github.com/i474232898/travel-weather/internal/geo"
)

var (
	london     = geo.Coordinate{Lat: 51.5007, Lng: -0.1246}
	birmingham = geo.Coordinate{Lat: 52.4862, Lng: -1.8904}
)

func elapsed(points []Point) []int {
	out := make([]int, 0, len(points))
	for _, p := range points {
		out = append(out, p.ElapsedMinutes)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSampleSingleSegmentExactMultiple(t *testing.T) {
	r := FromSegments([]Segment{{Start: london, End: birmingham, DurationSeconds: 5400}})

	points, err := Points(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := elapsed(points), []int{0, 30, 60, 90}; !equalInts(got, want) {
		t.Fatalf("elapsed minutes = %v, want %v", got, want)
	}

	ratios := []float64{0, 1800.0 / 5400, 3600.0 / 5400, 1}
	for i, ratio := range ratios {
		want := geo.Lerp(london, birmingham, ratio)
		if points[i].Coordinate != want {
			t.Fatalf("point %d = %v, want %v (ratio %v)", i, points[i].Coordinate, want, ratio)
		}
	}

	if points[0].Coordinate != london {
		t.Fatalf("first point = %v, want route start %v", points[0].Coordinate, london)
	}
	if points[3].Coordinate != birmingham {
		t.Fatalf("last point = %v, want segment end %v", points[3].Coordinate, birmingham)
	}
}

func TestSampleShortRouteEmitsTrailingPoint(t *testing.T) {
	r := FromSegments([]Segment{{Start: london, End: birmingham, DurationSeconds: 1000}})

	points, err := Points(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := elapsed(points), []int{0, 16}; !equalInts(got, want) {
		t.Fatalf("elapsed minutes = %v, want %v", got, want)
	}
	if points[1].Coordinate != birmingham {
		t.Fatalf("trailing point = %v, want route end %v", points[1].Coordinate, birmingham)
	}
}

func TestSampleCarriesAcrossSegments(t *testing.T) {
	mid := geo.Coordinate{Lat: 52.0, Lng: -1.0}
	r := FromSegments([]Segment{
		{Start: london, End: mid, DurationSeconds: 1200},
		{Start: mid, End: birmingham, DurationSeconds: 2400},
	})

	points, err := Points(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Boundary at 1800s falls 600s into the 2400s segment; the route ends at
	// 60 minutes, which coincides with the segment end.
	if got, want := elapsed(points), []int{0, 30, 60}; !equalInts(got, want) {
		t.Fatalf("elapsed minutes = %v, want %v", got, want)
	}
	if want := geo.Lerp(mid, birmingham, 600.0/2400); points[1].Coordinate != want {
		t.Fatalf("point 1 = %v, want %v", points[1].Coordinate, want)
	}
	if want := geo.Lerp(mid, birmingham, 2400.0/2400); points[2].Coordinate != want {
		t.Fatalf("point 2 = %v, want %v", points[2].Coordinate, want)
	}
}

func TestSampleNonMultipleRouteAddsOneTrailingPoint(t *testing.T) {
	mid := geo.Coordinate{Lat: 52.0, Lng: -1.0}
	r := FromSegments([]Segment{
		{Start: london, End: mid, DurationSeconds: 2000},
		{Start: mid, End: birmingham, DurationSeconds: 2000},
	})

	points, err := Points(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 4000s = 66 whole minutes.
	if got, want := elapsed(points), []int{0, 30, 60, 66}; !equalInts(got, want) {
		t.Fatalf("elapsed minutes = %v, want %v", got, want)
	}
	if want := geo.Lerp(london, mid, 1800.0/2000); points[1].Coordinate != want {
		t.Fatalf("point 1 = %v, want %v", points[1].Coordinate, want)
	}
	if want := geo.Lerp(mid, birmingham, 1600.0/2000); points[2].Coordinate != want {
		t.Fatalf("point 2 = %v, want %v", points[2].Coordinate, want)
	}
	if points[3].Coordinate != birmingham {
		t.Fatalf("trailing point = %v, want %v", points[3].Coordinate, birmingham)
	}
}

func TestSampleUsesReportedRouteDuration(t *testing.T) {
	r := Route{
		Start:           london,
		End:             birmingham,
		Segments:        []Segment{{Start: london, End: birmingham, DurationSeconds: 1700}},
		DurationSeconds: 1750,
	}

	points, err := Points(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := elapsed(points), []int{0, 29}; !equalInts(got, want) {
		t.Fatalf("elapsed minutes = %v, want %v", got, want)
	}
}

func TestSampleShortDeclaredDurationStaysMonotonic(t *testing.T) {
	tests := map[string]struct {
		segments []Segment
		declared int
		want     []int
	}{
		"declared just under one interval": {
			segments: []Segment{{Start: london, End: birmingham, DurationSeconds: 1800}},
			declared: 1790,
			want:     []int{0, 30},
		},
		"declared well under the segment sum": {
			segments: []Segment{
				{Start: london, End: birmingham, DurationSeconds: 3000},
				{Start: birmingham, End: london, DurationSeconds: 2000},
			},
			declared: 3500,
			want:     []int{0, 30, 60},
		},
		"declared over the segment sum": {
			segments: []Segment{{Start: london, End: birmingham, DurationSeconds: 1800}},
			declared: 2700,
			want:     []int{0, 30, 45},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := Route{Start: london, End: birmingham, Segments: tt.segments, DurationSeconds: tt.declared}

			points, err := Points(r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := elapsed(points)
			for i := 1; i < len(got); i++ {
				if got[i] < got[i-1] {
					t.Fatalf("elapsed minutes decrease: %v", got)
				}
			}
			if !equalInts(got, tt.want) {
				t.Fatalf("elapsed minutes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSampleZeroDurationSegments(t *testing.T) {
	r := FromSegments([]Segment{
		{Start: london, End: london, DurationSeconds: 0},
		{Start: london, End: birmingham, DurationSeconds: 0},
	})

	points, err := Points(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := elapsed(points), []int{0}; !equalInts(got, want) {
		t.Fatalf("elapsed minutes = %v, want %v", got, want)
	}
}

func TestSampleIsNonDecreasingAndSpaced(t *testing.T) {
	r := FromSegments([]Segment{
		{Start: london, End: birmingham, DurationSeconds: 950},
		{Start: birmingham, End: london, DurationSeconds: 4321},
		{Start: london, End: birmingham, DurationSeconds: 77},
		{Start: birmingham, End: london, DurationSeconds: 3600},
	})

	points, err := Points(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if points[0].ElapsedMinutes != 0 {
		t.Fatalf("first point elapsed = %d, want 0", points[0].ElapsedMinutes)
	}
	for i := 1; i < len(points)-1; i++ {
		if diff := points[i].ElapsedMinutes - points[i-1].ElapsedMinutes; diff != SampleIntervalMinutes {
			t.Fatalf("points %d and %d are %d minutes apart", i-1, i, diff)
		}
	}

	last := points[len(points)-1].ElapsedMinutes
	if want := (950 + 4321 + 77 + 3600) / 60; last != want {
		t.Fatalf("last point elapsed = %d, want %d", last, want)
	}
}

func TestSampleIsRestartable(t *testing.T) {
	seq, err := Sample(FromSegments([]Segment{{Start: london, End: birmingham, DurationSeconds: 7000}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var first, second []Point
	for p := range seq {
		first = append(first, p)
	}
	for p := range seq {
		second = append(second, p)
	}

	if len(first) != len(second) {
		t.Fatalf("second pass yielded %d points, first %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs between passes: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSampleStopsEarly(t *testing.T) {
	seq, err := Sample(FromSegments([]Segment{{Start: london, End: birmingham, DurationSeconds: 36000}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for range seq {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("expected to stop after 3 points, got %d", count)
	}
}

func TestSampleRejectsNegativeDuration(t *testing.T) {
	r := FromSegments([]Segment{
		{Start: london, End: birmingham, DurationSeconds: 600},
		{Start: birmingham, End: london, DurationSeconds: -1},
	})

	_, err := Sample(r)
	if !errors.Is(err, ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment, got %v", err)
	}

	var segErr *InvalidSegmentError
	if !errors.As(err, &segErr) {
		t.Fatalf("expected *InvalidSegmentError, got %T", err)
	}
	if segErr.Index != 1 {
		t.Fatalf("expected index 1, got %d", segErr.Index)
	}
}

func TestSampleRejectsEmptyRoute(t *testing.T) {
	if _, err := Sample(Route{}); !errors.Is(err, ErrEmptyRoute) {
		t.Fatalf("expected ErrEmptyRoute, got %v", err)
	}
}
