package weather

import "time"

// WindowHours is the width of a forecast reporting window.
const WindowHours = 3

// Align returns the 3-hour window containing t. The window starts on an hour
// divisible by 3 in t's own location.
func Align(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), (t.Hour()/WindowHours)*WindowHours, 0, 0, 0, t.Location())
	return Window{
		Start: start,
		End:   start.Add(WindowHours * time.Hour),
	}
}

// Contains reports whether t falls in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// In returns the same window expressed in loc.
func (w Window) In(loc *time.Location) Window {
	return Window{Start: w.Start.In(loc), End: w.End.In(loc)}
}
