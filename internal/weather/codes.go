package weather

import "fmt"

// Visibility is the provider's visibility band code.
type Visibility string

const (
	VisibilityUnknown   Visibility = "UN"
	VisibilityVeryPoor  Visibility = "VP"
	VisibilityPoor      Visibility = "PO"
	VisibilityModerate  Visibility = "MO"
	VisibilityGood      Visibility = "GO"
	VisibilityVeryGood  Visibility = "VG"
	VisibilityExcellent Visibility = "EX"
)

var visibilities = map[Visibility]string{
	VisibilityUnknown:   "Unknown",
	VisibilityVeryPoor:  "Very poor - Less than 1 km",
	VisibilityPoor:      "Poor - Between 1-4 km",
	VisibilityModerate:  "Moderate - Between 4-10 km",
	VisibilityGood:      "Good - Between 10-20 km",
	VisibilityVeryGood:  "Very good - Between 20-40 km",
	VisibilityExcellent: "Excellent - More than 40 km",
}

// visibilityRank orders bands from worst to best for summaries.
var visibilityRank = map[Visibility]int{
	VisibilityVeryPoor:  1,
	VisibilityPoor:      2,
	VisibilityModerate:  3,
	VisibilityGood:      4,
	VisibilityVeryGood:  5,
	VisibilityExcellent: 6,
}

// Known reports whether v is one of the provider's documented bands.
func (v Visibility) Known() bool {
	_, ok := visibilities[v]
	return ok
}

// Description returns a readable label. Unrecognised codes read "Unknown".
func (v Visibility) Description() string {
	if d, ok := visibilities[v]; ok {
		return d
	}
	return visibilities[VisibilityUnknown]
}

// WeatherType is the provider's significant-weather code ("0".."30" or "NA").
type WeatherType string

const WeatherNotAvailable WeatherType = "NA"

var weatherTypes = map[WeatherType]string{
	WeatherNotAvailable: "Not available",
	"0":                 "Clear night",
	"1":                 "Sunny day",
	"2":                 "Partly cloudy (night)",
	"3":                 "Partly cloudy (day)",
	"4":                 "Not used",
	"5":                 "Mist",
	"6":                 "Fog",
	"7":                 "Cloudy",
	"8":                 "Overcast",
	"9":                 "Light rain shower (night)",
	"10":                "Light rain shower (day)",
	"11":                "Drizzle",
	"12":                "Light rain",
	"13":                "Heavy rain shower (night)",
	"14":                "Heavy rain shower (day)",
	"15":                "Heavy rain",
	"16":                "Sleet shower (night)",
	"17":                "Sleet shower (day)",
	"18":                "Sleet",
	"19":                "Hail shower (night)",
	"20":                "Hail shower (day)",
	"21":                "Hail",
	"22":                "Light snow shower (night)",
	"23":                "Light snow shower (day)",
	"24":                "Light snow",
	"25":                "Heavy snow shower (night)",
	"26":                "Heavy snow shower (day)",
	"27":                "Heavy snow",
	"28":                "Thunder shower (night)",
	"29":                "Thunder shower (day)",
	"30":                "Thunder",
}

// Known reports whether w is a documented weather code.
func (w WeatherType) Known() bool {
	_, ok := weatherTypes[w]
	return ok
}

// Description returns a readable label, falling back to the raw code.
func (w WeatherType) Description() string {
	if d, ok := weatherTypes[w]; ok {
		return d
	}
	return fmt.Sprintf("Unknown (%s)", string(w))
}
