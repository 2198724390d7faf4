package weather

// Summary condenses the forecasts of a report into a route-level outlook.
type Summary struct {
	Points      int `json:"points"`
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`

	// The remaining fields only consider available forecasts.
	MinTemperatureC             *int          `json:"minTemperatureC,omitempty"`
	MaxTemperatureC             *int          `json:"maxTemperatureC,omitempty"`
	MaxPrecipitationProbability *int          `json:"maxPrecipitationProbability,omitempty"`
	MaxWindGustMph              *int          `json:"maxWindGustMph,omitempty"`
	WorstVisibility             Visibility    `json:"worstVisibility,omitempty"`
	Conditions                  []WeatherType `json:"conditions,omitempty"`
}

// Summarize combines the records of a report into a Summary. Conditions are
// listed once each, in the order they are first met along the route.
func Summarize(records []ReportRecord) Summary {
	sum := Summary{Points: len(records)}

	seen := make(map[WeatherType]bool)
	worstRank := 0

	for _, rec := range records {
		f := rec.Forecast
		if f == nil {
			sum.Unavailable++
			continue
		}
		sum.Available++

		sum.MinTemperatureC = minPtr(sum.MinTemperatureC, f.TemperatureC)
		sum.MaxTemperatureC = maxPtr(sum.MaxTemperatureC, f.TemperatureC)
		sum.MaxPrecipitationProbability = maxPtr(sum.MaxPrecipitationProbability, f.PrecipitationProbability)
		sum.MaxWindGustMph = maxPtr(sum.MaxWindGustMph, f.WindGustMph)

		// Unknown bands carry no rank and never count as worst.
		if rank, ok := visibilityRank[f.Visibility]; ok && (worstRank == 0 || rank < worstRank) {
			worstRank = rank
			sum.WorstVisibility = f.Visibility
		}

		if !seen[f.Weather] {
			seen[f.Weather] = true
			sum.Conditions = append(sum.Conditions, f.Weather)
		}
	}

	return sum
}

func minPtr(cur *int, v int) *int {
	if cur == nil || v < *cur {
		return &v
	}
	return cur
}

func maxPtr(cur *int, v int) *int {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}
