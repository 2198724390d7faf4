package weather

import (
	"fmt"
	"io"

	"github.com/i474232898/travel-weather/internal/common"
)

// RenderText writes the report as plain text, one block per point.
func RenderText(w io.Writer, report Report) error {
	for _, rec := range report.Records {
		if _, err := fmt.Fprintf(w,
			"\nPoint %d, Weather Station %s, Time %s (%s)\n",
			rec.Sequence+1,
			rec.Station.Name,
			rec.ArrivalTime.Format("15:04"),
			common.FormatElapsed(rec.ElapsedMinutes),
		); err != nil {
			return err
		}

		if err := renderForecast(w, rec); err != nil {
			return err
		}
	}
	return nil
}

func renderForecast(w io.Writer, rec ReportRecord) error {
	f := rec.Forecast
	if f == nil {
		_, err := fmt.Fprint(w, "No Forecast Available.\n\n")
		return err
	}

	_, err := fmt.Fprintf(w,
		"Forecast for time %s-%s : %s\n"+
			"    Temperature %d celsius (feels like %d celsius)\n"+
			"    Wind %dmph from %s, gusting %dmph\n"+
			"    Precipitation: %d%% probability\n"+
			"    Humidity: %d%%\n"+
			"    Visibility: %s\n"+
			"    UV Index: %d\n\n",
		rec.Window.Start.Format("15PM"),
		rec.Window.End.Format("15PM"),
		f.Weather.Description(),
		f.TemperatureC,
		f.FeelsLikeC,
		f.WindSpeedMph,
		f.WindDirection,
		f.WindGustMph,
		f.PrecipitationProbability,
		f.HumidityPct,
		f.Visibility.Description(),
		f.UVIndex,
	)
	return err
}
