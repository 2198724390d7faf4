package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/i474232898/travel-weather/internal/config"
	"github.com/i474232898/travel-weather/internal/weather"
)

func report(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	departure := time.Now().In(cfg.Location)
	if v := c.String("departure"); v != "" {
		if departure, err = parseDeparture(v, cfg.Location); err != nil {
			return err
		}
	}

	format := c.String("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	deps, err := wire(c.Context, cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	service := deps.service(cfg, nil)

	r, err := service.Generate(c.Context, weather.ReportRequest{
		Departure:   departure,
		Origin:      c.String("origin"),
		Destination: c.String("destination"),
	})
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return weather.RenderText(os.Stdout, r)
}

func parseDeparture(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid departure %q: use RFC3339 or YYYY-MM-DD HH:MM", s)
	}
	return t, nil
}
