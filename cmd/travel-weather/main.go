package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	setupLogging()

	app := &cli.App{
		Name:  "travel-weather",
		Usage: "weather outlook along a driving route",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the station refresh job",
				Action: serve,
			},
			{
				Name:  "report",
				Usage: "build a single route report and print it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "origin",
						Usage:    "route start, any address the directions provider understands",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "destination",
						Usage:    "route end",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "departure",
						Usage: "departure time as RFC3339 or YYYY-MM-DD HH:MM (default now)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "text",
						Usage: "output format: text or json",
					},
				},
				Action: report,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func setupLogging() {
	if os.Getenv("LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if strings.EqualFold(os.Getenv("DEBUG"), "YES") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
