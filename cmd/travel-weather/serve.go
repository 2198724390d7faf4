package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	httpapi "github.com/i474232898/travel-weather/internal/api/http"
	"github.com/i474232898/travel-weather/internal/config"
	"github.com/i474232898/travel-weather/internal/scheduler"
	"github.com/i474232898/travel-weather/internal/store"
)

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := wire(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	service := deps.service(cfg, store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge))

	// The refresh job keeps the catalog in line with the DataPoint sitelist.
	var sched *scheduler.Scheduler
	if deps.stationSource != nil {
		sched = scheduler.New(deps.stationSource, deps.catalog, cfg.CatalogRefreshInterval)

		// The memory catalog is filled while wiring; Mongo is refreshed once here.
		if cfg.StationCatalog == config.CatalogMongo {
			if err := sched.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("initial station refresh failed; serving the stored catalog")
			}
		}

		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "travel-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "travel-weather",
			"catalog": cfg.StationCatalog,
		})
	})

	httpapi.RegisterRoutes(app, service, cfg.Location)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	return nil
}
