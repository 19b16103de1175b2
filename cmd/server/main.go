// Package main is the entry point for the live flight tracker service.
//
//	@title			Live Flight Tracker API
//	@version		1.0.0
//	@description	Tracks live aircraft inside a map viewport and the detail of one selected flight, backed by the AirLabs API.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/flight-tracker/live-flight-tracker/issues
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/flight-tracker/live-flight-tracker/docs"

	flighthttp "github.com/flight-tracker/live-flight-tracker/internal/adapter/http"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/http/middleware"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/provider/airlabs"
	"github.com/flight-tracker/live-flight-tracker/internal/adapter/provider/flags"
	kafkasink "github.com/flight-tracker/live-flight-tracker/internal/adapter/sink/kafka"
	"github.com/flight-tracker/live-flight-tracker/internal/config"
	"github.com/flight-tracker/live-flight-tracker/internal/domain"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/logger"
	"github.com/flight-tracker/live-flight-tracker/internal/usecase"
)

const (
	serviceName     = "live-flight-tracker"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.IsDevelopment(),
		ServiceName:  serviceName,
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Dur("poll_interval", cfg.Tracker.PollInterval).
		Bool("kafka", cfg.Kafka.Enabled()).
		Msg("Configuration loaded")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
	log.Info().Msg("Server stopped")
}

// run wires the application and blocks until a shutdown signal or a fatal error.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := airlabs.NewClient(airlabs.Config{
		BaseURL: cfg.AirLabs.BaseURL,
		APIKey:  cfg.AirLabs.APIKey,
		Timeout: cfg.AirLabs.Timeout,
	}, nil, log)

	flagCache := flags.NewCache(flags.Config{
		BaseURL: cfg.Flags.BaseURL,
		Style:   cfg.Flags.Style,
		Size:    cfg.Flags.Size,
		Policy:  cfg.Flags.RetryPolicy(),
	}, nil, log)

	hub := flighthttp.NewHub(log)

	trackerConfig := &usecase.TrackerConfig{
		PollInterval: cfg.Tracker.PollInterval,
		Logger:       log,
		OnUpdate:     hub.Broadcast,
	}

	var publisher *kafkasink.Publisher
	if cfg.Kafka.Enabled() {
		publisher = kafkasink.NewPublisher(kafkasink.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, log)
		trackerConfig.OnFlights = publisher.Offer
	}

	tracker := usecase.NewTracker(source, trackerConfig)

	e := newServer(cfg, log, flighthttp.NewTrackerHandler(tracker, flagCache, hub, log))

	if cfg.Tracker.AutoStart {
		if err := autoStart(ctx, cfg.Tracker, tracker); err != nil {
			return err
		}
		log.Info().Msg("Tracker polling started")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	})

	if publisher != nil {
		g.Go(func() error {
			return publisher.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := tracker.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("tracker shutdown: %w", err))
		}
		hub.Close()
		if err := e.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				errs = append(errs, fmt.Errorf("kafka writer close: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// newServer creates the Echo instance with middleware and API routes.
// The swagger UI is not served in production.
func newServer(cfg *config.Config, log *logger.Logger, h *flighthttp.TrackerHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger, "/health")
	flighthttp.RegisterRoutes(e, h)

	if !cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}

// autoStart points the tracker at the configured start viewport and begins polling.
func autoStart(ctx context.Context, cfg config.TrackerConfig, tracker *usecase.Tracker) error {
	viewport := domain.Viewport{
		Center:        domain.Coordinate{Lat: cfg.StartLat, Lon: cfg.StartLon},
		LatitudeSpan:  cfg.StartLatSpan,
		LongitudeSpan: cfg.StartLonSpan,
	}
	if err := tracker.SetViewport(viewport); err != nil {
		return fmt.Errorf("set start viewport: %w", err)
	}
	if err := tracker.Start(ctx); err != nil {
		return fmt.Errorf("start tracker: %w", err)
	}
	return nil
}
