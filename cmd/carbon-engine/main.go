// Command carbon-engine runs the EcoBazaarX carbon footprint calculation
// service: a REST API over the footprint calculator, the emission factor
// catalog and the statistics aggregator.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/ecobazaarx/carbon-engine/internal/httpapi"
	"github.com/ecobazaarx/carbon-engine/internal/service"
	"github.com/ecobazaarx/carbon-engine/internal/stats"
	"github.com/ecobazaarx/carbon-engine/internal/storage"
	"github.com/ecobazaarx/carbon-engine/internal/storage/postgres"
)

func main() {
	config, err := parseConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger := newLogger(config.LogLevel)

	records, factorStore, cleanup, err := openStores(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening record store failed")
	}
	defer cleanup()

	svc := service.New(records, factorStore, logger)

	if config.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		count, err := svc.SeedDefaultFactors(ctx)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("seeding emission factors failed")
		}
		logger.Info().Int("count", count).Msg("emission factor catalog ready")
	}

	aggregator := stats.NewAggregator(records, logger)
	handler := httpapi.NewHandler(svc, aggregator, logger)

	server := &http.Server{
		Addr:              config.ListenAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
		<-signalChan

		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
		close(shutdownDone)
	}()

	logger.Info().Str("addr", config.ListenAddr).Msg("starting carbon engine")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	<-shutdownDone
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(parsed).With().Timestamp().Logger()
}

// openStores selects the persistence backend. With a database URL the engine
// runs against Postgres; without one it keeps records in memory, which suits
// development and tests but loses data on restart.
func openStores(config *Config, logger zerolog.Logger) (storage.RecordStore, storage.FactorStore, func(), error) {
	if config.DatabaseURL == "" {
		logger.Warn().Msg("no database configured, using in-memory store")
		mem := storage.NewMemory()
		return mem, mem, func() {}, nil
	}

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	store := postgres.New(db)
	if err := store.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	logger.Info().Msg("connected to postgres")
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("closing database failed")
		}
	}
	return store, store, cleanup, nil
}
