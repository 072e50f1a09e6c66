package app

import (
	"context"
	"countryfx/internal/platform/db"
	httpserver "countryfx/internal/platform/http"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"countryfx/internal/adapters/csvfile"
	"countryfx/internal/adapters/fixer"
	"countryfx/internal/adapters/postgres"
	"countryfx/internal/adapters/restcountries"
	"countryfx/internal/api"
	"countryfx/internal/api/handler"
	"countryfx/internal/config"
	"countryfx/internal/country"
	"countryfx/internal/pipeline"
	"countryfx/internal/rate"

	"github.com/sirupsen/logrus"
)

// Run wires the application components and runs the pipeline once, or keeps
// running it on a schedule next to the HTTP server when an interval is set.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, pool); err != nil {
		logrus.WithError(err).Error("Error migrating db")
		return err
	}
	logrus.Info("✅ Countries table ready")

	// Base HTTP client
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}

	// External clients
	countryClient := restcountries.NewClient(baseHTTPClient, appCfg.CountriesAPI.BaseURL)
	rateClient := fixer.NewClient(baseHTTPClient, appCfg.RatesAPI.BaseURL, appCfg.RatesAPI.AccessKey)

	// Sinks
	countryRepo := postgres.NewCountryRepository(pool)
	csvWriter := csvfile.NewWriter(appCfg.Output.CSVPath)

	// Pipeline
	p, err := pipeline.New(
		country.NewResolver(countryClient),
		rate.NewAverager(rateClient, appCfg.RatesAPI.BaseCurrency, time.Now),
		pipeline.NewPersister(countryRepo, csvWriter),
		appCfg.Pipeline.CountryCodes,
		appCfg.Pipeline.WindowDays,
	)
	if err != nil {
		return err
	}

	if appCfg.Scheduler.IntervalSec == 0 {
		if _, err = p.Run(ctx); err != nil {
			logrus.WithError(err).Error("Pipeline run failed")
			return err
		}
		return nil
	}

	scheduler := pipeline.NewScheduler(p, appCfg.Scheduler.Interval())
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Infof("✅ Scheduler activation successful, interval %s", appCfg.Scheduler.Interval())

	router := api.NewRouter(handler.NewCountryHandler(countryRepo))

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
