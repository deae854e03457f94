package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"countries/internal/adapters"
	"countries/internal/adapters/cache"
	"countries/internal/adapters/httpclient"
	"countries/internal/adapters/postgres"
	"countries/internal/adapters/sqlite"
	"countries/internal/api"
	"countries/internal/config"
	"countries/internal/country"
	"countries/internal/country/handler"
	"countries/internal/platform/db"
	httpserver "countries/internal/platform/http"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	setupLogger(appCfg.Logging)
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Storage
	store, closeStore, err := openStore(startupCtx, appCfg.Storage, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error opening storage")
		return err
	}
	defer closeStore()
	logrus.Infof("✅ %s storage ready", appCfg.Storage.Driver)

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	countriesClient := httpclient.NewCountriesClient(baseHTTPClient, appCfg.Sources.CountriesURL)
	rateClient := httpclient.NewExchangeRateClient(baseHTTPClient, appCfg.Sources.ExchangeRatesURL)

	// Cache
	countryCache, err := cache.NewCountryCache(appCfg.Cache.MaxItems)
	if err != nil {
		return err
	}
	defer countryCache.Close()

	// Services
	estimator, err := country.NewEstimator(appCfg.Estimator.Strategy, appCfg.Estimator.Multiplier)
	if err != nil {
		return err
	}
	refresher := country.NewRefresher(
		countriesClient,
		rateClient,
		store,
		estimator,
		countryCache,
		time.Duration(appCfg.Sources.TimeoutSeconds)*time.Second,
	)
	countryService := country.NewService(store, countryCache)

	if appCfg.Scheduler.Enabled {
		scheduler := country.NewScheduler(refresher, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
		// Ensure scheduler stops before storage closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	countryHandler := handler.NewCountryHandler(countryService, refresher)
	router := api.NewRouter(countryHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func setupLogger(cfg config.Logging) {
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	if strings.EqualFold(cfg.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// openStore connects to the configured storage and applies migrations.
func openStore(ctx context.Context, storageCfg config.Storage, dbCfg config.DbServer) (adapters.Store, func(), error) {
	switch storageCfg.Driver {
	case "postgres":
		pool, err := db.CreatePoolAndPing(ctx, dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to postgres: %w", err)
		}
		sqlDB := stdlib.OpenDBFromPool(pool)
		if err = db.Migrate(ctx, sqlDB, "postgres"); err != nil {
			_ = sqlDB.Close()
			pool.Close()
			return nil, nil, err
		}
		closeFn := func() {
			_ = sqlDB.Close()
			pool.Close()
		}
		return postgres.NewStore(pool), closeFn, nil
	case "sqlite":
		sqlDB, err := db.OpenSQLite(ctx, storageCfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err = db.Migrate(ctx, sqlDB, "sqlite"); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return sqlite.NewStore(sqlDB), func() { _ = sqlDB.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", storageCfg.Driver)
	}
}
