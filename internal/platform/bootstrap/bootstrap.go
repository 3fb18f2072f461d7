// Package bootstrap wires storage, gateways and services from configuration. The API
// server and the one-shot sweep command share it.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/cowork_membership_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cowork_membership_app/internal/core/ports/services"
	"github.com/SscSPs/cowork_membership_app/internal/core/services"
	"github.com/SscSPs/cowork_membership_app/internal/platform/catalog"
	"github.com/SscSPs/cowork_membership_app/internal/platform/config"
	"github.com/SscSPs/cowork_membership_app/internal/platform/messaging"
	"github.com/SscSPs/cowork_membership_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/cowork_membership_app/internal/repositories/memory"
	"github.com/SscSPs/cowork_membership_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrationsPath is where the SQL migrations are read from.
const MigrationsPath = "file://migrations"

// App is a fully wired service container plus the resources to release on shutdown.
type App struct {
	Services *portssvc.ServiceContainer
	closers  []func() error
}

// Close releases everything Build opened, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// Build opens storage, runs migrations for postgres, loads the credit-package catalog and
// creates the services. clock may be nil to use the wall clock in cfg.Location.
func Build(ctx context.Context, cfg *config.Config, clock gateways.Clock, logger *slog.Logger) (*App, error) {
	if clock == nil {
		clock = gateways.SystemClock{Location: cfg.Location}
	}
	app := &App{}

	packages, err := catalog.LoadFile(cfg.CreditPackagesFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Credit package catalog loaded", slog.Int("packages", len(packages)))

	var (
		repos portsrepo.RepositoryProvider
		gw    = services.Gateways{Clock: clock}
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewMemoryStore()
		store.SetClock(clock)
		repos = memory.NewRepositoryProvider(store)
		gw.Billing = store
		gw.Sequence = store
	case config.StoragePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("initialize database pool: %w", err)
		}
		app.closers = append(app.closers, func() error { dbPool.Close(); return nil })
		logger.Info("Database connection pool established.")

		if err := RunMigrations(cfg.DatabaseURL, logger); err != nil {
			app.Close()
			return nil, err
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
		gw.Billing = pgsql.NewBillingGateway(dbPool, clock)
		gw.Sequence = pgsql.NewSequenceGenerator(dbPool)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if len(cfg.KafkaBrokers) > 0 {
		notifier := messaging.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaNotificationTopic)
		app.closers = append(app.closers, notifier.Close)
		gw.Notifier = notifier
		logger.Info("Publishing notifications to kafka", slog.String("topic", cfg.KafkaNotificationTopic))
	} else {
		gw.Notifier = messaging.LogNotifier{}
	}

	app.Services = services.NewServiceContainer(cfg, repos, gw, packages)
	return app, nil
}

// RunMigrations applies all pending "up" migrations.
func RunMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver instance for migrations: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
