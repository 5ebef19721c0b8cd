package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/doorman/internal/accounts/service"
	"github.com/aussiebroadwan/doorman/internal/accounts/settings"
	"github.com/aussiebroadwan/doorman/internal/accounts/store"
	"github.com/aussiebroadwan/doorman/internal/accounts/store/drivers/postgres"
	"github.com/aussiebroadwan/doorman/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/doorman/pkg/cryptox"
	"github.com/aussiebroadwan/doorman/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time via -ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds the wired account managers and what they depend on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	settings *settings.File

	Accounts *service.AccountService
	Tokens   *service.ApplicationTokenService
}

// New builds an Application: logger, settings, credentials, store and
// services, then makes sure the system account exists.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "doorman",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	flags, err := settings.Open(cfg.SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	app.settings = flags

	hasher, err := cryptox.NewHasherFromFile(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.Accounts = &service.AccountService{
		Store:       app.db,
		Policy:      service.AccountPolicy{Flags: app.settings},
		Credentials: hasher,
	}
	app.Tokens = &service.ApplicationTokenService{
		Store:       app.db,
		Credentials: hasher,
	}

	// Without migrations the schema may not exist yet; `doorman db migrate`
	// creates the system account instead.
	if cfg.AutoMigrate {
		if _, err := app.Accounts.EnsureSystemAccount(app.Context(context.Background())); err != nil {
			_ = app.db.Close()
			return nil, err
		}
	}

	return app, nil
}

// OpenStore connects to the configured database without applying
// migrations.
func OpenStore(cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverSQLite, "":
		return sqlite.NewStore(sqlite.DSN(cfg.DatabaseFile))
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		return postgres.NewStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if !app.cfg.AutoMigrate {
		return nil
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Debug("database migrations applied", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) Logger() *slog.Logger { return app.logger }

func (app *Application) Settings() *settings.File { return app.settings }

func (app *Application) Store() store.Store { return app.db }

// Context returns ctx carrying the application logger, which the services
// pick up through slogx.FromContext.
func (app *Application) Context(ctx context.Context) context.Context {
	return slogx.WithContext(ctx, app.logger)
}

// WatchSettings reloads the settings file on change until ctx is done.
func (app *Application) WatchSettings(ctx context.Context, onReload func([]settings.Attribute)) error {
	return app.settings.Watch(app.Context(ctx), onReload)
}

func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}
