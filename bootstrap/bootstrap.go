// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/muadel/muadel/adapters/clock"
	"github.com/muadel/muadel/adapters/idgen"
	"github.com/muadel/muadel/adapters/llm"
	"github.com/muadel/muadel/adapters/memory"
	"github.com/muadel/muadel/adapters/metrics"
	"github.com/muadel/muadel/adapters/payment"
	"github.com/muadel/muadel/adapters/sqlite"
	"github.com/muadel/muadel/app"
	"github.com/muadel/muadel/config"
	"github.com/muadel/muadel/domain/gradescale"
	"github.com/muadel/muadel/domain/usage"
	"github.com/muadel/muadel/ports"
)

// App represents the running application.
type App struct {
	Logger  zerolog.Logger
	Config  *config.Holder
	DB      *sqlite.DB
	Store   ports.KVStore
	Metrics *metrics.Collector

	Calculator *app.CalculatorService
	Ledger     *app.LedgerService
	Assistant  *app.AssistantService
	CV         *app.CVService

	diagnostics *http.Server
}

// New loads configuration from path (or the environment when path is
// empty) and wires every service. The caller owns Run and Shutdown.
func New(path string) (*App, error) {
	cfg, holder, err := loadConfig(path)
	if err != nil {
		return nil, err
	}

	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("initializing muadel")

	a := &App{
		Logger: logger,
		Config: holder,
	}

	if err := a.initDatabase(cfg); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	a.Metrics = metrics.New()

	if err := a.initServices(cfg); err != nil {
		a.DB.Close()
		return nil, fmt.Errorf("init services: %w", err)
	}

	a.initDiagnostics(cfg)
	a.initHotReload()

	return a, nil
}

func loadConfig(path string) (*config.Config, *config.Holder, error) {
	if path == "" {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return nil, nil, fmt.Errorf("load config from env: %w", err)
		}
		return cfg, nil, nil
	}

	// The holder validates on load and keeps the old config when a later
	// reload fails.
	holder, err := config.NewHolder(path, zerolog.New(os.Stderr).With().Timestamp().Logger())
	if err != nil {
		return nil, nil, err
	}
	return holder.Get(), holder, nil
}

func (a *App) initDatabase(cfg *config.Config) error {
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return fmt.Errorf("migrate: %w", err)
	}

	a.DB = db
	a.Store = sqlite.NewKVStore(db)
	a.Logger.Info().Str("path", cfg.Database.Path).Msg("database initialized")
	return nil
}

func (a *App) initServices(cfg *config.Config) error {
	ctx := context.Background()
	clk := clock.Real{}

	scale, ok := gradescale.ByID(cfg.Scale.Active)
	if !ok {
		scale = gradescale.Default()
		a.Logger.Warn().Str("scale", cfg.Scale.Active).Msg("unknown scale in config, using default")
	}

	a.Calculator = app.NewCalculatorService(a.Store, idgen.UUID{}, scale, a.Logger)
	// A scale picked in a previous session wins over the config default.
	a.Calculator.LoadScale(ctx)

	a.Ledger = app.NewLedgerService(a.Store, clk, policyFromConfig(cfg.Ledger), a.Logger, a.Metrics)
	a.CV = app.NewCVService(a.Store, a.Logger)

	entitlements, err := a.buildEntitlements(cfg, clk)
	if err != nil {
		return err
	}
	completer, err := a.buildCompleter(cfg)
	if err != nil {
		return err
	}

	capacity := cfg.Assistant.CacheCapacity
	if capacity <= 0 {
		capacity = memory.DefaultCacheCapacity
	}
	a.Assistant = app.NewAssistantService(
		a.Ledger,
		memory.NewResponseCache(capacity),
		completer,
		entitlements,
		a.Logger,
		a.Metrics,
	)
	return nil
}

func (a *App) buildEntitlements(cfg *config.Config, clk ports.Clock) (ports.Entitlements, error) {
	provider, err := payment.NewEntitlements(payment.Config{
		Mode:             cfg.Entitlements.Mode,
		StripeSecretKey:  cfg.Entitlements.StripeKey,
		StaticPrivileged: cfg.Entitlements.StaticPrivileged,
	})
	if err != nil {
		return nil, fmt.Errorf("entitlement provider: %w", err)
	}

	switch cfg.Entitlements.Mode {
	case "", "none":
		return provider, nil
	}
	// Remote providers get the persisted premium flag so the app works
	// offline between refreshes.
	return payment.NewCached(provider, a.Store, clk, cfg.Entitlements.RefreshInterval.Std(), a.Logger), nil
}

func (a *App) buildCompleter(cfg *config.Config) (ports.Completer, error) {
	if cfg.Assistant.ProxyURL == "" {
		a.Logger.Info().Msg("no completion proxy configured, using offline defaults")
		return llm.NewStatic(), nil
	}
	client, err := llm.NewClient(llm.Options{
		BaseURL: cfg.Assistant.ProxyURL,
		APIKey:  cfg.Assistant.APIKey,
		Timeout: cfg.Assistant.Timeout.Std(),
		Logger:  a.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("completion client: %w", err)
	}
	return client, nil
}

func (a *App) initDiagnostics(cfg *config.Config) {
	if !cfg.Diagnostics.Enabled {
		return
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle(cfg.Diagnostics.Path, promhttp.Handler())

	a.diagnostics = &http.Server{
		Addr:        cfg.Diagnostics.Addr,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
	}
	a.Logger.Info().Str("addr", cfg.Diagnostics.Addr).Msg("diagnostics server configured")
}

func (a *App) initHotReload() {
	if a.Config == nil {
		return
	}

	a.Config.OnChange(func(cfg *config.Config) {
		a.Metrics.ConfigReloads.Inc()
		a.Ledger.SetPolicy(policyFromConfig(cfg.Ledger))
		if _, ok := gradescale.ByID(cfg.Scale.Active); ok {
			a.Calculator.SetScale(context.Background(), cfg.Scale.Active)
		}
	})
	a.Config.OnReloadError(func(error) {
		a.Metrics.ConfigReloadErrors.Inc()
	})

	if err := a.Config.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watch unavailable")
	}
	a.Config.WatchSignals()
}

// policyFromConfig translates the ledger section into domain terms.
func policyFromConfig(cfg config.LedgerConfig) usage.Policy {
	gated := make(map[string]bool, len(cfg.PrivilegedOnly))
	for _, f := range cfg.PrivilegedOnly {
		gated[f] = true
	}
	return usage.Policy{
		Limits:         cfg.Limits,
		DefaultLimit:   cfg.DefaultLimit,
		PrivilegedOnly: gated,
	}
}

// Run starts the diagnostics server, if configured, and blocks until an
// interrupt arrives.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	if a.diagnostics != nil {
		go func() {
			a.Logger.Info().Str("addr", a.diagnostics.Addr).Msg("starting diagnostics server")
			if err := a.diagnostics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("diagnostics server: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.diagnostics != nil {
		if err := a.diagnostics.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("diagnostics server shutdown error")
		}
	}
	if a.Config != nil {
		a.Config.Stop()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
