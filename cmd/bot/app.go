package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"

	"slash-sync-bot/internal/components"
	"slash-sync-bot/internal/config"
	"slash-sync-bot/internal/handlers"
	"slash-sync-bot/internal/localization"
	"slash-sync-bot/internal/registry"
	"slash-sync-bot/internal/storage"
	"slash-sync-bot/internal/syncer"
	"slash-sync-bot/internal/watcher"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type App struct {
	config   *config.Config
	store    storage.Store
	discord  *discordgo.Session
	registry *registry.Registry
	router   *registry.Router
	pager    *components.Manager
	catalog  *localization.Catalog
	syncer   *syncer.Syncer
	watcher  *watcher.Watcher

	watcherCtx    context.Context
	watcherCancel context.CancelFunc
	metricsServer *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open snapshot store", "error", err)
		return nil, err
	}

	discord, err := NewDiscordSession(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	reg := registry.New()
	pager := components.NewManager(cfg.PagerTTL)
	if err := handlers.RegisterBuiltins(reg, pager); err != nil {
		store.Close()
		return nil, err
	}

	router := registry.NewRouter(reg)
	router.RegisterComponent(components.CustomIDPrefix, pager.Handle)

	discord.AddHandler(ReadyHandler)
	discord.AddHandler(router.HandleFunc())
	if cfg.CommandPrefix != "" {
		prefixRouter := registry.NewPrefixRouter(reg, cfg.CommandPrefix)
		discord.AddHandler(prefixRouter.HandleFunc())
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &App{
		config:        cfg,
		store:         store,
		discord:       discord,
		registry:      reg,
		router:        router,
		pager:         pager,
		catalog:       localization.Builtin(),
		metricsServer: &http.Server{Addr: cfg.MetricsAddr, Handler: mux},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	appID := a.discord.State.User.ID
	a.syncer = syncer.New(a.discord, a.registry, a.catalog, a.store, appID, a.config.GuildID, rate.Limit(a.config.PublishRate))
	a.watcher = watcher.New(a.config.ExtensionsDir, a.config.WatchInterval, a.registry, a.syncer)

	if err := a.syncer.Restore(ctx); err != nil {
		slog.Warn("Could not restore stored snapshots, first diff runs against remote only", "error", err)
	}
	a.watcher.LoadAll()

	// Startup sync runs against remote truth; later syncs diff against the
	// last-known local set.
	if _, err := a.syncer.SyncRemote(ctx); err != nil {
		slog.Error("Initial command sync failed", "error", err)
		return err
	}

	a.watcherCtx, a.watcherCancel = context.WithCancel(context.Background())
	go a.watcher.Run(a.watcherCtx)

	go func() {
		slog.Info("Metrics server listening", "addr", a.config.MetricsAddr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server error", "error", err)
		}
	}()

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	if a.watcherCancel != nil {
		a.watcherCancel()
	}

	var errs []error
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.store != nil {
		a.store.Close()
	}
	return errors.Join(errs...)
}

// newStore picks Postgres when DATABASE_URL is set, otherwise a JSON file
// store under the data directory.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		return storage.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	return storage.NewFileStore(filepath.Join(cfg.DataDir, "commands"))
}
