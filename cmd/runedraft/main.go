package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"runedraft/internal/backend"
	"runedraft/internal/champselect"
	"runedraft/internal/config"
	"runedraft/internal/ddragon"
	"runedraft/internal/feed"
	"runedraft/internal/lcu"
	"runedraft/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := build(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if err = run(ctx, params); err != nil {
		params.Logger.ErrorW("run failed", "error", err)
		params.Logger.Sync()
		os.Exit(1)
	}
}

type runParams struct {
	Config     *config.AppConfig
	Logger     logger.Logger
	Cache      *ddragon.Cache
	Hub        *feed.Hub
	Reconciler *champselect.Reconciler
}

func build(ctx context.Context) (runParams, error) {
	cfg, res, err := config.Load(config.DefaultPath, ".env")
	if err != nil {
		return runParams{}, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return runParams{}, fmt.Errorf("initialize logger: %w", err)
	}
	if res.Created {
		appLogger.InfoW("wrote default config", "path", config.DefaultPath)
	}
	if len(res.Added) > 0 {
		appLogger.InfoW("added missing config keys", "path", config.DefaultPath, "keys", res.Added)
	}

	flashKey := "D"
	if cfg.FlashOnF {
		flashKey = "F"
	}
	appLogger.InfoW("options",
		"backend", cfg.Backend,
		"revert_patch", cfg.RevertPatch,
		"flash_key", flashKey,
	)

	cache, err := ddragon.OpenCache(cfg.DDragon.CachePath)
	if err != nil {
		return runParams{}, fmt.Errorf("open data dragon cache: %w", err)
	}

	staticData, err := ddragon.NewClient(ddragon.Params{
		BaseURL:   cfg.DDragon.BaseURL,
		UserAgent: cfg.UserAgent,
		Cache:     cache,
		Logger:    appLogger.With("component", "ddragon"),
	}).Load(ctx)
	if err != nil {
		cache.Close()
		return runParams{}, fmt.Errorf("load static data: %w", err)
	}

	creds, err := lcu.LoadCredentials(ctx, cfg.LCU.Lockfile)
	if err != nil {
		cache.Close()
		return runParams{}, fmt.Errorf("find league client: %w", err)
	}
	client := lcu.NewClient(lcu.Params{
		Credentials: creds,
		Timeout:     cfg.LCU.Timeout,
		Logger:      appLogger.With("component", "lcu"),
	})

	sources, err := backend.NewFactory(backend.Params{
		Config: cfg,
		Static: staticData,
		Logger: appLogger.With("component", "datasource"),
	})
	if err != nil {
		cache.Close()
		return runParams{}, fmt.Errorf("create backend: %w", err)
	}

	var hub *feed.Hub
	var emitter feed.Emitter = feed.Nop{}
	if cfg.Feed.ListenAddr != "" {
		hub = feed.NewHub(appLogger.With("component", "feed"))
		emitter = hub
	}

	reconciler := champselect.NewReconciler(champselect.Params{
		Client:    client,
		Sources:   sources,
		Champions: staticData,
		Emitter:   emitter,
		Logger:    appLogger.With("component", "champselect"),
	})

	return runParams{
		Config:     cfg,
		Logger:     appLogger,
		Cache:      cache,
		Hub:        hub,
		Reconciler: reconciler,
	}, nil
}

// run drives champion select until a game starts or the process is
// signalled.
func run(ctx context.Context, p runParams) error {
	defer p.Logger.Sync()
	defer p.Cache.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if p.Hub != nil {
		go func() {
			if err := p.Hub.Serve(ctx, p.Config.Feed.ListenAddr); err != nil {
				p.Logger.ErrorW("status feed stopped", "error", err)
			}
		}()
	}

	err := p.Reconciler.Run(ctx)
	if errors.Is(err, context.Canceled) {
		p.Logger.InfoW("shutting down")
		return nil
	}
	return err
}
