// Package app is the composition root: it wires configuration, logging, the
// credential store, the request executor, and the services into the object
// graph the UI layer consumes.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/localkonnect/mobile-core/internal/core/ports"
	"github.com/localkonnect/mobile-core/internal/core/service"
	"github.com/localkonnect/mobile-core/internal/infrastructure/backend"
	"github.com/localkonnect/mobile-core/internal/infrastructure/config"
	"github.com/localkonnect/mobile-core/internal/infrastructure/store"
	"github.com/localkonnect/mobile-core/pkg/logger"
)

// App bundles the wired core for the UI layer. Session is the sole writer of
// session keys; Resources and Profile only ever read the token.
type App struct {
	Config    *config.Config
	Store     ports.CredentialStore
	Session   ports.SessionService
	Resources ports.ResourceClient
	Profile   ports.ProfileService
	Logger    zerolog.Logger
}

// New loads configuration from the environment and assembles the core.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	credStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	exec := backend.New(cfg.BaseURL, cfg.RequestTimeout, credStore, log)
	session := service.NewSessionService(exec, credStore, cfg.OTPTTL, log)
	resources := service.NewResourceClient(exec, log)
	profile := service.NewProfileService(resources, credStore, log)

	log.Info().Str("backend", cfg.BaseURL).Msg("mobile core initialised")

	return &App{
		Config:    cfg,
		Store:     credStore,
		Session:   session,
		Resources: resources,
		Profile:   profile,
		Logger:    log,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (ports.CredentialStore, error) {
	if cfg.Redis.Addr != "" {
		client, err := store.Connect(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("redis credential store: %w", err)
		}
		return store.NewRedisStore(client), nil
	}
	return store.OpenFile(cfg.StorePath)
}
