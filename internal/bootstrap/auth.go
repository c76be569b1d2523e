package bootstrap

import (
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nardonidigital/agency-api/config"
	"github.com/nardonidigital/agency-api/internal/adapters/baas"
	"github.com/nardonidigital/agency-api/internal/adapters/devauth"
	"github.com/nardonidigital/agency-api/internal/adapters/memstore"
	redisstore "github.com/nardonidigital/agency-api/internal/adapters/redis"
	"github.com/nardonidigital/agency-api/internal/ports"
)

// BuildIdentityProvider constructs the identity provider for the configured
// auth mode.
//
//nolint:ireturn // callers program against the port, not a concrete adapter.
func BuildIdentityProvider(cfg config.AuthConfig, isDev bool, logger *slog.Logger) (ports.IdentityProvider, error) {
	switch cfg.Mode {
	case config.AuthModeBaaS:
		provider, err := baas.NewProvider(baas.Config{
			BaseURL:   cfg.BaaS.BaseURL,
			APIKey:    cfg.BaaS.APIKey,
			JWTSecret: cfg.BaaS.JWTSecret,
		})
		if err != nil {
			return nil, fmt.Errorf("build baas provider: %w", err)
		}
		return provider, nil

	case config.AuthModeMock:
		if !isDev && logger != nil {
			logger.Warn("mock auth enabled outside development mode")
		}
		provider, err := devauth.NewProvider(devauth.Config{
			UserID:     cfg.DevAuth.UserID,
			Email:      cfg.DevAuth.Email,
			Password:   cfg.DevAuth.Password,
			Role:       cfg.DevAuth.Role,
			Name:       cfg.DevAuth.Name,
			SuperAdmin: cfg.DevAuth.SuperAdmin,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		return provider, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode: %q", cfg.Mode)
	}
}

// BuildSessionStore constructs the session store for the configured backend.
// The Redis client is required only for the redis backend.
//
//nolint:ireturn // callers program against the port, not a concrete adapter.
func BuildSessionStore(cfg config.AuthConfig, client goredis.UniversalClient) (ports.SessionStore, error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		if client == nil {
			return nil, fmt.Errorf("session store %q requires a redis connection", cfg.SessionStore)
		}
		return redisstore.NewSessionStore(client), nil
	case config.SessionStoreMemory:
		return memstore.NewSessionStore(), nil
	default:
		return nil, fmt.Errorf("unsupported session store: %q", cfg.SessionStore)
	}
}
