package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeBaaS verifies credentials against the managed auth service.
	AuthModeBaaS AuthMode = "baas"
	// AuthModeMock uses the config-driven dev identity (development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "baas", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: baas, mock)", v)
	}
}

// BaaSConfig contains the managed auth service connection settings.
type BaaSConfig struct {
	BaseURL string `env:"BASE_URL"`
	APIKey  string `env:"API_KEY"`
	// JWTSecret enables HS256 verification of issued access tokens.
	// Leave empty to skip verification in local development.
	JWTSecret string `env:"JWT_SECRET"`
}

// DevAuthConfig controls the mock identity used when AUTH_MODE=mock.
type DevAuthConfig struct {
	UserID     string `env:"USER_ID"     envDefault:"dev-user"`
	Email      string `env:"EMAIL"       envDefault:"dev@example.com"`
	Password   string `env:"PASSWORD"    envDefault:"devpass"`
	Role       string `env:"ROLE"        envDefault:"admin"`
	Name       string `env:"NAME"        envDefault:"Dev User"`
	SuperAdmin bool   `env:"SUPER_ADMIN" envDefault:"false"`
}

// SessionStoreMode selects where browser sessions are persisted.
type SessionStoreMode string

const (
	// SessionStoreRedis persists sessions in Redis (production).
	SessionStoreRedis SessionStoreMode = "redis"
	// SessionStoreMemory keeps sessions in process memory (dev and tests).
	SessionStoreMemory SessionStoreMode = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreMode.
func (s *SessionStoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "redis", "memory":
		*s = SessionStoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreMode: %q (valid options: redis, memory)", v)
	}
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"baas"`

	// BaaS configuration (used when Mode=baas).
	BaaS BaaSConfig `envPrefix:"BAAS_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionStore selects the session persistence backend.
	SessionStore SessionStoreMode `env:"SESSION_STORE" envDefault:"redis"`
}
