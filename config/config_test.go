package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeBaaS, cfg.Auth.Mode)
	assert.Equal(t, SessionStoreRedis, cfg.Auth.SessionStore)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "agency", cfg.Postgres.Name)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "client-documents", cfg.Storage.Bucket)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("DEV_AUTH_SUPER_ADMIN", "true")
	t.Setenv("DB_PORT", "55432")
	t.Setenv("STORAGE_BUCKET", "docs-test")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, SessionStoreMemory, cfg.Auth.SessionStore)
	assert.True(t, cfg.Auth.DevAuth.SuperAdmin)
	assert.Equal(t, 55432, cfg.Postgres.Port)
	assert.Equal(t, "docs-test", cfg.Storage.Bucket)
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var mode AuthMode
	require.NoError(t, mode.UnmarshalText([]byte("BaaS")))
	assert.Equal(t, AuthModeBaaS, mode)

	assert.Error(t, mode.UnmarshalText([]byte("ldap")))
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{ReadTimeout: -1, WriteTimeout: 0, ShutdownTimeout: 0}
	h.Sanitize()

	assert.Equal(t, 15*time.Second, h.ReadTimeout)
	assert.Equal(t, 60*time.Second, h.WriteTimeout)
	assert.Equal(t, 10*time.Second, h.ShutdownTimeout)
}

func TestDBConfig_DSN(t *testing.T) {
	d := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "agency", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=agency sslmode=disable", d.DSN())
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
