package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, 5000, cfg.Server.Port)
	require.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWTTTL)
	require.Equal(t, devJWTSecret, cfg.Auth.JWTSecret)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 300, cfg.RateLimit.APIMax)
	require.Equal(t, time.Minute, cfg.RateLimit.APIWindow)
	require.Equal(t, "0.0.0.0:5000", cfg.ServerAddr())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef-prod")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/tasks.db")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("API_RATE_LIMIT_MAX", "50")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.True(t, cfg.IsProduction())
	require.Equal(t, 8081, cfg.Server.Port)
	require.Equal(t, 2*time.Hour, cfg.Auth.JWTTTL)
	require.Equal(t, "/tmp/tasks.db?_foreign_keys=on", cfg.Database.DSN())
	require.False(t, cfg.RateLimit.Enabled)
	require.Equal(t, 50, cfg.RateLimit.APIMax)
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=9000\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Cleanup(func() { _ = os.Unsetenv("LOG_LEVEL") })

	cfg, err := Load(envFile)
	require.NoError(t, err)
	require.Equal(t, 7000, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateRejectsShortSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Port: 1},
		Auth:     AuthConfig{JWTSecret: devJWTSecret, JWTTTL: time.Hour},
		Database: DatabaseConfig{Driver: "mongo"},
	}
	require.ErrorContains(t, cfg.Validate(), "unsupported DB_DRIVER")
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	require.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())

	d.URL = "postgres://u:p@db/n"
	require.Equal(t, "postgres://u:p@db/n", d.DSN())

	s := DatabaseConfig{Driver: DriverSQLite, Path: "file::memory:?cache=shared"}
	require.Equal(t, "file::memory:?cache=shared&_foreign_keys=on", s.DSN())
}
