// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

// devJWTSecret is only used when APP_ENV=development and JWT_SECRET is unset.
const devJWTSecret = "taskboard-development-secret-change-me-please"

// envBindings maps config keys onto the environment variable names used by deployments.
var envBindings = map[string]string{
	"app_env":                 "APP_ENV",
	"server.host":             "HOST",
	"server.port":             "PORT",
	"server.cors_origins":     "CORS_ORIGINS",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
	"server.request_timeout":  "REQUEST_TIMEOUT",
	"server.body_limit":       "BODY_LIMIT",
	"auth.jwt_secret":         "JWT_SECRET",
	"auth.jwt_ttl":            "JWT_TTL",
	"database.driver":         "DB_DRIVER",
	"database.url":            "DATABASE_URL",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASSWORD",
	"database.name":           "DB_NAME",
	"database.ssl_mode":       "DB_SSLMODE",
	"database.path":           "DB_PATH",
	"database.max_open_conns": "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns": "DB_MAX_IDLE_CONNS",
	"database.conn_max_life":  "DB_CONN_MAX_LIFETIME",
	"logging.level":           "LOG_LEVEL",
	"rate_limit.enabled":      "RATE_LIMIT_ENABLED",
	"rate_limit.auth_max":     "AUTH_RATE_LIMIT_MAX",
	"rate_limit.auth_window":  "AUTH_RATE_LIMIT_WINDOW",
	"rate_limit.api_max":      "API_RATE_LIMIT_MAX",
	"rate_limit.api_window":   "API_RATE_LIMIT_WINDOW",
}

// Load reads configuration from the environment. Values found in the given env
// files (default ".env") are applied only when the variable is not already set.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{defaultEnvFile}
	}
	for _, f := range envFiles {
		envMap, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.Auth.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors_origins", "http://localhost:5173")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.body_limit", 4*1024*1024)

	v.SetDefault("auth.jwt_ttl", 24*time.Hour)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "taskboard")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "./data/taskboard.db")
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_life", time.Hour)

	v.SetDefault("logging.level", "info")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.auth_max", 20)
	v.SetDefault("rate_limit.auth_window", 5*time.Minute)
	v.SetDefault("rate_limit.api_max", 300)
	v.SetDefault("rate_limit.api_window", time.Minute)
}
