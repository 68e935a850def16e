package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envHTTPAddr       = "QUIZ_HTTP_ADDR"
	envGRPCHealthAddr = "QUIZ_GRPC_HEALTH_ADDR"
	envDatabaseDSN    = "QUIZ_DATABASE_DSN"
	envSecretKey      = "QUIZ_SECRET_KEY"
	envSessionTTL     = "QUIZ_SESSION_TTL"
	envSecureCookies  = "QUIZ_SECURE_COOKIES"
	envBcryptCost     = "QUIZ_BCRYPT_COST"
	envLogBackend     = "QUIZ_LOG_BACKEND"
	envAllowedOrigins = "QUIZ_ALLOWED_ORIGINS"
)

// dotEnvFile is loaded into the process environment when it exists.
// Variables already set are not overridden.
var dotEnvFile = ".env"

func loadDotEnv() error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	return nil
}

// parseEnv overlays QUIZ_* variables.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(envHTTPAddr); ok {
		config.HTTPAddr = v
	}
	if v, ok := lookup(envGRPCHealthAddr); ok {
		config.GRPCHealthAddr = v
	}
	if v, ok := lookup(envDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup(envSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := lookup(envLogBackend); ok {
		config.LogBackend = v
	}
	if v, ok := lookup(envAllowedOrigins); ok {
		config.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup(envSessionTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envSessionTTL, err)
		}
		config.SessionTTL = d
	}
	if v, ok := lookup(envSecureCookies); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envSecureCookies, err)
		}
		config.SecureCookies = b
	}
	if v, ok := lookup(envBcryptCost); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envBcryptCost, err)
		}
		config.BcryptCost = n
	}
	return nil
}
