package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/quizweb/internal/flagx"
	"github.com/dmitrijs2005/quizweb/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept "12h"
// style strings or integer nanoseconds. Only fields present in the file
// override the current values.
type JsonConfig struct {
	HTTPAddr       *string         `json:"http_addr"`
	GRPCHealthAddr *string         `json:"grpc_health_addr"`
	DatabaseDSN    *string         `json:"database_dsn"`
	SecretKey      *string         `json:"secret_key"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	SecureCookies  *bool           `json:"secure_cookies"`
	BcryptCost     *int            `json:"bcrypt_cost"`
	LogBackend     *string         `json:"log_backend"`
	AllowedOrigins []string        `json:"allowed_origins"`
}

// parseJson overlays the file named by -c or -config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogBackend, c.LogBackend)
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.SecureCookies != nil {
		config.SecureCookies = *c.SecureCookies
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
