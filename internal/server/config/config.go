// Package config handles configuration for the quiz server and the admin
// CLI: defaults, then a JSON file, then .env/environment, then command-line
// flags, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/quizweb/internal/logging"
)

// Config holds runtime settings for the quiz server.
//
// Fields:
//   - HTTPAddr: bind address of the web server.
//   - GRPCHealthAddr: bind address of the gRPC health service; empty disables it.
//   - DatabaseDSN: a SQLite file path, or a postgres:// URL.
//   - SecretKey: HMAC key signing session cookies. Required, no default.
//   - SessionTTL: lifetime of a session cookie, renewed on every response.
//   - SecureCookies: mark cookies Secure (HTTPS only).
//   - BcryptCost: work factor for new password hashes.
//   - LogBackend: "slog" or "zap".
//   - AllowedOrigins: CORS origins; empty disables CORS handling.
type Config struct {
	HTTPAddr       string
	GRPCHealthAddr string
	DatabaseDSN    string
	SecretKey      string
	SessionTTL     time.Duration
	SecureCookies  bool
	BcryptCost     int
	LogBackend     string
	AllowedOrigins []string
}

// LoadDefaults populates Config with development defaults. SecretKey is
// deliberately left empty.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCHealthAddr = ""
	c.DatabaseDSN = "quiz.db"
	c.SessionTTL = 12 * time.Hour
	c.SecureCookies = false
	c.BcryptCost = 10
	c.LogBackend = logging.BackendSlog
	c.AllowedOrigins = nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required (-s or QUIZ_SECRET_KEY)"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL))
	}
	if c.LogBackend != logging.BackendSlog && c.LogBackend != logging.BackendZap {
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.LogBackend))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}

// Load applies defaults, the JSON file named by -c/-config in args, the
// environment seen through lookup (after loading a .env file when present),
// and finally the flags in args.
func Load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
