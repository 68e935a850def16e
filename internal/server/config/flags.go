package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/quizweb/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address, empty disables
//	-d string   database DSN (SQLite path or postgres:// URL)
//	-s string   session signing key
//	-t int      session lifetime, minutes
//	-k          secure cookies
//	-b int      bcrypt cost
//	-l string   log backend (slog|zap)
//	-o string   comma-separated CORS origins
//
// Arguments owned by other flag sets (the -c config path, admin CLI
// subcommands and their flags) are filtered out first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-b", "-l", "-o"}, "-k")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.BoolVar(&config.SecureCookies, "k", config.SecureCookies, "secure cookies")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session ttl (in minutes)")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// only explicit flags override, so a sub-minute TTL from the file survives
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		case "o":
			config.AllowedOrigins = splitList(*origins)
		}
	})
	return nil
}
