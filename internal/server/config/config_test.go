package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "", c.GRPCHealthAddr)
	assert.Equal(t, "quiz.db", c.DatabaseDSN)
	assert.Equal(t, "", c.SecretKey)
	assert.Equal(t, 12*time.Hour, c.SessionTTL)
	assert.False(t, c.SecureCookies)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "slog", c.LogBackend)
	assert.Empty(t, c.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key is required")

	c.SecretKey = "k"
	require.NoError(t, c.Validate())

	c.LogBackend = "stdout"
	c.SessionTTL = 0
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log backend "stdout"`)
	assert.Contains(t, err.Error(), "session ttl must be positive")
}

func TestLoad_DefaultsOnly(t *testing.T) {
	c, err := Load(nil, noEnv)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, c))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr":       ":9000",
		"database_dsn":    "file.db",
		"secret_key":      "from-file",
		"session_ttl":     "90s",
		"bcrypt_cost":     6,
		"allowed_origins": []string{"http://a.example"},
	})

	env := envMap(map[string]string{
		"QUIZ_DATABASE_DSN": "env.db",
		"QUIZ_SECRET_KEY":   "from-env",
		"QUIZ_LOG_BACKEND":  "zap",
	})

	args := []string{"-c", path, "-s", "from-flag", "-k", "-g", ":50051"}

	c, err := Load(args, env)
	require.NoError(t, err)

	want := &Config{
		HTTPAddr:       ":9000",
		GRPCHealthAddr: ":50051",
		DatabaseDSN:    "env.db",
		SecretKey:      "from-flag",
		SessionTTL:     90 * time.Second,
		SecureCookies:  true,
		BcryptCost:     6,
		LogBackend:     "zap",
		AllowedOrigins: []string{"http://a.example"},
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "nope.json")}, noEnv)
	require.ErrorContains(t, err, "read config file")
}

func TestLoad_InvalidJSON(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

	_, err := Load([]string{"-c", bad}, noEnv)
	require.ErrorContains(t, err, "parse config file")
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUIZ_TEST_DOTENV_SECRET=dotenv-secret\n"), 0o600))

	orig := dotEnvFile
	dotEnvFile = path
	t.Cleanup(func() {
		dotEnvFile = orig
		_ = os.Unsetenv("QUIZ_TEST_DOTENV_SECRET")
	})

	require.NoError(t, loadDotEnv())
	assert.Equal(t, "dotenv-secret", os.Getenv("QUIZ_TEST_DOTENV_SECRET"))
}
