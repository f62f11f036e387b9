package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "demo-user", c.UserID)
	assert.Equal(t, "pocketlegal.db", c.LocalDatabaseDSN)
	assert.Empty(t, c.RemoteDatabaseDSN)
	assert.Empty(t, c.S3Bucket)
	assert.Equal(t, "gpt-4o-mini", c.OpenAIModel)
	assert.Equal(t, 10*time.Second, c.LocationTimeout)
	assert.Equal(t, 20*time.Second, c.UploadTimeout)
}

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"local_database_dsn": "/tmp/pocket.db",
		"s3_bucket":          "recordings",
		"upload_timeout":     "5s",
		"seal_recordings":    true,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "/tmp/pocket.db", cfg.LocalDatabaseDSN)
		assert.Equal(t, "recordings", cfg.S3Bucket)
		assert.Equal(t, 5*time.Second, cfg.UploadTimeout)
		assert.True(t, cfg.SealRecordings)
		// Untouched values keep their defaults.
		assert.Equal(t, "demo-user", cfg.UserID)
		assert.Equal(t, 10*time.Second, cfg.LocationTimeout)
	})

	t.Run("no config flag leaves defaults alone", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "pocketlegal.db", cfg.LocalDatabaseDSN)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-d", "/tmp/other.db", "-u", "user-2"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "/tmp/other.db", cfg.LocalDatabaseDSN)
	assert.Equal(t, "user-2", cfg.UserID)
	assert.Empty(t, cfg.RemoteDatabaseDSN)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "pocketlegal.db", cfg.LocalDatabaseDSN)
	assert.Equal(t, "https://api.stripe.com", cfg.BillingEndpoint)
}
