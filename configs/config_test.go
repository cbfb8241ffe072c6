package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://restaurant-api.dicoding.dev", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 8, cfg.View.InitialPageSize)
	assert.Equal(t, 4, cfg.View.PageStep)
	assert.Equal(t, []string{"Balikpapan", "Malang", "Surabaya", "Bandung", "Ternate"}, cfg.View.Cities)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "view_session", cfg.Session.CookieName)
}

func TestLoadConfig_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_BASE_URL", "http://localhost:4000/")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("VIEW_PAGE_STEP", "6")
	t.Setenv("API_TIMEOUT", "3s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:4000", cfg.API.BaseURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 6, cfg.View.PageStep)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
}

func TestLoadConfig_Environment(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.IsProduction())

	t.Setenv("ENV", "production")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "explorer.yaml")
	content := []byte("view:\n  initial_page_size: 12\n  cities: [Medan, Aceh]\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.View.InitialPageSize)
	assert.Equal(t, []string{"Medan", "Aceh"}, cfg.View.Cities)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := LoadConfig("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.View.PageStep = 0
	assert.Error(t, cfg.Validate())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
