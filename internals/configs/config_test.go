package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"4000\"\ndb_host: file-host\nasset_driver: S3\n"), 0o600))

	unsetEnv(t, "PORT")
	unsetEnv(t, "ASSET_DRIVER")
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := build(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "env-host", cfg.DBHost)
	assert.Equal(t, "s3", cfg.AssetDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.DBAutoMigrate)
}

func TestBuild_Defaults(t *testing.T) {
	cfg, err := build("")
	require.NoError(t, err)

	if os.Getenv("PORT") == "" {
		assert.Equal(t, "3000", cfg.Port)
	}
	if os.Getenv("APP_TIMEZONE") == "" {
		assert.Equal(t, "Asia/Bangkok", cfg.Timezone)
	}
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.NotEmpty(t, cfg.LeaderboardSyncCron)
}

func TestLocation_FallsBackOnUnknownZone(t *testing.T) {
	cfg := &AppConfig{Timezone: "Mars/Olympus"}
	loc := cfg.Location()

	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &AppConfig{CorsOrigins: "https://a.example, https://b.example,,"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())

	empty := &AppConfig{}
	assert.NotEmpty(t, empty.AllowedOrigins())
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if v, ok := os.LookupEnv(key); ok {
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() { _ = os.Setenv(key, v) })
	}
}

func TestLoad_ReadsEnvEveryCall(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_HOST", "pertama")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pertama", cfg.DBHost)

	t.Setenv("DB_HOST", "kedua")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "kedua", cfg.DBHost)
}
