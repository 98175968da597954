package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, GatewayMemory, cfg.Gateway)
	assert.Equal(t, CacheNone, cfg.Cache.Kind)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 4, cfg.Dispatch.Workers)
	assert.Equal(t, 256, cfg.Dispatch.Queue)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 120, cfg.DailyGoal)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".kanso.yaml", `
gateway: sql
db_driver: sqlite
sqlite_path: /tmp/kanso-test.db
cache: disk
cache_ttl: 5m
dispatch_workers: 2
`)
	t.Setenv("DISPATCH_WORKERS", "8")
	t.Setenv("PORT", "9090")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, GatewaySQL, cfg.Gateway)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/kanso-test.db", cfg.DB.DSN())
	assert.Equal(t, CacheDisk, cfg.Cache.Kind)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 8, cfg.Dispatch.Workers, "environment wins over the file")
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "REST_TOKEN=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("REST_TOKEN") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.REST.Token)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"Unknown gateway", map[string]string{"GATEWAY": "ftp"}, "unknown GATEWAY"},
		{"REST without URL", map[string]string{"GATEWAY": "rest"}, "REST_BASE_URL"},
		{"Unknown driver", map[string]string{"GATEWAY": "sql", "DB_DRIVER": "oracle"}, "unknown DB_DRIVER"},
		{"Unknown cache", map[string]string{"CACHE": "memcached"}, "unknown CACHE"},
		{"No workers", map[string]string{"DISPATCH_WORKERS": "0"}, "DISPATCH_WORKERS"},
		{"No daily goal", map[string]string{"DAILY_GOAL": "0"}, "DAILY_GOAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Driver: "pgx", Host: "db", Port: "5432", User: "kanso", Password: "p@ss", Name: "kanso_db"}
	assert.Equal(t, "postgres://kanso:p%40ss@db:5432/kanso_db?sslmode=disable", c.DSN())
}
