package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.ListenAddr)
	assert.Equal(t, 23, cfg.Sampler.MaxWaypoints)
	assert.Equal(t, 30.0, cfg.Sampler.MinTurnAngle)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 7, cfg.Cache.H3Resolution)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NAVSAMPLER_SAMPLER_MAX_WAYPOINTS", "10")
	t.Setenv("NAVSAMPLER_CACHE_IN_MEMORY", "true")
	t.Setenv("NAVSAMPLER_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Sampler.MaxWaypoints)
	assert.True(t, cfg.Cache.InMemory)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navsampler.yaml")
	content := []byte(`
server:
  listen_addr: ":6000"
sampler:
  max_waypoints: 8
  min_turn_angle: 45
cache:
  ttl: 30m
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.Server.ListenAddr)
	assert.Equal(t, 8, cfg.Sampler.MaxWaypoints)
	assert.Equal(t, 45.0, cfg.Sampler.MinTurnAngle)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Sampler.MaxWaypoints = 0
	cfg.Sampler.MinTurnAngle = 200
	cfg.Log.Format = "xml"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sampler.max_waypoints")
	assert.Contains(t, err.Error(), "sampler.min_turn_angle")
	assert.Contains(t, err.Error(), "log.format")
}
