package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
name: campaign-pulse
host: 127.0.0.1
port: 8000
storage:
  db_type: sqlite
  db_path: ":memory:"
auth:
  jwt_secret: 0123456789abcdef0123
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, DefaultGrpcPort, cfg.GrpcPort)
	assert.Equal(t, DefaultMetricsIntervalSeconds, cfg.RealTime.MetricsIntervalSeconds)
	assert.Equal(t, DefaultCampaignIntervalSeconds, cfg.RealTime.CampaignIntervalSeconds)
	assert.Equal(t, DefaultAlertIntervalSeconds, cfg.RealTime.AlertIntervalSeconds)
	assert.Equal(t, DefaultTokenTTLMinutes, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "campaign-pulse", cfg.Auth.Issuer)
}

func TestParseEnvOverridesFile(t *testing.T) {
	t.Setenv("DASHBOARD_PORT", "9100")
	t.Setenv("DASHBOARD_METRICS_INTERVAL_SECONDS", "1")

	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 1, cfg.RealTime.MetricsIntervalSeconds)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"empty name":      "name: ''\nhost: h\nport: 8000\nstorage: {db_type: sqlite, db_path: x}\nauth: {jwt_secret: 0123456789abcdef}",
		"low port":        "name: n\nhost: h\nport: 80\nstorage: {db_type: sqlite, db_path: x}\nauth: {jwt_secret: 0123456789abcdef}",
		"unknown db":      "name: n\nhost: h\nport: 8000\nstorage: {db_type: mongo}\nauth: {jwt_secret: 0123456789abcdef}",
		"postgres no dsn": "name: n\nhost: h\nport: 8000\nstorage: {db_type: postgres}\nauth: {jwt_secret: 0123456789abcdef}",
		"short secret":    "name: n\nhost: h\nport: 8000\nstorage: {db_type: sqlite, db_path: x}\nauth: {jwt_secret: short}",
		"port collision":  "name: n\nhost: h\nport: 8000\ngrpc_port: 8000\nstorage: {db_type: sqlite, db_path: x}\nauth: {jwt_secret: 0123456789abcdef}",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTripsThroughNewConfig(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Port, loaded.Port)
	assert.Equal(t, cfg.Storage.DBPath, loaded.Storage.DBPath)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(os.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}
