package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilderFailsValidation verifies that a config without any
// source is rejected.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	_, err := newConfigBuilder().build()
	require.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

// TestBuild_DefaultsAreValid verifies that the built-in defaults alone form a
// usable configuration.
func TestBuild_DefaultsAreValid(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddress, cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultMaxRetries, cfg.Sync.MaxRetries)
	assert.Equal(t, DefaultRetryBaseDelay, cfg.Sync.RetryBaseDelay)
	assert.Equal(t, DefaultGeneratorCooldown, cfg.Generator.Cooldown)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that a non-zero field of a later config
// overrides the earlier one while zero fields keep earlier values.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&ClientConfig{Adapter: Adapter{HTTPAddress: "http://first:1"}},
		&ClientConfig{Adapter: Adapter{HTTPAddress: "http://second:2"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://second:2", cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
}

// ── withEnv / withFlags / withJSON ────────────────────────────────────────────

func TestWithEnv_InvalidValueCollectsError(t *testing.T) {
	setEnvVars(t, map[string]string{"SYNC_MAX_RETRIES": "many"})

	b := newConfigBuilder().withEnv()

	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_OverridesEnv(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_ADDRESS": "http://from-env:1"})

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-a", "http://from-flag:2"}).
		build()

	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:2", cfg.Adapter.HTTPAddress)
}

func TestWithJSON_PathFromFlags(t *testing.T) {
	clearEnvVars(t)
	path := writeTempJSONConfig(t, map[string]any{
		"sync": map[string]any{"max_retries": 5, "retry_base_delay": "4s"},
	})

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-config", path}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
	assert.Equal(t, 4*time.Second, cfg.Sync.RetryBaseDelay)
	assert.Equal(t, DefaultMinFetchInterval, cfg.Sync.MinFetchInterval)
}

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_MissingFileCollectsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &ClientConfig{JSONFilePath: "/definitely/not/here.json"})

	b.withJSON()

	require.Error(t, b.err)
}

// ── GetClientConfig / validate ────────────────────────────────────────────────

func TestGetClientConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetClientConfig(nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddress, cfg.Adapter.HTTPAddress)
	assert.False(t, cfg.Session.EnforceExpiry)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *ClientConfig) {}},
		{name: "empty address", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero base delay", mutate: func(c *ClientConfig) { c.Sync.RetryBaseDelay = 0 }, wantErr: ErrInvalidSyncConfigs},
		{name: "zero retries", mutate: func(c *ClientConfig) { c.Sync.MaxRetries = 0 }, wantErr: ErrInvalidSyncConfigs},
		{name: "negative interval", mutate: func(c *ClientConfig) { c.Sync.MinFetchInterval = -time.Second }, wantErr: ErrInvalidSyncConfigs},
		{name: "zero refresh interval", mutate: func(c *ClientConfig) { c.Sync.RefreshInterval = 0 }, wantErr: ErrInvalidSyncConfigs},
		{name: "rate limit cooldown shorter", mutate: func(c *ClientConfig) { c.Generator.RateLimitCooldown = time.Millisecond }, wantErr: ErrInvalidGeneratorConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
