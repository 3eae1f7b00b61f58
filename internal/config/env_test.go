// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"ADAPTER_ADDRESS":         "http://api.local:8080",
		"ADAPTER_REQUEST_TIMEOUT": "20s",

		"STORAGE_DB_DSN": "/tmp/session.db",

		"SESSION_ENFORCE_EXPIRY": "true",

		"SYNC_MIN_FETCH_INTERVAL":      "750ms",
		"SYNC_RETRY_BASE_DELAY":        "3s",
		"SYNC_MAX_RETRIES":             "5",
		"SYNC_CREATE_SETTLE_DELAY":     "250ms",
		"SYNC_CREATE_RETRY_BASE_DELAY": "2s",
		"SYNC_REFRESH_INTERVAL":        "45s",

		"GENERATOR_COOLDOWN":            "1s",
		"GENERATOR_RATE_LIMIT_COOLDOWN": "4s",

		"LOG_FILE": "/tmp/client.log",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "http://api.local:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/session.db", cfg.Storage.DB.DSN)
	assert.True(t, cfg.Session.EnforceExpiry)

	assert.Equal(t, 750*time.Millisecond, cfg.Sync.MinFetchInterval)
	assert.Equal(t, 3*time.Second, cfg.Sync.RetryBaseDelay)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.CreateSettleDelay)
	assert.Equal(t, 2*time.Second, cfg.Sync.CreateRetryBaseDelay)
	assert.Equal(t, 45*time.Second, cfg.Sync.RefreshInterval)

	assert.Equal(t, time.Second, cfg.Generator.Cooldown)
	assert.Equal(t, 4*time.Second, cfg.Generator.RateLimitCooldown)

	assert.Equal(t, "/tmp/client.log", cfg.Log.FilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &ClientConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"SYNC_RETRY_BASE_DELAY": "soon"})

	err := parseEnv(&ClientConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidInt(t *testing.T) {
	setEnvVars(t, map[string]string{"SYNC_MAX_RETRIES": "three"})

	err := parseEnv(&ClientConfig{})

	require.Error(t, err)
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"ADAPTER_ADDRESS",
		"ADAPTER_REQUEST_TIMEOUT",

		"STORAGE_DB_DSN",

		"SESSION_ENFORCE_EXPIRY",

		"SYNC_MIN_FETCH_INTERVAL",
		"SYNC_RETRY_BASE_DELAY",
		"SYNC_MAX_RETRIES",
		"SYNC_CREATE_SETTLE_DELAY",
		"SYNC_CREATE_RETRY_BASE_DELAY",
		"SYNC_REFRESH_INTERVAL",

		"GENERATOR_COOLDOWN",
		"GENERATOR_RATE_LIMIT_COOLDOWN",

		"LOG_FILE",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
