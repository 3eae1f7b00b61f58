// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientConfig is the top-level configuration container of the client. It is
// populated by merging defaults, environment variables, command-line flags
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type ClientConfig struct {
	// Adapter holds the backend address and outbound request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the session store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Session controls client-side credential checks.
	Session Session `envPrefix:"SESSION_"`

	// Sync holds the list refresh and retry policy.
	Sync Sync `envPrefix:"SYNC_"`

	// Generator holds the password generator throttling settings.
	Generator Generator `envPrefix:"GENERATOR_"`

	// Log holds logging output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from defaults, environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds settings of the HTTP transport to the secrets backend.
type Adapter struct {
	// HTTPAddress is the backend base URL. A bare "host:port" is accepted
	// and gets the http scheme.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration of local persistence.
type Storage struct {
	// DB holds the session store database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite settings of the session store.
type DB struct {
	// DSN is the SQLite file path. An empty DSN or ":memory:" keeps the
	// session in process memory only.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Session controls how the client treats the stored credential.
type Session struct {
	// EnforceExpiry enables the best-effort exp claim check before the
	// credential is considered valid. The backend's 401 stays authoritative.
	// Env: SESSION_ENFORCE_EXPIRY
	EnforceExpiry bool `env:"ENFORCE_EXPIRY"`
}

// Sync holds the retry and de-duplication policy of the secrets list.
type Sync struct {
	// MinFetchInterval is the minimum time between two list fetch attempts.
	// Env: SYNC_MIN_FETCH_INTERVAL
	MinFetchInterval time.Duration `env:"MIN_FETCH_INTERVAL"`

	// RetryBaseDelay is the first backoff delay after a 429; it doubles on
	// every further attempt.
	// Env: SYNC_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`

	// MaxRetries bounds automatic retries of one rate-limited operation.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// CreateSettleDelay is waited after a successful create before the list
	// is fetched again.
	// Env: SYNC_CREATE_SETTLE_DELAY
	CreateSettleDelay time.Duration `env:"CREATE_SETTLE_DELAY"`

	// CreateRetryBaseDelay is the first backoff delay of the post-create
	// refresh.
	// Env: SYNC_CREATE_RETRY_BASE_DELAY
	CreateRetryBaseDelay time.Duration `env:"CREATE_RETRY_BASE_DELAY"`

	// RefreshInterval is the period of the background list refresh while
	// the dashboard is open.
	// Env: SYNC_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Generator holds the password generator throttling settings.
type Generator struct {
	// Cooldown is the minimum pause between two generation requests.
	// Env: GENERATOR_COOLDOWN
	Cooldown time.Duration `env:"COOLDOWN"`

	// RateLimitCooldown replaces Cooldown after the backend answered 429.
	// Env: GENERATOR_RATE_LIMIT_COOLDOWN
	RateLimitCooldown time.Duration `env:"RATE_LIMIT_COOLDOWN"`
}

// Log holds logging output settings.
type Log struct {
	// FilePath is where the client writes its JSON log. Empty means a
	// "logs" file next to the executable.
	// Env: LOG_FILE
	FilePath string `env:"FILE"`
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources. args are the command-line arguments without the
// program name (usually os.Args[1:]).
//
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return cfg, nil
}
