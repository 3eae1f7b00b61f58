// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [ClientConfig] satisfies all client
// invariants before it is used at startup.
func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	s := cfg.Sync
	if s.MinFetchInterval < 0 || s.RetryBaseDelay <= 0 || s.CreateRetryBaseDelay <= 0 ||
		s.CreateSettleDelay < 0 || s.RefreshInterval <= 0 {
		return ErrInvalidSyncConfigs
	}
	if s.MaxRetries <= 0 {
		return fmt.Errorf("%w: max retries must be positive, got %d", ErrInvalidSyncConfigs, s.MaxRetries)
	}

	if cfg.Generator.Cooldown <= 0 || cfg.Generator.RateLimitCooldown < cfg.Generator.Cooldown {
		return ErrInvalidGeneratorConfigs
	}

	return nil
}
