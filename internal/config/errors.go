package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidSyncConfigs indicates an unusable retry or refresh policy
	// (for example, zero base delay or retry bound).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidGeneratorConfigs indicates invalid generator cooldowns.
	ErrInvalidGeneratorConfigs = errors.New("invalid generator configuration")
)
