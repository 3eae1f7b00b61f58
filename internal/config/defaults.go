package config

import "time"

// Default values used when no source sets a field.
const (
	DefaultHTTPAddress          = "http://localhost:8080"
	DefaultRequestTimeout       = 15 * time.Second
	DefaultMinFetchInterval     = time.Second
	DefaultRetryBaseDelay       = 2 * time.Second
	DefaultMaxRetries           = 3
	DefaultCreateSettleDelay    = 500 * time.Millisecond
	DefaultCreateRetryBaseDelay = time.Second
	DefaultRefreshInterval      = time.Minute
	DefaultGeneratorCooldown    = 600 * time.Millisecond
	DefaultRateLimitCooldown    = 3 * time.Second
)

func defaultConfig() *ClientConfig {
	return &ClientConfig{
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Sync: Sync{
			MinFetchInterval:     DefaultMinFetchInterval,
			RetryBaseDelay:       DefaultRetryBaseDelay,
			MaxRetries:           DefaultMaxRetries,
			CreateSettleDelay:    DefaultCreateSettleDelay,
			CreateRetryBaseDelay: DefaultCreateRetryBaseDelay,
			RefreshInterval:      DefaultRefreshInterval,
		},
		Generator: Generator{
			Cooldown:          DefaultGeneratorCooldown,
			RateLimitCooldown: DefaultRateLimitCooldown,
		},
	}
}
