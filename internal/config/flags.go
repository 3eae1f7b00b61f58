package config

import (
	"flag"
	"fmt"
	"time"
)

// parseFlags parses the client command-line flags from args.
//
// Flags:
//
//	-a backend address (URL or host:port)
//	-request-timeout outbound request timeout (e.g. "15s")
//	-d session store DSN (SQLite file path)
//	-enforce-expiry check the exp claim of the stored credential
//	-min-fetch-interval minimum time between two list fetches
//	-retry-base-delay first backoff delay after a 429
//	-max-retries retry bound of a rate-limited operation
//	-refresh-interval background list refresh period
//	-log-file log file path
//	-c/-config json file path with configs
func parseFlags(args []string) (*ClientConfig, error) {
	var (
		serverAddress    string
		requestTimeout   time.Duration
		dsn              string
		enforceExpiry    bool
		minFetchInterval time.Duration
		retryBaseDelay   time.Duration
		maxRetries       int
		refreshInterval  time.Duration
		logFile          string
		jsonConfigPath   string
	)

	fs := flag.NewFlagSet("go-secret-keeper", flag.ContinueOnError)
	fs.StringVar(&serverAddress, "a", "", "Backend address (URL or host:port)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&dsn, "d", "", "Session store DSN")
	fs.BoolVar(&enforceExpiry, "enforce-expiry", false, "Check the exp claim of the stored credential")
	fs.DurationVar(&minFetchInterval, "min-fetch-interval", 0, "Minimum time between two list fetches")
	fs.DurationVar(&retryBaseDelay, "retry-base-delay", 0, "First backoff delay after a 429")
	fs.IntVar(&maxRetries, "max-retries", 0, "Retry bound of a rate-limited operation")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Background list refresh period")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &ClientConfig{
		Adapter: Adapter{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: dsn},
		},
		Session: Session{EnforceExpiry: enforceExpiry},
		Sync: Sync{
			MinFetchInterval: minFetchInterval,
			RetryBaseDelay:   retryBaseDelay,
			MaxRetries:       maxRetries,
			RefreshInterval:  refreshInterval,
		},
		Log:          Log{FilePath: logFile},
		JSONFilePath: jsonConfigPath,
	}, nil
}
