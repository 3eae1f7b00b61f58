package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Session struct {
		EnforceExpiry bool `json:"enforce_expiry"`
	} `json:"session,omitempty"`

	Sync struct {
		MinFetchInterval     Duration `json:"min_fetch_interval"`
		RetryBaseDelay       Duration `json:"retry_base_delay"`
		MaxRetries           int      `json:"max_retries"`
		CreateSettleDelay    Duration `json:"create_settle_delay"`
		CreateRetryBaseDelay Duration `json:"create_retry_base_delay"`
		RefreshInterval      Duration `json:"refresh_interval"`
	} `json:"sync,omitempty"`

	Generator struct {
		Cooldown          Duration `json:"cooldown"`
		RateLimitCooldown Duration `json:"rate_limit_cooldown"`
	} `json:"generator,omitempty"`

	Log struct {
		FilePath string `json:"file"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Session: Session{EnforceExpiry: jsonCfg.Session.EnforceExpiry},
		Sync: Sync{
			MinFetchInterval:     time.Duration(jsonCfg.Sync.MinFetchInterval),
			RetryBaseDelay:       time.Duration(jsonCfg.Sync.RetryBaseDelay),
			MaxRetries:           jsonCfg.Sync.MaxRetries,
			CreateSettleDelay:    time.Duration(jsonCfg.Sync.CreateSettleDelay),
			CreateRetryBaseDelay: time.Duration(jsonCfg.Sync.CreateRetryBaseDelay),
			RefreshInterval:      time.Duration(jsonCfg.Sync.RefreshInterval),
		},
		Generator: Generator{
			Cooldown:          time.Duration(jsonCfg.Generator.Cooldown),
			RateLimitCooldown: time.Duration(jsonCfg.Generator.RateLimitCooldown),
		},
		Log: Log{FilePath: jsonCfg.Log.FilePath},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
