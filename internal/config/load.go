package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvWebhookURL     = "ONBOARD_WEBHOOK_URL"
	EnvWebhookTimeout = "ONBOARD_WEBHOOK_TIMEOUT"
	EnvSubmitDelay    = "ONBOARD_SUBMIT_DELAY"
	EnvS3Endpoint     = "ONBOARD_S3_ENDPOINT"
	EnvS3Region       = "ONBOARD_S3_REGION"
	EnvS3Bucket       = "ONBOARD_S3_BUCKET"
	EnvS3Prefix       = "ONBOARD_S3_PREFIX"
	EnvS3AccessKey    = "ONBOARD_S3_ACCESS_KEY"
	EnvS3SecretKey    = "ONBOARD_S3_SECRET_KEY"
	EnvXLSXPath       = "ONBOARD_XLSX_PATH"
	EnvLogLevel       = "ONBOARD_LOG_LEVEL"
	EnvLogFile        = "ONBOARD_LOG_FILE"
	EnvServerAddr     = "ONBOARD_SERVER_ADDR"
	EnvSessionTTL     = "ONBOARD_SERVER_SESSION_TTL"
)

// Load reads path (if it exists), applies .env and environment overrides,
// and validates the result. An empty path means DefaultConfigFilename.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithoutValidation is Load minus Validate.
func LoadWithoutValidation(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	cfg := Default()

	// #nosec G304
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromBytes parses YAML on top of the defaults and validates it.
// Environment variables are not consulted.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		EnvWebhookURL:  &cfg.Webhook.URL,
		EnvS3Endpoint:  &cfg.S3.Endpoint,
		EnvS3Region:    &cfg.S3.Region,
		EnvS3Bucket:    &cfg.S3.Bucket,
		EnvS3Prefix:    &cfg.S3.Prefix,
		EnvS3AccessKey: &cfg.S3.AccessKey,
		EnvS3SecretKey: &cfg.S3.SecretKey,
		EnvXLSXPath:    &cfg.XLSX.Path,
		EnvLogLevel:    &cfg.Log.Level,
		EnvLogFile:     &cfg.Log.File,
		EnvServerAddr:  &cfg.Server.Addr,
	}
	for env, dst := range strs {
		if v := getenv(env); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		EnvWebhookTimeout: &cfg.Webhook.Timeout,
		EnvSubmitDelay:    &cfg.Submit.Delay,
		EnvSessionTTL:     &cfg.Server.SessionTTL,
	}
	for env, dst := range durations {
		v := getenv(env)
		if v == "" {
			continue
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
		*dst = d
	}
	return nil
}

// parseDuration accepts Go durations and bare milliseconds ("2000").
func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}
