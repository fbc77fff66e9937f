package config

import (
	"time"

	"github.com/imamik/onboard/internal/onboarding"
	"github.com/imamik/onboard/internal/sink"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "onboard.yaml"

// Config is the full runtime configuration.
type Config struct {
	Webhook WebhookConfig `yaml:"webhook"`
	Submit  SubmitConfig  `yaml:"submit"`
	S3      S3Config      `yaml:"s3"`
	XLSX    XLSXConfig    `yaml:"xlsx"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// WebhookConfig configures the spreadsheet webhook sink.
type WebhookConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	// Disabled skips the webhook entirely (local-only runs).
	Disabled bool `yaml:"disabled"`
}

// SubmitConfig configures submission pacing.
type SubmitConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// S3Config configures the optional archive sink. It is enabled when Bucket
// is set.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	PathStyle bool   `yaml:"pathStyle"`
}

// Enabled reports whether the archive sink is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// XLSXConfig configures the optional local workbook sink.
type XLSXConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	// File receives logs while the TUI owns the terminal. Empty discards.
	File string `yaml:"file"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// SessionTTL drops sessions idle for longer. Zero keeps them until
	// deleted or finished.
	SessionTTL time.Duration `yaml:"sessionTTL"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Webhook: WebhookConfig{
			URL:     sink.DefaultWebhookURL,
			Timeout: 30 * time.Second,
		},
		Submit: SubmitConfig{
			Delay: onboarding.DefaultSubmitDelay,
		},
		S3: S3Config{
			Region: "us-east-1",
			Prefix: "onboarding",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: 30 * time.Minute,
		},
	}
}
