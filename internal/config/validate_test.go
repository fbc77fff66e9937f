package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"disabled webhook without url", func(c *Config) { c.Webhook.Disabled = true; c.Webhook.URL = "" }, ""},
		{"missing url", func(c *Config) { c.Webhook.URL = "" }, "webhook.url is required"},
		{"relative url", func(c *Config) { c.Webhook.URL = "/hook" }, "absolute http(s) URL"},
		{"ftp url", func(c *Config) { c.Webhook.URL = "ftp://example.com" }, "absolute http(s) URL"},
		{"negative delay", func(c *Config) { c.Submit.Delay = -1 }, "submit.delay"},
		{"negative timeout", func(c *Config) { c.Webhook.Timeout = -1 }, "webhook.timeout"},
		{"bucket without keys", func(c *Config) { c.S3.Bucket = "b" }, "s3.accessKey"},
		{"endpoint without bucket", func(c *Config) { c.S3.Endpoint = "https://s3.local" }, "s3.bucket is required"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"negative session ttl", func(c *Config) { c.Server.SessionTTL = -1 }, "server.sessionTTL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Submit.Delay = -1
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "submit.delay")
		assert.Contains(t, err.Error(), "log.level")
	}
}
