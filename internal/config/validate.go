package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidLogLevels are the accepted log.level values.
var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for common errors.
func (c *Config) Validate() error {
	var errs []error

	if !c.Webhook.Disabled {
		if c.Webhook.URL == "" {
			errs = append(errs, errors.New("webhook.url is required unless webhook.disabled is set"))
		} else if u, err := url.Parse(c.Webhook.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("webhook.url %q must be an absolute http(s) URL", c.Webhook.URL))
		}
	}
	if c.Webhook.Timeout < 0 {
		errs = append(errs, fmt.Errorf("webhook.timeout must not be negative, got %s", c.Webhook.Timeout))
	}
	if c.Submit.Delay < 0 {
		errs = append(errs, fmt.Errorf("submit.delay must not be negative, got %s", c.Submit.Delay))
	}

	if c.Server.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("server.sessionTTL must not be negative, got %s", c.Server.SessionTTL))
	}

	if c.S3.Enabled() {
		if c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			errs = append(errs, errors.New("s3.accessKey and s3.secretKey are required when s3.bucket is set"))
		}
	} else if c.S3.Endpoint != "" {
		errs = append(errs, errors.New("s3.bucket is required when s3.endpoint is set"))
	}

	if !ValidLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}

	return errors.Join(errs...)
}
