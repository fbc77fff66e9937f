// Package config loads runtime settings for the onboard CLI.
//
// Settings come from an optional YAML file (onboard.yaml), then from a
// .env file and ONBOARD_* environment variables, which take precedence.
// A missing config file is not an error: every field has a default that
// targets the production spreadsheet webhook.
package config
