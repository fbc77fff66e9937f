package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/onboard/cmd/onboard/handlers"
)

// Serve returns the command that exposes wizards over HTTP.
func Serve() *cobra.Command {
	var configPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve onboarding sessions over HTTP",
		Long: `Serve onboarding sessions over HTTP.

Routes:
  POST   /v1/sessions                 start a session
  GET    /v1/sessions/{id}            read its state
  POST   /v1/sessions/{id}/commands   advance, retreat, set-field, set-product-field, submit
  DELETE /v1/sessions/{id}            drop a session
  GET    /metrics                     Prometheus metrics

Examples:
  onboard serve --addr 127.0.0.1:8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Serve(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: onboard.yaml)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")

	return cmd
}
