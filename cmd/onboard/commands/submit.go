package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/onboard/cmd/onboard/handlers"
)

// Submit returns the command that sends saved answers.
func Submit() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "submit <answers.yaml|answers.json>",
		Short: "Send saved answers without running the wizard",
		Long: `Send saved answers without running the wizard.

The file holds the form in YAML or JSON using the same field names the
webhook receives (businessName, productA.price, ...). Delivery is best
effort: sink failures are logged and the command still succeeds.

Examples:
  onboard submit answers.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Submit(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: onboard.yaml)")

	return cmd
}
