package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/onboard/cmd/onboard/handlers"
)

// Steps returns the command that lists the wizard steps.
func Steps() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List the wizard steps and sections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Steps(cmd.OutOrStdout(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
