package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/onboard/cmd/onboard/handlers"
)

// Run returns the command that starts the interactive wizard.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: onboard.yaml if present)
//	--accessible: Use plain line prompts instead of the full-screen interface
//	--log-file: Write logs to this file while the wizard owns the terminal
func Run() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the onboarding wizard",
		Long: `Start the onboarding wizard.

The full-screen interface is used when stdout is a terminal. Otherwise, or
with --accessible, each step is asked as a plain prompt.

Keys (full-screen):
  enter            next step (finish on the last one)
  alt+enter        new line in multi-line fields
  tab, shift+tab   move between fields
  esc, ctrl+b      previous step
  ctrl+c           quit

Examples:
  # Start the wizard
  onboard run

  # Keep logs for troubleshooting
  onboard run --log-file onboard.log

  # Screen-reader friendly prompts
  onboard run --accessible`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: onboard.yaml)")
	cmd.Flags().BoolVar(&opts.Accessible, "accessible", false, "Use plain line prompts")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")

	return cmd
}
