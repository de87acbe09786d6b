package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skylift-io/skyctl/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the skyctl CLI.
// It wires up logging and the admin command group.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "skyctl",
		Short:         "Skylift cluster administration CLI",
		Long:          "skyctl: Inspect and administer a Skylift compute cluster via its manager API",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			logging.Setup(debug, os.Stderr)
			logger = logging.ComponentLogger("cli")
			logger.Debug().Str("command", cmd.Name()).Msg("command started")
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to the config file (default: $XDG_CONFIG_HOME/skyctl/config.yaml)")
	cmd.PersistentFlags().String("endpoint", "", "manager API endpoint (overrides config and SKYLIFT_ENDPOINT)")
	cmd.PersistentFlags().String("access-key", "", "keypair access key (overrides config and SKYLIFT_ACCESS_KEY)")
	cmd.PersistentFlags().String("secret-key", "", "keypair secret key (overrides config and SKYLIFT_SECRET_KEY)")
	cmd.PersistentFlags().Bool("skip-version-check", false, "skip the manager version compatibility check")

	cmd.AddCommand(newAdminCmd())
	return cmd
}

const rootCmdExample = `  # List cluster users, paged to the terminal
  skyctl admin user list

  # Inspect one agent
  skyctl admin agent info i-agent01

  # Rescan images from a specific registry and watch progress
  skyctl admin image rescan --registry cr.example.com

  # Create a keypair resource policy
  skyctl admin resource-policy add student --max-concurrent-sessions 2`

// newAdminCmd creates the admin command group. Every subcommand requires
// admin keypair credentials.
func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands (require an admin keypair)",
	}
	cmd.AddCommand(
		newAdminImageCmd(),
		newAdminUserCmd(),
		newAdminScalingGroupCmd(),
		newAdminResourcePolicyCmd(),
		newAdminAgentCmd(),
	)
	return cmd
}
