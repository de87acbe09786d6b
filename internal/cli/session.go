package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/skylift-io/skyctl/internal/cli/pretty"
	"github.com/skylift-io/skyctl/internal/client"
	"github.com/skylift-io/skyctl/internal/config"
	"github.com/skylift-io/skyctl/internal/output"
)

// EnvSkipVersionCheck disables the manager version gate, like the
// --skip-version-check flag.
const EnvSkipVersionCheck = "SKYLIFT_SKIP_VERSION_CHECK"

// ErrOperationFailed marks a mutation the manager refused. The refusal
// message has already been printed when this is returned, so the top-level
// error reporter only maps it to a non-zero exit.
var ErrOperationFailed = errors.New("operation failed")

// newOutputHandler builds a console handler bound to the command's writers,
// so tests can capture table output and diagnostics separately.
func newOutputHandler(cmd *cobra.Command) *output.Handler {
	return output.NewHandler(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithMessagePrinter(pretty.NewPrinter(cmd.ErrOrStderr())),
	)
}

// openClient resolves configuration from the config file, environment, and
// persistent flags, connects to the manager, and verifies version
// compatibility. Callers must Close the returned client on every exit path.
func openClient(cmd *cobra.Command) (*client.Client, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if accessKey, _ := cmd.Flags().GetString("access-key"); accessKey != "" {
		cfg.AccessKey = accessKey
	}
	if secretKey, _ := cmd.Flags().GetString("secret-key"); secretKey != "" {
		cfg.SecretKey = secretKey
	}

	c, err := client.New(cfg)
	if err != nil {
		return nil, err
	}

	skip, _ := cmd.Flags().GetBool("skip-version-check")
	if _, ok := os.LookupEnv(EnvSkipVersionCheck); ok {
		skip = true
	}
	if !skip {
		if err := c.CheckVersion(cmd.Context()); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}
