package cli

import (
	"github.com/spf13/cobra"

	"github.com/skylift-io/skyctl/internal/client"
)

func newAdminResourcePolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource-policy",
		Short: "Manage keypair resource policies",
	}
	cmd.AddCommand(
		newResourcePolicyInfoCmd(),
		newResourcePolicyListCmd(),
		newResourcePolicyAddCmd(),
		newResourcePolicyUpdateCmd(),
		newResourcePolicyDeleteCmd(),
	)
	return cmd
}

func newResourcePolicyInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info NAME",
		Short: "Show one resource policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			item, err := c.ResourcePolicies().Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newOutputHandler(cmd).PrintItem(item, client.DefaultResourcePolicyFields)
		},
	}
}

func newResourcePolicyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all keypair resource policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			items, err := c.ResourcePolicies().List(cmd.Context())
			if err != nil {
				return err
			}
			return newOutputHandler(cmd).PrintList(items, client.DefaultResourcePolicyFields)
		},
	}
}

// resourcePolicyFlags binds the shared attribute flags of add and update.
func resourcePolicyFlags(cmd *cobra.Command, params *client.ResourcePolicyParams,
	slots *JSONValue, vfolderSize *ByteSizeValue,
) {
	cmd.Flags().StringVar(&params.DefaultForUnspecified, "default-for-unspecified", "UNLIMITED",
		"how unspecified resource slots are treated (UNLIMITED or LIMITED)")
	cmd.Flags().Var(slots, "total-resource-slots", `total resource slots as a JSON object, e.g. '{"cpu": "8", "mem": "32g"}'`)
	cmd.Flags().IntVar(&params.MaxConcurrentSessions, "max-concurrent-sessions", 30, "number of sessions one keypair can run at once")
	cmd.Flags().IntVar(&params.MaxContainersPerSession, "max-containers-per-session", 1, "number of containers one session may span")
	cmd.Flags().IntVar(&params.MaxVFolderCount, "max-vfolder-count", 10, "number of virtual folders per keypair")
	cmd.Flags().Var(vfolderSize, "max-vfolder-size", "per-folder size cap, e.g. 10g")
	cmd.Flags().IntVar(&params.IdleTimeout, "idle-timeout", 1800, "seconds of idleness before a session is reaped")
	cmd.Flags().StringSliceVar(&params.AllowedVFolderHosts, "allowed-vfolder-hosts", []string{"local"}, "storage hosts usable for virtual folders")
}

func newResourcePolicyAddCmd() *cobra.Command {
	var (
		params      client.ResourcePolicyParams
		slots       JSONValue
		vfolderSize = NewByteSizeValue(0)
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new keypair resource policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.TotalResourceSlots = slots.Map()
			params.MaxVFolderSize = vfolderSize.Bytes()

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			h := newOutputHandler(cmd)
			result, err := c.ResourcePolicies().Create(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			if !result.Ok {
				h.PrintFail(result.Msg)
				return ErrOperationFailed
			}
			h.PrintDone("Resource policy created: " + args[0])
			return h.PrintItem(result.ResourcePolicy, client.DefaultResourcePolicyFields)
		},
	}
	resourcePolicyFlags(cmd, &params, &slots, vfolderSize)
	return cmd
}

func newResourcePolicyUpdateCmd() *cobra.Command {
	var (
		params      client.ResourcePolicyParams
		slots       JSONValue
		vfolderSize = NewByteSizeValue(0)
	)

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update an existing resource policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.TotalResourceSlots = slots.Map()
			params.MaxVFolderSize = vfolderSize.Bytes()

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.ResourcePolicies().Update(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return reportEnvelope(newOutputHandler(cmd), result, "Resource policy updated: "+args[0])
		},
	}
	resourcePolicyFlags(cmd, &params, &slots, vfolderSize)
	return cmd
}

func newResourcePolicyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a resource policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newOutputHandler(cmd)
			if !ConfirmWithStdin(cmd.OutOrStdout(), "Delete resource policy "+args[0]+"?").Accepted {
				h.PrintWarn("Aborting.")
				return nil
			}

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.ResourcePolicies().Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reportEnvelope(h, result, "Resource policy deleted: "+args[0])
		},
	}
}
