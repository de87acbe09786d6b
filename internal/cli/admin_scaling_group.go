package cli

import (
	"github.com/spf13/cobra"

	"github.com/skylift-io/skyctl/internal/client"
)

func newAdminScalingGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scaling-group",
		Aliases: []string{"sg"},
		Short:   "Manage scaling groups (resource groups)",
	}
	cmd.AddCommand(
		newScalingGroupListCmd(),
		newScalingGroupGetAvailableCmd(),
		newScalingGroupInfoCmd(),
		newScalingGroupAddCmd(),
		newScalingGroupUpdateCmd(),
		newScalingGroupDeleteCmd(),
		newScalingGroupAssociateCmd(),
		newScalingGroupDissociateCmd(),
	)
	return cmd
}

func newScalingGroupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all scaling groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			items, err := c.ScalingGroups().List(cmd.Context())
			if err != nil {
				return err
			}
			return newOutputHandler(cmd).PrintList(items, client.DefaultScalingGroupListFields)
		},
	}
}

func newScalingGroupGetAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-available GROUP",
		Short: "List scaling group names usable by an access group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			names, err := c.ScalingGroups().ListAvailable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newOutputHandler(cmd).PrintScalarList(names, client.ScalingGroupNameField)
		},
	}
}

func newScalingGroupInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info NAME",
		Short: "Show one scaling group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			item, err := c.ScalingGroups().Detail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newOutputHandler(cmd).PrintItem(item, client.DefaultScalingGroupDetailFields)
		},
	}
}

// scalingGroupFlags binds the shared attribute flags of add and update.
func scalingGroupFlags(cmd *cobra.Command, params *client.ScalingGroupParams, driverOpts, schedulerOpts *JSONValue) {
	cmd.Flags().StringVarP(&params.Description, "description", "d", "", "free-form description")
	cmd.Flags().BoolVarP(&params.IsActive, "active", "a", true, "whether the group accepts new sessions")
	cmd.Flags().StringVar(&params.Driver, "driver", "static", "scaling driver name")
	cmd.Flags().Var(driverOpts, "driver-opts", "driver options as a JSON object")
	cmd.Flags().StringVar(&params.Scheduler, "scheduler", "fifo", "session scheduler name")
	cmd.Flags().Var(schedulerOpts, "scheduler-opts", "scheduler options as a JSON object")
}

func newScalingGroupAddCmd() *cobra.Command {
	var (
		params        client.ScalingGroupParams
		driverOpts    JSONValue
		schedulerOpts JSONValue
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new scaling group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.DriverOpts = driverOpts.Map()
			params.SchedulerOpts = schedulerOpts.Map()

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			h := newOutputHandler(cmd)
			result, err := c.ScalingGroups().Create(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			if !result.Ok {
				h.PrintFail(result.Msg)
				return ErrOperationFailed
			}
			h.PrintDone("Scaling group created: " + args[0])
			return h.PrintItem(result.ScalingGroup, client.DefaultScalingGroupDetailFields)
		},
	}
	scalingGroupFlags(cmd, &params, &driverOpts, &schedulerOpts)
	return cmd
}

func newScalingGroupUpdateCmd() *cobra.Command {
	var (
		params        client.ScalingGroupParams
		driverOpts    JSONValue
		schedulerOpts JSONValue
	)

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update an existing scaling group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.DriverOpts = driverOpts.Map()
			params.SchedulerOpts = schedulerOpts.Map()

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.ScalingGroups().Update(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return reportEnvelope(newOutputHandler(cmd), result, "Scaling group updated: "+args[0])
		},
	}
	scalingGroupFlags(cmd, &params, &driverOpts, &schedulerOpts)
	return cmd
}

func newScalingGroupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a scaling group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newOutputHandler(cmd)
			if !ConfirmWithStdin(cmd.OutOrStdout(), "Delete scaling group "+args[0]+"?").Accepted {
				h.PrintWarn("Aborting.")
				return nil
			}

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.ScalingGroups().Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reportEnvelope(h, result, "Scaling group deleted: "+args[0])
		},
	}
}

func newScalingGroupAssociateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "associate-domain SCALING_GROUP DOMAIN",
		Short: "Allow a domain to schedule onto a scaling group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.ScalingGroups().AssociateDomain(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return reportEnvelope(newOutputHandler(cmd), result,
				"Scaling group "+args[0]+" associated with domain "+args[1])
		},
	}
}

func newScalingGroupDissociateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dissociate-domain SCALING_GROUP DOMAIN",
		Short: "Revoke a domain's access to a scaling group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.ScalingGroups().DissociateDomain(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return reportEnvelope(newOutputHandler(cmd), result,
				"Scaling group "+args[0]+" dissociated from domain "+args[1])
		},
	}
}
