package cli

import (
	"github.com/spf13/cobra"

	"github.com/skylift-io/skyctl/internal/cli/pagination"
	"github.com/skylift-io/skyctl/internal/client"
	"github.com/skylift-io/skyctl/internal/output"
)

// agentOrderFields are the agent listing fields the manager accepts in order
// expressions.
var agentOrderFields = []string{"id", "status", "scaling_group", "region", "first_contact"}

func newAdminAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agent",
		Aliases: []string{"agents"},
		Short:   "Inspect compute agents",
	}
	cmd.AddCommand(
		newAgentInfoCmd(),
		newAgentListCmd(),
	)
	return cmd
}

func newAgentInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info AGENT_ID",
		Short: "Show one compute agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			item, err := c.Agents().Detail(cmd.Context(), args[0], client.DefaultAgentFields)
			if err != nil {
				return err
			}
			return newOutputHandler(cmd).PrintItem(item, client.DefaultAgentFields)
		},
	}
}

func newAgentListCmd() *cobra.Command {
	var (
		page   pagination.Params
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List compute agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := page.Validate(); err != nil {
				return err
			}
			order, err := page.OrderExpression(agentOrderFields...)
			if err != nil {
				return err
			}

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			opts := client.AgentListOptions{
				Status: status,
				Filter: page.Filter,
				Order:  order,
			}
			fetch := func(offset, pageSize int) (*output.PageResult, error) {
				return c.Agents().PaginatedList(cmd.Context(), opts, client.DefaultAgentFields, offset, pageSize)
			}
			return newOutputHandler(cmd).PrintPaginatedList(fetch, page.Offset, page.Limit)
		},
	}
	page.Register(cmd.Flags())
	cmd.Flags().StringVarP(&status, "status", "s", "ALIVE", "filter by agent status (ALIVE, LOST, RESTARTING, TERMINATED)")
	return cmd
}
