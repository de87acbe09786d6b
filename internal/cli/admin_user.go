package cli

import (
	"github.com/spf13/cobra"

	"github.com/skylift-io/skyctl/internal/cli/pagination"
	"github.com/skylift-io/skyctl/internal/client"
	"github.com/skylift-io/skyctl/internal/output"
)

// userOrderFields are the user listing fields the manager accepts in order
// expressions.
var userOrderFields = []string{"uuid", "username", "email", "created_at", "domain_name", "role", "status"}

func newAdminUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage cluster user accounts",
	}
	cmd.AddCommand(
		newUserInfoCmd(),
		newUserListCmd(),
		newUserAddCmd(),
		newUserUpdateCmd(),
		newUserDeleteCmd(),
		newUserPurgeCmd(),
	)
	return cmd
}

func newUserInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [EMAIL]",
		Short: "Show one user account (your own when EMAIL is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			email := ""
			if len(args) > 0 {
				email = args[0]
			}
			item, err := c.Users().Detail(cmd.Context(), email, client.DefaultUserFields)
			if err != nil {
				return err
			}
			return newOutputHandler(cmd).PrintItem(item, client.DefaultUserFields)
		},
	}
}

func newUserListCmd() *cobra.Command {
	var (
		page   pagination.Params
		status string
		group  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := page.Validate(); err != nil {
				return err
			}
			order, err := page.OrderExpression(userOrderFields...)
			if err != nil {
				return err
			}

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			opts := client.UserListOptions{
				Status: status,
				Group:  group,
				Filter: page.Filter,
				Order:  order,
			}
			fetch := func(offset, pageSize int) (*output.PageResult, error) {
				return c.Users().PaginatedList(cmd.Context(), opts, client.DefaultUserFields, offset, pageSize)
			}
			return newOutputHandler(cmd).PrintPaginatedList(fetch, page.Offset, page.Limit)
		},
	}
	page.Register(cmd.Flags())
	cmd.Flags().StringVar(&status, "status", "", "filter by account status (active, inactive, deleted, before-verification)")
	cmd.Flags().StringVarP(&group, "group", "g", "", "filter by group ID")
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var params client.CreateUserParams

	cmd := &cobra.Command{
		Use:   "add DOMAIN EMAIL PASSWORD",
		Short: "Create a new user account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.DomainName = args[0]
			params.Email = args[1]
			params.Password = args[2]

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			h := newOutputHandler(cmd)
			result, err := c.Users().Create(cmd.Context(), params)
			if err != nil {
				return err
			}
			if !result.Ok {
				h.PrintFail(result.Msg)
				return ErrOperationFailed
			}
			h.PrintDone("User created: " + params.Email)
			return h.PrintItem(result.User, client.DefaultUserFields)
		},
	}
	cmd.Flags().StringVarP(&params.Username, "username", "u", "", "login name (defaults to the email's local part)")
	cmd.Flags().StringVarP(&params.FullName, "full-name", "n", "", "display name")
	cmd.Flags().StringVarP(&params.Role, "role", "r", "user", "account role (user, admin, superadmin, monitor)")
	cmd.Flags().StringVarP(&params.Status, "status", "s", "active", "initial account status")
	cmd.Flags().BoolVar(&params.NeedPasswordChange, "need-password-change", false, "force a password change on first login")
	cmd.Flags().StringVar(&params.Description, "description", "", "free-form description")
	return cmd
}

func newUserUpdateCmd() *cobra.Command {
	var (
		password           string
		username           string
		fullName           string
		domainName         string
		role               string
		status             string
		needPasswordChange bool
		description        string
	)

	cmd := &cobra.Command{
		Use:   "update EMAIL",
		Short: "Update an existing user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the operator actually set become part of the patch.
			var params client.UpdateUserParams
			flags := cmd.Flags()
			if flags.Changed("password") {
				params.Password = &password
			}
			if flags.Changed("username") {
				params.Username = &username
			}
			if flags.Changed("full-name") {
				params.FullName = &fullName
			}
			if flags.Changed("domain-name") {
				params.DomainName = &domainName
			}
			if flags.Changed("role") {
				params.Role = &role
			}
			if flags.Changed("status") {
				params.Status = &status
			}
			if flags.Changed("need-password-change") {
				params.NeedPasswordChange = &needPasswordChange
			}
			if flags.Changed("description") {
				params.Description = &description
			}

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.Users().Update(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return reportEnvelope(newOutputHandler(cmd), result, "User updated: "+args[0])
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	cmd.Flags().StringVarP(&username, "username", "u", "", "new login name")
	cmd.Flags().StringVarP(&fullName, "full-name", "n", "", "new display name")
	cmd.Flags().StringVarP(&domainName, "domain-name", "d", "", "move the account to another domain")
	cmd.Flags().StringVarP(&role, "role", "r", "", "new account role")
	cmd.Flags().StringVarP(&status, "status", "s", "", "new account status")
	cmd.Flags().BoolVar(&needPasswordChange, "need-password-change", false, "force a password change on next login")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete EMAIL",
		Short: "Inactivate a user account (data is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.Users().Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reportEnvelope(newOutputHandler(cmd), result, "User deleted: "+args[0])
		},
	}
}

func newUserPurgeCmd() *cobra.Command {
	var purgeSharedVFolders bool

	cmd := &cobra.Command{
		Use:   "purge EMAIL",
		Short: "Permanently delete a user account and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newOutputHandler(cmd)
			if !ConfirmWithStdin(cmd.OutOrStdout(),
				"Are you sure? This cannot be undone: "+args[0]).Accepted {
				h.PrintWarn("Aborting.")
				return nil
			}

			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.Users().Purge(cmd.Context(), args[0], purgeSharedVFolders)
			if err != nil {
				return err
			}
			return reportEnvelope(h, result, "User purged: "+args[0])
		},
	}
	cmd.Flags().BoolVar(&purgeSharedVFolders, "purge-shared-vfolders", false,
		"also delete folders shared with other users (default: migrate ownership to you)")
	return cmd
}
