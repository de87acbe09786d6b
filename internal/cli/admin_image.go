package cli

import (
	"github.com/spf13/cobra"

	"github.com/skylift-io/skyctl/internal/client"
	"github.com/skylift-io/skyctl/internal/output"
	"github.com/skylift-io/skyctl/internal/task"
)

func newAdminImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage the cluster's kernel image catalog",
	}
	cmd.AddCommand(
		newImageListCmd(),
		newImageRescanCmd(),
		newImageAliasCmd(),
		newImageDealiasCmd(),
	)
	return cmd
}

func newImageListCmd() *cobra.Command {
	var operationOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			items, err := c.Images().List(cmd.Context(), operationOnly)
			if err != nil {
				return err
			}
			return newOutputHandler(cmd).PrintList(items, client.DefaultImageListFields)
		},
	}
	cmd.Flags().BoolVar(&operationOnly, "operation", false, "list operational (system) images only")
	return cmd
}

func newImageRescanCmd() *cobra.Command {
	var registry string

	cmd := &cobra.Command{
		Use:   "rescan",
		Short: "Refresh image metadata from container registries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			h := newOutputHandler(cmd)
			result, err := c.Images().Rescan(cmd.Context(), registry)
			if err != nil {
				return err
			}
			if !result.Ok {
				h.PrintFail(result.Msg)
				return ErrOperationFailed
			}
			h.PrintDone("Started updating the image metadata from the configured registries.")

			events, wait, err := c.BackgroundTask(result.TaskID).Listen(cmd.Context())
			if err != nil {
				return err
			}

			bar := task.NewProgressBar("Rescanning images")
			watcher := task.NewWatcher(task.WithProgressSink(bar))
			defer watcher.Finish()

			for ev := range events {
				watcher.Observe(ev)
			}
			bar.Stop()
			return wait()
		},
	}
	cmd.Flags().StringVar(&registry, "registry", "", "rescan only this registry (default: all configured registries)")
	return cmd
}

func newImageAliasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alias ALIAS TARGET",
		Short: "Add an image alias",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.Images().Alias(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return reportEnvelope(newOutputHandler(cmd), result, "Image alias added: "+args[0])
		},
	}
}

func newImageDealiasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dealias ALIAS",
		Short: "Remove an image alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.Images().Dealias(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reportEnvelope(newOutputHandler(cmd), result, "Image alias removed: "+args[0])
		},
	}
}

// reportEnvelope prints a mutation outcome: the success message when the
// manager accepted the operation, its refusal message otherwise. A refusal
// returns ErrOperationFailed so the process exits non-zero.
func reportEnvelope(h *output.Handler, result *client.Envelope, doneMsg string) error {
	if result.Ok {
		h.PrintDone(doneMsg)
		return nil
	}
	h.PrintFail(result.Msg)
	return ErrOperationFailed
}
