package main

import (
	"errors"
	"os"

	"github.com/skylift-io/skyctl/internal/cli"
	"github.com/skylift-io/skyctl/internal/cli/pretty"
	"github.com/skylift-io/skyctl/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command and maps any reported failure to exit code 1.
// Manager-refused operations already printed their message, so only other
// errors are reported here.
func run(args []string) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, cli.ErrOperationFailed) {
			pretty.PrintError(err)
		}
		return 1
	}
	return 0
}
