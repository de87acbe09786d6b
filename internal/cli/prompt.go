package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes").
	Accepted bool
	// Cancelled is true if reading input failed.
	Cancelled bool
}

// Confirm asks the user a yes/no question defaulting to No. It returns
// immediately with Accepted=false in non-interactive (non-TTY) environments
// so destructive commands never proceed silently in scripts.
func Confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return PromptResult{Accepted: false}
	}

	fmt.Fprintf(writer, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error, user pressed Ctrl+D
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}

// ConfirmWithStdin is a convenience wrapper that reads from os.Stdin.
func ConfirmWithStdin(writer io.Writer, question string) PromptResult {
	return Confirm(writer, os.Stdin, question)
}
