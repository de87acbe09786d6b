// Package pretty prints user-facing status messages with a colored severity
// prefix. All output goes to a configurable writer (stderr by default) so
// tabular data on stdout stays clean for pipes and pagers.
package pretty

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	doneStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")) // bright green
	infoStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")) // bright blue
	warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")) // bright yellow
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))  // bright red
)

// Printer writes status messages with severity prefixes.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Default is the process-wide printer used by the package-level functions.
var Default = NewPrinter(os.Stderr)

// PrintDone reports successful completion of an operation.
func (p *Printer) PrintDone(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", doneStyle.Render("✓"), msg)
}

// PrintInfo reports a neutral informational message.
func (p *Printer) PrintInfo(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", infoStyle.Render("·"), msg)
}

// PrintWarn reports a non-fatal warning.
func (p *Printer) PrintWarn(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", warnStyle.Render("!"), msg)
}

// PrintFail reports a user-facing failure.
func (p *Printer) PrintFail(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", failStyle.Render("✗"), msg)
}

// PrintError reports an unexpected error, such as a transport failure.
func (p *Printer) PrintError(err error) {
	fmt.Fprintf(p.out, "%s %v\n", failStyle.Render("✗"), err)
}

// PrintDone reports successful completion via the default printer.
func PrintDone(msg string) { Default.PrintDone(msg) }

// PrintInfo reports an informational message via the default printer.
func PrintInfo(msg string) { Default.PrintInfo(msg) }

// PrintWarn reports a warning via the default printer.
func PrintWarn(msg string) { Default.PrintWarn(msg) }

// PrintFail reports a failure via the default printer.
func PrintFail(msg string) { Default.PrintFail(msg) }

// PrintError reports an error via the default printer.
func PrintError(err error) { Default.PrintError(err) }
