package output

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/term"
)

const (
	// fallbackPageSize is used when the terminal size cannot be determined
	// and for single-shot non-interactive pagination.
	fallbackPageSize = 20

	// minPageSize keeps remote fetches reasonably sized on tiny terminals.
	minPageSize = 10

	// pagerChromeRows is subtracted from the terminal height to leave room
	// for the table header and the pager status line.
	pagerChromeRows = 3
)

// PreferredPageSize derives a fetch page size from the terminal height so
// that one remote page roughly fills one screen.
func PreferredPageSize() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		return fallbackPageSize
	}
	size := height - pagerChromeRows
	if size < minPageSize {
		return minPageSize
	}
	return size
}

// Pager feeds lines to an external pager process. The user quitting the
// pager surfaces as a broken-pipe write error, which callers treat as an
// early-stop signal rather than a failure.
type Pager struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// startPager launches $PAGER (default "less"). LESS is defaulted to -FRX so
// short output is passed through and the screen is restored on exit.
func startPager() (*Pager, error) {
	pagerEnv := os.Getenv("PAGER")
	if pagerEnv == "" {
		pagerEnv = "less"
	}
	parts := strings.Fields(pagerEnv)
	if len(parts) == 0 {
		parts = []string{"less"}
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if os.Getenv("LESS") == "" {
		cmd.Env = append(os.Environ(), "LESS=-FRX")
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &Pager{cmd: cmd, stdin: stdin}, nil
}

// Write implements io.Writer.
func (p *Pager) Write(b []byte) (int, error) {
	return p.stdin.Write(b)
}

// Close closes the pager's input and waits for the user to exit it.
func (p *Pager) Close() error {
	if err := p.stdin.Close(); err != nil && !isPagerQuit(err) {
		_ = p.cmd.Wait()
		return err
	}
	return p.cmd.Wait()
}

// isPagerQuit reports whether err means the pager went away (user quit)
// rather than a genuine output failure.
func isPagerQuit(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed)
}
