package task

import (
	"github.com/pterm/pterm"
)

// ProgressBar renders task progress as a terminal progress bar. The bar
// appears on the first total announcement so tasks that report no progress
// stay silent.
type ProgressBar struct {
	title   string
	bar     *pterm.ProgressbarPrinter
	current int
}

// NewProgressBar creates a ProgressBar with the given title.
func NewProgressBar(title string) *ProgressBar {
	return &ProgressBar{title: title}
}

// SetTotal implements ProgressSink.
func (p *ProgressBar) SetTotal(total float64) {
	if p.bar != nil || total <= 0 {
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(int(total)).
		WithTitle(p.title).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return
	}
	p.bar = bar
}

// Advance implements ProgressSink.
func (p *ProgressBar) Advance(message string, current float64) {
	if p.bar == nil {
		return
	}
	if message != "" {
		p.bar.UpdateTitle(message)
	}
	if delta := int(current) - p.current; delta > 0 {
		p.bar.Add(delta)
		p.current = int(current)
	}
}

// Stop tears the bar down. Safe to call when the bar never started.
func (p *ProgressBar) Stop() {
	if p.bar == nil {
		return
	}
	_, _ = p.bar.Stop()
	p.bar = nil
}
