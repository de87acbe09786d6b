// Package task tracks the lifecycle of manager background tasks as their
// event streams are consumed, and reports the outcome to the user.
package task

import (
	"github.com/skylift-io/skyctl/internal/cli/pretty"
	"github.com/skylift-io/skyctl/internal/client"
)

// State is the observed lifecycle state of a background task.
type State int

const (
	// StateRunning means no terminal event has arrived yet.
	StateRunning State = iota

	// StateSucceeded means the task reported completion.
	StateSucceeded

	// StateFailed means the task reported failure.
	StateFailed

	// StateCancelled means the server cancelled the task.
	StateCancelled
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ProgressSink receives progress updates for display. Implementations must
// tolerate Advance calls before SetTotal.
type ProgressSink interface {
	// SetTotal declares the task's total amount of work.
	SetTotal(total float64)

	// Advance reports the current position and an optional status message.
	Advance(message string, current float64)
}

// nopSink discards progress.
type nopSink struct{}

func (nopSink) SetTotal(float64)        {}
func (nopSink) Advance(string, float64) {}

// Watcher folds a background task's event stream into a final outcome. The
// stream ending without a terminal event counts as success; when multiple
// terminal events arrive, the last one decides the outcome.
type Watcher struct {
	msg      *pretty.Printer
	sink     ProgressSink
	state    State
	detail   string
	totalSet bool
	finished bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithProgressSink attaches a progress display.
func WithProgressSink(sink ProgressSink) WatcherOption {
	return func(w *Watcher) { w.sink = sink }
}

// WithMessagePrinter overrides the printer used for the outcome line.
func WithMessagePrinter(p *pretty.Printer) WatcherOption {
	return func(w *Watcher) { w.msg = p }
}

// NewWatcher creates a Watcher in the running state.
func NewWatcher(opts ...WatcherOption) *Watcher {
	w := &Watcher{
		msg:  pretty.Default,
		sink: nopSink{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Observe folds one event into the watcher. Progress updates never undo a
// terminal outcome that already arrived.
func (w *Watcher) Observe(ev client.TaskEvent) {
	switch ev.Kind {
	case client.EventTaskUpdated:
		if !w.totalSet && ev.Data.TotalProgress > 0 {
			w.sink.SetTotal(ev.Data.TotalProgress)
			w.totalSet = true
		}
		w.sink.Advance(ev.Data.Message, ev.Data.CurrentProgress)
	case client.EventTaskDone:
		w.state = StateSucceeded
		w.detail = ev.Data.Message
	case client.EventTaskFailed:
		w.state = StateFailed
		w.detail = ev.Data.Message
	case client.EventTaskCancelled:
		w.state = StateCancelled
		w.detail = ev.Data.Message
	}
}

// State returns the current outcome.
func (w *Watcher) State() State { return w.state }

// Detail returns the message of the deciding terminal event.
func (w *Watcher) Detail() string { return w.detail }

// Finish prints the task outcome. It is safe to defer alongside explicit
// calls; only the first call prints.
func (w *Watcher) Finish() {
	if w.finished {
		return
	}
	w.finished = true

	switch w.state {
	case StateFailed:
		w.msg.PrintFail(orDefault(w.detail, "Task has failed."))
	case StateCancelled:
		w.msg.PrintWarn(orDefault(w.detail, "Task was cancelled."))
	default:
		// Running here means the stream closed cleanly with no terminal
		// event, which the manager does for short tasks.
		w.msg.PrintDone(orDefault(w.detail, "Task is complete."))
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
