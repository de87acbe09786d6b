package client

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Kinds of server-sent events emitted for a background task.
const (
	// EventTaskUpdated carries a progress snapshot of a running task.
	EventTaskUpdated = "task_updated"

	// EventTaskDone reports successful completion.
	EventTaskDone = "task_done"

	// EventTaskFailed reports failure with a diagnostic message.
	EventTaskFailed = "task_failed"

	// EventTaskCancelled reports cancellation by the server.
	EventTaskCancelled = "task_cancelled"

	// EventServerClose tells the client the stream is about to end.
	EventServerClose = "server_close"
)

// TaskEvent is one server-sent event of a background task stream.
type TaskEvent struct {
	// Kind is the event name (one of the Event* constants).
	Kind string

	// Data is the decoded payload, zero-valued when the event carried none.
	Data TaskProgress
}

// TaskProgress is the payload of task progress and completion events.
type TaskProgress struct {
	Message         string  `json:"message"`
	TotalProgress   float64 `json:"total_progress"`
	CurrentProgress float64 `json:"current_progress"`
}

// BackgroundTask is a handle to a long-running job on the manager.
type BackgroundTask struct {
	c  *Client
	id uuid.UUID
}

// BackgroundTask returns a handle for the given task ID.
func (c *Client) BackgroundTask(id uuid.UUID) *BackgroundTask {
	return &BackgroundTask{c: c, id: id}
}

// ID returns the task's identifier.
func (t *BackgroundTask) ID() uuid.UUID { return t.id }

// Listen opens the task's event stream and delivers its events on the
// returned channel. The channel closes when the server ends the stream or
// ctx is cancelled; wait then reports the stream's terminal error, nil on a
// clean close. The stream request carries no client-side timeout because
// tasks can legitimately run for hours.
func (t *BackgroundTask) Listen(ctx context.Context) (<-chan TaskEvent, func() error, error) {
	reqURL := t.c.baseURL + "/events/background-task?task_id=" + t.id.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	t.c.setAuthHeaders(req)

	// Reuse the configured transport but drop the per-request timeout.
	streamClient := &http.Client{Transport: t.c.httpClient.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		return nil, nil, decodeAPIError(resp)
	}

	events := make(chan TaskEvent)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		defer resp.Body.Close()
		return readEventStream(ctx, resp.Body, events)
	})

	t.c.log.Debug().Str("task_id", t.id.String()).Msg("listening to background task")
	return events, g.Wait, nil
}

// readEventStream parses a text/event-stream body and forwards complete
// events. A server_close event ends the stream without being forwarded.
func readEventStream(ctx context.Context, r io.Reader, events chan<- TaskEvent) error {
	reader := bufio.NewReader(r)

	var (
		eventName string
		dataBuf   strings.Builder
	)

	reset := func() {
		eventName = ""
		dataBuf.Reset()
	}

	flush := func() (stop bool, err error) {
		defer reset()
		if eventName == "" && dataBuf.Len() == 0 {
			return false, nil
		}
		if eventName == EventServerClose {
			return true, nil
		}

		ev := TaskEvent{Kind: eventName}
		if dataBuf.Len() > 0 {
			// Payloads that are not JSON objects (bare strings from older
			// managers) still surface as a message.
			data := dataBuf.String()
			if err := unmarshalProgress(data, &ev.Data); err != nil {
				ev.Data.Message = data
			}
		}

		select {
		case events <- ev:
			return false, nil
		case <-ctx.Done():
			return true, ctx.Err()
		}
	}

	for {
		line, readErr := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if stop, err := flush(); stop || err != nil {
				return err
			}
		case strings.HasPrefix(line, ":"):
			// comment, ignore
		default:
			field, value := line, ""
			if idx := strings.IndexByte(line, ':'); idx >= 0 {
				field = line[:idx]
				value = strings.TrimPrefix(line[idx+1:], " ")
			}
			switch field {
			case "event":
				eventName = value
			case "data":
				if dataBuf.Len() > 0 {
					dataBuf.WriteByte('\n')
				}
				dataBuf.WriteString(value)
			case "id", "retry":
				// carried by the protocol, unused here
			}
		}

		if readErr != nil {
			if _, err := flush(); err != nil {
				return err
			}
			if readErr == io.EOF {
				return nil
			}
			return readErr
		}
	}
}

// unmarshalProgress decodes a progress payload, accepting numeric fields
// encoded either as JSON numbers or strings.
func unmarshalProgress(data string, out *TaskProgress) error {
	var raw struct {
		Message         string `json:"message"`
		TotalProgress   any    `json:"total_progress"`
		CurrentProgress any    `json:"current_progress"`
	}
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return err
	}
	out.Message = raw.Message
	out.TotalProgress = toFloat(raw.TotalProgress)
	out.CurrentProgress = toFloat(raw.CurrentProgress)
	return nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
