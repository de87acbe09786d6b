package client

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, stream string) []TaskEvent {
	t.Helper()

	taskID := uuid.New()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/background-task", r.URL.Path)
		assert.Equal(t, taskID.String(), r.URL.Query().Get("task_id"))
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, stream)
	}))

	events, wait, err := c.BackgroundTask(taskID).Listen(context.Background())
	require.NoError(t, err)

	var got []TaskEvent
	for ev := range events {
		got = append(got, ev)
	}
	require.NoError(t, wait())
	return got
}

func TestListenParsesEvents(t *testing.T) {
	stream := "event: task_updated\n" +
		"data: {\"message\":\"scanning cr.skylift.io\",\"total_progress\":100,\"current_progress\":25}\n" +
		"\n" +
		"event: task_done\n" +
		"data: {\"message\":\"rescanning done\"}\n" +
		"\n"

	got := collectEvents(t, stream)
	require.Len(t, got, 2)

	assert.Equal(t, EventTaskUpdated, got[0].Kind)
	assert.Equal(t, "scanning cr.skylift.io", got[0].Data.Message)
	assert.Equal(t, 100.0, got[0].Data.TotalProgress)
	assert.Equal(t, 25.0, got[0].Data.CurrentProgress)

	assert.Equal(t, EventTaskDone, got[1].Kind)
	assert.Equal(t, "rescanning done", got[1].Data.Message)
}

func TestListenMultilineDataAndComments(t *testing.T) {
	stream := ": keepalive\n" +
		"event: task_failed\n" +
		"data: {\"message\":\n" +
		"data:  \"disk full\"}\n" +
		"\n"

	got := collectEvents(t, stream)
	require.Len(t, got, 1)
	assert.Equal(t, EventTaskFailed, got[0].Kind)
	assert.Equal(t, "disk full", got[0].Data.Message)
}

func TestListenFlushesOnEOF(t *testing.T) {
	// No trailing blank line: the final event flushes when the stream ends.
	stream := "event: task_cancelled\n" +
		"data: {\"message\":\"cancelled by operator\"}\n"

	got := collectEvents(t, stream)
	require.Len(t, got, 1)
	assert.Equal(t, EventTaskCancelled, got[0].Kind)
	assert.Equal(t, "cancelled by operator", got[0].Data.Message)
}

func TestListenStopsAtServerClose(t *testing.T) {
	stream := "event: task_done\n" +
		"data: {\"message\":\"done\"}\n" +
		"\n" +
		"event: server_close\n" +
		"\n" +
		"event: task_updated\n" +
		"data: {\"message\":\"should not appear\"}\n" +
		"\n"

	got := collectEvents(t, stream)
	require.Len(t, got, 1)
	assert.Equal(t, EventTaskDone, got[0].Kind)
}

func TestListenNumericStringsAccepted(t *testing.T) {
	stream := "event: task_updated\n" +
		"data: {\"message\":\"working\",\"total_progress\":\"10\",\"current_progress\":\"3\"}\n" +
		"\n"

	got := collectEvents(t, stream)
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Data.TotalProgress)
	assert.Equal(t, 3.0, got[0].Data.CurrentProgress)
}

func TestListenRejectsErrorStatus(t *testing.T) {
	taskID := uuid.New()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"type":"object-not-found","message":"no such task"}`)
	}))

	_, _, err := c.BackgroundTask(taskID).Listen(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
