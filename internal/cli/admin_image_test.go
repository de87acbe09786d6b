package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageAliasRefusalSurfacesAsError(t *testing.T) {
	_, stderr, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/images/alias", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":  false,
			"msg": "duplicate alias",
		})
	}), "admin", "image", "alias", "py39", "python:3.9-ubuntu")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.Contains(t, stderr, "duplicate alias")
}

func TestImageDealiasSuccess(t *testing.T) {
	_, stderr, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "msg": ""})
	}), "admin", "image", "dealias", "py39")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Image alias removed: py39")
}

func TestImageRescanAnnouncesStart(t *testing.T) {
	_, stderr, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/images/rescan":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"ok":      true,
				"msg":     "",
				"task_id": "3a4f8a2e-7a2c-4d0f-9a43-0d6c5f3f9a11",
			})
		case "/events/background-task":
			w.Header().Set("Content-Type", "text/event-stream")
			// Stream ends immediately; the watcher defaults to success.
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
	}), "admin", "image", "rescan")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Started updating the image metadata")
}

func TestImageRescanRefusalSurfacesAsError(t *testing.T) {
	_, stderr, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":  false,
			"msg": "registry scan already in progress",
		})
	}), "admin", "image", "rescan")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.Contains(t, stderr, "registry scan already in progress")
	assert.NotContains(t, stderr, "Started updating")
}
