package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against a fake manager and returns stdout
// and stderr contents.
func execute(t *testing.T, handler http.Handler, args ...string) (string, string, error) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvSkipVersionCheck, "1")
	t.Setenv("SKYLIFT_ACCESS_KEY", "AKTEST")
	t.Setenv("SKYLIFT_SECRET_KEY", "SKTEST")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--endpoint", srv.URL))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestUserListRendersTable(t *testing.T) {
	stdout, _, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"email": "alice@example.com", "username": "alice", "role": "admin"},
				{"email": "bob@example.com", "username": "bob", "role": "user"},
			},
			"total_count": 2,
		})
	}), "admin", "user", "list", "--status", "active", "--limit", "10")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Email")
	assert.Contains(t, stdout, "alice@example.com")
	assert.Contains(t, stdout, "bob@example.com")
}

func TestUserListEmptyPrintsHeaderOnly(t *testing.T) {
	stdout, _, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":       []map[string]any{},
			"total_count": 0,
		})
	}), "admin", "user", "list", "--limit", "10")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Email")
	assert.NotContains(t, stdout, "No matching items.")
}

func TestUserListRejectsBadOrderField(t *testing.T) {
	_, _, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be reached on flag validation failure")
	}), "admin", "user", "list", "--order", "shoe_size:desc")

	assert.Error(t, err)
}

func TestUserInfoNotFound(t *testing.T) {
	_, stderr, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"object-not-found","message":"no such user"}`))
	}), "admin", "user", "info", "ghost@example.com")

	require.NoError(t, err)
	assert.Contains(t, stderr, "No matching entry found.")
}

func TestUserAddReportsRefusal(t *testing.T) {
	_, stderr, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":  false,
			"msg": "duplicate email",
		})
	}), "admin", "user", "add", "default", "alice@example.com", "wordpass")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.Contains(t, stderr, "duplicate email")
}

func TestUserPurgeDeclinedWithoutTTY(t *testing.T) {
	_, stderr, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("purge must not reach the server without confirmation")
	}), "admin", "user", "purge", "alice@example.com")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Aborting.")
}

func TestScalingGroupGetAvailableScalarList(t *testing.T) {
	stdout, _, err := execute(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"scaling_groups": []string{"default", "gpu-a100"},
		})
	}), "admin", "scaling-group", "get-available", "research")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Name")
	assert.Contains(t, stdout, "default")
	assert.Contains(t, stdout, "gpu-a100")
}

func TestVersionGateBlocksOldManager(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"manager": "skylift", "version": "1.0.0"})
	}))
	t.Cleanup(srv.Close)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SKYLIFT_ACCESS_KEY", "AKTEST")
	t.Setenv("SKYLIFT_SECRET_KEY", "SKTEST")

	root := NewRootCmd("test")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"admin", "scaling-group", "list", "--endpoint", srv.URL})

	err := root.Execute()
	assert.Error(t, err)
}
