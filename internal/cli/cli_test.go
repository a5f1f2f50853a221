package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmboard/internal/board"
	"pmboard/internal/client"
	"pmboard/internal/models"
)

func init() {
	color.NoColor = true
}

func TestSessionRoundTrip(t *testing.T) {
	t.Setenv("BOARDCTL_HOME", t.TempDir())

	empty, err := loadSession()
	require.NoError(t, err)
	assert.Empty(t, empty.Token)

	want := &Session{Server: "http://board:3001", Token: "tok", User: SessionUser{ID: 1, Name: "Admin User", Email: "admin@example.com"}}
	require.NoError(t, saveSession(want))

	got, err := loadSession()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, clearSession())
	require.NoError(t, clearSession())
	got, err = loadSession()
	require.NoError(t, err)
	assert.Empty(t, got.Token)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARDCTL_HOME", dir)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultServer, cfg.Server)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: http://remote:9000\nproject: 3\n"), 0o600))
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://remote:9000", cfg.Server)
	assert.Equal(t, int64(3), cfg.Project)

	t.Setenv("BOARDCTL_SERVER", "http://env:1")
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://env:1", cfg.Server)
}

func TestTaskPatchFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "update"}
	cmd.Flags().AddFlagSet(taskUpdateCmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--status", "done", "--assignee", "4"}))

	patch, err := taskPatchFromFlags(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "assigneeId"}, patch.Fields())

	_, ok := board.IntentFor(1, patch).(board.StatusChange)
	assert.True(t, ok)
}

func TestTaskPatchFromFlags_Invalid(t *testing.T) {
	cmd := &cobra.Command{Use: "create"}
	cmd.Flags().AddFlagSet(taskCreateCmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--priority", "urgent"}))

	_, err := taskPatchFromFlags(cmd.Flags())
	assert.ErrorIs(t, err, models.ErrInvalid)
}

func TestPrintBoard(t *testing.T) {
	due := "2024-12-31"
	var buf bytes.Buffer
	printBoard(&buf, board.Group([]models.Task{
		{ID: 1, Title: "Setup project", Status: models.StatusInProgress, Priority: models.PriorityHigh, DueDate: &due},
	}))

	out := buf.String()
	assert.Contains(t, out, "BACKLOG (0)")
	assert.Contains(t, out, "IN PROGRESS (1)")
	assert.Contains(t, out, "#1 Setup project due 2024-12-31")
	assert.Contains(t, out, "(empty)")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[#######...] 75%", progressBar(75))
	assert.Equal(t, "[..........] 0%", progressBar(0))
	assert.Equal(t, "[##########] 100%", progressBar(100))
}

func TestExplain(t *testing.T) {
	assert.Contains(t, explain(&client.APIError{StatusCode: http.StatusUnauthorized}).Error(), "boardctl login")
	notFound := explain(&client.APIError{StatusCode: http.StatusNotFound, Message: "task 9: not found"})
	assert.Contains(t, notFound.Error(), "task 9: not found")
	assert.Contains(t, notFound.Error(), "list")

	plain := errors.New("boom")
	assert.Equal(t, plain, explain(plain))
}

func TestUserList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"email":"admin@example.com","name":"Admin"}]`))
	}))
	defer srv.Close()

	t.Setenv("BOARDCTL_HOME", t.TempDir())
	serverFlag = srv.URL
	t.Cleanup(func() { serverFlag = "" })

	var buf bytes.Buffer
	userListCmd.SetOut(&buf)
	userListCmd.SetContext(context.Background())
	require.NoError(t, userListCmd.RunE(userListCmd, nil))
	assert.Contains(t, buf.String(), "#1 Admin admin@example.com")
}
