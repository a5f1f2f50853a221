package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmboard/internal/models"
)

func TestClient_SendsTokenAndDecodes(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/tasks", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"title":"Setup","status":"in_progress","projectId":2}]`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithToken("abc"))
	projectID := int64(2)
	tasks, err := c.ListTasks(context.Background(), &projectID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.StatusInProgress, tasks[0].Status)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "projectId=2", gotQuery)
}

func TestClient_UpdateTaskSendsOnlyPatchedFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tasks/5", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"id":5,"title":"Setup","status":"done"}`)
	}))
	defer srv.Close()

	status := models.StatusDone
	task, err := New(srv.URL).UpdateTask(context.Background(), 5, models.TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, map[string]any{"status": "done"}, body)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"json error body", http.StatusNotFound, `{"error":"task 9: not found"}`, "task 9: not found"},
		{"plain text body", http.StatusBadGateway, "upstream down", "upstream down"},
		{"empty body", http.StatusInternalServerError, "", "500 Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).GetTask(context.Background(), 9)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_StatusHelpers(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(errors.New("x")))
	assert.True(t, IsUnauthorized(&APIError{StatusCode: http.StatusUnauthorized}))
}

func TestClient_LoginKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		_, _ = io.WriteString(w, `{"token":"tok","user":{"id":1,"email":"admin@example.com","name":"Admin User"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	s, err := c.Login(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", s.User.Name)
	assert.Equal(t, "tok", c.Token())
}

func TestClient_DeleteIgnoresBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL).DeleteTask(context.Background(), 1))
}
