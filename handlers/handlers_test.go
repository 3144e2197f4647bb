package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dhruv-809/mini-project-manager/models"
	"github.com/dhruv-809/mini-project-manager/store"
)

var testJWTKey = []byte("test-secret")

type testEnv struct {
	t      *testing.T
	router *mux.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	h := NewHandlers(store.NewMemory(), zap.NewNop(), testJWTKey)
	return &testEnv{t: t, router: h.Router()}
}

// do runs a request through the full router, middleware included.
func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) decode(rec *httptest.ResponseRecorder, out interface{}) {
	e.t.Helper()
	require.NoError(e.t, json.NewDecoder(rec.Body).Decode(out))
}

// register creates an account and returns its session token.
func (e *testEnv) register(email string) (string, models.User) {
	e.t.Helper()
	rec := e.do("POST", "/auth/register", "", models.CredentialsRequest{Email: email, Password: "hunter22"})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	e.decode(rec, &resp)
	require.NotEmpty(e.t, resp.Token)
	return resp.Token, resp.User
}

func (e *testEnv) createProject(token, title, description string) models.Project {
	e.t.Helper()
	rec := e.do("POST", "/projects", token, models.CreateProjectRequest{Title: title, Description: description})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	var p models.Project
	e.decode(rec, &p)
	return p
}

func (e *testEnv) createTask(token, projectID, title string) models.Task {
	e.t.Helper()
	due, err := models.ParseDate("2024-01-01")
	require.NoError(e.t, err)
	rec := e.do("POST", "/tasks", token, models.CreateTaskRequest{
		Title:       title,
		Description: "first pass",
		Status:      models.StatusToDo,
		DueDate:     due,
		ProjectID:   projectID,
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	var task models.Task
	e.decode(rec, &task)
	return task
}

func projectPath(id string) string { return fmt.Sprintf("/projects/%s", id) }
func taskPath(id string) string    { return fmt.Sprintf("/tasks/%s", id) }
