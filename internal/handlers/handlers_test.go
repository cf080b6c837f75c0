package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"codecanvas/backend/internal/handlers"
	"codecanvas/backend/internal/store"
	"codecanvas/backend/internal/ws"
)

// newTestServer stands up the full router on the in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "handler-test-secret")

	hub := ws.NewHub()
	go hub.Run()

	h := handlers.New(store.NewMemoryUsers(), store.NewMemoryProjects(), hub)
	srv := httptest.NewServer(handlers.NewRouter(h, []string{"http://localhost:5173"}))
	t.Cleanup(srv.Close)
	return srv
}

// postJSON fires one envelope request and decodes the response body.
func postJSON(t *testing.T, srv *httptest.Server, path, token string, body map[string]any) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// signUpAndLogin registers a fresh account and returns its token and user id.
func signUpAndLogin(t *testing.T, srv *httptest.Server, username, email, password string) (token, userID string) {
	t.Helper()

	status, body := postJSON(t, srv, "/auth/signUp", "", map[string]any{
		"username": username,
		"name":     username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, body["success"])

	status, body = postJSON(t, srv, "/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	return body["token"].(string), body["userId"].(string)
}

// createProject returns the new project's id.
func createProject(t *testing.T, srv *httptest.Server, token, userID, title string) string {
	t.Helper()

	status, body := postJSON(t, srv, "/auth/createProject", token, map[string]any{
		"userId": userID,
		"title":  title,
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, body["success"])
	return body["projectId"].(string)
}
