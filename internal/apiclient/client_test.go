package apiclient_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecanvas/backend/internal/apiclient"
	"codecanvas/backend/internal/handlers"
	"codecanvas/backend/internal/store"
)

func newClient(t *testing.T) *apiclient.Client {
	t.Helper()
	t.Setenv("JWT_SECRET", "client-test-secret")

	h := handlers.New(store.NewMemoryUsers(), store.NewMemoryProjects(), nil)
	srv := httptest.NewServer(handlers.NewRouter(h, []string{"http://localhost:5173"}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL)
}

func TestClient_FullProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	require.NoError(t, c.SignUp(ctx, "ada", "Ada Lovelace", "ada@example.com", "s3cret"))

	login, err := c.Login(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.NotEmpty(t, login.UserID)

	projectID, err := c.CreateProject(ctx, login.UserID, "my site")
	require.NoError(t, err)

	project, err := c.GetProject(ctx, login.UserID, projectID)
	require.NoError(t, err)
	assert.Equal(t, "my site", project.Title)
	assert.Equal(t, "<h1>Hello world</h1>", project.HTMLCode)

	require.NoError(t, c.UpdateProject(ctx, login.UserID, projectID, "<p>hi</p>", "p{}", "alert(1)"))

	project, err = c.GetProject(ctx, login.UserID, projectID)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", project.HTMLCode)

	require.NoError(t, c.SaveDocument(ctx, login.UserID, projectID, "notes", "Notes"))
	doc, err := c.GetDocument(ctx, login.UserID, projectID)
	require.NoError(t, err)
	assert.Equal(t, "notes", doc.Content)
	assert.Equal(t, "Notes", doc.Title)

	require.NoError(t, c.DeleteProject(ctx, login.UserID, projectID))
	projects, err := c.GetProjects(ctx, login.UserID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestClient_FailureBecomesAPIError(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	require.NoError(t, c.SignUp(ctx, "ada", "Ada", "ada@example.com", "s3cret"))

	_, err := c.Login(ctx, "ada@example.com", "wrong")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid email or password", apiErr.Message)

	_, err = c.Login(ctx, "nobody@example.com", "whatever")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User not found!", apiErr.Message)
}

func TestClient_TransportFailureIsNotAPIError(t *testing.T) {
	ctx := context.Background()
	c := apiclient.New("http://127.0.0.1:1") // nothing listens here

	err := c.SignUp(ctx, "ada", "Ada", "ada@example.com", "s3cret")
	require.Error(t, err)
	var apiErr *apiclient.APIError
	assert.False(t, errors.As(err, &apiErr))
}
