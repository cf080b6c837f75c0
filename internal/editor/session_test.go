package editor_test

import (
	"context"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecanvas/backend/internal/apiclient"
	"codecanvas/backend/internal/editor"
	"codecanvas/backend/internal/handlers"
	"codecanvas/backend/internal/store"
)

// newSessionEnv signs up a user, creates a project and returns the pieces a
// session needs.
func newSessionEnv(t *testing.T) (*apiclient.Client, string, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "editor-test-secret")

	h := handlers.New(store.NewMemoryUsers(), store.NewMemoryProjects(), nil)
	srv := httptest.NewServer(handlers.NewRouter(h, []string{"http://localhost:5173"}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	api := apiclient.New(srv.URL)
	require.NoError(t, api.SignUp(ctx, "ada", "Ada", "ada@example.com", "s3cret"))
	login, err := api.Login(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	projectID, err := api.CreateProject(ctx, login.UserID, "my site")
	require.NoError(t, err)

	return api, login.UserID, projectID
}

func TestSession_LoadHydratesDefaults(t *testing.T) {
	api, userID, projectID := newSessionEnv(t)

	s := editor.NewSession(api, userID, projectID, nil)
	defer s.Close()

	require.NoError(t, s.Load())
	assert.Equal(t, editor.CodeClean, s.CodeTrack())
	assert.Equal(t,
		"<h1>Hello world</h1><style>body { background-color: #f4f4f4; }</style><script>// some comment</script>",
		s.Preview())
}

func TestSession_CodeTrackTransitions(t *testing.T) {
	api, userID, projectID := newSessionEnv(t)

	s := editor.NewSession(api, userID, projectID, nil)
	defer s.Close()
	require.NoError(t, s.Load())

	s.SetHTML("<b>x</b>")
	assert.Equal(t, editor.CodeEditing, s.CodeTrack())

	require.NoError(t, s.SaveCode())
	assert.Equal(t, editor.CodeSaved, s.CodeTrack())
	assert.Empty(t, s.LastError())

	// The save round-tripped verbatim.
	project, err := api.GetProject(context.Background(), userID, projectID)
	require.NoError(t, err)
	assert.Equal(t, "<b>x</b>", project.HTMLCode)
}

func TestSession_SaveFailureSurfacesErrorAndStaysEditable(t *testing.T) {
	api, userID, projectID := newSessionEnv(t)

	s := editor.NewSession(api, userID, projectID, nil)
	defer s.Close()
	require.NoError(t, s.Load())

	// Delete the project out from under the session.
	require.NoError(t, api.DeleteProject(context.Background(), userID, projectID))

	s.SetHTML("<b>orphan</b>")
	err := s.SaveCode()
	require.Error(t, err)
	assert.Equal(t, editor.CodeError, s.CodeTrack())
	assert.Contains(t, s.LastError(), "Project not found")

	// Still editable after the failure.
	s.SetHTML("<b>again</b>")
	assert.Equal(t, editor.CodeEditing, s.CodeTrack())
}

func TestSession_DocumentLazyLoadAndTransitions(t *testing.T) {
	api, userID, projectID := newSessionEnv(t)

	s := editor.NewSession(api, userID, projectID, nil)
	defer s.Close()
	require.NoError(t, s.Load())

	// Document not loaded until its view activates.
	require.NoError(t, s.ActivateView(editor.ViewDocument))
	assert.Equal(t, editor.DocSaved, s.DocumentTrack())
	doc := s.Document()
	assert.Equal(t, "", doc.Content)
	assert.Equal(t, "Untitled Document", doc.Title)

	s.SetDocumentContent("<p>notes</p>")
	assert.Equal(t, editor.DocUnsaved, s.DocumentTrack())
	s.SetDocumentTitle("Notes")
	assert.Equal(t, editor.DocUnsaved, s.DocumentTrack())

	require.NoError(t, s.SaveDocument())
	assert.Equal(t, editor.DocSaved, s.DocumentTrack())

	got, err := api.GetDocument(context.Background(), userID, projectID)
	require.NoError(t, err)
	assert.Equal(t, "<p>notes</p>", got.Content)
	assert.Equal(t, "Notes", got.Title)
}

func TestSession_SaveDispatchesByActiveView(t *testing.T) {
	api, userID, projectID := newSessionEnv(t)

	s := editor.NewSession(api, userID, projectID, nil)
	defer s.Close()
	require.NoError(t, s.Load())
	require.NoError(t, s.ActivateView(editor.ViewDocument))

	s.SetDocumentContent("dispatched")
	require.NoError(t, s.Save())
	assert.Equal(t, editor.DocSaved, s.DocumentTrack())

	require.NoError(t, s.ActivateView(editor.ViewCode))
	s.SetHTML("<u>code</u>")
	require.NoError(t, s.Save())
	assert.Equal(t, editor.CodeSaved, s.CodeTrack())

	doc, err := api.GetDocument(context.Background(), userID, projectID)
	require.NoError(t, err)
	assert.Equal(t, "dispatched", doc.Content)
	project, err := api.GetProject(context.Background(), userID, projectID)
	require.NoError(t, err)
	assert.Equal(t, "<u>code</u>", project.HTMLCode)
}

func TestSession_PreviewDebounceCollapsesRapidEdits(t *testing.T) {
	api, userID, projectID := newSessionEnv(t)

	var renders atomic.Int32
	var lastDoc atomic.Value
	render := func(doc string) {
		renders.Add(1)
		lastDoc.Store(doc)
	}

	s := editor.NewSession(api, userID, projectID, render,
		editor.WithSettleDelay(30*time.Millisecond))
	defer s.Close()
	require.NoError(t, s.Load())

	// Wait out the render scheduled by Load.
	time.Sleep(100 * time.Millisecond)
	base := renders.Load()

	// A burst of keystrokes inside one settle window renders once.
	s.SetHTML("<b>1</b>")
	s.SetHTML("<b>12</b>")
	s.SetCSS("b{}")
	s.SetHTML("<b>123</b>")

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, base+1, renders.Load())
	assert.Equal(t, "<b>123</b><style>b{}</style><script>// some comment</script>", lastDoc.Load())
}

func TestSession_CloseDiscardsLateWork(t *testing.T) {
	api, userID, projectID := newSessionEnv(t)

	var renders atomic.Int32
	render := func(string) { renders.Add(1) }

	s := editor.NewSession(api, userID, projectID, render,
		editor.WithSettleDelay(20*time.Millisecond))
	require.NoError(t, s.Load())

	// Edit, then tear down before the settle timer fires.
	time.Sleep(60 * time.Millisecond)
	base := renders.Load()
	s.SetHTML("<b>never rendered</b>")
	s.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, base, renders.Load())

	// Network work after Close is refused instead of applied.
	assert.Error(t, s.SaveCode())
	assert.Error(t, s.Load())
}
