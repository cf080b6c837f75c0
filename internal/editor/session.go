// Package editor holds the in-memory edit state for one open project: the
// three code panes, the rich-text document, and the dirty/saving status of
// each. It is the Go half of what the browser editor does — debounced preview
// recomposition on every code edit, explicit save only, lazy document load.
package editor

import (
	"context"
	"sync"
	"time"

	"codecanvas/backend/internal/apiclient"
	"codecanvas/backend/internal/models"
	"codecanvas/backend/internal/preview"
)

// CodeState tracks the code pane save lifecycle.
type CodeState int

const (
	CodeClean CodeState = iota
	CodeEditing
	CodeSaving
	CodeSaved
	CodeError
)

// DocState tracks the document save lifecycle.
type DocState int

const (
	DocSaved DocState = iota
	DocUnsaved
	DocSaving
	DocError
)

// View is which editor pane is active; the shared save shortcut dispatches to
// whichever track the active view belongs to.
type View int

const (
	ViewCode View = iota
	ViewDocument
)

// Renderer receives the composed preview document on each (debounced)
// recompute.
type Renderer func(document string)

// DefaultSettleDelay is how long after the last keystroke the preview
// recomposes.
const DefaultSettleDelay = 200 * time.Millisecond

// Session is the edit state for one open project.
type Session struct {
	mu sync.Mutex

	api       *apiclient.Client
	userID    string
	projectID string

	htmlCode string
	cssCode  string
	jsCode   string

	docContent string
	docTitle   string
	docLoaded  bool

	codeState CodeState
	docState  DocState
	lastError string

	activeView View

	render Renderer
	settle time.Duration
	timer  *time.Timer

	// ctx scopes every network call to the session lifetime; Close cancels it
	// so in-flight responses are never applied to a torn-down session.
	ctx    context.Context
	cancel context.CancelFunc
}

// Option customizes a session.
type Option func(*Session)

// WithSettleDelay overrides the preview debounce interval.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Session) { s.settle = d }
}

// NewSession creates a session for a project. Call Load before editing.
func NewSession(api *apiclient.Client, userID, projectID string, render Renderer, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		api:       api,
		userID:    userID,
		projectID: projectID,
		docTitle:  models.DefaultDocumentTitle,
		render:    render,
		settle:    DefaultSettleDelay,
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the code track from the server, falling back to the default
// snippets for any empty field, and schedules the first preview render.
func (s *Session) Load() error {
	project, err := s.api.GetProject(s.ctx, s.userID, s.projectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return s.ctx.Err()
	}

	s.htmlCode = fallback(project.HTMLCode, models.DefaultHTML)
	s.cssCode = fallback(project.CSSCode, models.DefaultCSS)
	s.jsCode = fallback(project.JSCode, models.DefaultJS)
	s.codeState = CodeClean
	s.schedulePreviewLocked()
	return nil
}

// ActivateView switches the active pane. The document is loaded lazily, only
// the first time its view is activated.
func (s *Session) ActivateView(v View) error {
	s.mu.Lock()
	s.activeView = v
	needLoad := v == ViewDocument && !s.docLoaded
	s.mu.Unlock()

	if !needLoad {
		return nil
	}

	doc, err := s.api.GetDocument(s.ctx, s.userID, s.projectID)
	if err != nil {
		// A project with no document yet behaves as an empty one.
		doc = models.Document{Title: models.DefaultDocumentTitle}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return s.ctx.Err()
	}
	s.docContent = doc.Content
	s.docTitle = fallback(doc.Title, models.DefaultDocumentTitle)
	s.docLoaded = true
	s.docState = DocSaved
	return nil
}

// SetHTML records an edit to the HTML pane.
func (s *Session) SetHTML(code string) { s.setCode(&s.htmlCode, code) }

// SetCSS records an edit to the CSS pane.
func (s *Session) SetCSS(code string) { s.setCode(&s.cssCode, code) }

// SetJS records an edit to the JS pane.
func (s *Session) SetJS(code string) { s.setCode(&s.jsCode, code) }

func (s *Session) setCode(field *string, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return
	}
	*field = code
	s.codeState = CodeEditing
	s.schedulePreviewLocked()
}

// SetDocumentContent records a document edit, moving the track to unsaved.
func (s *Session) SetDocumentContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return
	}
	s.docContent = content
	if s.docState == DocSaved {
		s.docState = DocUnsaved
	}
}

// SetDocumentTitle records a title edit, moving the track to unsaved.
func (s *Session) SetDocumentTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return
	}
	s.docTitle = title
	if s.docState == DocSaved {
		s.docState = DocUnsaved
	}
}

// Save is the shared save trigger (the Ctrl/Cmd+S binding): it dispatches to
// the track of whichever view is active.
func (s *Session) Save() error {
	s.mu.Lock()
	view := s.activeView
	s.mu.Unlock()

	if view == ViewDocument {
		return s.SaveDocument()
	}
	return s.SaveCode()
}

// SaveCode persists the three code fields. On failure the error message is
// surfaced and the pane stays editable.
func (s *Session) SaveCode() error {
	s.mu.Lock()
	if s.closed() {
		s.mu.Unlock()
		return s.ctx.Err()
	}
	s.codeState = CodeSaving
	html, css, js := s.htmlCode, s.cssCode, s.jsCode
	s.mu.Unlock()

	err := s.api.UpdateProject(s.ctx, s.userID, s.projectID, html, css, js)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return s.ctx.Err()
	}
	if err != nil {
		s.codeState = CodeError
		s.lastError = err.Error()
		return err
	}
	s.codeState = CodeSaved
	s.lastError = ""
	return nil
}

// SaveDocument persists the document content and title.
func (s *Session) SaveDocument() error {
	s.mu.Lock()
	if s.closed() {
		s.mu.Unlock()
		return s.ctx.Err()
	}
	s.docState = DocSaving
	content, title := s.docContent, s.docTitle
	s.mu.Unlock()

	err := s.api.SaveDocument(s.ctx, s.userID, s.projectID, content, title)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return s.ctx.Err()
	}
	if err != nil {
		s.docState = DocError
		s.lastError = err.Error()
		return err
	}
	s.docState = DocSaved
	s.lastError = ""
	return nil
}

// Preview composes the current in-memory fields. Purely derived, never
// persisted.
func (s *Session) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return preview.Compose(s.htmlCode, s.cssCode, s.jsCode)
}

// CodeTrack returns the code save state.
func (s *Session) CodeTrack() CodeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codeState
}

// DocumentTrack returns the document save state.
func (s *Session) DocumentTrack() DocState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docState
}

// Document returns the current in-memory document.
func (s *Session) Document() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Document{Content: s.docContent, Title: s.docTitle}
}

// LastError returns the message surfaced by the most recent failed save.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Close tears the session down: the debounce timer stops and any in-flight
// response is discarded instead of being applied.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// schedulePreviewLocked re-arms the settle timer; rapid keystrokes collapse
// into one render. Callers hold the lock.
func (s *Session) schedulePreviewLocked() {
	if s.render == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.settle, func() {
		s.mu.Lock()
		if s.closed() {
			s.mu.Unlock()
			return
		}
		doc := preview.Compose(s.htmlCode, s.cssCode, s.jsCode)
		render := s.render
		s.mu.Unlock()
		render(doc)
	})
}

func (s *Session) closed() bool {
	return s.ctx.Err() != nil
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
