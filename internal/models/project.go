package models

import (
	"time"

	"github.com/google/uuid"
)

// Default snippets for freshly created projects. These exact strings are part
// of the API contract: clients fall back to them too when a field comes back
// empty.
const (
	DefaultHTML          = "<h1>Hello world</h1>"
	DefaultCSS           = "body { background-color: #f4f4f4; }"
	DefaultJS            = "// some comment"
	DefaultDocumentTitle = "Untitled Document"
)

// Project bundles the three code panes and one rich-text document, owned by a
// single user. The code fields and the document fields are updated through
// separate paths, never in one write.
type Project struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	OwnerID         uuid.UUID `json:"ownerId"`
	HTMLCode        string    `json:"htmlCode"`
	CSSCode         string    `json:"cssCode"`
	JSCode          string    `json:"jsCode"`
	DocumentContent string    `json:"documentContent"`
	DocumentTitle   string    `json:"documentTitle"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Document is the rich-text sub-resource of a project.
type Document struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}
