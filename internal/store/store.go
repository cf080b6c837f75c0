package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"codecanvas/backend/internal/models"
)

// Sentinel errors shared by every store implementation. Handlers map these to
// the response envelope with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Users persists account records.
type Users interface {
	// Create inserts a new user. Fails with ErrDuplicateEmail when the email
	// is already taken.
	Create(ctx context.Context, username, name, email, passwordHash string) (models.User, error)
	// ByEmail returns the user with the given email or ErrNotFound.
	ByEmail(ctx context.Context, email string) (models.User, error)
	// ByID returns the user with the given id or ErrNotFound.
	ByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// Projects persists project records. Every project-scoped operation takes the
// requesting owner id and goes through the same owner-enforcing lookup:
// ErrNotFound when no project has that id, ErrForbidden when it exists but
// belongs to someone else.
type Projects interface {
	Create(ctx context.Context, ownerID uuid.UUID, title string) (models.Project, error)
	// ByOwner lists the owner's projects in insertion order.
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	FindOwned(ctx context.Context, ownerID, projectID uuid.UUID) (models.Project, error)
	// UpdateCode overwrites the three code fields. Last writer wins; there is
	// no version check.
	UpdateCode(ctx context.Context, ownerID, projectID uuid.UUID, html, css, js string) error
	// SaveDocument overwrites the document content and title.
	SaveDocument(ctx context.Context, ownerID, projectID uuid.UUID, content, title string) error
	Delete(ctx context.Context, ownerID, projectID uuid.UUID) error
}
