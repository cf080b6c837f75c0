package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"codecanvas/backend/internal/models"
)

// MemoryUsers keeps user records in process memory. It backs the API when no
// DATABASE_URL is configured and every handler test.
type MemoryUsers struct {
	mu      sync.Mutex
	users   map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		users:   make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *MemoryUsers) Create(ctx context.Context, username, name, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[email]; taken {
		return models.User{}, ErrDuplicateEmail
	}
	now := time.Now()
	u := models.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return u, nil
}

func (s *MemoryUsers) ByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.users[id], nil
}

func (s *MemoryUsers) ByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

// MemoryProjects keeps project records in a slice so ByOwner preserves
// insertion order, matching the natural order of the SQL store.
type MemoryProjects struct {
	mu       sync.Mutex
	projects []models.Project
}

func NewMemoryProjects() *MemoryProjects {
	return &MemoryProjects{}
}

func (s *MemoryProjects) Create(ctx context.Context, ownerID uuid.UUID, title string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := models.Project{
		ID:            uuid.New(),
		Title:         title,
		OwnerID:       ownerID,
		HTMLCode:      models.DefaultHTML,
		CSSCode:       models.DefaultCSS,
		JSCode:        models.DefaultJS,
		DocumentTitle: models.DefaultDocumentTitle,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.projects = append(s.projects, p)
	return p, nil
}

func (s *MemoryProjects) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Project, 0)
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryProjects) FindOwned(ctx context.Context, ownerID, projectID uuid.UUID) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOwned(ownerID, projectID)
	if err != nil {
		return models.Project{}, err
	}
	return s.projects[i], nil
}

func (s *MemoryProjects) UpdateCode(ctx context.Context, ownerID, projectID uuid.UUID, html, css, js string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOwned(ownerID, projectID)
	if err != nil {
		return err
	}
	s.projects[i].HTMLCode = html
	s.projects[i].CSSCode = css
	s.projects[i].JSCode = js
	s.projects[i].UpdatedAt = time.Now()
	return nil
}

func (s *MemoryProjects) SaveDocument(ctx context.Context, ownerID, projectID uuid.UUID, content, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOwned(ownerID, projectID)
	if err != nil {
		return err
	}
	s.projects[i].DocumentContent = content
	s.projects[i].DocumentTitle = title
	s.projects[i].UpdatedAt = time.Now()
	return nil
}

func (s *MemoryProjects) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOwned(ownerID, projectID)
	if err != nil {
		return err
	}
	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	return nil
}

// indexOwned is the memory twin of the owner-enforcing lookup. Callers hold
// the lock.
func (s *MemoryProjects) indexOwned(ownerID, projectID uuid.UUID) (int, error) {
	for i, p := range s.projects {
		if p.ID == projectID {
			if p.OwnerID != ownerID {
				return 0, ErrForbidden
			}
			return i, nil
		}
	}
	return 0, ErrNotFound
}
