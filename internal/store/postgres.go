package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"codecanvas/backend/internal/models"
)

const uniqueViolation = "23505"

// PostgresUsers implements Users on a pgx pool.
type PostgresUsers struct {
	db *pgxpool.Pool
}

func NewPostgresUsers(db *pgxpool.Pool) *PostgresUsers {
	return &PostgresUsers{db: db}
}

func (s *PostgresUsers) Create(ctx context.Context, username, name, email, passwordHash string) (models.User, error) {
	const q = `
		INSERT INTO users (id, username, name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	u := models.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	err := s.db.QueryRow(ctx, q, u.ID, username, name, email, passwordHash).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *PostgresUsers) ByEmail(ctx context.Context, email string) (models.User, error) {
	const q = `
		SELECT id, username, name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1`
	return s.scanUser(s.db.QueryRow(ctx, q, email))
}

func (s *PostgresUsers) ByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	const q = `
		SELECT id, username, name, email, password_hash, created_at, updated_at
		FROM users WHERE id = $1`
	return s.scanUser(s.db.QueryRow(ctx, q, id))
}

func (s *PostgresUsers) scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// PostgresProjects implements Projects on a pgx pool.
type PostgresProjects struct {
	db *pgxpool.Pool
}

func NewPostgresProjects(db *pgxpool.Pool) *PostgresProjects {
	return &PostgresProjects{db: db}
}

const projectColumns = `id, title, owner_id, html_code, css_code, js_code,
	document_content, document_title, created_at, updated_at`

func (s *PostgresProjects) Create(ctx context.Context, ownerID uuid.UUID, title string) (models.Project, error) {
	const q = `
		INSERT INTO projects (id, title, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + projectColumns

	return s.scanProject(s.db.QueryRow(ctx, q, uuid.New(), title, ownerID))
}

func (s *PostgresProjects) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.OwnerID, &p.HTMLCode, &p.CSSCode, &p.JSCode,
			&p.DocumentContent, &p.DocumentTitle, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// FindOwned is the single ownership check every project-scoped operation goes
// through. It distinguishes a missing project from someone else's project so
// handlers can log the difference, even though the user-facing message merges
// the two.
func (s *PostgresProjects) FindOwned(ctx context.Context, ownerID, projectID uuid.UUID) (models.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := s.scanProject(s.db.QueryRow(ctx, q, projectID))
	if err != nil {
		return models.Project{}, err
	}
	if p.OwnerID != ownerID {
		return models.Project{}, ErrForbidden
	}
	return p, nil
}

func (s *PostgresProjects) UpdateCode(ctx context.Context, ownerID, projectID uuid.UUID, html, css, js string) error {
	const q = `
		UPDATE projects
		SET html_code = $3, css_code = $4, js_code = $5, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2`

	return s.ownedExec(ctx, ownerID, projectID, q, html, css, js)
}

func (s *PostgresProjects) SaveDocument(ctx context.Context, ownerID, projectID uuid.UUID, content, title string) error {
	const q = `
		UPDATE projects
		SET document_content = $3, document_title = $4, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2`

	return s.ownedExec(ctx, ownerID, projectID, q, content, title)
}

func (s *PostgresProjects) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	const q = `DELETE FROM projects WHERE id = $1 AND owner_id = $2`
	return s.ownedExec(ctx, ownerID, projectID, q)
}

// ownedExec runs an owner-filtered statement and, when nothing matched, does a
// second lookup to tell ErrNotFound from ErrForbidden.
func (s *PostgresProjects) ownedExec(ctx context.Context, ownerID, projectID uuid.UUID, q string, args ...any) error {
	tagArgs := append([]any{projectID, ownerID}, args...)
	tag, err := s.db.Exec(ctx, q, tagArgs...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		_, err := s.FindOwned(ctx, ownerID, projectID)
		if err != nil {
			return err
		}
		// Row appeared between the statements; treat the write as lost to a
		// concurrent delete.
		return ErrNotFound
	}
	return nil
}

func (s *PostgresProjects) scanProject(row pgx.Row) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Title, &p.OwnerID, &p.HTMLCode, &p.CSSCode, &p.JSCode,
		&p.DocumentContent, &p.DocumentTitle, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}
